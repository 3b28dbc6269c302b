package file

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sitelabor/laborbook-backend-go/internal/domain/laborer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	available bool
	err       error

	calls       int
	path        string
	contentType string
	body        []byte
}

func (f *fakeStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	f.calls++
	f.path = path
	f.contentType = contentType
	f.body, _ = io.ReadAll(file)
	if f.err != nil {
		return "", f.err
	}
	return "https://blob.example.com/" + path, nil
}

func (f *fakeStorage) Available() bool { return f.available }

// "hello" in base64
const pngDataURI = "data:image/png;base64,aGVsbG8="

func TestPlaceholderURL(t *testing.T) {
	assert.Equal(t, "https://placehold.co/80x80.png?text=R", PlaceholderURL("Ravi Kumar"))
	assert.Equal(t, "https://placehold.co/80x80.png?text=%C3%89", PlaceholderURL("Émile"))
	assert.Equal(t, "https://placehold.co/80x80.png?text=", PlaceholderURL(""))
}

func TestDecodeDataURI(t *testing.T) {
	photo, err := DecodeDataURI("data:image/jpeg;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", photo.ContentType)
	assert.Equal(t, "jpeg", photo.Extension)
	assert.Equal(t, []byte("hello"), photo.Data)

	photo, err = DecodeDataURI("data:image;base64,aGVsbG8")
	require.NoError(t, err)
	assert.Equal(t, "image", photo.ContentType)
	assert.Empty(t, photo.Extension)
	assert.Equal(t, []byte("hello"), photo.Data)

	for _, bad := range []string{"data:image/png;base64", "data:image/png;base64,", ",aGVsbG8="} {
		_, err := DecodeDataURI(bad)
		assert.ErrorIs(t, err, errInvalidDataURI, bad)
	}
}

func TestDecodeDataURI_LenientPayload(t *testing.T) {
	cases := map[string]string{
		"data:image/png;base64,aGVs bG8=":        "hello",
		"data:image/png;base64,aGVs!bG8":         "hello",
		"data:image/png;base64,aGVsbG8=trailing": "hello",
		"data:image/png;base64,aGVsbG8,extra":    "hello",
		"data:image/png;base64,_-8":              "\xff\xef",
	}
	for in, want := range cases {
		photo, err := DecodeDataURI(in)
		require.NoError(t, err, in)
		assert.Equal(t, []byte(want), photo.Data, in)
	}

	photo, err := DecodeDataURI("data:image/png;base64,!!!")
	require.NoError(t, err)
	assert.Empty(t, photo.Data)
}

func TestResolveProfilePhoto_NoPhotoUsesPlaceholder(t *testing.T) {
	store := &fakeStorage{available: true}
	svc := NewFileService(store)

	for _, in := range []string{"", "https://example.com/me.png", "data:text/plain;base64,aGVsbG8="} {
		got, err := svc.ResolveProfilePhoto(context.Background(), "id-1", "Ravi Kumar", in)
		require.NoError(t, err)
		assert.Equal(t, "https://placehold.co/80x80.png?text=R", got)
	}
	assert.Zero(t, store.calls)
}

func TestResolveProfilePhoto_Uploads(t *testing.T) {
	store := &fakeStorage{available: true}
	svc := NewFileService(store)

	got, err := svc.ResolveProfilePhoto(context.Background(), "id-1", "Ravi Kumar", pngDataURI)
	require.NoError(t, err)
	assert.Equal(t, "https://blob.example.com/laborer_photos/id-1.png", got)
	assert.Equal(t, "laborer_photos/id-1.png", store.path)
	assert.Equal(t, "image/png", store.contentType)
	assert.Equal(t, []byte("hello"), store.body)
}

func TestResolveProfilePhoto_DefaultsExtensionToPNG(t *testing.T) {
	store := &fakeStorage{available: true}
	svc := NewFileService(store)

	_, err := svc.ResolveProfilePhoto(context.Background(), "id-2", "Ravi", "data:image;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "laborer_photos/id-2.png", store.path)
}

func TestResolveProfilePhoto_UnavailableStorageFallsBack(t *testing.T) {
	store := &fakeStorage{available: false}
	svc := NewFileService(store)

	got, err := svc.ResolveProfilePhoto(context.Background(), "id-1", "Ravi Kumar", pngDataURI)
	require.NoError(t, err)
	assert.Equal(t, "https://placehold.co/80x80.png?text=R", got)
	assert.Zero(t, store.calls)
}

func TestResolveProfilePhoto_UploadErrorFallsBack(t *testing.T) {
	store := &fakeStorage{available: true, err: errors.New("network down")}
	svc := NewFileService(store)

	got, err := svc.ResolveProfilePhoto(context.Background(), "id-1", "Ravi Kumar", pngDataURI)
	require.NoError(t, err)
	assert.Equal(t, "https://placehold.co/80x80.png?text=R", got)
	assert.Equal(t, 1, store.calls)
}

func TestResolveProfilePhoto_MalformedDataURI(t *testing.T) {
	svc := NewFileService(&fakeStorage{available: true})

	_, err := svc.ResolveProfilePhoto(context.Background(), "id-1", "Ravi", "data:image/png;base64")
	assert.ErrorIs(t, err, laborer.ErrInvalidPhoto)
	assert.ErrorIs(t, err, errInvalidDataURI)
}
