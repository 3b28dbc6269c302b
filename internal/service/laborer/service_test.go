package laborer

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sitelabor/laborbook-backend-go/internal/domain/laborer"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/cache"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/database"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/result"
	"github.com/sitelabor/laborbook-backend-go/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryLaborerRepo keeps laborers in insertion order.
type memoryLaborerRepo struct {
	laborers  []laborer.Laborer
	createErr error
	listErr   error
	deleteErr error
}

func (r *memoryLaborerRepo) List(ctx context.Context) ([]laborer.Laborer, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]laborer.Laborer(nil), r.laborers...), nil
}

func (r *memoryLaborerRepo) GetByID(ctx context.Context, id string) (laborer.Laborer, error) {
	for _, l := range r.laborers {
		if l.ID == id {
			return l, nil
		}
	}
	return laborer.Laborer{}, laborer.ErrLaborerNotFound
}

func (r *memoryLaborerRepo) Create(ctx context.Context, l laborer.Laborer) (laborer.Laborer, error) {
	if r.createErr != nil {
		return laborer.Laborer{}, r.createErr
	}
	r.laborers = append(r.laborers, l)
	return l, nil
}

func (r *memoryLaborerRepo) Delete(ctx context.Context, id string) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	for i, l := range r.laborers {
		if l.ID == id {
			r.laborers = append(r.laborers[:i], r.laborers[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeFileService struct {
	resolve func(ctx context.Context, laborerID, name, dataURI string) (string, error)
}

func (f *fakeFileService) ResolveProfilePhoto(ctx context.Context, laborerID, name, dataURI string) (string, error) {
	if f.resolve != nil {
		return f.resolve(ctx, laborerID, name, dataURI)
	}
	return file.PlaceholderURL(name), nil
}

func (f *fakeFileService) UploadLaborerPhoto(ctx context.Context, laborerID string, photo file.DataURI) (string, error) {
	return "", errors.New("not used")
}

type recordingCache struct {
	cache.ViewCache
	invalidated [][]string
}

func (c *recordingCache) Invalidate(ctx context.Context, paths ...string) error {
	c.invalidated = append(c.invalidated, paths)
	return nil
}

func newTestService(repo *memoryLaborerRepo, files file.FileService) (*laborerServiceImpl, *recordingCache) {
	viewCache := &recordingCache{ViewCache: cache.NewNoop()}
	svc := NewLaborerService(repo, files, viewCache).(*laborerServiceImpl)
	svc.newID = func() string { return "laborer-1" }
	return svc, viewCache
}

func validRequest() laborer.AddLaborerRequest {
	return laborer.AddLaborerRequest{
		Name:      "Ravi Kumar",
		MobileNo:  "9876543210",
		AadhaarNo: "123456789012",
		PANNo:     "ABCDE1234F",
	}
}

func TestAddLaborer_PlaceholderWhenNoPhoto(t *testing.T) {
	repo := &memoryLaborerRepo{}
	svc, viewCache := newTestService(repo, file.NewFileService(nil))

	res := svc.AddLaborer(context.Background(), validRequest())

	require.True(t, res.Success())
	assert.Equal(t, "Laborer added successfully!", res.Message)
	require.Len(t, repo.laborers, 1)
	require.NotNil(t, repo.laborers[0].ProfilePhotoURL)
	assert.Equal(t, "https://placehold.co/80x80.png?text=R", *repo.laborers[0].ProfilePhotoURL)
	assert.Equal(t, "laborer-1", res.Data.ID)
	assert.Equal(t, [][]string{{cache.PathDashboard, cache.PathDailyEntry, cache.PathAddLaborer}}, viewCache.invalidated)
}

func TestAddLaborer_ThenGetLaborersIncludesRecord(t *testing.T) {
	repo := &memoryLaborerRepo{}
	svc, _ := newTestService(repo, &fakeFileService{})

	req := validRequest()
	require.True(t, svc.AddLaborer(context.Background(), req).Success())

	list, err := svc.GetLaborers(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	assert.Equal(t, req.Name, got.Name)
	assert.Equal(t, req.MobileNo, got.MobileNo)
	assert.Equal(t, req.AadhaarNo, got.AadhaarNo)
	assert.Equal(t, req.PANNo, got.PANNo)
	assert.NotNil(t, got.ProfilePhotoURL)
}

func TestAddLaborer_ValidationFailed(t *testing.T) {
	repo := &memoryLaborerRepo{}
	svc, viewCache := newTestService(repo, &fakeFileService{})

	req := validRequest()
	req.PANNo = "abc"
	res := svc.AddLaborer(context.Background(), req)

	assert.Equal(t, result.KindValidationFailed, res.Kind)
	assert.Equal(t, "Validation failed. Please check the fields.", res.Message)
	assert.Equal(t, []string{"Invalid PAN number format"}, res.FieldErrors["panNo"])
	assert.Empty(t, repo.laborers)
	assert.Empty(t, viewCache.invalidated)
}

func TestAddLaborer_InvalidPhoto(t *testing.T) {
	repo := &memoryLaborerRepo{}
	svc, _ := newTestService(repo, &fakeFileService{
		resolve: func(ctx context.Context, laborerID, name, dataURI string) (string, error) {
			return "", laborer.ErrInvalidPhoto
		},
	})

	req := validRequest()
	req.ProfilePhotoURL = "data:image/png;base64"
	res := svc.AddLaborer(context.Background(), req)

	assert.Equal(t, result.KindFailed, res.Kind)
	assert.Equal(t, "Failed to add laborer: Invalid data URI", res.Message)
	assert.Equal(t, "Invalid data URI", res.FormError)
	assert.Empty(t, res.FieldErrors)
	assert.Empty(t, repo.laborers)
}

func TestAddLaborer_UsesUploadedPhoto(t *testing.T) {
	repo := &memoryLaborerRepo{}
	svc, _ := newTestService(repo, &fakeFileService{
		resolve: func(ctx context.Context, laborerID, name, dataURI string) (string, error) {
			return "https://blob.example.com/laborer_photos/" + laborerID + ".png", nil
		},
	})

	req := validRequest()
	req.ProfilePhotoURL = "data:image/png;base64,aGVsbG8="
	res := svc.AddLaborer(context.Background(), req)

	require.True(t, res.Success())
	assert.Equal(t, "https://blob.example.com/laborer_photos/laborer-1.png", *res.Data.ProfilePhotoURL)
}

func TestAddLaborer_StorageFailure(t *testing.T) {
	repo := &memoryLaborerRepo{
		createErr: database.WrapError("insert laborer", &pgconn.PgError{Message: "duplicate key value violates unique constraint", Code: "23505"}),
	}
	svc, viewCache := newTestService(repo, &fakeFileService{})

	res := svc.AddLaborer(context.Background(), validRequest())

	assert.Equal(t, result.KindFailed, res.Kind)
	assert.Equal(t, "Failed to add laborer: duplicate key value violates unique constraint", res.Message)
	assert.Equal(t, "duplicate key value violates unique constraint", res.FormError)
	assert.Empty(t, viewCache.invalidated)
}

func TestDeleteLaborer_Success(t *testing.T) {
	repo := &memoryLaborerRepo{laborers: []laborer.Laborer{{ID: "abc", Name: "Ravi"}}}
	svc, viewCache := newTestService(repo, &fakeFileService{})

	res := svc.DeleteLaborer(context.Background(), laborer.DeleteLaborerRequest{LaborerID: "abc"})

	require.True(t, res.Success())
	assert.Equal(t, "Laborer and associated entries deleted successfully!", res.Message)
	assert.Empty(t, repo.laborers)
	assert.Equal(t, [][]string{{cache.PathDashboard, cache.PathDailyEntry}}, viewCache.invalidated)
}

func TestDeleteLaborer_UnknownIDIsNotFound(t *testing.T) {
	svc, viewCache := newTestService(&memoryLaborerRepo{}, &fakeFileService{})

	res := svc.DeleteLaborer(context.Background(), laborer.DeleteLaborerRequest{LaborerID: "missing"})

	assert.False(t, res.Success())
	assert.True(t, res.IsNotFound())
	assert.Equal(t, "Laborer not found or already deleted.", res.Message)
	assert.Empty(t, viewCache.invalidated)
}

func TestDeleteLaborer_MissingID(t *testing.T) {
	svc, _ := newTestService(&memoryLaborerRepo{}, &fakeFileService{})

	res := svc.DeleteLaborer(context.Background(), laborer.DeleteLaborerRequest{})

	assert.Equal(t, result.KindValidationFailed, res.Kind)
	assert.Equal(t, "Validation failed. Laborer ID missing.", res.Message)
	assert.Equal(t, []string{"Laborer ID is required"}, res.FieldErrors["laborerId"])
}

func TestDeleteLaborer_StorageFailure(t *testing.T) {
	svc, _ := newTestService(&memoryLaborerRepo{deleteErr: errors.New("connection reset")}, &fakeFileService{})

	res := svc.DeleteLaborer(context.Background(), laborer.DeleteLaborerRequest{LaborerID: "abc"})

	assert.Equal(t, result.KindFailed, res.Kind)
	assert.False(t, res.IsNotFound())
	assert.Equal(t, "Failed to delete laborer: connection reset", res.Message)
	assert.Equal(t, "connection reset", res.FormError)
}

func TestGetLaborers_Error(t *testing.T) {
	svc, _ := newTestService(&memoryLaborerRepo{listErr: errors.New("timeout")}, &fakeFileService{})

	_, err := svc.GetLaborers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch laborers: timeout")
}

func TestGetLaborerByID(t *testing.T) {
	repo := &memoryLaborerRepo{laborers: []laborer.Laborer{{ID: "abc", Name: "Ravi"}}}
	svc, _ := newTestService(repo, &fakeFileService{})

	got, err := svc.GetLaborerByID(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ravi", got.Name)

	missing, err := svc.GetLaborerByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
