package file

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sitelabor/laborbook-backend-go/internal/domain/laborer"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/storage"
)

const (
	placeholderBaseURL = "https://placehold.co/80x80.png?text="
	photoDir           = "laborer_photos"
	defaultPhotoExt    = "png"
	imageDataURIPrefix = "data:image"
)

type FileService interface {
	// ResolveProfilePhoto returns the URL to store for a new laborer's photo.
	// Without an image data URI, or when storage is unavailable or the upload fails,
	// it returns the name placeholder. A malformed image data URI is laborer.ErrInvalidPhoto.
	ResolveProfilePhoto(ctx context.Context, laborerID, name, dataURI string) (string, error)

	// UploadLaborerPhoto stores a decoded data URI under laborer_photos/<id>.<ext>
	UploadLaborerPhoto(ctx context.Context, laborerID string, photo DataURI) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// ResolveProfilePhoto implements FileService.
func (s *fileServiceImpl) ResolveProfilePhoto(ctx context.Context, laborerID, name, dataURI string) (string, error) {
	placeholder := PlaceholderURL(name)
	if !strings.HasPrefix(dataURI, imageDataURIPrefix) {
		return placeholder, nil
	}

	photo, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", fmt.Errorf("%w: %w", laborer.ErrInvalidPhoto, err)
	}

	if !s.storage.Available() {
		slog.Warn("photo storage unavailable, using placeholder", "laborer_id", laborerID)
		return placeholder, nil
	}

	photoURL, err := s.UploadLaborerPhoto(ctx, laborerID, photo)
	if err != nil {
		slog.Warn("photo upload failed, using placeholder", "laborer_id", laborerID, "error", err)
		return placeholder, nil
	}

	return photoURL, nil
}

// UploadLaborerPhoto implements FileService.
func (s *fileServiceImpl) UploadLaborerPhoto(ctx context.Context, laborerID string, photo DataURI) (string, error) {
	ext := photo.Extension
	if ext == "" {
		ext = defaultPhotoExt
	}
	photoPath := path.Join(photoDir, laborerID+"."+ext)

	uploadedURL, err := s.storage.Upload(ctx, bytes.NewReader(photo.Data), photoPath, photo.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload laborer photo: %w", err)
	}

	return uploadedURL, nil
}

// PlaceholderURL is the generated avatar keyed by the first letter of name.
func PlaceholderURL(name string) string {
	first, _ := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError {
		return placeholderBaseURL
	}
	return placeholderBaseURL + url.QueryEscape(string(first))
}

// DataURI is a decoded "data:<type>;base64,<payload>" string.
type DataURI struct {
	Data        []byte
	ContentType string
	Extension   string
}

var contentTypeRegex = regexp.MustCompile(`:(.*?);`)

var errInvalidDataURI = errors.New("invalid data URI")

// DecodeDataURI splits a base64 data URI into its payload and declared content type.
// The extension is the subtype of the content type, e.g. "jpeg" for image/jpeg.
// Only a missing header or payload is an error; the payload is decoded leniently.
func DecodeDataURI(dataURI string) (DataURI, error) {
	header, rest, _ := strings.Cut(dataURI, ",")
	payload, _, _ := strings.Cut(rest, ",")
	if header == "" || payload == "" {
		return DataURI{}, errInvalidDataURI
	}

	var photo DataURI
	if m := contentTypeRegex.FindStringSubmatch(header); m != nil {
		photo.ContentType = m[1]
		if _, sub, found := strings.Cut(m[1], "/"); found {
			photo.Extension = sub
		}
	}
	photo.Data = decodeBase64Lenient(payload)

	return photo, nil
}

// decodeBase64Lenient accepts standard and URL-safe alphabets, skips any other
// character and stops at the first padding character.
func decodeBase64Lenient(payload string) []byte {
	var b strings.Builder
	b.Grow(len(payload))
	for _, c := range payload {
		switch {
		case c == '=':
			return decodeRaw(b.String())
		case c == '-':
			b.WriteByte('+')
		case c == '_':
			b.WriteByte('/')
		case c == '+', c == '/', c >= '0' && c <= '9', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
			b.WriteRune(c)
		}
	}
	return decodeRaw(b.String())
}

func decodeRaw(clean string) []byte {
	// a single trailing character carries no whole byte
	if len(clean)%4 == 1 {
		clean = clean[:len(clean)-1]
	}
	data, err := base64.RawStdEncoding.DecodeString(clean)
	if err != nil {
		return nil
	}
	return data
}
