package laborer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sitelabor/laborbook-backend-go/internal/domain/laborer"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/cache"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/database"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/result"
	"github.com/sitelabor/laborbook-backend-go/internal/service/file"
)

const invalidDataURIMessage = "Invalid data URI"

type laborerServiceImpl struct {
	laborerRepo laborer.LaborerRepository
	fileService file.FileService
	viewCache   cache.ViewCache
	newID       func() string
}

func NewLaborerService(laborerRepo laborer.LaborerRepository, fileService file.FileService, viewCache cache.ViewCache) laborer.LaborerService {
	return &laborerServiceImpl{
		laborerRepo: laborerRepo,
		fileService: fileService,
		viewCache:   viewCache,
		newID:       newUUID,
	}
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// AddLaborer implements laborer.LaborerService.
func (s *laborerServiceImpl) AddLaborer(ctx context.Context, req laborer.AddLaborerRequest) result.Result[laborer.LaborerResponse] {
	if err := req.Validate(); err != nil {
		return result.ValidationFailed[laborer.LaborerResponse]("Validation failed. Please check the fields.", result.FieldErrors(err))
	}

	laborerID := s.newID()

	photoURL, err := s.fileService.ResolveProfilePhoto(ctx, laborerID, req.Name, req.ProfilePhotoURL)
	if err != nil {
		if errors.Is(err, laborer.ErrInvalidPhoto) {
			return result.Failed[laborer.LaborerResponse]("Failed to add laborer: "+invalidDataURIMessage, invalidDataURIMessage)
		}
		return addFailed(err)
	}

	created, err := s.laborerRepo.Create(ctx, laborer.Laborer{
		ID:              laborerID,
		Name:            req.Name,
		MobileNo:        req.MobileNo,
		AadhaarNo:       req.AadhaarNo,
		PANNo:           req.PANNo,
		ProfilePhotoURL: &photoURL,
	})
	if err != nil {
		database.LogError(ctx, "error adding laborer", err)
		return addFailed(err)
	}

	s.invalidate(ctx, cache.PathDashboard, cache.PathDailyEntry, cache.PathAddLaborer)

	return result.Ok("Laborer added successfully!", laborer.ToResponse(created))
}

func addFailed(err error) result.Result[laborer.LaborerResponse] {
	msg := database.ErrorMessage(err)
	return result.Failed[laborer.LaborerResponse]("Failed to add laborer: "+msg, msg)
}

// DeleteLaborer implements laborer.LaborerService.
func (s *laborerServiceImpl) DeleteLaborer(ctx context.Context, req laborer.DeleteLaborerRequest) result.Result[any] {
	if err := req.Validate(); err != nil {
		return result.ValidationFailed[any]("Validation failed. Laborer ID missing.", result.FieldErrors(err))
	}

	deleted, err := s.laborerRepo.Delete(ctx, req.LaborerID)
	if err != nil {
		database.LogError(ctx, "error deleting laborer", err)
		msg := database.ErrorMessage(err)
		return result.Failed[any]("Failed to delete laborer: "+msg, msg)
	}

	if deleted == 0 {
		return result.NotFound[any]("Laborer not found or already deleted.")
	}

	s.invalidate(ctx, cache.PathDashboard, cache.PathDailyEntry)

	return result.Ok[any]("Laborer and associated entries deleted successfully!", nil)
}

// GetLaborers implements laborer.LaborerService.
func (s *laborerServiceImpl) GetLaborers(ctx context.Context) ([]laborer.LaborerResponse, error) {
	laborers, err := s.laborerRepo.List(ctx)
	if err != nil {
		database.LogError(ctx, "error fetching laborers", err)
		return nil, fmt.Errorf("failed to fetch laborers: %w", err)
	}

	return laborer.ToResponses(laborers), nil
}

// GetLaborerByID implements laborer.LaborerService.
func (s *laborerServiceImpl) GetLaborerByID(ctx context.Context, id string) (*laborer.LaborerResponse, error) {
	l, err := s.laborerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, laborer.ErrLaborerNotFound) {
			return nil, nil
		}
		database.LogError(ctx, "error fetching laborer", err, "laborer_id", id)
		return nil, fmt.Errorf("failed to fetch laborer by ID %s: %w", id, err)
	}

	resp := laborer.ToResponse(l)
	return &resp, nil
}

func (s *laborerServiceImpl) invalidate(ctx context.Context, paths ...string) {
	if err := s.viewCache.Invalidate(ctx, paths...); err != nil {
		slog.WarnContext(ctx, "failed to invalidate cached views", "paths", paths, "error", err)
	}
}
