package laborer

import (
	"context"

	"github.com/sitelabor/laborbook-backend-go/internal/pkg/result"
)

// LaborerService defines business logic for laborer operations
type LaborerService interface {
	// AddLaborer validates, stores the photo and inserts the laborer
	AddLaborer(ctx context.Context, req AddLaborerRequest) result.Result[LaborerResponse]

	// DeleteLaborer removes a laborer and their daily entries
	DeleteLaborer(ctx context.Context, req DeleteLaborerRequest) result.Result[any]

	// GetLaborers lists laborers by name
	GetLaborers(ctx context.Context) ([]LaborerResponse, error)

	// GetLaborerByID returns nil without error when the laborer does not exist
	GetLaborerByID(ctx context.Context, id string) (*LaborerResponse, error)
}
