package laborer

import "context"

type LaborerRepository interface {
	// List returns every laborer ordered by name ascending
	List(ctx context.Context) ([]Laborer, error)

	// GetByID returns ErrLaborerNotFound when no row matches
	GetByID(ctx context.Context, id string) (Laborer, error)

	Create(ctx context.Context, newLaborer Laborer) (Laborer, error)

	// Delete removes the laborer and, through the foreign key, its daily entries.
	// It returns the number of laborer rows removed.
	Delete(ctx context.Context, id string) (int64, error)
}
