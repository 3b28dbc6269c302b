package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sitelabor/laborbook-backend-go/internal/domain/laborer"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/database"
)

type laborerRepositoryImpl struct {
	db *database.DB
}

func NewLaborerRepository(db *database.DB) laborer.LaborerRepository {
	return &laborerRepositoryImpl{db: db}
}

// List implements laborer.LaborerRepository.
func (r *laborerRepositoryImpl) List(ctx context.Context) ([]laborer.Laborer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, mobileno, aadhaarno, panno, profilephotourl, created_at
		FROM laborers
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, database.WrapError("fetch laborers", err)
	}
	defer rows.Close()

	laborers := make([]laborer.Laborer, 0)
	for rows.Next() {
		l, err := scanLaborer(rows)
		if err != nil {
			return nil, database.WrapError("scan laborer", err)
		}
		laborers = append(laborers, l)
	}

	if err = rows.Err(); err != nil {
		return nil, database.WrapError("fetch laborers", err)
	}

	return laborers, nil
}

// GetByID implements laborer.LaborerRepository.
func (r *laborerRepositoryImpl) GetByID(ctx context.Context, id string) (laborer.Laborer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, mobileno, aadhaarno, panno, profilephotourl, created_at
		FROM laborers
		WHERE id = $1
	`

	l, err := scanLaborer(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return laborer.Laborer{}, laborer.ErrLaborerNotFound
		}
		return laborer.Laborer{}, database.WrapError(fmt.Sprintf("fetch laborer %s", id), err)
	}

	return l, nil
}

// Create implements laborer.LaborerRepository.
func (r *laborerRepositoryImpl) Create(ctx context.Context, newLaborer laborer.Laborer) (laborer.Laborer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO laborers (id, name, mobileno, aadhaarno, panno, profilephotourl, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, name, mobileno, aadhaarno, panno, profilephotourl, created_at
	`

	created, err := scanLaborer(q.QueryRow(ctx, query,
		newLaborer.ID,
		newLaborer.Name,
		newLaborer.MobileNo,
		newLaborer.AadhaarNo,
		newLaborer.PANNo,
		newLaborer.ProfilePhotoURL,
	))
	if err != nil {
		return laborer.Laborer{}, database.WrapError("insert laborer", err)
	}

	return created, nil
}

// Delete implements laborer.LaborerRepository.
func (r *laborerRepositoryImpl) Delete(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM laborers WHERE id = $1`, id)
	if err != nil {
		return 0, database.WrapError("delete laborer", err)
	}

	return commandTag.RowsAffected(), nil
}

func scanLaborer(row pgx.Row) (laborer.Laborer, error) {
	var l laborer.Laborer
	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.MobileNo,
		&l.AadhaarNo,
		&l.PANNo,
		&l.ProfilePhotoURL,
		&l.CreatedAt,
	)
	return l, err
}
