package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/sitelabor/laborbook-backend-go/internal/domain/dailyentry"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/database"
)

const dailyEntryInsertColumns = 6

type dailyEntryRepositoryImpl struct {
	db *database.DB
}

func NewDailyEntryRepository(db *database.DB) dailyentry.DailyEntryRepository {
	return &dailyEntryRepositoryImpl{db: db}
}

// BulkCreate implements dailyentry.DailyEntryRepository.
func (r *dailyEntryRepositoryImpl) BulkCreate(ctx context.Context, entries []dailyentry.DailyEntry) error {
	if len(entries) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query, args := buildBulkInsert(entries)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return database.WrapError("insert daily entries", err)
	}

	return nil
}

// buildBulkInsert renders one multi-row INSERT for entries.
func buildBulkInsert(entries []dailyentry.DailyEntry) (string, []any) {
	var b strings.Builder
	b.WriteString(`INSERT INTO daily_entries (id, laborerid, date, ispresent, advancepaid, workdetails, created_at) VALUES `)

	args := make([]any, 0, len(entries)*dailyEntryInsertColumns)
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		n := i * dailyEntryInsertColumns
		fmt.Fprintf(&b, "($%d, $%d, $%d, $%d, $%d, $%d, NOW())", n+1, n+2, n+3, n+4, n+5, n+6)
		args = append(args, e.ID, e.LaborerID, e.Date, e.IsPresent, e.AdvancePaid, e.WorkDetails)
	}

	return b.String(), args
}

// ListSince implements dailyentry.DailyEntryRepository.
func (r *dailyEntryRepositoryImpl) ListSince(ctx context.Context, since string) ([]dailyentry.DailyEntry, error) {
	query := `
		SELECT de.id, de.laborerid, de.date, de.ispresent, de.advancepaid, de.workdetails, de.created_at, l.name
		FROM daily_entries de
		LEFT JOIN laborers l ON l.id = de.laborerid
		WHERE de.date >= $1
		ORDER BY de.date DESC, de.created_at DESC
	`

	return r.list(ctx, "fetch daily entries", query, since)
}

// ListByDate implements dailyentry.DailyEntryRepository.
func (r *dailyEntryRepositoryImpl) ListByDate(ctx context.Context, date string) ([]dailyentry.DailyEntry, error) {
	query := `
		SELECT de.id, de.laborerid, de.date, de.ispresent, de.advancepaid, de.workdetails, de.created_at, l.name
		FROM daily_entries de
		LEFT JOIN laborers l ON l.id = de.laborerid
		WHERE de.date = $1
		ORDER BY l.name ASC NULLS LAST
	`

	return r.list(ctx, fmt.Sprintf("fetch daily entries for %s", date), query, date)
}

func (r *dailyEntryRepositoryImpl) list(ctx context.Context, op, query string, args ...any) ([]dailyentry.DailyEntry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, database.WrapError(op, err)
	}
	defer rows.Close()

	entries := make([]dailyentry.DailyEntry, 0)
	for rows.Next() {
		var (
			e    dailyentry.DailyEntry
			name *string
		)
		err := rows.Scan(
			&e.ID,
			&e.LaborerID,
			&e.Date,
			&e.IsPresent,
			&e.AdvancePaid,
			&e.WorkDetails,
			&e.CreatedAt,
			&name,
		)
		if err != nil {
			return nil, database.WrapError(op, err)
		}
		e.LaborerName = dailyentry.ResolveLaborerName(name)
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, database.WrapError(op, err)
	}

	return entries, nil
}
