package dailyentry

import "context"

type DailyEntryRepository interface {
	// BulkCreate inserts all entries with a single statement.
	BulkCreate(ctx context.Context, entries []DailyEntry) error

	// ListSince returns entries dated on or after since, newest first, with laborer names.
	ListSince(ctx context.Context, since string) ([]DailyEntry, error)

	// ListByDate returns the entries of one date ordered by laborer name.
	ListByDate(ctx context.Context, date string) ([]DailyEntry, error)
}
