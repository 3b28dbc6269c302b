package dailyentry

import (
	"context"

	"github.com/sitelabor/laborbook-backend-go/internal/pkg/result"
)

// WindowDays is how far back the daily entry listing reaches.
const WindowDays = 7

type DailyEntryService interface {
	AddDailyEntries(ctx context.Context, req AddDailyEntriesRequest) result.Result[AddDailyEntriesResponse]

	// GetDailyEntries returns the trailing window of entries, newest first.
	GetDailyEntries(ctx context.Context) ([]DailyEntryResponse, error)

	GetDailyEntriesByDate(ctx context.Context, date string) ([]DailyEntryResponse, error)
}
