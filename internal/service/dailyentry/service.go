package dailyentry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sitelabor/laborbook-backend-go/internal/domain/dailyentry"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/cache"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/database"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/result"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type dailyEntryServiceImpl struct {
	entryRepo  dailyentry.DailyEntryRepository
	transactor database.Transactor
	viewCache  cache.ViewCache
	now        func() time.Time
	newID      func() string
}

func NewDailyEntryService(entryRepo dailyentry.DailyEntryRepository, transactor database.Transactor, viewCache cache.ViewCache) dailyentry.DailyEntryService {
	return &dailyEntryServiceImpl{
		entryRepo:  entryRepo,
		transactor: transactor,
		viewCache:  viewCache,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// AddDailyEntries implements dailyentry.DailyEntryService.
func (s *dailyEntryServiceImpl) AddDailyEntries(ctx context.Context, req dailyentry.AddDailyEntriesRequest) result.Result[dailyentry.AddDailyEntriesResponse] {
	if validator.IsEmpty(req.Date) {
		return result.ValidationFailed[dailyentry.AddDailyEntriesResponse]("Date is required.", map[string][]string{
			"date": {"Date is required."},
		})
	}

	count, err := req.ParseLaborerCount()
	if err != nil {
		return result.ValidationFailed[dailyentry.AddDailyEntriesResponse]("Invalid laborer count.", map[string][]string{
			"form": {"Invalid laborer data."},
		})
	}

	slots := req.Slots(count)
	if err := dailyentry.ValidateWorkDetails(req.WorkDetails, slots); err != nil {
		return result.ValidationFailed[dailyentry.AddDailyEntriesResponse](
			"Work details are required if any laborer is marked present.", result.FieldErrors(err))
	}

	entries := dailyentry.BuildEntries(req.Date, req.WorkDetails, slots)
	for i := range entries {
		entries[i].ID = s.newID()
	}

	if len(entries) > 0 {
		err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			return s.entryRepo.BulkCreate(ctx, entries)
		})
		if err != nil {
			database.LogError(ctx, "error adding daily entries", err, "date", req.Date, "count", len(entries))
			msg := database.ErrorMessage(err)
			return result.Failed[dailyentry.AddDailyEntriesResponse]("Failed to record daily entries: "+msg, msg)
		}
	}

	if err := s.viewCache.Invalidate(ctx, cache.PathDashboard, cache.PathDailyEntry); err != nil {
		slog.WarnContext(ctx, "failed to invalidate cached views", "error", err)
	}

	return result.Ok("Daily entries recorded successfully!", dailyentry.AddDailyEntriesResponse{Count: len(entries)})
}

// GetDailyEntries implements dailyentry.DailyEntryService.
func (s *dailyEntryServiceImpl) GetDailyEntries(ctx context.Context) ([]dailyentry.DailyEntryResponse, error) {
	since := s.now().AddDate(0, 0, -dailyentry.WindowDays).Format(dateLayout)

	var cached []dailyentry.DailyEntryResponse
	hit, version, err := s.viewCache.Get(ctx, cache.PathDailyEntry, since, &cached)
	if err != nil {
		slog.WarnContext(ctx, "daily entry cache read failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	entries, err := s.entryRepo.ListSince(ctx, since)
	if err != nil {
		database.LogError(ctx, "error fetching daily entries", err, "since", since)
		return nil, fmt.Errorf("failed to fetch daily entries: %w", err)
	}

	resp := dailyentry.ToResponses(entries)
	if err := s.viewCache.Put(ctx, cache.PathDailyEntry, since, version, resp); err != nil {
		slog.WarnContext(ctx, "daily entry cache write failed", "error", err)
	}

	return resp, nil
}

// GetDailyEntriesByDate implements dailyentry.DailyEntryService.
func (s *dailyEntryServiceImpl) GetDailyEntriesByDate(ctx context.Context, date string) ([]dailyentry.DailyEntryResponse, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return nil, dailyentry.ErrInvalidDate
	}

	entries, err := s.entryRepo.ListByDate(ctx, date)
	if err != nil {
		database.LogError(ctx, "error fetching daily entries", err, "date", date)
		return nil, fmt.Errorf("failed to fetch daily entries for %s: %w", date, err)
	}

	return dailyentry.ToResponses(entries), nil
}
