package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sitelabor/laborbook-backend-go/internal/domain/dailyentry"
	"github.com/sitelabor/laborbook-backend-go/internal/domain/dashboard"
	"github.com/sitelabor/laborbook-backend-go/internal/domain/laborer"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/cache"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/database"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

type dashboardServiceImpl struct {
	laborerRepo laborer.LaborerRepository
	entryRepo   dailyentry.DailyEntryRepository
	viewCache   cache.ViewCache
	now         func() time.Time
}

func NewDashboardService(laborerRepo laborer.LaborerRepository, entryRepo dailyentry.DailyEntryRepository, viewCache cache.ViewCache) dashboard.DashboardService {
	return &dashboardServiceImpl{
		laborerRepo: laborerRepo,
		entryRepo:   entryRepo,
		viewCache:   viewCache,
		now:         time.Now,
	}
}

// GetDashboard loads laborers and the trailing week of entries in parallel,
// then aggregates them. Results are cached per day until a mutation invalidates them.
func (s *dashboardServiceImpl) GetDashboard(ctx context.Context) (dashboard.DashboardResponse, error) {
	now := s.now()
	today := now.Format(dateLayout)
	since := now.AddDate(0, 0, -dailyentry.WindowDays).Format(dateLayout)

	var cached dashboard.DashboardResponse
	hit, version, err := s.viewCache.Get(ctx, cache.PathDashboard, today, &cached)
	if err != nil {
		slog.WarnContext(ctx, "dashboard cache read failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	var (
		laborers []laborer.Laborer
		entries  []dailyentry.DailyEntry
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		laborers, err = s.laborerRepo.List(gCtx)
		if err != nil {
			database.LogError(gCtx, "error fetching laborers", err)
			return fmt.Errorf("failed to fetch laborers: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		entries, err = s.entryRepo.ListSince(gCtx, since)
		if err != nil {
			database.LogError(gCtx, "error fetching daily entries", err, "since", since)
			return fmt.Errorf("failed to fetch daily entries: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	resp := Aggregate(today, laborers, entries)
	if err := s.viewCache.Put(ctx, cache.PathDashboard, today, version, resp); err != nil {
		slog.WarnContext(ctx, "dashboard cache write failed", "error", err)
	}

	return resp, nil
}
