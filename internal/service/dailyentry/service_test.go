package dailyentry

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sitelabor/laborbook-backend-go/internal/domain/dailyentry"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/cache"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntryRepo struct {
	bulkCreate func(ctx context.Context, entries []dailyentry.DailyEntry) error
	listSince  func(ctx context.Context, since string) ([]dailyentry.DailyEntry, error)
	listByDate func(ctx context.Context, date string) ([]dailyentry.DailyEntry, error)

	inserted  [][]dailyentry.DailyEntry
	sinceArgs []string
}

func (f *fakeEntryRepo) BulkCreate(ctx context.Context, entries []dailyentry.DailyEntry) error {
	f.inserted = append(f.inserted, entries)
	if f.bulkCreate != nil {
		return f.bulkCreate(ctx, entries)
	}
	return nil
}

func (f *fakeEntryRepo) ListSince(ctx context.Context, since string) ([]dailyentry.DailyEntry, error) {
	f.sinceArgs = append(f.sinceArgs, since)
	if f.listSince != nil {
		return f.listSince(ctx, since)
	}
	return nil, nil
}

func (f *fakeEntryRepo) ListByDate(ctx context.Context, date string) ([]dailyentry.DailyEntry, error) {
	if f.listByDate != nil {
		return f.listByDate(ctx, date)
	}
	return nil, nil
}

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type memoryCache struct {
	values      map[string]any
	versions    map[string]int64
	invalidated [][]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]any{}, versions: map[string]int64{}}
}

func (c *memoryCache) Get(ctx context.Context, path, variant string, dst any) (bool, int64, error) {
	v, ok := c.values[path+"|"+variant]
	if !ok {
		return false, c.versions[path], nil
	}
	*(dst.(*[]dailyentry.DailyEntryResponse)) = v.([]dailyentry.DailyEntryResponse)
	return true, c.versions[path], nil
}

func (c *memoryCache) Put(ctx context.Context, path, variant string, version int64, value any) error {
	if c.versions[path] != version {
		return nil
	}
	c.values[path+"|"+variant] = value
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context, paths ...string) error {
	c.invalidated = append(c.invalidated, paths)
	for _, p := range paths {
		c.versions[p]++
		for key := range c.values {
			if strings.HasPrefix(key, p+"|") {
				delete(c.values, key)
			}
		}
	}
	return nil
}

var fixedNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.Local)

func newTestService(repo *fakeEntryRepo) (*dailyEntryServiceImpl, *fakeTransactor, *memoryCache) {
	tx := &fakeTransactor{}
	viewCache := newMemoryCache()
	svc := NewDailyEntryService(repo, tx, viewCache).(*dailyEntryServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	n := 0
	svc.newID = func() string {
		n++
		return "entry-" + string(rune('0'+n))
	}
	return svc, tx, viewCache
}

func TestAddDailyEntries_PresentLaborerWithAdvance(t *testing.T) {
	repo := &fakeEntryRepo{}
	svc, tx, viewCache := newTestService(repo)

	res := svc.AddDailyEntries(context.Background(), dailyentry.NewAddDailyEntriesRequest(map[string]string{
		"date":           "2024-01-15",
		"workDetails":    "Poured foundation",
		"laborerCount":   "1",
		"laborerId_0":    "l1",
		"isPresent_l1":   "present",
		"advancePaid_l1": "500",
	}))

	require.True(t, res.Success(), res.Message)
	assert.Equal(t, "Daily entries recorded successfully!", res.Message)
	assert.Equal(t, 1, res.Data.Count)
	assert.Equal(t, 1, tx.calls)
	require.Len(t, repo.inserted, 1)
	require.Len(t, repo.inserted[0], 1)
	row := repo.inserted[0][0]
	assert.Equal(t, "entry-1", row.ID)
	assert.Equal(t, "l1", row.LaborerID)
	assert.Equal(t, "2024-01-15", row.Date)
	assert.True(t, row.IsPresent)
	assert.Equal(t, 500, row.AdvancePaid)
	assert.Equal(t, "Poured foundation", row.WorkDetails)
	assert.Equal(t, [][]string{{cache.PathDashboard, cache.PathDailyEntry}}, viewCache.invalidated)
}

func TestAddDailyEntries_AllAbsentWithoutWorkDetails(t *testing.T) {
	repo := &fakeEntryRepo{}
	svc, _, _ := newTestService(repo)

	res := svc.AddDailyEntries(context.Background(), dailyentry.NewAddDailyEntriesRequest(map[string]string{
		"date":         "2024-01-15",
		"laborerCount": "2",
		"laborerId_0":  "l1",
		"isPresent_l1": "absent",
		"laborerId_1":  "l2",
	}))

	require.True(t, res.Success(), res.Message)
	require.Len(t, repo.inserted, 1)
	require.Len(t, repo.inserted[0], 2)
	for _, row := range repo.inserted[0] {
		assert.False(t, row.IsPresent)
		assert.Equal(t, "Absent", row.WorkDetails)
	}
}

func TestAddDailyEntries_NegativeAdvanceClamped(t *testing.T) {
	repo := &fakeEntryRepo{}
	svc, _, _ := newTestService(repo)

	res := svc.AddDailyEntries(context.Background(), dailyentry.NewAddDailyEntriesRequest(map[string]string{
		"date":           "2024-01-15",
		"workDetails":    "Brick work",
		"laborerCount":   "1",
		"laborerId_0":    "l1",
		"isPresent_l1":   "present",
		"advancePaid_l1": "-5",
	}))

	require.True(t, res.Success())
	assert.Equal(t, 0, repo.inserted[0][0].AdvancePaid)
}

func TestAddDailyEntries_PresentWithoutWorkDetailsRejected(t *testing.T) {
	repo := &fakeEntryRepo{}
	svc, tx, viewCache := newTestService(repo)

	res := svc.AddDailyEntries(context.Background(), dailyentry.NewAddDailyEntriesRequest(map[string]string{
		"date":         "2024-01-15",
		"workDetails":  "",
		"laborerCount": "1",
		"laborerId_0":  "l1",
		"isPresent_l1": "present",
	}))

	assert.Equal(t, result.KindValidationFailed, res.Kind)
	assert.Equal(t, "Work details are required if any laborer is marked present.", res.Message)
	assert.Equal(t, []string{"Work details are required if laborers are present."}, res.FieldErrors["workDetails"])
	assert.Empty(t, repo.inserted)
	assert.Zero(t, tx.calls)
	assert.Empty(t, viewCache.invalidated)
}

func TestAddDailyEntries_DateRequired(t *testing.T) {
	repo := &fakeEntryRepo{}
	svc, _, _ := newTestService(repo)

	res := svc.AddDailyEntries(context.Background(), dailyentry.NewAddDailyEntriesRequest(map[string]string{
		"laborerCount": "0",
	}))

	assert.Equal(t, result.KindValidationFailed, res.Kind)
	assert.Equal(t, "Date is required.", res.Message)
	assert.Equal(t, []string{"Date is required."}, res.FieldErrors["date"])
	assert.Empty(t, repo.inserted)
}

func TestAddDailyEntries_InvalidLaborerCount(t *testing.T) {
	repo := &fakeEntryRepo{}
	svc, _, _ := newTestService(repo)

	res := svc.AddDailyEntries(context.Background(), dailyentry.NewAddDailyEntriesRequest(map[string]string{
		"date":         "2024-01-15",
		"laborerCount": "many",
	}))

	assert.Equal(t, result.KindValidationFailed, res.Kind)
	assert.Equal(t, "Invalid laborer count.", res.Message)
	assert.Equal(t, []string{"Invalid laborer data."}, res.FieldErrors["form"])
	assert.NotContains(t, res.FieldErrors, "laborerCount")
}

func TestAddDailyEntries_NoLaborersSkipsInsert(t *testing.T) {
	repo := &fakeEntryRepo{}
	svc, tx, viewCache := newTestService(repo)

	res := svc.AddDailyEntries(context.Background(), dailyentry.NewAddDailyEntriesRequest(map[string]string{
		"date":         "2024-01-15",
		"laborerCount": "0",
	}))

	require.True(t, res.Success())
	assert.Zero(t, tx.calls)
	assert.Empty(t, repo.inserted)
	assert.Len(t, viewCache.invalidated, 1)
}

func TestAddDailyEntries_StorageFailure(t *testing.T) {
	repo := &fakeEntryRepo{bulkCreate: func(ctx context.Context, entries []dailyentry.DailyEntry) error {
		return errors.New("insert or update on table violates foreign key constraint")
	}}
	svc, _, viewCache := newTestService(repo)

	res := svc.AddDailyEntries(context.Background(), dailyentry.NewAddDailyEntriesRequest(map[string]string{
		"date":         "2024-01-15",
		"laborerCount": "1",
		"laborerId_0":  "ghost",
	}))

	assert.Equal(t, result.KindFailed, res.Kind)
	assert.Equal(t, "Failed to record daily entries: insert or update on table violates foreign key constraint", res.Message)
	assert.Equal(t, "insert or update on table violates foreign key constraint", res.FormError)
	assert.Empty(t, viewCache.invalidated)
}

func TestGetDailyEntries_TrailingSevenDaysAndCached(t *testing.T) {
	repo := &fakeEntryRepo{listSince: func(ctx context.Context, since string) ([]dailyentry.DailyEntry, error) {
		return []dailyentry.DailyEntry{
			{ID: "e1", LaborerID: "l1", LaborerName: "Ravi", Date: "2024-01-15", IsPresent: true, AdvancePaid: 100, WorkDetails: "Tiling"},
			{ID: "e2", LaborerID: "l2", LaborerName: dailyentry.UnknownLaborerName, Date: "2024-01-08", WorkDetails: "Absent"},
		}, nil
	}}
	svc, _, _ := newTestService(repo)

	got, err := svc.GetDailyEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"2024-01-08"}, repo.sinceArgs)
	for _, e := range got {
		assert.GreaterOrEqual(t, e.Date, "2024-01-08")
	}
	assert.Equal(t, "Unknown Laborer", got[1].LaborerName)

	again, err := svc.GetDailyEntries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Len(t, repo.sinceArgs, 1)
}

func TestGetDailyEntries_MutationDuringReadIsNotCached(t *testing.T) {
	repo := &fakeEntryRepo{}
	svc, _, viewCache := newTestService(repo)
	repo.listSince = func(ctx context.Context, since string) ([]dailyentry.DailyEntry, error) {
		if len(repo.sinceArgs) == 1 {
			// an entry is recorded after this read started
			require.NoError(t, viewCache.Invalidate(ctx, cache.PathDashboard, cache.PathDailyEntry))
		}
		return []dailyentry.DailyEntry{{ID: "e1", Date: "2024-01-15"}}, nil
	}

	_, err := svc.GetDailyEntries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, viewCache.values)

	_, err = svc.GetDailyEntries(context.Background())
	require.NoError(t, err)
	assert.Len(t, repo.sinceArgs, 2)
	assert.Len(t, viewCache.values, 1)
}

func TestGetDailyEntries_Error(t *testing.T) {
	repo := &fakeEntryRepo{listSince: func(ctx context.Context, since string) ([]dailyentry.DailyEntry, error) {
		return nil, errors.New("relation does not exist")
	}}
	svc, _, _ := newTestService(repo)

	_, err := svc.GetDailyEntries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch daily entries")
}

func TestGetDailyEntriesByDate(t *testing.T) {
	repo := &fakeEntryRepo{listByDate: func(ctx context.Context, date string) ([]dailyentry.DailyEntry, error) {
		return []dailyentry.DailyEntry{{ID: "e1", Date: date, LaborerName: "Ravi"}}, nil
	}}
	svc, _, _ := newTestService(repo)

	got, err := svc.GetDailyEntriesByDate(context.Background(), "2024-01-15")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-01-15", got[0].Date)

	_, err = svc.GetDailyEntriesByDate(context.Background(), "15/01/2024")
	assert.ErrorIs(t, err, dailyentry.ErrInvalidDate)
}
