package dashboard

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/sitelabor/laborbook-backend-go/internal/domain/dailyentry"
	"github.com/sitelabor/laborbook-backend-go/internal/domain/dashboard"
	"github.com/sitelabor/laborbook-backend-go/internal/domain/laborer"
)

// Aggregate computes the dashboard from the laborer list and the trailing
// window of entries. today is yyyy-MM-dd.
func Aggregate(today string, laborers []laborer.Laborer, entries []dailyentry.DailyEntry) dashboard.DashboardResponse {
	resp := dashboard.DashboardResponse{
		TotalLaborers:     len(laborers),
		TotalDailyEntries: len(entries),
		EntriesByDate:     []dashboard.DateGroup{},
		Today:             today,
	}

	names := make(map[string]string, len(laborers))
	for _, l := range laborers {
		names[l.ID] = l.Name
	}

	byDate := make(map[string]*dashboard.DateGroup)
	for _, e := range entries {
		if e.Date == today && e.IsPresent {
			resp.PresentToday++
		}
		resp.TotalAdvancePaid += e.AdvancePaid

		name, ok := names[e.LaborerID]
		if !ok || name == "" {
			name = dailyentry.UnknownLaborerName
		}
		row := dailyentry.ToResponse(e)
		row.LaborerName = name

		group, ok := byDate[e.Date]
		if !ok {
			group = &dashboard.DateGroup{Date: e.Date, DisplayDate: displayDate(e.Date)}
			byDate[e.Date] = group
		}
		if e.IsPresent {
			group.PresentCount++
		}
		group.Entries = append(group.Entries, row)
	}

	for _, group := range byDate {
		slices.SortStableFunc(group.Entries, func(a, b dailyentry.DailyEntryResponse) int {
			return cmp.Or(
				strings.Compare(strings.ToLower(a.LaborerName), strings.ToLower(b.LaborerName)),
				strings.Compare(a.LaborerName, b.LaborerName),
			)
		})
		resp.EntriesByDate = append(resp.EntriesByDate, *group)
	}

	slices.SortFunc(resp.EntriesByDate, func(a, b dashboard.DateGroup) int {
		return strings.Compare(b.Date, a.Date)
	})
	if len(resp.EntriesByDate) > dashboard.MaxDateGroups {
		resp.EntriesByDate = resp.EntriesByDate[:dashboard.MaxDateGroups]
	}

	return resp
}

func displayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format(dashboard.DisplayDateLayout)
}
