package dashboard

import "github.com/sitelabor/laborbook-backend-go/internal/domain/dailyentry"

// MaxDateGroups caps how many days the dashboard lists.
const MaxDateGroups = 7

// DisplayDateLayout renders group headings such as "January 15, 2024".
const DisplayDateLayout = "January 02, 2006"

type DashboardResponse struct {
	TotalLaborers     int         `json:"totalLaborers"`
	PresentToday      int         `json:"presentToday"`
	TotalAdvancePaid  int         `json:"totalAdvancePaid"`
	TotalDailyEntries int         `json:"totalDailyEntries"`
	EntriesByDate     []DateGroup `json:"entriesByDate"`
	Today             string      `json:"today"`
}

// DateGroup holds one day's entries sorted by laborer name.
type DateGroup struct {
	Date         string                          `json:"date"`
	DisplayDate  string                          `json:"displayDate"`
	PresentCount int                             `json:"presentCount"`
	Entries      []dailyentry.DailyEntryResponse `json:"entries"`
}
