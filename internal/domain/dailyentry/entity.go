package dailyentry

import "time"

// UnknownLaborerName is shown when an entry's laborer cannot be resolved.
const UnknownLaborerName = "Unknown Laborer"

// AbsentWorkDetails is stored as the work details of every absent laborer.
const AbsentWorkDetails = "Absent"

type DailyEntry struct {
	ID          string
	LaborerID   string
	Date        string // yyyy-MM-dd
	IsPresent   bool
	AdvancePaid int
	WorkDetails string
	CreatedAt   time.Time

	// LaborerName is filled by list queries joining the laborers table.
	LaborerName string
}

// ResolveLaborerName turns the optional joined name into a display name.
func ResolveLaborerName(name *string) string {
	if name == nil || *name == "" {
		return UnknownLaborerName
	}
	return *name
}
