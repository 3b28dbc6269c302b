package dailyentry

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/sitelabor/laborbook-backend-go/internal/pkg/validator"
)

const (
	PresenceFieldPrefix = "isPresent_"
	AdvanceFieldPrefix  = "advancePaid_"
	LaborerFieldPrefix  = "laborerId_"

	PresenceValuePresent = "present"
)

// AddDailyEntriesRequest is the flat form submitted from the daily entry page.
// Per-laborer values live in Fields under laborerId_<i>, isPresent_<laborerId>
// and advancePaid_<laborerId>.
type AddDailyEntriesRequest struct {
	Date         string
	WorkDetails  string
	LaborerCount string
	Fields       map[string]string
}

// NewAddDailyEntriesRequest builds a request from a flat key/value form.
func NewAddDailyEntriesRequest(form map[string]string) AddDailyEntriesRequest {
	return AddDailyEntriesRequest{
		Date:         form["date"],
		WorkDetails:  form["workDetails"],
		LaborerCount: form["laborerCount"],
		Fields:       form,
	}
}

// LaborerSlot is one resolved laborer row of a submission batch.
type LaborerSlot struct {
	LaborerID   string
	IsPresent   bool
	AdvancePaid int
}

// ParseLaborerCount reads the leading whole number of laborerCount, which must not be negative.
func (r *AddDailyEntriesRequest) ParseLaborerCount() (int, error) {
	n, ok := parseLeadingInt(r.LaborerCount)
	if !ok {
		return 0, fmt.Errorf("parse laborer count %q: %w", r.LaborerCount, ErrInvalidLaborerCount)
	}
	if n < 0 {
		return 0, fmt.Errorf("laborer count %d is negative: %w", n, ErrInvalidLaborerCount)
	}
	return n, nil
}

// Slots resolves the laborer slots whose index is below count, in index order.
// Only submitted laborerId_<i> fields are visited, so count does not bound the work.
func (r *AddDailyEntriesRequest) Slots(count int) []LaborerSlot {
	indexes := make([]int, 0)
	for key, value := range r.Fields {
		suffix, ok := strings.CutPrefix(key, LaborerFieldPrefix)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		i, err := strconv.Atoi(suffix)
		if err != nil || i < 0 || i >= count || strconv.Itoa(i) != suffix {
			continue
		}
		indexes = append(indexes, i)
	}
	slices.Sort(indexes)

	slots := make([]LaborerSlot, 0, len(indexes))
	for _, i := range indexes {
		id := strings.TrimSpace(r.Fields[LaborerFieldPrefix+strconv.Itoa(i)])
		slots = append(slots, LaborerSlot{
			LaborerID:   id,
			IsPresent:   r.Fields[PresenceFieldPrefix+id] == PresenceValuePresent,
			AdvancePaid: ParseAdvance(r.Fields[AdvanceFieldPrefix+id]),
		})
	}
	return slots
}

var leadingIntRegex = regexp.MustCompile(`^[+-]?\d+`)

// parseLeadingInt reads the whole number at the start of raw, so "12.5" is 12
// and "300rs" is 300.
func parseLeadingInt(raw string) (int, bool) {
	digits := leadingIntRegex.FindString(strings.TrimSpace(raw))
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseAdvance coerces a submitted advance to a non-negative whole amount.
// Anything unparsable or negative becomes 0.
func ParseAdvance(raw string) int {
	n, ok := parseLeadingInt(raw)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// ValidateWorkDetails requires work details when anyone in the batch is present.
func ValidateWorkDetails(workDetails string, slots []LaborerSlot) error {
	var errs validator.ValidationErrors

	anyPresent := false
	for _, s := range slots {
		if s.IsPresent {
			anyPresent = true
			break
		}
	}
	if anyPresent && validator.IsEmpty(workDetails) {
		errs.Add("workDetails", "Work details are required if laborers are present.")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BuildEntries turns resolved slots into rows sharing date and work details.
func BuildEntries(date, workDetails string, slots []LaborerSlot) []DailyEntry {
	entries := make([]DailyEntry, 0, len(slots))
	for _, s := range slots {
		details := workDetails
		if !s.IsPresent {
			details = AbsentWorkDetails
		}
		entries = append(entries, DailyEntry{
			LaborerID:   s.LaborerID,
			Date:        date,
			IsPresent:   s.IsPresent,
			AdvancePaid: s.AdvancePaid,
			WorkDetails: details,
		})
	}
	return entries
}

type AddDailyEntriesResponse struct {
	Count int `json:"count"`
}

type DailyEntryResponse struct {
	ID          string `json:"id"`
	LaborerID   string `json:"laborerId"`
	LaborerName string `json:"laborerName"`
	Date        string `json:"date"`
	IsPresent   bool   `json:"isPresent"`
	AdvancePaid int    `json:"advancePaid"`
	WorkDetails string `json:"workDetails"`
}

func ToResponse(e DailyEntry) DailyEntryResponse {
	return DailyEntryResponse{
		ID:          e.ID,
		LaborerID:   e.LaborerID,
		LaborerName: e.LaborerName,
		Date:        e.Date,
		IsPresent:   e.IsPresent,
		AdvancePaid: e.AdvancePaid,
		WorkDetails: e.WorkDetails,
	}
}

func ToResponses(entries []DailyEntry) []DailyEntryResponse {
	out := make([]DailyEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToResponse(e))
	}
	return out
}
