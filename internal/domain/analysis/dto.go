package analysis

import (
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/validator"
)

type AnalyzeWorkRequest struct {
	WorkDescriptions string `json:"workDescriptions"`
}

func (r *AnalyzeWorkRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.MinLength(r.WorkDescriptions, 10) {
		errs.Add("workDescriptions", "Work descriptions must be at least 10 characters")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AnalyzeWorkResponse struct {
	MaterialEstimates string `json:"materialEstimates"`
}

// DailyEntryForSummary is one attendance line handed to the summarizer.
type DailyEntryForSummary struct {
	LaborerName string `json:"laborerName"`
	IsPresent   bool   `json:"isPresent"`
	WorkDetails string `json:"workDetails,omitempty"`
	AdvancePaid int    `json:"advancePaid"`
}

type SummarizeDailyActivityRequest struct {
	Date    string                 `json:"date"`
	Entries []DailyEntryForSummary `json:"entries"`
}

func (r *SummarizeDailyActivityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs.Add("date", "Date is required")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SummarizeDailyActivityResponse struct {
	Summary string `json:"summary"`
}
