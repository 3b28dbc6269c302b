package analysis

import (
	"context"

	"github.com/sitelabor/laborbook-backend-go/internal/pkg/result"
)

type AnalysisService interface {
	// AnalyzeWorkDescriptions estimates materials used for the described work
	AnalyzeWorkDescriptions(ctx context.Context, req AnalyzeWorkRequest) result.Result[AnalyzeWorkResponse]

	// SummarizeDailyActivity summarizes one day of entries; an empty day never reaches the model
	SummarizeDailyActivity(ctx context.Context, req SummarizeDailyActivityRequest) result.Result[SummarizeDailyActivityResponse]

	// SummarizeDate loads the entries recorded for date and summarizes them
	SummarizeDate(ctx context.Context, date string) result.Result[SummarizeDailyActivityResponse]
}
