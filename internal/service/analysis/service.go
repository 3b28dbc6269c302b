package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sitelabor/laborbook-backend-go/internal/domain/analysis"
	"github.com/sitelabor/laborbook-backend-go/internal/domain/dailyentry"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/database"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/llm"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/result"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/validator"
)

type analysisServiceImpl struct {
	generator llm.Generator
	entryRepo dailyentry.DailyEntryRepository
}

// NewAnalysisService wires the model client. A nil generator leaves the
// service running and reports every model-backed request as unavailable.
func NewAnalysisService(generator llm.Generator, entryRepo dailyentry.DailyEntryRepository) analysis.AnalysisService {
	return &analysisServiceImpl{
		generator: generator,
		entryRepo: entryRepo,
	}
}

// AnalyzeWorkDescriptions implements analysis.AnalysisService.
func (s *analysisServiceImpl) AnalyzeWorkDescriptions(ctx context.Context, req analysis.AnalyzeWorkRequest) result.Result[analysis.AnalyzeWorkResponse] {
	if err := req.Validate(); err != nil {
		return result.ValidationFailed[analysis.AnalyzeWorkResponse]("Validation failed.", result.FieldErrors(err))
	}

	estimates, err := s.analyzeWork(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "AI analysis error", "error", err)
		if errors.Is(err, analysis.ErrModelUnavailable) {
			return result.Unavailable[analysis.AnalyzeWorkResponse]("AI analysis failed: " + err.Error())
		}
		return result.Failed[analysis.AnalyzeWorkResponse]("AI analysis failed: "+err.Error(), err.Error())
	}

	return result.Ok("Analysis complete.", analysis.AnalyzeWorkResponse{MaterialEstimates: estimates})
}

func (s *analysisServiceImpl) analyzeWork(ctx context.Context, req analysis.AnalyzeWorkRequest) (string, error) {
	if s.generator == nil {
		return "", analysis.ErrModelUnavailable
	}

	prompt, err := renderWorkAnalysisPrompt(req)
	if err != nil {
		return "", fmt.Errorf("render work analysis prompt: %w", err)
	}

	var out analysis.AnalyzeWorkResponse
	if err := s.generator.GenerateJSON(ctx, prompt, workAnalysisSchema, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.MaterialEstimates) == "" {
		return "", analysis.ErrNoEstimates
	}

	return out.MaterialEstimates, nil
}

// SummarizeDailyActivity implements analysis.AnalysisService.
func (s *analysisServiceImpl) SummarizeDailyActivity(ctx context.Context, req analysis.SummarizeDailyActivityRequest) result.Result[analysis.SummarizeDailyActivityResponse] {
	if err := req.Validate(); err != nil {
		return result.ValidationFailed[analysis.SummarizeDailyActivityResponse]("Validation failed.", result.FieldErrors(err))
	}

	summary, err := s.summarize(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "AI summary generation error", "date", req.Date, "error", err)
		switch {
		case errors.Is(err, analysis.ErrModelUnavailable):
			return result.Unavailable[analysis.SummarizeDailyActivityResponse](err.Error())
		case errors.Is(err, analysis.ErrNoSummary), errors.Is(err, llm.ErrEmptyOutput):
			return result.Failed[analysis.SummarizeDailyActivityResponse]("AI model did not return a summary.", "AI model did not return a summary.")
		default:
			return result.Failed[analysis.SummarizeDailyActivityResponse](err.Error(), err.Error())
		}
	}

	return result.Ok("Summary generated.", analysis.SummarizeDailyActivityResponse{Summary: summary})
}

func (s *analysisServiceImpl) summarize(ctx context.Context, req analysis.SummarizeDailyActivityRequest) (string, error) {
	if len(req.Entries) == 0 {
		return fmt.Sprintf("No labor activity recorded for %s.", req.Date), nil
	}
	if s.generator == nil {
		return "", analysis.ErrModelUnavailable
	}

	prompt, err := renderDailySummaryPrompt(req)
	if err != nil {
		return "", fmt.Errorf("render daily summary prompt: %w", err)
	}

	var out analysis.SummarizeDailyActivityResponse
	if err := s.generator.GenerateJSON(ctx, prompt, dailySummarySchema, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Summary) == "" {
		return "", analysis.ErrNoSummary
	}

	return out.Summary, nil
}

// SummarizeDate implements analysis.AnalysisService.
func (s *analysisServiceImpl) SummarizeDate(ctx context.Context, date string) result.Result[analysis.SummarizeDailyActivityResponse] {
	if _, ok := validator.IsValidDate(date); !ok {
		return result.ValidationFailed[analysis.SummarizeDailyActivityResponse]("Validation failed.", map[string][]string{
			"date": {"Date must be formatted as yyyy-MM-dd"},
		})
	}

	entries, err := s.entryRepo.ListByDate(ctx, date)
	if err != nil {
		database.LogError(ctx, "error fetching daily entries for summary", err, "date", date)
		msg := database.ErrorMessage(err)
		return result.Failed[analysis.SummarizeDailyActivityResponse]("Failed to fetch daily entries: "+msg, msg)
	}

	return s.SummarizeDailyActivity(ctx, analysis.SummarizeDailyActivityRequest{
		Date:    date,
		Entries: ToSummaryEntries(entries),
	})
}

// ToSummaryEntries maps stored entries to summarizer input.
func ToSummaryEntries(entries []dailyentry.DailyEntry) []analysis.DailyEntryForSummary {
	out := make([]analysis.DailyEntryForSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, analysis.DailyEntryForSummary{
			LaborerName: e.LaborerName,
			IsPresent:   e.IsPresent,
			WorkDetails: e.WorkDetails,
			AdvancePaid: e.AdvancePaid,
		})
	}
	return out
}
