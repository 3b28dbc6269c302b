package http

import (
	"encoding/json"
	"net/http"

	"github.com/sitelabor/laborbook-backend-go/internal/domain/analysis"
	"github.com/sitelabor/laborbook-backend-go/internal/handler/http/response"
)

type AnalysisHandler interface {
	AnalyzeWork(w http.ResponseWriter, r *http.Request)
	SummarizeDailyActivity(w http.ResponseWriter, r *http.Request)
	SummarizeDate(w http.ResponseWriter, r *http.Request)
}

type analysisHandlerImpl struct {
	analysisService analysis.AnalysisService
}

func NewAnalysisHandler(analysisService analysis.AnalysisService) AnalysisHandler {
	return &analysisHandlerImpl{
		analysisService: analysisService,
	}
}

func (h *analysisHandlerImpl) AnalyzeWork(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req := analysis.AnalyzeWorkRequest{WorkDescriptions: form["workDescriptions"]}

	response.FromResult(w, h.analysisService.AnalyzeWorkDescriptions(r.Context(), req), http.StatusOK)
}

func (h *analysisHandlerImpl) SummarizeDailyActivity(w http.ResponseWriter, r *http.Request) {
	var req analysis.SummarizeDailyActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	response.FromResult(w, h.analysisService.SummarizeDailyActivity(r.Context(), req), http.StatusOK)
}

// SummarizeDate summarizes the entries stored for ?date=yyyy-MM-dd
func (h *analysisHandlerImpl) SummarizeDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	response.FromResult(w, h.analysisService.SummarizeDate(r.Context(), date), http.StatusOK)
}
