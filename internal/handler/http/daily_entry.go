package http

import (
	"net/http"

	"github.com/sitelabor/laborbook-backend-go/internal/domain/dailyentry"
	"github.com/sitelabor/laborbook-backend-go/internal/handler/http/response"
)

type DailyEntryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
}

type dailyEntryHandlerImpl struct {
	dailyEntryService dailyentry.DailyEntryService
}

func NewDailyEntryHandler(dailyEntryService dailyentry.DailyEntryService) DailyEntryHandler {
	return &dailyEntryHandlerImpl{
		dailyEntryService: dailyEntryService,
	}
}

// List returns the trailing week of entries, or one day's entries with ?date=yyyy-MM-dd
func (h *dailyEntryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var (
		entries []dailyentry.DailyEntryResponse
		err     error
	)

	if date := r.URL.Query().Get("date"); date != "" {
		entries, err = h.dailyEntryService.GetDailyEntriesByDate(r.Context(), date)
	} else {
		entries, err = h.dailyEntryService.GetDailyEntries(r.Context())
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

func (h *dailyEntryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req := dailyentry.NewAddDailyEntriesRequest(form)

	response.FromResult(w, h.dailyEntryService.AddDailyEntries(r.Context(), req), http.StatusCreated)
}
