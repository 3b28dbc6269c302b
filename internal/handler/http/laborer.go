package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sitelabor/laborbook-backend-go/internal/domain/laborer"
	"github.com/sitelabor/laborbook-backend-go/internal/handler/http/response"
)

type LaborerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	DeleteFromForm(w http.ResponseWriter, r *http.Request)

	// ListExample serves raw laborer rows for the read-only example page
	ListExample(w http.ResponseWriter, r *http.Request)
}

type laborerHandlerImpl struct {
	laborerService laborer.LaborerService
}

func NewLaborerHandler(laborerService laborer.LaborerService) LaborerHandler {
	return &laborerHandlerImpl{
		laborerService: laborerService,
	}
}

func (h *laborerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	laborers, err := h.laborerService.GetLaborers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, laborers)
}

func (h *laborerHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	l, err := h.laborerService.GetLaborerByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if l == nil {
		response.NotFound(w, "Laborer not found")
		return
	}

	response.Success(w, l)
}

func (h *laborerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req := laborer.AddLaborerRequest{
		Name:            form["name"],
		MobileNo:        form["mobileNo"],
		AadhaarNo:       form["aadhaarNo"],
		PANNo:           form["panNo"],
		ProfilePhotoURL: form["profilePhotoUrl"],
	}

	response.FromResult(w, h.laborerService.AddLaborer(r.Context(), req), http.StatusCreated)
}

func (h *laborerHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	req := laborer.DeleteLaborerRequest{LaborerID: chi.URLParam(r, "id")}

	response.FromResult(w, h.laborerService.DeleteLaborer(r.Context(), req), http.StatusOK)
}

func (h *laborerHandlerImpl) DeleteFromForm(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req := laborer.DeleteLaborerRequest{LaborerID: form["laborerId"]}

	response.FromResult(w, h.laborerService.DeleteLaborer(r.Context(), req), http.StatusOK)
}

// laborerRow mirrors the laborers table columns.
type laborerRow struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	MobileNo        string  `json:"mobileno"`
	AadhaarNo       string  `json:"aadhaarno"`
	PANNo           string  `json:"panno"`
	ProfilePhotoURL *string `json:"profilephotourl"`
}

func (h *laborerHandlerImpl) ListExample(w http.ResponseWriter, r *http.Request) {
	laborers, err := h.laborerService.GetLaborers(r.Context())
	if err != nil {
		response.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	rows := make([]laborerRow, 0, len(laborers))
	for _, l := range laborers {
		rows = append(rows, laborerRow(l))
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{"rows": rows},
	})
}
