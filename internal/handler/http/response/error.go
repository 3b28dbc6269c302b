package response

import (
	"errors"
	"net/http"

	"github.com/sitelabor/laborbook-backend-go/internal/domain/dailyentry"
	"github.com/sitelabor/laborbook-backend-go/internal/domain/laborer"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/validator"
)

// HandleError maps query errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		errs := make(map[string]any)
		for field, msgs := range validationErrs.ToMap() {
			errs[field] = msgs
		}
		ValidationError(w, "Validation failed.", errs)
		return
	}

	switch {
	case errors.Is(err, laborer.ErrLaborerNotFound):
		NotFound(w, "Laborer not found")
	case errors.Is(err, dailyentry.ErrInvalidDate):
		BadRequest(w, "Date must be formatted as yyyy-MM-dd", map[string]any{
			"date": []string{dailyentry.ErrInvalidDate.Error()},
		})

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred", nil)
	}
}
