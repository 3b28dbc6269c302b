package response

import (
	"net/http"

	"github.com/sitelabor/laborbook-backend-go/internal/pkg/result"
)

// FromResult renders a service outcome. okStatus is used for successful results.
func FromResult[T any](w http.ResponseWriter, res result.Result[T], okStatus int) {
	switch res.Kind {
	case result.KindOk:
		JSON(w, okStatus, Response{
			Success: true,
			Message: res.Message,
			Data:    res.Data,
		})
	case result.KindValidationFailed:
		ValidationError(w, res.Message, resultErrors(res))
	default:
		switch res.Code {
		case result.CodeNotFound:
			NotFound(w, res.Message)
		case result.CodeUnavailable:
			ServiceUnavailable(w, res.Message, resultErrors(res))
		default:
			InternalServerError(w, res.Message, resultErrors(res))
		}
	}
}

func resultErrors[T any](res result.Result[T]) map[string]any {
	if len(res.FieldErrors) == 0 && res.FormError == "" {
		return nil
	}
	errs := make(map[string]any, len(res.FieldErrors)+1)
	for field, msgs := range res.FieldErrors {
		errs[field] = msgs
	}
	if res.FormError != "" {
		errs["form"] = res.FormError
	}
	return errs
}
