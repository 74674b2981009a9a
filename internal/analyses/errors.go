package analyses

import (
	"errors"
	"net/http"

	"github.com/gapline/gapline/internal/workflow"
)

// Domain errors for gap-analysis operations.
var (
	ErrNotFound        = errors.New("analysis not found")
	ErrDuplicate       = errors.New("analysis already exists")
	ErrVariantMismatch = errors.New("comparison requires an as_is and a to_be process")
)

// MapHTTPStatus maps analysis domain and pipeline errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, workflow.ErrMissingProcess):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrVariantMismatch):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrEmptyProcess):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrAnalysisTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, workflow.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
