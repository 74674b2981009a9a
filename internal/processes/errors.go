package processes

import (
	"errors"
	"net/http"

	"github.com/gapline/gapline/internal/workflow"
	"github.com/gapline/gapline/pkg/extract"
)

// Domain errors for process operations.
var (
	ErrNotFound        = errors.New("process not found")
	ErrDuplicate       = errors.New("process already exists")
	ErrInvalidVariant  = errors.New("variant must be as_is or to_be")
	ErrInvalidStandard = errors.New("standard_type must be american, japanese, or iso")
	ErrInvalidRelation = errors.New("related process must be an existing as-is process")
	ErrInvalidFile     = errors.New("invalid upload request")
	ErrFileTooLarge    = errors.New("uploaded file exceeds the size limit")
)

// MapHTTPStatus maps process domain and pipeline errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidVariant),
		errors.Is(err, ErrInvalidStandard),
		errors.Is(err, ErrInvalidRelation),
		errors.Is(err, ErrInvalidFile):
		return http.StatusBadRequest
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, extract.ErrExtraction),
		errors.Is(err, workflow.ErrEmptyDocument),
		errors.Is(err, workflow.ErrMalformedExtraction),
		errors.Is(err, workflow.ErrIncompleteExtraction),
		errors.Is(err, workflow.ErrInvalidStep),
		errors.Is(err, workflow.ErrEmptyProcess):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrAnalysisTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
