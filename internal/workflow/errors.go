package workflow

import "errors"

// Errors surfaced by the extraction and analysis pipelines.
var (
	ErrEmptyDocument        = errors.New("document contains no extractable text")
	ErrMalformedExtraction  = errors.New("extraction response is not valid JSON")
	ErrIncompleteExtraction = errors.New("extraction missing required field")
	ErrInvalidStep          = errors.New("invalid process step")
	ErrMissingProcess       = errors.New("process not found")
	ErrEmptyProcess         = errors.New("process has no steps")
	ErrGenerationFailed     = errors.New("analysis generation failed")
	ErrAnalysisTimeout      = errors.New("model call exceeded its deadline")
)
