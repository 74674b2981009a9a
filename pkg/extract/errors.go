package extract

import "errors"

// Errors surfaced by document text extraction.
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrExtraction        = errors.New("document extraction failed")
)
