package analyses_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gapline/gapline/internal/analyses"
	"github.com/gapline/gapline/internal/workflow"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"analysis not found", analyses.ErrNotFound, http.StatusNotFound},
		{"missing comparison input", workflow.ErrMissingProcess, http.StatusNotFound},
		{"duplicate", analyses.ErrDuplicate, http.StatusConflict},
		{"variant mismatch", analyses.ErrVariantMismatch, http.StatusBadRequest},
		{"empty process", workflow.ErrEmptyProcess, http.StatusUnprocessableEntity},
		{"timeout", workflow.ErrAnalysisTimeout, http.StatusGatewayTimeout},
		{"generation failed", workflow.ErrGenerationFailed, http.StatusBadGateway},
		{"wrapped empty process", fmt.Errorf("as-is %q: %w", "Invoice Approval", workflow.ErrEmptyProcess), http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyses.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}
