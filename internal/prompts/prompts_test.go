package prompts_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gapline/gapline/internal/prompts"
)

func TestStages(t *testing.T) {
	got := prompts.Stages()
	want := []prompts.Stage{prompts.StageExtract, prompts.StageAnalyze}

	if len(got) != len(want) {
		t.Fatalf("Stages() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Stages()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseStage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    prompts.Stage
		wantErr bool
	}{
		{"extract", "extract", prompts.StageExtract, false},
		{"analyze", "analyze", prompts.StageAnalyze, false},
		{"unknown", "classify", "", true},
		{"empty", "", "", true},
		{"case sensitive", "Extract", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := prompts.ParseStage(tt.input)
			if tt.wantErr {
				if !errors.Is(err, prompts.ErrInvalidStage) {
					t.Errorf("ParseStage(%q) error = %v, want ErrInvalidStage", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStage(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStage(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStageUnmarshalJSON(t *testing.T) {
	t.Run("valid stage", func(t *testing.T) {
		var s prompts.Stage
		if err := json.Unmarshal([]byte(`"extract"`), &s); err != nil {
			t.Fatalf("unmarshal error: %v", err)
		}
		if s != prompts.StageExtract {
			t.Errorf("stage = %q, want extract", s)
		}
	})

	t.Run("invalid stage", func(t *testing.T) {
		var s prompts.Stage
		err := json.Unmarshal([]byte(`"summarize"`), &s)
		if !errors.Is(err, prompts.ErrInvalidStage) {
			t.Errorf("unmarshal error = %v, want ErrInvalidStage", err)
		}
	})
}

func TestInstructions(t *testing.T) {
	for _, stage := range prompts.Stages() {
		t.Run(string(stage), func(t *testing.T) {
			text, err := prompts.Instructions(stage)
			if err != nil {
				t.Fatalf("Instructions(%q) error: %v", stage, err)
			}
			if strings.TrimSpace(text) == "" {
				t.Errorf("Instructions(%q) is empty", stage)
			}
		})
	}

	t.Run("unknown stage", func(t *testing.T) {
		if _, err := prompts.Instructions(prompts.Stage("classify")); !errors.Is(err, prompts.ErrInvalidStage) {
			t.Errorf("error = %v, want ErrInvalidStage", err)
		}
	})
}

func TestSpec(t *testing.T) {
	t.Run("extract spec names required fields", func(t *testing.T) {
		text, err := prompts.Spec(prompts.StageExtract)
		if err != nil {
			t.Fatalf("Spec error: %v", err)
		}
		for _, field := range []string{"name", "system", "steps", "approver_role", "is_automated"} {
			if !strings.Contains(text, field) {
				t.Errorf("extract spec missing field %q", field)
			}
		}
	})

	t.Run("analyze spec names required fields", func(t *testing.T) {
		text, err := prompts.Spec(prompts.StageAnalyze)
		if err != nil {
			t.Fatalf("Spec error: %v", err)
		}
		for _, field := range []string{"summary", "findings", "finding_type", "impact", "effort"} {
			if !strings.Contains(text, field) {
				t.Errorf("analyze spec missing field %q", field)
			}
		}
	})

	t.Run("unknown stage", func(t *testing.T) {
		if _, err := prompts.Spec(prompts.Stage("classify")); !errors.Is(err, prompts.ErrInvalidStage) {
			t.Errorf("error = %v, want ErrInvalidStage", err)
		}
	})
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", prompts.ErrNotFound, http.StatusNotFound},
		{"duplicate", prompts.ErrDuplicate, http.StatusConflict},
		{"invalid stage", prompts.ErrInvalidStage, http.StatusBadRequest},
		{"wrapped not found", errors.Join(errors.New("find"), prompts.ErrNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prompts.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}
