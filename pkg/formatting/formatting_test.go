package formatting_test

import (
	"errors"
	"testing"

	"github.com/gapline/gapline/pkg/formatting"
)

type draft struct {
	Name  string `json:"name"`
	Steps []struct {
		Number      int    `json:"number"`
		Description string `json:"description"`
	} `json:"steps"`
}

func TestParseDirect(t *testing.T) {
	got, err := formatting.Parse[draft](`{"name": "Invoice Approval", "steps": []}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got.Name != "Invoice Approval" {
		t.Errorf("Name = %q, want %q", got.Name, "Invoice Approval")
	}
}

func TestParseCodeFence(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "json fence",
			content: "```json\n{\"name\": \"Invoice Approval\"}\n```",
		},
		{
			name:    "bare fence",
			content: "```\n{\"name\": \"Invoice Approval\"}\n```",
		},
		{
			name:    "fence with surrounding prose",
			content: "Here is the result:\n```json\n{\"name\": \"Invoice Approval\"}\n```\nLet me know if you need more.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.Parse[draft](tt.content)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if got.Name != "Invoice Approval" {
				t.Errorf("Name = %q, want %q", got.Name, "Invoice Approval")
			}
		})
	}
}

func TestParseProseWrapped(t *testing.T) {
	content := `The extracted process is {"name": "Invoice Approval", "steps": []} as requested.`

	got, err := formatting.Parse[draft](content)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got.Name != "Invoice Approval" {
		t.Errorf("Name = %q, want %q", got.Name, "Invoice Approval")
	}
}

func TestParseTrailingComma(t *testing.T) {
	content := `{"name": "Invoice Approval", "steps": [{"number": 1, "description": "Submit",},],}`

	got, err := formatting.Parse[draft](content)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(got.Steps) != 1 || got.Steps[0].Number != 1 {
		t.Errorf("Steps = %v, want one step numbered 1", got.Steps)
	}
}

func TestParseFailed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"plain prose", "I could not find a process in this document."},
		{"truncated json", `{"name": "Invoice Approval", "steps": [`},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formatting.Parse[draft](tt.content)
			if !errors.Is(err, formatting.ErrParseFailed) {
				t.Errorf("Parse error = %v, want ErrParseFailed", err)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name      string
		n         int64
		precision int
		want      string
	}{
		{"zero", 0, 2, "0 B"},
		{"bytes", 512, 0, "512 B"},
		{"kilobytes", 2048, 0, "2 KB"},
		{"megabytes with precision", 1572864, 1, "1.5 MB"},
		{"gigabytes", 1073741824, 0, "1 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
				t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
			}
		})
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"bare number", "1024", 1024},
		{"megabytes", "16MB", 16 * 1024 * 1024},
		{"lowercase unit", "4kb", 4 * 1024},
		{"with space", "2 GB", 2 * 1024 * 1024 * 1024},
		{"fractional", "1.5KB", 1536},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if err != nil {
				t.Fatalf("ParseBytes(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseBytesInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unknown unit", "16XB"},
		{"not a number", "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := formatting.ParseBytes(tt.input); err == nil {
				t.Errorf("ParseBytes(%q) expected error", tt.input)
			}
		})
	}
}
