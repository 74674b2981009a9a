// Package analyses implements the gap-analysis domain for Gapline.
// It provides types, data access, and business logic for comparing a
// current-state process against a proposed redesign and storing the
// synthesized findings.
package analyses

import (
	"time"

	"github.com/google/uuid"
)

// Analysis represents a stored gap analysis between two process snapshots.
// Findings is populated on single-analysis reads, not on list queries.
type Analysis struct {
	ID            uuid.UUID `json:"id"`
	AsIsProcessID uuid.UUID `json:"as_is_process_id"`
	ToBeProcessID uuid.UUID `json:"to_be_process_id"`
	Summary       string    `json:"summary"`
	ModelName     *string   `json:"model_name"`
	ProviderName  *string   `json:"provider_name"`
	CreatedAt     time.Time `json:"created_at"`
	Findings      []Finding `json:"findings,omitempty"`

	// Warnings lists findings dropped during validation. Populated only on
	// the compare response; warnings are not persisted.
	Warnings []string `json:"warnings,omitempty"`
}

// Finding is a single stored gap finding. FindingType is an open label
// set; Impact and Effort are Low, Medium, or High.
type Finding struct {
	ID             uuid.UUID `json:"id"`
	AnalysisID     uuid.UUID `json:"analysis_id"`
	Position       int       `json:"position"`
	FindingType    string    `json:"finding_type"`
	Description    string    `json:"description"`
	Recommendation string    `json:"recommendation"`
	Impact         string    `json:"impact"`
	Effort         string    `json:"effort"`
}

// CompareCommand names the two processes to analyze.
type CompareCommand struct {
	AsIsProcessID uuid.UUID `json:"as_is_process_id"`
	ToBeProcessID uuid.UUID `json:"to_be_process_id"`
}
