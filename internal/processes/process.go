// Package processes implements the process domain for Gapline.
// It provides types, data access, and business logic for extracting
// approval workflows from documents and managing their stored snapshots.
package processes

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/gapline/gapline/internal/workflow"
)

// Variant distinguishes current-state processes from proposed redesigns.
type Variant string

// Valid process variants.
const (
	VariantAsIs Variant = "as_is"
	VariantToBe Variant = "to_be"
)

var variants = []Variant{VariantAsIs, VariantToBe}

// Variants returns the list of valid process variants.
func Variants() []Variant {
	return variants
}

// UnmarshalJSON validates that the decoded string is a known variant.
func (v *Variant) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseVariant(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVariant validates a string as a known process variant.
func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if !slices.Contains(variants, v) {
		return "", ErrInvalidVariant
	}
	return v, nil
}

// StandardType labels the methodology a to-be process follows.
type StandardType string

// Recognized process standards.
const (
	StandardAmerican StandardType = "american"
	StandardJapanese StandardType = "japanese"
	StandardISO      StandardType = "iso"
)

var standardTypes = []StandardType{StandardAmerican, StandardJapanese, StandardISO}

// ParseStandardType validates a string as a recognized standard.
func ParseStandardType(s string) (StandardType, error) {
	v := StandardType(s)
	if !slices.Contains(standardTypes, v) {
		return "", ErrInvalidStandard
	}
	return v, nil
}

// Process represents a stored approval workflow snapshot.
// Steps is populated on single-process reads, not on list queries.
type Process struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	System           string        `json:"system"`
	Variant          Variant       `json:"variant"`
	StandardType     *StandardType `json:"standard_type"`
	RelatedProcessID *uuid.UUID    `json:"related_process_id"`
	SourceFilename   *string       `json:"source_filename"`
	ModelName        *string       `json:"model_name"`
	ProviderName     *string       `json:"provider_name"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	Steps            []Step        `json:"steps,omitempty"`
}

// Step is a persisted approval step of a process.
type Step struct {
	ID           uuid.UUID `json:"id"`
	ProcessID    uuid.UUID `json:"process_id"`
	Number       int       `json:"number"`
	Description  string    `json:"description"`
	ApproverRole string    `json:"approver_role"`
	ApproverName string    `json:"approver_name"`
	IsAutomated  bool      `json:"is_automated"`
}

// Snapshot converts the stored process into the workflow input shape.
func (p *Process) Snapshot() workflow.ProcessInput {
	steps := make([]workflow.StepInput, len(p.Steps))
	for i, s := range p.Steps {
		steps[i] = workflow.StepInput{
			Number:       s.Number,
			Description:  s.Description,
			ApproverRole: s.ApproverRole,
			ApproverName: s.ApproverName,
			IsAutomated:  s.IsAutomated,
		}
	}

	return workflow.ProcessInput{
		Name:   p.Name,
		System: p.System,
		Steps:  steps,
	}
}

// ExtractCommand carries an uploaded document and its process metadata.
// Data holds the raw file bytes; the document itself is not retained after
// extraction.
type ExtractCommand struct {
	Data             []byte
	Filename         string
	Variant          Variant
	StandardType     *StandardType
	RelatedProcessID *uuid.UUID
}

// CreateCommand carries a manually authored process draft. The embedded
// draft passes through the same validation as extracted drafts.
type CreateCommand struct {
	workflow.ProcessDraft
	Variant          Variant       `json:"variant"`
	StandardType     *StandardType `json:"standard_type,omitempty"`
	RelatedProcessID *uuid.UUID    `json:"related_process_id,omitempty"`
}
