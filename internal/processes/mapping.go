package processes

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/gapline/gapline/pkg/query"
	"github.com/gapline/gapline/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "processes", "p").
	Project("id", "ID").
	Project("name", "Name").
	Project("system", "System").
	Project("variant", "Variant").
	Project("standard_type", "StandardType").
	Project("related_process_id", "RelatedProcessID").
	Project("source_filename", "SourceFilename").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for process queries.
// Nil fields are ignored. Variant and StandardType use exact matching.
// Name and System use case-insensitive contains matching.
type Filters struct {
	Variant      *Variant      `json:"variant,omitempty"`
	StandardType *StandardType `json:"standard_type,omitempty"`
	Name         *string       `json:"name,omitempty"`
	System       *string       `json:"system,omitempty"`
	RelatedProcessID *uuid.UUID `json:"related_process_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Variant", f.Variant).
		WhereEquals("StandardType", f.StandardType).
		WhereContains("Name", f.Name).
		WhereContains("System", f.System).
		WhereEquals("RelatedProcessID", f.RelatedProcessID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("variant"); v != "" {
		if variant, err := ParseVariant(v); err == nil {
			f.Variant = &variant
		}
	}

	if st := values.Get("standard_type"); st != "" {
		if standard, err := ParseStandardType(st); err == nil {
			f.StandardType = &standard
		}
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if s := values.Get("system"); s != "" {
		f.System = &s
	}

	if rid := values.Get("related_process_id"); rid != "" {
		if id, err := uuid.Parse(rid); err == nil {
			f.RelatedProcessID = &id
		}
	}

	return f
}

func scanProcess(s repository.Scanner) (Process, error) {
	var p Process
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.System,
		&p.Variant,
		&p.StandardType,
		&p.RelatedProcessID,
		&p.SourceFilename,
		&p.ModelName,
		&p.ProviderName,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func scanStep(s repository.Scanner) (Step, error) {
	var st Step
	err := s.Scan(
		&st.ID,
		&st.ProcessID,
		&st.Number,
		&st.Description,
		&st.ApproverRole,
		&st.ApproverName,
		&st.IsAutomated,
	)
	return st, err
}
