package analyses

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/gapline/gapline/pkg/query"
	"github.com/gapline/gapline/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "gap_analyses", "a").
	Project("id", "ID").
	Project("as_is_process_id", "AsIsProcessID").
	Project("to_be_process_id", "ToBeProcessID").
	Project("summary", "Summary").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for analysis queries.
// Nil fields are ignored; both use exact matching.
type Filters struct {
	AsIsProcessID *uuid.UUID `json:"as_is_process_id,omitempty"`
	ToBeProcessID *uuid.UUID `json:"to_be_process_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("AsIsProcessID", f.AsIsProcessID).
		WhereEquals("ToBeProcessID", f.ToBeProcessID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("as_is_process_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.AsIsProcessID = &id
		}
	}

	if v := values.Get("to_be_process_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.ToBeProcessID = &id
		}
	}

	return f
}

func scanAnalysis(s repository.Scanner) (Analysis, error) {
	var a Analysis
	err := s.Scan(
		&a.ID,
		&a.AsIsProcessID,
		&a.ToBeProcessID,
		&a.Summary,
		&a.ModelName,
		&a.ProviderName,
		&a.CreatedAt,
	)
	return a, err
}

func scanFinding(s repository.Scanner) (Finding, error) {
	var f Finding
	err := s.Scan(
		&f.ID,
		&f.AnalysisID,
		&f.Position,
		&f.FindingType,
		&f.Description,
		&f.Recommendation,
		&f.Impact,
		&f.Effort,
	)
	return f, err
}
