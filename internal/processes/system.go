package processes

import (
	"context"

	"github.com/google/uuid"

	"github.com/gapline/gapline/pkg/pagination"
)

// System defines the public contract for process domain operations.
// Find returns the process with its steps; List returns bare rows.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Process], error)

	Find(ctx context.Context, id uuid.UUID) (*Process, error)
	Extract(ctx context.Context, cmd ExtractCommand) (*Process, error)
	Create(ctx context.Context, cmd CreateCommand) (*Process, error)
	Versions(ctx context.Context, id uuid.UUID) ([]Process, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
