package analyses

import (
	"context"

	"github.com/google/uuid"

	"github.com/gapline/gapline/pkg/pagination"
)

// System defines the public contract for gap-analysis domain operations.
// Find returns the analysis with its findings; List returns bare rows.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Analysis], error)

	Find(ctx context.Context, id uuid.UUID) (*Analysis, error)
	Compare(ctx context.Context, cmd CompareCommand) (*Analysis, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
