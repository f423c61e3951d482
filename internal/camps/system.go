package camps

import (
	"context"

	"github.com/google/uuid"

	"github.com/campward/campward/pkg/pagination"
)

// System defines the public contract for camp domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Camp], error)

	Find(ctx context.Context, id uuid.UUID) (*Camp, error)
	Create(ctx context.Context, cmd CreateCommand) (*Camp, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Camp, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
