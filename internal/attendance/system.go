package attendance

import (
	"context"

	"github.com/campward/campward/pkg/pagination"
)

// System defines the public contract for attendance operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Record], error)

	CheckIn(ctx context.Context, cmd CheckCommand) (*Record, error)
	CheckOut(ctx context.Context, cmd CheckCommand) (*Record, error)
}
