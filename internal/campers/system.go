package campers

import (
	"context"

	"github.com/google/uuid"

	"github.com/campward/campward/pkg/pagination"
)

// System defines the public contract for roster domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Camper], error)

	Find(ctx context.Context, id uuid.UUID) (*Camper, error)
	Create(ctx context.Context, cmd CreateCommand) (*Camper, error)

	// Cancel marks the registration cancelled and removes the camper from
	// any group assignment so group membership stays conserved.
	Cancel(ctx context.Context, id uuid.UUID) error

	AddFriend(ctx context.Context, camperID, friendID uuid.UUID) (*FriendRequest, error)
	RemoveFriend(ctx context.Context, camperID, friendID uuid.UUID) error
}
