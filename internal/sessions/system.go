package sessions

import (
	"context"

	"github.com/google/uuid"

	"github.com/campward/campward/internal/engine"
)

// System defines the public contract for grouping session operations.
// All operations are keyed by camp; the session row is created on first use.
type System interface {
	Handler() *Handler

	State(ctx context.Context, campID uuid.UUID) (*State, error)
	AutoGroup(ctx context.Context, campID uuid.UUID, cmd AutoGroupCommand) (*AutoGroupResult, error)

	// ValidateMove checks a proposed move against the current state without
	// committing anything.
	ValidateMove(ctx context.Context, campID uuid.UUID, move engine.Move) (*engine.MoveValidation, error)

	CommitMoves(ctx context.Context, campID uuid.UUID, cmd MoveCommand) (*State, error)
	Resolve(ctx context.Context, campID, violationID uuid.UUID, cmd ResolveCommand) (*engine.Violation, error)
	Finalize(ctx context.Context, campID uuid.UUID, cmd FinalizeCommand) (*Session, error)

	CreateGroup(ctx context.Context, campID uuid.UUID, cmd GroupCommand) (*engine.Group, error)
	UpdateGroup(ctx context.Context, campID, groupID uuid.UUID, cmd GroupCommand) (*engine.Group, error)
	DeleteGroup(ctx context.Context, campID, groupID uuid.UUID) error
}
