// Package engine implements the camper grouping core: roster standardization,
// friend-group resolution, the constraint model, the auto-grouping solver,
// move validation, and the grouping session status machine. All functions are
// pure over explicit inputs; persistence and locking belong to the caller.
package engine

import "fmt"

// Default constraint limits applied when a camp does not override them.
const (
	DefaultMaxGroupSize   = 15
	DefaultMaxGradeSpread = 2
)

// Config holds the immutable-per-run grouping constraints.
// Changing any value requires a solver rerun.
type Config struct {
	MaxGroupSize   int `json:"max_group_size"`
	MaxGradeSpread int `json:"max_grade_spread"`
	NumGroups      int `json:"num_groups"`

	// RequireMutualFriends controls whether a one-directional friend request
	// is enough to bind two campers into a FriendGroup. The default (false)
	// binds on a single request.
	RequireMutualFriends bool `json:"require_mutual_friends"`
}

// Validate checks that the config values are usable for a solver run.
func (c Config) Validate() error {
	if c.MaxGroupSize <= 0 {
		return fmt.Errorf("%w: max_group_size must be positive, got %d", ErrInvalidConfig, c.MaxGroupSize)
	}
	if c.MaxGradeSpread < 0 {
		return fmt.Errorf("%w: max_grade_spread cannot be negative, got %d", ErrInvalidConfig, c.MaxGradeSpread)
	}
	if c.NumGroups <= 0 {
		return fmt.Errorf("%w: num_groups must be positive, got %d", ErrInvalidConfig, c.NumGroups)
	}
	return nil
}

// DefaultNumGroups derives a group count from the roster size and group cap:
// the smallest count that fits everyone under the cap, minimum one group.
func DefaultNumGroups(camperCount, maxGroupSize int) int {
	if camperCount <= 0 || maxGroupSize <= 0 {
		return 1
	}
	n := (camperCount + maxGroupSize - 1) / maxGroupSize
	if n < 1 {
		n = 1
	}
	return n
}
