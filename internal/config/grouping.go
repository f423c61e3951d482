package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/campward/campward/internal/engine"
)

const (
	EnvGroupingMaxGroupSize   = "CAMPWARD_GROUPING_MAX_GROUP_SIZE"
	EnvGroupingMaxGradeSpread = "CAMPWARD_GROUPING_MAX_GRADE_SPREAD"
	EnvGroupingRequireMutual  = "CAMPWARD_GROUPING_REQUIRE_MUTUAL_FRIENDS"
	EnvGroupingLockIdle       = "CAMPWARD_GROUPING_LOCK_IDLE_TIMEOUT"
)

// GroupingConfig holds service-wide grouping defaults. Camps may override
// the constraint limits per camp; these values seed new grouping sessions.
type GroupingConfig struct {
	MaxGroupSize   int `toml:"max_group_size"`
	MaxGradeSpread int `toml:"max_grade_spread"`

	// RequireMutualFriends is a pointer so a merge can tell an absent key
	// apart from an explicit false. Nil means false.
	RequireMutualFriends *bool  `toml:"require_mutual_friends"`
	LockIdleTimeout      string `toml:"lock_idle_timeout"`
}

// MutualFriendsRequired reports whether friend requests must be mutual to
// bind campers into a friend group.
func (c *GroupingConfig) MutualFriendsRequired() bool {
	return c.RequireMutualFriends != nil && *c.RequireMutualFriends
}

// LockIdleTimeoutDuration returns LockIdleTimeout as a time.Duration.
func (c *GroupingConfig) LockIdleTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.LockIdleTimeout)
	return d
}

// Engine returns the engine configuration seeded from these defaults.
// NumGroups stays zero; sessions derive it from the roster size.
func (c *GroupingConfig) Engine() engine.Config {
	return engine.Config{
		MaxGroupSize:         c.MaxGroupSize,
		MaxGradeSpread:       c.MaxGradeSpread,
		RequireMutualFriends: c.MutualFriendsRequired(),
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *GroupingConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields the overlay actually sets.
func (c *GroupingConfig) Merge(overlay *GroupingConfig) {
	if overlay.MaxGroupSize != 0 {
		c.MaxGroupSize = overlay.MaxGroupSize
	}
	if overlay.MaxGradeSpread != 0 {
		c.MaxGradeSpread = overlay.MaxGradeSpread
	}
	if overlay.LockIdleTimeout != "" {
		c.LockIdleTimeout = overlay.LockIdleTimeout
	}
	if overlay.RequireMutualFriends != nil {
		c.RequireMutualFriends = overlay.RequireMutualFriends
	}
}

func (c *GroupingConfig) loadDefaults() {
	if c.MaxGroupSize == 0 {
		c.MaxGroupSize = engine.DefaultMaxGroupSize
	}
	if c.MaxGradeSpread == 0 {
		c.MaxGradeSpread = engine.DefaultMaxGradeSpread
	}
	if c.LockIdleTimeout == "" {
		c.LockIdleTimeout = "30m"
	}
}

func (c *GroupingConfig) loadEnv() {
	if v := os.Getenv(EnvGroupingMaxGroupSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxGroupSize = n
		}
	}
	if v := os.Getenv(EnvGroupingMaxGradeSpread); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxGradeSpread = n
		}
	}
	if v := os.Getenv(EnvGroupingRequireMutual); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.RequireMutualFriends = &b
		}
	}
	if v := os.Getenv(EnvGroupingLockIdle); v != "" {
		c.LockIdleTimeout = v
	}
}

func (c *GroupingConfig) validate() error {
	if c.MaxGroupSize <= 0 {
		return fmt.Errorf("max_group_size must be positive, got %d", c.MaxGroupSize)
	}
	if c.MaxGradeSpread < 0 {
		return fmt.Errorf("max_grade_spread cannot be negative, got %d", c.MaxGradeSpread)
	}
	if _, err := time.ParseDuration(c.LockIdleTimeout); err != nil {
		return fmt.Errorf("invalid lock_idle_timeout: %w", err)
	}
	return nil
}
