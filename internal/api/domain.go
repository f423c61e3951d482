package api

import (
	"github.com/campward/campward/internal/attendance"
	"github.com/campward/campward/internal/campers"
	"github.com/campward/campward/internal/camps"
	"github.com/campward/campward/internal/sessions"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Camps      camps.System
	Campers    campers.System
	Sessions   sessions.System
	Attendance attendance.System
}

// NewDomain creates all domain systems from the API runtime. The session
// locker's janitor is tied to the lifecycle coordinator so it stops with
// the service.
func NewDomain(runtime *Runtime) *Domain {
	campsSystem := camps.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
		camps.Defaults{
			MaxGroupSize:   runtime.Grouping.MaxGroupSize,
			MaxGradeSpread: runtime.Grouping.MaxGradeSpread,
		},
	)

	campersSystem := campers.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	locker := sessions.NewLocker(runtime.Grouping.LockIdleTimeoutDuration())
	lc := runtime.Lifecycle
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		locker.Stop()
	})

	sessionsSystem := sessions.New(
		runtime.Database.Connection(),
		runtime.Logger,
		locker,
		runtime.Grouping.MutualFriendsRequired(),
	)

	attendanceSystem := attendance.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Camps:      campsSystem,
		Campers:    campersSystem,
		Sessions:   sessionsSystem,
		Attendance: attendanceSystem,
	}
}
