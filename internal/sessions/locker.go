package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/semaphore"
)

// Locker serializes mutating grouping operations per camp. Each camp gets a
// weighted semaphore of capacity one; a background janitor sweeps entries
// that have sat idle past the configured timeout so the map does not grow
// with every camp ever touched.
type Locker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*campLock
	idle  time.Duration
	cron  *cron.Cron
}

type campLock struct {
	sem      *semaphore.Weighted
	lastUsed time.Time
}

// NewLocker creates a Locker whose janitor runs every five minutes,
// releasing per-camp entries idle longer than the given timeout.
func NewLocker(idle time.Duration) *Locker {
	l := &Locker{
		locks: make(map[uuid.UUID]*campLock),
		idle:  idle,
		cron:  cron.New(),
	}

	l.cron.AddFunc("@every 5m", l.sweep)
	l.cron.Start()

	return l
}

// Acquire blocks until the camp's lock is held or the context is done.
// The returned release function must be called exactly once.
func (l *Locker) Acquire(ctx context.Context, campID uuid.UUID) (func(), error) {
	l.mu.Lock()
	entry, ok := l.locks[campID]
	if !ok {
		entry = &campLock{sem: semaphore.NewWeighted(1)}
		l.locks[campID] = entry
	}
	entry.lastUsed = time.Now()
	l.mu.Unlock()

	if err := entry.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	return func() {
		l.mu.Lock()
		entry.lastUsed = time.Now()
		l.mu.Unlock()
		entry.sem.Release(1)
	}, nil
}

// Stop halts the janitor. Held locks are unaffected.
func (l *Locker) Stop() {
	l.cron.Stop()
}

// sweep drops idle entries. An entry is only removed when its semaphore can
// be acquired immediately, so an in-flight operation keeps its lock.
func (l *Locker) sweep() {
	cutoff := time.Now().Add(-l.idle)

	l.mu.Lock()
	defer l.mu.Unlock()

	for id, entry := range l.locks {
		if entry.lastUsed.After(cutoff) {
			continue
		}
		if entry.sem.TryAcquire(1) {
			entry.sem.Release(1)
			delete(l.locks, id)
		}
	}
}
