package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// showtimeLocker serializes the check-then-insert reservation scope per
// showtime. Different showtimes proceed in parallel; attempts on the same
// showtime queue behind a one-slot semaphore and give up after maxWait.
type showtimeLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*showtimeLock
}

type showtimeLock struct {
	sem  chan struct{}
	refs int
}

func newShowtimeLocker() *showtimeLocker {
	return &showtimeLocker{
		locks: make(map[uuid.UUID]*showtimeLock),
	}
}

// Acquire blocks until the showtime's slot is free, the wait elapses, or
// ctx is done. On timeout it returns ErrBusy so the request fails fast
// instead of piling up behind a slow reservation.
func (l *showtimeLocker) Acquire(ctx context.Context, showtimeID uuid.UUID, maxWait time.Duration) error {
	l.mu.Lock()
	lock, ok := l.locks[showtimeID]
	if !ok {
		lock = &showtimeLock{sem: make(chan struct{}, 1)}
		l.locks[showtimeID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	timer := time.NewTimer(maxWait)
	defer timer.Stop()

	select {
	case lock.sem <- struct{}{}:
		return nil
	case <-timer.C:
		l.release(showtimeID, false)
		return ErrBusy
	case <-ctx.Done():
		l.release(showtimeID, false)
		return ctx.Err()
	}
}

// Release frees the showtime's slot. Must be called exactly once after a
// successful Acquire.
func (l *showtimeLocker) Release(showtimeID uuid.UUID) {
	l.release(showtimeID, true)
}

func (l *showtimeLocker) release(showtimeID uuid.UUID, held bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[showtimeID]
	if !ok {
		return
	}

	if held {
		<-lock.sem
	}

	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, showtimeID)
	}
}
