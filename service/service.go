package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"freightflow/repository"
)

// IsNotFound reports whether err means a referenced record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

func defaultNow() time.Time { return time.Now().UTC() }

func newID() string { return uuid.NewString() }

// tripLocks serializes writers per trip id. Entries are dropped when the
// last holder releases them.
type tripLocks struct {
	mu    sync.Mutex
	locks map[string]*tripLock
}

type tripLock struct {
	mu   sync.Mutex
	refs int
}

func (l *tripLocks) lock(id string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*tripLock)
	}
	e, ok := l.locks[id]
	if !ok {
		e = &tripLock{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
