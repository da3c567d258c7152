package repository

import (
	"sort"
	"sync"
	"time"
)

// memTable is a mutex guarded map of records. Records are copied on the way
// in and out so callers never share state with the store.
type memTable[T any] struct {
	mu      sync.RWMutex
	rows    map[string]*T
	clone   func(*T) *T
	created func(*T) time.Time
}

func newMemTable[T any](clone func(*T) *T, created func(*T) time.Time) *memTable[T] {
	return &memTable[T]{rows: make(map[string]*T), clone: clone, created: created}
}

// insert stores v under id. conflicts, when set, rejects v if it clashes
// with any stored record on a unique field.
func (m *memTable[T]) insert(id string, v *T, conflicts func(stored, v *T) bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; ok {
		return ErrDuplicate
	}
	if conflicts != nil {
		for _, row := range m.rows {
			if conflicts(row, v) {
				return ErrDuplicate
			}
		}
	}
	m.rows[id] = m.clone(v)
	return nil
}

func (m *memTable[T]) replace(id string, v *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	m.rows[id] = m.clone(v)
	return nil
}

// modify runs fn on the stored record under the write lock.
func (m *memTable[T]) modify(id string, fn func(*T)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return ErrNotFound
	}
	fn(row)
	return nil
}

func (m *memTable[T]) get(id string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.clone(row), nil
}

// find returns the matching records, newest first.
func (m *memTable[T]) find(match func(*T) bool) []*T {
	m.mu.RLock()
	out := make([]*T, 0, len(m.rows))
	for _, row := range m.rows {
		if match == nil || match(row) {
			out = append(out, m.clone(row))
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return m.created(out[i]).After(m.created(out[j]))
	})
	return out
}

func (m *memTable[T]) remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func shallow[T any](v *T) *T {
	c := *v
	return &c
}
