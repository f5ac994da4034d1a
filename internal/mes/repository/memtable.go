package repository

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound no record with the requested id
var ErrNotFound = errors.New("record not found")

// memTable an id-indexed collection that remembers insertion order.
// Rows are cloned on the way in and out, so callers never alias stored state.
type memTable[T any] struct {
	mu    sync.RWMutex
	rows  map[string]*T
	order []string
	idOf  func(*T) string
	clone func(*T) *T
}

func newMemTable[T any](idOf func(*T) string, clone func(*T) *T) *memTable[T] {
	return &memTable[T]{
		rows:  make(map[string]*T),
		idOf:  idOf,
		clone: clone,
	}
}

// insertLocked expects t.mu to be held for writing
func (t *memTable[T]) insertLocked(v *T) (*T, error) {
	id := t.idOf(v)
	if _, exists := t.rows[id]; exists {
		return nil, fmt.Errorf("duplicate id %s", id)
	}
	t.rows[id] = t.clone(v)
	t.order = append(t.order, id)
	return t.clone(v), nil
}

func (t *memTable[T]) insert(v *T) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.insertLocked(v)
}

func (t *memTable[T]) get(id string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t.clone(v), nil
}

// list returns matching rows in insertion order; a nil filter matches everything
func (t *memTable[T]) list(filter func(*T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		v := t.rows[id]
		if filter == nil || filter(v) {
			out = append(out, *t.clone(v))
		}
	}
	return out
}

func (t *memTable[T]) count(filter func(*T) bool) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, v := range t.rows {
		if filter == nil || filter(v) {
			n++
		}
	}
	return n
}

// update applies fn to a copy of the row and stores it only if fn succeeds
func (t *memTable[T]) update(id string, fn func(*T) error) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	draft := t.clone(v)
	if err := fn(draft); err != nil {
		return nil, err
	}
	t.rows[id] = draft
	return t.clone(draft), nil
}
