package ecs

import (
	"iter"
	"unsafe"
)

// Query wraps a View with a cache of matching archetypes. Systems declare
// Query fields and the Scheduler initializes them on registration.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int
}

// NewQuery creates a new Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
}

func (q *Query[T]) archetypes() []*Archetype {
	if n := len(q.storage.ordered); n != q.lastArchetypeCount {
		q.cachedArchetypes = q.cachedArchetypes[:0]
		for _, a := range q.storage.ordered {
			if q.view.matchesArchetype(a) {
				q.cachedArchetypes = append(q.cachedArchetypes, a)
			}
		}
		q.lastArchetypeCount = n
	}
	return q.cachedArchetypes
}

// Iter returns an iterator over every matching entity, in archetype creation
// order then storage order. Structural changes during iteration must go
// through Commands.
func (q *Query[T]) Iter() iter.Seq[T] {
	if q.view == nil {
		panic("Query used before Init")
	}
	return func(yield func(T) bool) {
		var result T
		ptr := unsafe.Pointer(&result)
		for _, archetype := range q.archetypes() {
			for id := range archetype.Iter() {
				if !q.view.fill(archetype, id, ptr) {
					continue
				}
				if !yield(result) {
					return
				}
			}
		}
	}
}

// Get returns the view for a single entity, or nil when it does not match.
func (q *Query[T]) Get(id EntityId) *T {
	return q.view.Get(id)
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for _, a := range q.archetypes() {
		if q.view.matchesArchetype(a) {
			n += a.Len()
		}
	}
	return n
}
