package ecs

import (
	"fmt"
	"iter"
)

// MaxCapacity is the largest arena a 16-bit slot index can address.
const MaxCapacity = 1 << 16

type slot[T any] struct {
	gen    uint16 // current generation, 0 = empty
	issued uint16 // last generation handed out for this slot
	value  T
}

// Arena is a fixed-capacity store handing out generation-checked handles.
// Slots are allocated once; new values always go to the lowest free index so
// live entries stay packed toward the front.
// Accessed only from the simulation goroutine, no locks.
type Arena[T any] struct {
	slots    []slot[T]
	frontier int // lowest index that may be free; len(slots) when full
	live     int
}

// NewArena allocates an arena with the given number of slots.
func NewArena[T any](capacity int) *Arena[T] {
	if capacity <= 0 || capacity > MaxCapacity {
		panic(fmt.Sprintf("ecs: arena capacity %d out of range [1, %d]", capacity, MaxCapacity))
	}
	return &Arena[T]{
		slots: make([]slot[T], capacity),
	}
}

func (a *Arena[T]) Cap() int  { return len(a.slots) }
func (a *Arena[T]) Len() int  { return a.live }
func (a *Arena[T]) Free() int { return len(a.slots) - a.live }

// Add stores v in the lowest empty slot. Returns false when every slot is taken.
func (a *Arena[T]) Add(v T) (Handle, bool) {
	if a.frontier >= len(a.slots) {
		return None, false
	}
	idx := a.frontier
	s := &a.slots[idx] // every slot below the frontier is live, the frontier itself is empty
	s.issued = nextGeneration(s.issued)
	s.gen = s.issued
	s.value = v
	a.live++

	for a.frontier < len(a.slots) && a.slots[a.frontier].gen != 0 {
		a.frontier++
	}
	return NewHandle(uint16(idx), s.gen), true
}

// resolve returns the slot h points at, or nil when h is stale or out of range.
func (a *Arena[T]) resolve(h Handle) *slot[T] {
	idx := int(h.Index())
	if idx >= len(a.slots) {
		return nil
	}
	s := &a.slots[idx]
	if s.gen == 0 || s.gen != h.Generation() {
		return nil
	}
	return s
}

// Get returns a copy of the value h refers to.
func (a *Arena[T]) Get(h Handle) (T, bool) {
	if s := a.resolve(h); s != nil {
		return s.value, true
	}
	var zero T
	return zero, false
}

// Ref returns a pointer to the stored value for in-place mutation.
// The pointer is only meaningful until h is removed.
func (a *Arena[T]) Ref(h Handle) (*T, bool) {
	if s := a.resolve(h); s != nil {
		return &s.value, true
	}
	return nil, false
}

func (a *Arena[T]) Contains(h Handle) bool {
	return a.resolve(h) != nil
}

// Remove empties the slot h refers to and returns its value.
// Stale handles are a no-op.
func (a *Arena[T]) Remove(h Handle) (T, bool) {
	s := a.resolve(h)
	if s == nil {
		var zero T
		return zero, false
	}
	v := s.value
	var zero T
	s.value = zero
	s.gen = 0
	a.live--
	if idx := int(h.Index()); idx < a.frontier {
		a.frontier = idx
	}
	return v, true
}

// All yields every live entry in ascending index order. The loop body may
// remove entries; removed entries are not yielded.
func (a *Arena[T]) All() iter.Seq2[Handle, T] {
	return func(yield func(Handle, T) bool) {
		for i := range a.slots {
			s := &a.slots[i]
			if s.gen == 0 {
				continue
			}
			if !yield(NewHandle(uint16(i), s.gen), s.value) {
				return
			}
		}
	}
}

// Each calls fn with a mutable pointer to every live entry in index order.
// fn may remove entries but must not add to the arena.
func (a *Arena[T]) Each(fn func(Handle, *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.gen == 0 {
			continue
		}
		fn(NewHandle(uint16(i), s.gen), &s.value)
	}
}
