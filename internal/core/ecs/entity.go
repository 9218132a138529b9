package ecs

import "fmt"

// Handle encodes a 16-bit slot index in the lower bits and a 16-bit generation
// in the upper bits. Generation 0 marks an empty slot, so the zero Handle never
// resolves and doubles as "none".
type Handle uint32

// None is the empty handle. It is never valid in any arena.
const None Handle = 0

func NewHandle(index uint16, generation uint16) Handle {
	return Handle(uint32(generation)<<16 | uint32(index))
}

func (h Handle) Index() uint16      { return uint16(h) }
func (h Handle) Generation() uint16 { return uint16(h >> 16) }
func (h Handle) IsNone() bool       { return h.Generation() == 0 }

func (h Handle) String() string {
	if h.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%d#%d", h.Index(), h.Generation())
}

// nextGeneration returns the generation issued on the next reuse of a slot.
// It wraps from the maximum back to 1, never to 0.
func nextGeneration(g uint16) uint16 {
	g++
	if g == 0 {
		g = 1
	}
	return g
}
