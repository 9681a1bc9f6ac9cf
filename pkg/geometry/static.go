package geometry

import (
	"context"

	"github.com/SharkLava/gwern.net/pkg/geom"
)

// Static is a Provider backed by a fixed set of measured boxes, as captured
// in a document snapshot. It is the provider used by the CLI, the HTTP
// surface, and the engine's tests; a live host would wrap its own rendering
// pipeline instead.
//
// Static is not safe for concurrent use. The layout model is
// single-threaded: one driver, one run at a time.
type Static struct {
	boxes map[string]geom.Box
	tops  map[string]float64
}

// NewStatic creates a provider over the given boxes. The map is copied so
// later mutations of the argument do not leak into measurements.
func NewStatic(boxes map[string]geom.Box) *Static {
	copied := make(map[string]geom.Box, len(boxes))
	for id, b := range boxes {
		copied[id] = b
	}
	return &Static{
		boxes: copied,
		tops:  make(map[string]float64),
	}
}

// BoundingBox returns the element's box, reflecting any previously applied
// top offsets.
func (s *Static) BoundingBox(id string) (geom.Box, bool) {
	b, ok := s.boxes[id]
	return b, ok
}

// SetBox replaces an element's measured box, simulating a geometry change
// (content reveal, resize). Unknown IDs are added.
func (s *Static) SetBox(id string, b geom.Box) {
	s.boxes[id] = b
}

// ApplyTop records the final offset and moves the element's box to match,
// preserving its height.
func (s *Static) ApplyTop(id string, top float64) {
	s.tops[id] = top
	if b, ok := s.boxes[id]; ok {
		h := b.Height()
		b.Top = top
		b.Bottom = top + h
		s.boxes[id] = b
	}
}

// AppliedTop returns the last offset applied to the element, if any.
func (s *Static) AppliedTop(id string) (float64, bool) {
	top, ok := s.tops[id]
	return top, ok
}

// Settle is an immediate yield: static geometry has no pending rendering
// work, so it only observes cancellation.
func (s *Static) Settle(ctx context.Context) error {
	return ctx.Err()
}
