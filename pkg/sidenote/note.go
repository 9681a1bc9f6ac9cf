// Package sidenote defines the data model for margin annotations: notes,
// the two margin columns that hold them, and the serialized placement
// results reported after a layout run.
//
// A sidenote is an annotation block paired with an in-text anchor. Notes
// are created once per document load from the ordered set of footnote
// references and bucketed into the left or right column by index parity.
// Their vertical position (CurrentTop) is the layout engine's output; it is
// recomputed from current geometry on every run and never persisted.
package sidenote

import (
	"fmt"

	"github.com/SharkLava/gwern.net/pkg/geom"
)

// DefaultSpacing is the minimum vertical gap, in page units, enforced
// between adjacent sidenotes in the same column. It is not enforced against
// obstacle edges, which are hard boundaries.
const DefaultSpacing = 60.0

// Side identifies one of the two margin columns.
type Side int

const (
	// SideLeft is the left margin column, holding odd-indexed notes.
	SideLeft Side = iota
	// SideRight is the right margin column, holding even-indexed notes.
	SideRight
)

// SideFor returns the column side for a 1-based note index:
// odd indexes go left, even indexes go right.
func SideFor(index int) Side {
	if index%2 == 1 {
		return SideLeft
	}
	return SideRight
}

// String returns "left" or "right".
func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// ParseSide converts "left" or "right" to a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	}
	return 0, fmt.Errorf("invalid side: %q", s)
}

// Note is a single sidenote. All vertical fields are in column-local
// coordinates (0 = column top, increasing downward).
//
// The zero value is not usable - Index must be set, and AnchorOffset and
// Height are measured from page geometry before each placement run.
type Note struct {
	// Index is the 1-based position in document order. It defines both the
	// column assignment (parity) and the relative order within a column.
	Index int

	// AnchorID is the geometry element ID of the in-text reference mark.
	AnchorID string

	// BodyID is the geometry element ID of the rendered annotation block.
	BodyID string

	// AnchorOffset is the vertical position of the anchor, measured fresh
	// each run.
	AnchorOffset float64

	// Height is the intrinsic rendered height of the annotation block,
	// measured fresh each run.
	Height float64

	// CurrentTop is the engine's output: the note's final vertical offset.
	CurrentTop float64

	// Visible reports whether the note is eligible for placement this run.
	// Notes inside collapsed disclosure regions, or whose geometry cannot
	// be measured yet, are withheld.
	Visible bool
}

// Side returns the column the note belongs to, derived from Index parity.
func (n *Note) Side() Side { return SideFor(n.Index) }

// Extent returns the raw occupied interval [CurrentTop, CurrentTop+Height].
// Obstacle edges are checked against the extent: a note may sit flush
// against an obstacle.
func (n *Note) Extent() geom.Interval {
	return geom.Interval{Top: n.CurrentTop, Bottom: n.CurrentTop + n.Height}
}

// Footprint returns the extent padded by spacing on both sides. The
// footprint is what must fit inside a room between obstacles, and its
// bottom edge is held at least spacing above the top of the following note.
func (n *Note) Footprint(spacing float64) geom.Interval {
	return geom.Interval{
		Top:    n.CurrentTop - spacing,
		Bottom: n.CurrentTop + n.Height + spacing,
	}
}
