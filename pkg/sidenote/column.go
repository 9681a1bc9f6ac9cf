package sidenote

import (
	"github.com/SharkLava/gwern.net/pkg/geom"
)

// Column is one of the two vertical tracks holding sidenotes in document
// order. Within a column, notes keep the same relative order as their Index
// at all times; the insert and remove operations below preserve that
// invariant.
//
// Column is not safe for concurrent use. Per the engine's single-threaded
// model, only the layout driver mutates columns.
type Column struct {
	// Side identifies which margin this column occupies.
	Side Side

	// Box is the column's bounding box in page coordinates, re-homed to the
	// first full-bleed content block before each run.
	Box geom.Box

	// Notes are the sidenotes currently attached to this column, ascending
	// by Index. Parked (invisible) notes are not present.
	Notes []*Note

	// Obstacles are the proscribed vertical ranges for this column,
	// replaced wholesale by the obstacle collector on every run. The last
	// entry is always the column-bottom sentinel.
	Obstacles []geom.Obstacle
}

// NewColumn creates an empty column for the given side.
func NewColumn(side Side) *Column {
	return &Column{Side: side}
}

// Height returns the column's vertical extent in column-local units.
func (c *Column) Height() float64 { return c.Box.Height() }

// Insert adds a note at its order-preserving slot: immediately before the
// first attached note with a greater index, or at the end if none follows.
// Inserting a note that is already attached is a no-op.
func (c *Column) Insert(n *Note) {
	for i, existing := range c.Notes {
		if existing == n {
			return
		}
		if existing.Index > n.Index {
			c.Notes = append(c.Notes, nil)
			copy(c.Notes[i+1:], c.Notes[i:])
			c.Notes[i] = n
			return
		}
	}
	c.Notes = append(c.Notes, n)
}

// Remove detaches a note from the column. Removing a note that is not
// attached is a no-op.
func (c *Column) Remove(n *Note) {
	for i, existing := range c.Notes {
		if existing == n {
			c.Notes = append(c.Notes[:i], c.Notes[i+1:]...)
			return
		}
	}
}

// Contains reports whether the note is currently attached to the column.
func (c *Column) Contains(n *Note) bool {
	for _, existing := range c.Notes {
		if existing == n {
			return true
		}
	}
	return false
}

// VisibleNotes returns the attached notes that are eligible for placement,
// in index order. The returned slice is freshly allocated; the notes it
// points to are shared.
func (c *Column) VisibleNotes() []*Note {
	visible := make([]*Note, 0, len(c.Notes))
	for _, n := range c.Notes {
		if n.Visible {
			visible = append(visible, n)
		}
	}
	return visible
}
