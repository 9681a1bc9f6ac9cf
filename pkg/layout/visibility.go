package layout

import (
	"context"

	"github.com/SharkLava/gwern.net/pkg/document"
	"github.com/SharkLava/gwern.net/pkg/observability"
	"github.com/SharkLava/gwern.net/pkg/sidenote"
)

// Park is the inert off-screen store for withheld sidenotes. Parked notes
// are out of column flow entirely; they keep their identity so expanding
// a disclosure region restores them at the correct order-preserving slot.
type Park struct {
	notes map[*sidenote.Note]bool
}

// NewPark creates an empty store.
func NewPark() *Park {
	return &Park{notes: make(map[*sidenote.Note]bool)}
}

// Add places a note in the store.
func (p *Park) Add(n *sidenote.Note) { p.notes[n] = true }

// Remove takes a note out of the store. Removing an absent note is a no-op.
func (p *Park) Remove(n *sidenote.Note) { delete(p.notes, n) }

// Contains reports whether the note is currently parked.
func (p *Park) Contains(n *sidenote.Note) bool { return p.notes[n] }

// Len returns the number of parked notes.
func (p *Park) Len() int { return len(p.notes) }

// IsVisible reports whether a note's anchor lies in a revealed part of the
// document: it is invisible iff any disclosure region on the anchor's
// ancestor chain is collapsed. The chain is walked iteratively, never
// recursively, so arbitrarily deep nesting is safe.
func IsVisible(doc *document.Document, n *sidenote.Note) bool {
	if n.Index < 1 || n.Index > len(doc.Anchors) {
		return false
	}
	anchor := doc.Anchors[n.Index-1]
	if anchor.Region == "" {
		return true
	}
	return !doc.Collapsed(anchor.Region)
}

// Reclassify updates every note's visibility and relocates notes between
// their column and the park accordingly. Newly invisible notes leave column
// flow; newly visible ones are reinserted before the next attached note of
// the same column, preserving index order. The operation is idempotent:
// with unchanged document state a second call changes nothing.
func Reclassify(ctx context.Context, doc *document.Document, notes []*sidenote.Note, left, right *sidenote.Column, park *Park) {
	for _, n := range notes {
		col := left
		if n.Side() == sidenote.SideRight {
			col = right
		}

		visible := IsVisible(doc, n)
		switch {
		case !visible && !park.Contains(n):
			col.Remove(n)
			park.Add(n)
			n.Visible = false
			observability.Visibility().OnNoteParked(ctx, n.Index)

		case visible && park.Contains(n):
			park.Remove(n)
			col.Insert(n)
			n.Visible = true
			observability.Visibility().OnNoteRestored(ctx, n.Index)

		case visible:
			// A note can be marked invisible without being parked when its
			// geometry was missing last run; give it another chance.
			n.Visible = true
		}
	}
}
