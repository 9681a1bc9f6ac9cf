package layout

import (
	"github.com/SharkLava/gwern.net/pkg/errors"
	"github.com/SharkLava/gwern.net/pkg/sidenote"
)

// Place computes a top offset for every visible note in the column so that
// no note overlaps another note or an obstacle, keeping each note as near
// as possible to its anchor. Notes are processed in index order and only
// CurrentTop is mutated.
//
// The walk may revisit a note: whenever a note is relocated past an
// obstacle its index is retried rather than advanced. Each retry moves the
// note strictly past an obstacle that previously bounded it, so the retry
// count is bounded by the obstacle list; a budget guards against regression
// bugs breaking that argument.
//
// On overflow the column's notes are left with whatever intermediate tops
// the walk produced; the caller is responsible for restoring the previous
// valid placement (see Driver).
func Place(col *sidenote.Column, spacing float64) error {
	visible := col.VisibleNotes()
	if len(visible) == 0 {
		return nil
	}

	// Anchor-aligned defaults: each note starts level with its citation.
	for _, n := range visible {
		n.CurrentTop = n.AnchorOffset
		if n.CurrentTop < 0 {
			n.CurrentTop = 0
		}
	}

	// Termination budget: every retry consumes an obstacle, every advance
	// consumes a note. Anything past this bound is a bug, not a hard input.
	budget := 4 * (len(visible) + 1) * (len(col.Obstacles) + 2)

	for i := 0; i < len(visible); {
		if budget--; budget < 0 {
			return errors.New(errors.ErrCodeInternal,
				"%s column placement did not converge", col.Side)
		}

		n := visible[i]
		r := computeRoom(n.Extent().Mid(), col.Obstacles)

		// The padded footprint must fit between ceiling and floor. When
		// nothing bounds the note from below it has been pushed past every
		// obstacle, and the column cannot fit its content.
		if n.Footprint(spacing).Height() > r.size() {
			if r.next == nil {
				return overflowErr(col, n)
			}
			n.CurrentTop = r.next.Bottom + spacing
			continue
		}

		// Hard lower bound: obstacle edges clamp the raw extent, and a
		// relocated note can land level with or above its predecessor, so
		// the previous note's footprint bottom clamps too.
		limit := r.ceiling
		if i > 0 {
			if prevBottom := visible[i-1].CurrentTop + visible[i-1].Height + spacing; prevBottom > limit {
				limit = prevBottom
			}
		}
		if n.CurrentTop < limit {
			n.CurrentTop = limit
		}

		overlapFloor := n.CurrentTop + n.Height - r.floor

		var next *sidenote.Note
		overlapNext := 0.0
		if i+1 < len(visible) {
			next = visible[i+1]
			overlapNext = n.CurrentTop + n.Height + spacing - next.CurrentTop
		}

		overlapBelow := overlapFloor
		if overlapNext > overlapBelow {
			overlapBelow = overlapNext
		}
		if overlapBelow <= 0 {
			i++
			continue
		}

		// Headroom: slack down to the clamp limit, non-negative by the
		// clamp above.
		headroom := n.CurrentTop - limit

		switch {
		case headroom >= overlapBelow:
			// Enough slack above: absorb the whole overlap upward.
			n.CurrentTop -= overlapBelow
			i++

		case overlapFloor > headroom:
			// The floor overlap cannot be resolved in place; relocate past
			// the bounding obstacle and retry this note.
			if r.next == nil {
				return overflowErr(col, n)
			}
			n.CurrentTop = r.next.Bottom + spacing

		default:
			// The overlap is with the next note and only partial headroom
			// exists. Push the residual down onto the neighbor - unless the
			// neighbor does not fit the room it currently sits in, in which
			// case its own turn is guaranteed to relocate it past an
			// obstacle, which resolves the overlap without pushing.
			residual := overlapNext - headroom
			pushed := next.CurrentTop + residual
			nr := computeRoom(next.Extent().Mid(), col.Obstacles)
			if next.Footprint(spacing).Height() > nr.size() || pushed < nr.ceiling {
				i++
				continue
			}
			n.CurrentTop -= headroom
			next.CurrentTop = pushed
			i++
		}
	}

	return nil
}

func overflowErr(col *sidenote.Column, n *sidenote.Note) error {
	return errors.New(errors.ErrCodeOverflow,
		"%s column cannot fit sidenote %d (height %.0f, column height %.0f)",
		col.Side, n.Index, n.Height, col.Height())
}
