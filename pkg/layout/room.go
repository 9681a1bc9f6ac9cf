package layout

import (
	"github.com/SharkLava/gwern.net/pkg/geom"
)

// room is the obstacle-bounded interval a sidenote may legally occupy,
// derived per note per run by scanning the column's obstacle list in both
// directions from the note's midpoint.
//
// A zero room ({0, 0, nil}) is deliberately degenerate: when no obstacle
// lies below the note - it has been pushed past the sentinel with nothing
// left to bound it - the floor stays at zero and the fit check fails with
// no relocation target, which is how column overflow is detected.
type room struct {
	// ceiling is the bottom edge of the nearest obstacle above, or 0 (the
	// column top) when none is.
	ceiling float64

	// floor is the top edge of the nearest obstacle below, or 0 when none
	// is.
	floor float64

	// next is the obstacle supplying the floor. It is the relocation target
	// when the note cannot fit here. nil when nothing bounds the note from
	// below.
	next *geom.Obstacle
}

// size returns the vertical extent available between ceiling and floor.
func (r room) size() float64 { return r.floor - r.ceiling }

// computeRoom scans the obstacle list bidirectionally from mid. Obstacles
// are classified above or below by comparing their own midpoints to mid;
// an obstacle whose midpoint equals mid counts as below, so the sentinel
// remains usable as a relocation target for a note straddling it. The list
// need not be sorted; nearest is decided by midpoint distance.
func computeRoom(mid float64, obstacles []geom.Obstacle) room {
	var r room
	haveAbove, haveBelow := false, false
	var aboveMid, belowMid float64

	for i := range obstacles {
		om := obstacles[i].Mid()
		if om < mid {
			if !haveAbove || om > aboveMid {
				haveAbove = true
				aboveMid = om
				r.ceiling = obstacles[i].Bottom
			}
		} else {
			if !haveBelow || om < belowMid {
				haveBelow = true
				belowMid = om
				r.floor = obstacles[i].Top
				r.next = &obstacles[i]
			}
		}
	}
	return r
}
