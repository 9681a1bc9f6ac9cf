package layout

import (
	"github.com/SharkLava/gwern.net/pkg/geom"
	"github.com/SharkLava/gwern.net/pkg/geometry"
	"github.com/SharkLava/gwern.net/pkg/sidenote"
)

// CollectObstacles rebuilds the proscribed vertical ranges for a column
// from current page geometry: every flagged element whose box horizontally
// intersects the column, converted to column-local coordinates, plus the
// sentinel at the column's bottom edge.
//
// Elements are enumerated in document order, so the result is deterministic
// for identical geometry even though it is not globally sorted - the
// placement engine scans bidirectionally and does not require sorting.
// Elements that cannot be measured are skipped for this run.
//
// The returned slice always ends with the sentinel and replaces the
// column's previous obstacle list wholesale; obstacle values are never
// mutated after collection.
func CollectObstacles(p geometry.Provider, elementIDs []string, col *sidenote.Column) []geom.Obstacle {
	obstacles := make([]geom.Obstacle, 0, len(elementIDs)+1)

	for _, id := range elementIDs {
		box, ok := p.BoundingBox(id)
		if !ok {
			continue
		}
		if box.HorizontalOverlap(col.Box) <= 0 {
			continue
		}
		obstacles = append(obstacles, geom.Obstacle{
			Interval: geom.Interval{
				Top:    box.Top - col.Box.Top,
				Bottom: box.Bottom - col.Box.Top,
			},
			ElementID: id,
		})
	}

	return append(obstacles, geom.Sentinel(col.Height()))
}
