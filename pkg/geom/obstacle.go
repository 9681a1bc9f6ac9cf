package geom

// SentinelID is the element ID carried by the obstacle that marks the bottom
// edge of a column. It never corresponds to a real page element.
const SentinelID = "#column-end"

// Obstacle is a proscribed vertical range in column-local coordinates that no
// sidenote may intersect. Obstacles are recomputed fresh on every layout run
// and never mutated in place, only replaced.
type Obstacle struct {
	Interval

	// ElementID identifies the page element the obstacle was derived from,
	// or SentinelID for the synthetic column-bottom obstacle.
	ElementID string
}

// IsSentinel reports whether the obstacle is the synthetic column-bottom
// marker rather than a real page element.
func (o Obstacle) IsSentinel() bool { return o.ElementID == SentinelID }

// Sentinel returns the zero-height obstacle pinned at the column's bottom
// edge. It guarantees the placement scan always finds a bounding obstacle
// below a sidenote that is still inside the column.
func Sentinel(columnHeight float64) Obstacle {
	return Obstacle{
		Interval:  Interval{Top: columnHeight, Bottom: columnHeight},
		ElementID: SentinelID,
	}
}
