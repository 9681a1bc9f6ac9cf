// Package geom provides the one-dimensional interval and bounding-box
// primitives shared by every layout component.
//
// The sidenote placement problem is strictly one-dimensional per column:
// everything the engine reasons about is a vertical interval in column-local
// coordinates. Boxes exist only at the edge of the system, where page
// geometry is measured, and are immediately projected down to intervals.
package geom

// Interval is a closed vertical range [Top, Bottom] with Top <= Bottom
// for any well-formed value. The zero value is the empty interval at the
// origin.
type Interval struct {
	Top    float64 `json:"top" toml:"top"`
	Bottom float64 `json:"bottom" toml:"bottom"`
}

// Height returns the vertical span of the interval.
func (iv Interval) Height() float64 { return iv.Bottom - iv.Top }

// Mid returns the vertical midpoint of the interval.
func (iv Interval) Mid() float64 { return (iv.Top + iv.Bottom) / 2 }

// Intersects reports whether the two intervals share any interior point.
// Touching edges (iv.Bottom == other.Top) do not count as intersection:
// adjacent intervals may sit flush against each other.
func (iv Interval) Intersects(other Interval) bool {
	return iv.Top < other.Bottom && other.Top < iv.Bottom
}

// Contains reports whether other lies entirely within iv, edges included.
func (iv Interval) Contains(other Interval) bool {
	return iv.Top <= other.Top && other.Bottom <= iv.Bottom
}

// Shift returns the interval translated down by delta (up when negative).
func (iv Interval) Shift(delta float64) Interval {
	return Interval{Top: iv.Top + delta, Bottom: iv.Bottom + delta}
}

// Box is an axis-aligned bounding box in the shared page coordinate space.
// Top increases downward, matching rendered-page conventions.
type Box struct {
	Top    float64 `json:"top" toml:"top"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
	Right  float64 `json:"right" toml:"right"`
}

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Vertical projects the box onto the vertical axis.
func (b Box) Vertical() Interval { return Interval{Top: b.Top, Bottom: b.Bottom} }

// HorizontalOverlap returns the width of the horizontal intersection with
// other, or a non-positive value when the boxes are horizontally disjoint.
func (b Box) HorizontalOverlap(other Box) float64 {
	left := b.Left
	if other.Left > left {
		left = other.Left
	}
	right := b.Right
	if other.Right < right {
		right = other.Right
	}
	return right - left
}
