package geom

import "testing"

func TestIntervalHeight(t *testing.T) {
	tests := []struct {
		name string
		iv   Interval
		want float64
	}{
		{
			name: "positive height",
			iv:   Interval{Top: 10, Bottom: 50},
			want: 40,
		},
		{
			name: "zero height",
			iv:   Interval{Top: 10, Bottom: 10},
			want: 0,
		},
		{
			name: "from origin",
			iv:   Interval{Top: 0, Bottom: 100},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.iv.Height(); got != tt.want {
				t.Errorf("Height() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntervalMid(t *testing.T) {
	tests := []struct {
		name string
		iv   Interval
		want float64
	}{
		{
			name: "symmetric",
			iv:   Interval{Top: 0, Bottom: 100},
			want: 50,
		},
		{
			name: "offset",
			iv:   Interval{Top: 30, Bottom: 70},
			want: 50,
		},
		{
			name: "degenerate",
			iv:   Interval{Top: 200, Bottom: 200},
			want: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.iv.Mid(); got != tt.want {
				t.Errorf("Mid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntervalIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{
			name: "overlapping",
			a:    Interval{Top: 0, Bottom: 50},
			b:    Interval{Top: 40, Bottom: 90},
			want: true,
		},
		{
			name: "disjoint",
			a:    Interval{Top: 0, Bottom: 50},
			b:    Interval{Top: 60, Bottom: 90},
			want: false,
		},
		{
			name: "touching edges do not intersect",
			a:    Interval{Top: 0, Bottom: 50},
			b:    Interval{Top: 50, Bottom: 90},
			want: false,
		},
		{
			name: "contained",
			a:    Interval{Top: 0, Bottom: 100},
			b:    Interval{Top: 30, Bottom: 40},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntervalShift(t *testing.T) {
	iv := Interval{Top: 10, Bottom: 60}

	down := iv.Shift(25)
	if down.Top != 35 || down.Bottom != 85 {
		t.Errorf("Shift(25) = %+v, want {35 85}", down)
	}

	up := iv.Shift(-10)
	if up.Top != 0 || up.Bottom != 50 {
		t.Errorf("Shift(-10) = %+v, want {0 50}", up)
	}
}

func TestBoxHorizontalOverlap(t *testing.T) {
	column := Box{Top: 0, Bottom: 1000, Left: 0, Right: 200}

	tests := []struct {
		name string
		box  Box
		want float64
	}{
		{
			name: "full overlap",
			box:  Box{Top: 100, Bottom: 200, Left: 50, Right: 150},
			want: 100,
		},
		{
			name: "partial overlap",
			box:  Box{Top: 100, Bottom: 200, Left: 150, Right: 400},
			want: 50,
		},
		{
			name: "disjoint",
			box:  Box{Top: 100, Bottom: 200, Left: 300, Right: 400},
			want: -100,
		},
		{
			name: "flush edge",
			box:  Box{Top: 100, Bottom: 200, Left: 200, Right: 400},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := column.HorizontalOverlap(tt.box); got != tt.want {
				t.Errorf("HorizontalOverlap() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSentinel(t *testing.T) {
	s := Sentinel(800)

	if s.Top != 800 || s.Bottom != 800 {
		t.Errorf("Sentinel(800) interval = %+v, want degenerate at 800", s.Interval)
	}
	if !s.IsSentinel() {
		t.Error("IsSentinel() = false, want true")
	}

	real := Obstacle{Interval: Interval{Top: 100, Bottom: 200}, ElementID: "table-1"}
	if real.IsSentinel() {
		t.Error("IsSentinel() = true for real element, want false")
	}
}
