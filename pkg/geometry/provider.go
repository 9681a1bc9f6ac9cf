// Package geometry abstracts the host's rendering pipeline behind a small
// measurement interface. The layout engine only ever reads element bounding
// boxes and writes back final sidenote offsets; everything else about the
// host (DOM, terminal, test fixture) is invisible to it.
//
// Measurement follows a commit-then-measure discipline: after mutating
// content the driver calls Settle once to let the host's rendering pipeline
// apply the mutations, and only then takes measurements. Settle is the
// engine's single suspension point per run.
package geometry

import (
	"context"

	"github.com/SharkLava/gwern.net/pkg/geom"
)

// Provider exposes current page geometry for tracked elements.
// Reads are cheap and may be repeated; the engine never caches boxes across
// runs.
type Provider interface {
	// BoundingBox returns the element's current box in the shared page
	// coordinate space. The second return is false when the element cannot
	// be measured yet (for example, the document is still loading).
	BoundingBox(id string) (geom.Box, bool)

	// ApplyTop moves the element so its top edge sits at the given page
	// offset. Only the layout driver calls this, and only for annotation
	// blocks in columns that placed successfully.
	ApplyTop(id string, top float64)

	// Settle yields once so pending mutations are reflected in subsequent
	// measurements. It returns early with the context's error if the run
	// is cancelled while waiting.
	Settle(ctx context.Context) error
}
