// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Hosts can register hooks
// at startup to receive events about layout runs, placement outcomes, and
// sidenote visibility churn.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core engine dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    // ... run application
//	}
//
// The engine calls hooks to emit events:
//
//	observability.Layout().OnRunStart(ctx, runID)
//	// ... place columns ...
//	observability.Layout().OnRunComplete(ctx, runID, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the layout driver and placement engine.
type LayoutHooks interface {
	// Run events
	OnRunStart(ctx context.Context, runID string)
	OnRunComplete(ctx context.Context, runID string, duration time.Duration, err error)

	// OnColumnPlaced records a per-column placement outcome: "success",
	// "overflow", or "skipped".
	OnColumnPlaced(ctx context.Context, runID, side, outcome string, notes int)

	// OnOverflow records that a column could not fit its content and was
	// left at its previous valid placement.
	OnOverflow(ctx context.Context, runID, side string, noteIndex int)
}

// =============================================================================
// Visibility Hooks
// =============================================================================

// VisibilityHooks receives events from sidenote visibility reclassification.
type VisibilityHooks interface {
	// OnNoteParked records a note being withheld into the inert store.
	OnNoteParked(ctx context.Context, noteIndex int)

	// OnNoteRestored records a parked note re-entering its column.
	OnNoteRestored(ctx context.Context, noteIndex int)

	// OnNoteSkipped records a note skipped for one run because its anchor
	// geometry could not be measured.
	OnNoteSkipped(ctx context.Context, noteIndex int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnRunStart(context.Context, string)                              {}
func (NoopLayoutHooks) OnRunComplete(context.Context, string, time.Duration, error)     {}
func (NoopLayoutHooks) OnColumnPlaced(context.Context, string, string, string, int)     {}
func (NoopLayoutHooks) OnOverflow(context.Context, string, string, int)                 {}

// NoopVisibilityHooks is a no-op implementation of VisibilityHooks.
type NoopVisibilityHooks struct{}

func (NoopVisibilityHooks) OnNoteParked(context.Context, int)   {}
func (NoopVisibilityHooks) OnNoteRestored(context.Context, int) {}
func (NoopVisibilityHooks) OnNoteSkipped(context.Context, int)  {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks     LayoutHooks     = NoopLayoutHooks{}
	visibilityHooks VisibilityHooks = NoopVisibilityHooks{}
	hooksMu         sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout runs.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetVisibilityHooks registers custom visibility hooks.
// This should be called once at application startup before any layout runs.
func SetVisibilityHooks(h VisibilityHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		visibilityHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Visibility returns the registered visibility hooks.
func Visibility() VisibilityHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return visibilityHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	visibilityHooks = NoopVisibilityHooks{}
}
