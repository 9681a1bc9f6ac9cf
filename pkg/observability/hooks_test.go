package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	layout := NoopLayoutHooks{}
	layout.OnRunStart(ctx, "run-1")
	layout.OnRunComplete(ctx, "run-1", time.Millisecond, nil)
	layout.OnColumnPlaced(ctx, "run-1", "left", "success", 3)
	layout.OnOverflow(ctx, "run-1", "right", 4)

	visibility := NoopVisibilityHooks{}
	visibility.OnNoteParked(ctx, 1)
	visibility.OnNoteRestored(ctx, 1)
	visibility.OnNoteSkipped(ctx, 2)
}

type testLayoutHooks struct {
	NoopLayoutHooks
	runs      []string
	overflows []int
}

func (h *testLayoutHooks) OnRunStart(_ context.Context, runID string) {
	h.runs = append(h.runs, runID)
}

func (h *testLayoutHooks) OnOverflow(_ context.Context, _, _ string, noteIndex int) {
	h.overflows = append(h.overflows, noteIndex)
}

type testVisibilityHooks struct {
	NoopVisibilityHooks
	parked []int
}

func (h *testVisibilityHooks) OnNoteParked(_ context.Context, noteIndex int) {
	h.parked = append(h.parked, noteIndex)
}

func TestGlobalHooksRegistry(t *testing.T) {
	defer Reset()

	ctx := context.Background()
	lh := &testLayoutHooks{}
	vh := &testVisibilityHooks{}

	SetLayoutHooks(lh)
	SetVisibilityHooks(vh)

	Layout().OnRunStart(ctx, "run-7")
	Layout().OnOverflow(ctx, "run-7", "left", 3)
	Visibility().OnNoteParked(ctx, 5)

	if len(lh.runs) != 1 || lh.runs[0] != "run-7" {
		t.Errorf("runs = %v, want [run-7]", lh.runs)
	}
	if len(lh.overflows) != 1 || lh.overflows[0] != 3 {
		t.Errorf("overflows = %v, want [3]", lh.overflows)
	}
	if len(vh.parked) != 1 || vh.parked[0] != 5 {
		t.Errorf("parked = %v, want [5]", vh.parked)
	}

	// Nil registrations are ignored.
	SetLayoutHooks(nil)
	SetVisibilityHooks(nil)
	if Layout() != LayoutHooks(lh) {
		t.Error("SetLayoutHooks(nil) replaced registered hooks")
	}

	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Errorf("Layout() after Reset = %T, want NoopLayoutHooks", Layout())
	}
	if _, ok := Visibility().(NoopVisibilityHooks); !ok {
		t.Errorf("Visibility() after Reset = %T, want NoopVisibilityHooks", Visibility())
	}
}
