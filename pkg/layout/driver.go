package layout

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/SharkLava/gwern.net/pkg/document"
	"github.com/SharkLava/gwern.net/pkg/errors"
	"github.com/SharkLava/gwern.net/pkg/geom"
	"github.com/SharkLava/gwern.net/pkg/geometry"
	"github.com/SharkLava/gwern.net/pkg/observability"
	"github.com/SharkLava/gwern.net/pkg/sidenote"
)

// Driver orchestrates layout runs in response to external triggers and
// reports their outcome. It owns the two column structures, the parked
// store, and the note set; nothing else mutates them.
//
// Driver is single-threaded by design: the engine executes on the host's
// rendering thread and never blocks beyond the one Settle yield per run.
// A run triggered while another run's effects are mid-flight is not atomic
// with the previous run - last-write-wins, since each run recomputes from
// current geometry rather than prior output.
type Driver struct {
	opts     Options
	doc      *document.Document
	provider geometry.Provider

	notes  []*sidenote.Note
	left   *sidenote.Column
	right  *sidenote.Column
	park   *Park

	// baseLeft and baseRight are the columns' measured boxes before
	// re-homing; re-homing adjusts their top edge each run.
	baseLeft  geom.Box
	baseRight geom.Box

	generation  uint64
	revealed    bool
	constructed bool

	lastReport    sidenote.RunReport
	onComplete    []func(sidenote.RunReport)
	onConstructed []func()
}

// New creates a driver for a document session. The column boxes are the
// measured extents of the left and right margin tracks; opts is the
// explicit configuration context (spacing, logging, reveal behavior)
// constructed once per session.
//
// Construction builds one note per anchor, bucketed by index parity, and
// fires the constructed notification once the column structures exist.
func New(doc *document.Document, p geometry.Provider, left, right geom.Box, opts Options) (*Driver, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	// An undeclared display mode means sidenote display; left empty it
	// would fail the post-settle staleness check and skip every run.
	if doc.Mode == "" {
		doc.Mode = document.ModeSidenote
	}

	d := &Driver{
		opts:      opts,
		doc:       doc,
		provider:  p,
		left:      sidenote.NewColumn(sidenote.SideLeft),
		right:     sidenote.NewColumn(sidenote.SideRight),
		park:      NewPark(),
		baseLeft:  left,
		baseRight: right,
	}
	d.left.Box = left
	d.right.Box = right
	d.construct()
	return d, nil
}

// NewFromSnapshot creates a driver over a static snapshot, wiring up a
// geometry provider from the captured boxes. A zero opts.Spacing falls back
// to the snapshot's spacing override, then the default; a non-zero
// opts.Spacing wins over both.
func NewFromSnapshot(snap *document.Snapshot, opts Options) (*Driver, *geometry.Static, error) {
	if opts.Spacing == 0 {
		opts.Spacing = snap.EffectiveSpacing()
	}
	p := geometry.NewStatic(snap.Boxes)
	d, err := New(&snap.Document, p, snap.Left, snap.Right, opts)
	if err != nil {
		return nil, nil, err
	}
	return d, p, nil
}

// construct builds the note set from the document's anchors and attaches
// every note to its column. All notes start visible; the first run's
// classification pass parks whatever is hidden.
func (d *Driver) construct() {
	d.notes = make([]*sidenote.Note, 0, len(d.doc.Anchors))
	for i, a := range d.doc.Anchors {
		n := &sidenote.Note{
			Index:    i + 1,
			AnchorID: a.ID,
			BodyID:   a.Body,
			Visible:  true,
		}
		d.notes = append(d.notes, n)
		if n.Side() == sidenote.SideLeft {
			d.left.Insert(n)
		} else {
			d.right.Insert(n)
		}
	}
	d.constructed = true
	for _, fn := range d.onConstructed {
		fn()
	}
}

// teardown empties the columns and the park. Used when the viewport mode
// signal switches to footnote display; the note set itself survives until
// full document reconstruction.
func (d *Driver) teardown() {
	d.left.Notes = nil
	d.left.Obstacles = nil
	d.right.Notes = nil
	d.right.Obstacles = nil
	d.park = NewPark()
	d.revealed = false
	d.constructed = false
}

// Notes returns the driver's notes in index order.
func (d *Driver) Notes() []*sidenote.Note { return d.notes }

// Column returns the column for a side.
func (d *Driver) Column(side sidenote.Side) *sidenote.Column {
	if side == sidenote.SideLeft {
		return d.left
	}
	return d.right
}

// Parked returns the inert store.
func (d *Driver) Parked() *Park { return d.park }

// Revealed reports whether the columns are currently shown. Columns are
// revealed only after a fully successful run, so an overflowing layout is
// never displayed.
func (d *Driver) Revealed() bool { return d.revealed }

// LastReport returns the most recent run's report.
func (d *Driver) LastReport() sidenote.RunReport { return d.lastReport }

// OnLayoutComplete registers a callback fired after each successful run
// with the run's report. Consumers needing final sidenote positions (for
// example highlight targeting) subscribe here.
func (d *Driver) OnLayoutComplete(fn func(sidenote.RunReport)) {
	d.onComplete = append(d.onComplete, fn)
}

// OnConstructed registers a callback fired whenever the column structures
// are (re)built.
func (d *Driver) OnConstructed(fn func()) {
	d.onConstructed = append(d.onConstructed, fn)
	if d.constructed {
		fn()
	}
}

// =============================================================================
// Triggers
// =============================================================================

// GeometryChanged schedules a full re-run after a resize or content change.
func (d *Driver) GeometryChanged(ctx context.Context) (sidenote.RunReport, error) {
	return d.RunLayout(ctx)
}

// VisibilityChanged schedules a full re-run after a disclosure region
// collapses or expands.
func (d *Driver) VisibilityChanged(ctx context.Context) (sidenote.RunReport, error) {
	return d.RunLayout(ctx)
}

// ModeChanged switches the document's display mode. Switching to footnote
// mode tears the columns down; switching to sidenote mode rebuilds them and
// runs a full layout.
func (d *Driver) ModeChanged(ctx context.Context, mode string) (sidenote.RunReport, error) {
	if !document.ValidMode(mode) {
		return sidenote.RunReport{}, errors.New(errors.ErrCodeInvalidMode, "unknown display mode %q", mode)
	}
	if mode == d.doc.Mode {
		return d.RunLayout(ctx)
	}
	d.doc.Mode = mode
	if mode == document.ModeFootnote {
		d.teardown()
		return sidenote.RunReport{Mode: mode, Skipped: true}, nil
	}
	d.construct()
	return d.RunLayout(ctx)
}

// =============================================================================
// Layout Runs
// =============================================================================

// RunLayout executes one full layout pass: classify visibility, settle,
// measure, collect obstacles, place each column, and flush offsets. It is
// idempotent - with unchanged geometry and visibility a second run produces
// identical offsets.
//
// In footnote display mode the run is a no-op, not an error. Overflow and
// missing anchor geometry are contained per-run and surfaced through the
// returned report; RunLayout only returns an error for cancellation or
// invalid state.
func (d *Driver) RunLayout(ctx context.Context) (sidenote.RunReport, error) {
	start := time.Now()
	report := sidenote.RunReport{
		RunID: uuid.NewString(),
		Mode:  d.doc.Mode,
	}

	if d.doc.Mode == document.ModeFootnote {
		report.Skipped = true
		d.lastReport = report
		return report, nil
	}

	d.generation++
	gen := d.generation
	logger := d.opts.Logger.With("run", report.RunID)
	observability.Layout().OnRunStart(ctx, report.RunID)

	// Mutate first: reclassify notes between columns and the park, and
	// re-home the column boundaries to the first full-bleed content block.
	Reclassify(ctx, d.doc, d.notes, d.left, d.right, d.park)
	d.rehomeColumns()

	// Commit-then-measure: one yield so the host's rendering pipeline
	// reflects the mutations before any measurement is taken.
	if err := d.provider.Settle(ctx); err != nil {
		return report, errors.Wrap(errors.ErrCodeInternal, err, "settle before measure")
	}

	// A superseding trigger during the yield, or a mode flip, makes this
	// run's measurements stale; abandon without writing.
	if gen != d.generation || d.doc.Mode != document.ModeSidenote {
		logger.Debug("run superseded before measurement", "generation", gen)
		report.Skipped = true
		return report, nil
	}

	d.measure(ctx)

	allOK := true
	for _, col := range []*sidenote.Column{d.left, d.right} {
		cr := d.placeColumn(ctx, report.RunID, col, logger)
		if cr.Outcome == sidenote.OutcomeOverflow {
			allOK = false
		}
		report.Columns = append(report.Columns, cr)
	}

	if allOK && d.opts.RevealOnSuccess {
		d.revealed = true
	}

	report.Duration = time.Since(start)
	d.lastReport = report
	observability.Layout().OnRunComplete(ctx, report.RunID, report.Duration, nil)
	logger.Debug("layout run finished",
		"success", report.Success(),
		"parked", d.park.Len(),
		"duration", report.Duration.Round(time.Microsecond))

	if report.Success() {
		for _, fn := range d.onComplete {
			fn(report)
		}
	}
	return report, nil
}

// rehomeColumns aligns both columns' top edges with the first full-bleed
// content block, keeping their bottom edges fixed.
func (d *Driver) rehomeColumns() {
	d.left.Box = d.baseLeft
	d.right.Box = d.baseRight
	id := d.doc.FirstFullBleed
	if id == "" {
		return
	}
	box, ok := d.provider.BoundingBox(id)
	if !ok {
		return
	}
	d.left.Box.Top = box.Top
	d.right.Box.Top = box.Top
}

// measure refreshes every visible note's anchor offset and height from
// current geometry. A note whose anchor or body cannot be measured is
// skipped for this run - marked invisible without parking - and retried on
// the next trigger.
func (d *Driver) measure(ctx context.Context) {
	for _, n := range d.notes {
		if !n.Visible {
			continue
		}
		col := d.Column(n.Side())
		anchorBox, okAnchor := d.provider.BoundingBox(n.AnchorID)
		bodyBox, okBody := d.provider.BoundingBox(n.BodyID)
		if !okAnchor || !okBody {
			n.Visible = false
			observability.Visibility().OnNoteSkipped(ctx, n.Index)
			continue
		}
		n.AnchorOffset = anchorBox.Top - col.Box.Top
		n.Height = bodyBox.Height()
	}
}

// placeColumn collects obstacles and runs the placement engine for one
// column. On success the new offsets are flushed through the geometry
// provider; on overflow every note's previous top is restored so the column
// is never left partially placed.
func (d *Driver) placeColumn(ctx context.Context, runID string, col *sidenote.Column, logger *log.Logger) sidenote.ColumnReport {
	col.Obstacles = CollectObstacles(d.provider, d.doc.Obstructions, col)

	visible := col.VisibleNotes()
	cr := sidenote.ColumnReport{
		Side:      col.Side.String(),
		Obstacles: len(col.Obstacles),
		Parked:    d.park.Len(),
	}

	prevTops := make([]float64, len(visible))
	for i, n := range visible {
		prevTops[i] = n.CurrentTop
	}

	if err := Place(col, d.opts.Spacing); err != nil {
		for i, n := range visible {
			n.CurrentTop = prevTops[i]
		}
		cr.Outcome = outcomeForError(err)
		cr.Error = errors.UserMessage(err)
		observability.Layout().OnColumnPlaced(ctx, runID, cr.Side, cr.Outcome, len(visible))
		if cr.Outcome == sidenote.OutcomeOverflow {
			if len(visible) > 0 {
				observability.Layout().OnOverflow(ctx, runID, cr.Side, visible[len(visible)-1].Index)
			}
			logger.Warn("column overflow, keeping previous placement",
				"side", cr.Side, "notes", len(visible), "error", errors.UserMessage(err))
		} else {
			logger.Error("column placement failed, keeping previous placement",
				"side", cr.Side, "notes", len(visible), "error", errors.UserMessage(err))
		}
		return cr
	}

	cr.Outcome = sidenote.OutcomeSuccess
	cr.Placements = make([]sidenote.Placement, 0, len(visible))
	for _, n := range visible {
		d.provider.ApplyTop(n.BodyID, col.Box.Top+n.CurrentTop)
		cr.Placements = append(cr.Placements, sidenote.Placement{
			Index:  n.Index,
			BodyID: n.BodyID,
			Side:   cr.Side,
			Top:    n.CurrentTop,
			Height: n.Height,
		})
	}
	observability.Layout().OnColumnPlaced(ctx, runID, cr.Side, cr.Outcome, len(visible))
	return cr
}

// outcomeForError maps a placement failure to its column outcome: overflow
// is an expected per-run condition, everything else is an engine error.
func outcomeForError(err error) string {
	if errors.Is(err, errors.ErrCodeOverflow) {
		return sidenote.OutcomeOverflow
	}
	return sidenote.OutcomeError
}
