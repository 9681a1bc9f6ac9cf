package sidenote

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// =============================================================================
// Run Reports - Serialized Layout Results
// =============================================================================

// Column outcomes for a layout run.
const (
	// OutcomeSuccess means every visible note in the column was placed and
	// the new offsets were applied.
	OutcomeSuccess = "success"
	// OutcomeOverflow means the column could not fit its notes; it keeps
	// its previous valid placement.
	OutcomeOverflow = "overflow"
	// OutcomeSkipped means the run did not touch the column (for example,
	// the document was in footnote mode).
	OutcomeSkipped = "skipped"
	// OutcomeError means placement failed for a reason other than overflow;
	// the column keeps its previous placement.
	OutcomeError = "error"
)

// Placement is the final position of one sidenote after a successful run.
type Placement struct {
	Index  int     `json:"index"`
	BodyID string  `json:"body_id"`
	Side   string  `json:"side"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// ColumnReport summarizes one column's outcome for a run.
type ColumnReport struct {
	Side       string      `json:"side"`
	Outcome    string      `json:"outcome"`
	Placements []Placement `json:"placements,omitempty"`
	Obstacles  int         `json:"obstacles"`
	Parked     int         `json:"parked"`
	Error      string      `json:"error,omitempty"`
}

// RunReport is the canonical serialization of a layout run. It is what the
// CLI prints, the HTTP surface returns, and the layout-complete notification
// carries. Positions are a snapshot of one run; they are never read back by
// the engine.
type RunReport struct {
	RunID    string         `json:"run_id"`
	Mode     string         `json:"mode"`
	Skipped  bool           `json:"skipped,omitempty"`
	Columns  []ColumnReport `json:"columns,omitempty"`
	Duration time.Duration  `json:"duration_ns"`
}

// Success reports whether every placed column succeeded. A skipped run
// counts as successful: a no-op is not an error.
func (r RunReport) Success() bool {
	for _, c := range r.Columns {
		if c.Outcome == OutcomeOverflow || c.Outcome == OutcomeError {
			return false
		}
	}
	return true
}

// Column returns the report for the given side, or nil if the run did not
// cover it.
func (r RunReport) Column(side Side) *ColumnReport {
	for i := range r.Columns {
		if r.Columns[i].Side == side.String() {
			return &r.Columns[i]
		}
	}
	return nil
}

// MarshalReport serializes a RunReport to pretty-printed JSON bytes.
func MarshalReport(r RunReport) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// UnmarshalReport deserializes JSON bytes into a RunReport.
func UnmarshalReport(data []byte) (RunReport, error) {
	var r RunReport
	if err := json.Unmarshal(data, &r); err != nil {
		return RunReport{}, fmt.Errorf("unmarshal report: %w", err)
	}
	return r, nil
}

// WriteReportFile writes a RunReport to a JSON file.
func WriteReportFile(r RunReport, path string) error {
	data, err := MarshalReport(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
