package sidenote

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunReportSuccess(t *testing.T) {
	tests := []struct {
		name   string
		report RunReport
		want   bool
	}{
		{
			name: "all columns placed",
			report: RunReport{Columns: []ColumnReport{
				{Side: "left", Outcome: OutcomeSuccess},
				{Side: "right", Outcome: OutcomeSuccess},
			}},
			want: true,
		},
		{
			name: "one overflow",
			report: RunReport{Columns: []ColumnReport{
				{Side: "left", Outcome: OutcomeSuccess},
				{Side: "right", Outcome: OutcomeOverflow},
			}},
			want: false,
		},
		{
			name: "placement error",
			report: RunReport{Columns: []ColumnReport{
				{Side: "left", Outcome: OutcomeError},
				{Side: "right", Outcome: OutcomeSuccess},
			}},
			want: false,
		},
		{
			name:   "skipped run counts as success",
			report: RunReport{Skipped: true},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.report.Success(); got != tt.want {
				t.Errorf("Success() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunReportColumn(t *testing.T) {
	r := RunReport{Columns: []ColumnReport{
		{Side: "left", Outcome: OutcomeSuccess},
		{Side: "right", Outcome: OutcomeOverflow},
	}}

	left := r.Column(SideLeft)
	if left == nil || left.Outcome != OutcomeSuccess {
		t.Errorf("Column(SideLeft) = %+v, want success column", left)
	}
	right := r.Column(SideRight)
	if right == nil || right.Outcome != OutcomeOverflow {
		t.Errorf("Column(SideRight) = %+v, want overflow column", right)
	}

	empty := RunReport{Skipped: true}
	if got := empty.Column(SideLeft); got != nil {
		t.Errorf("Column on skipped run = %+v, want nil", got)
	}
}

func TestReportRoundTrip(t *testing.T) {
	r := RunReport{
		RunID: "run-1",
		Mode:  "sidenote",
		Columns: []ColumnReport{
			{
				Side:    "left",
				Outcome: OutcomeSuccess,
				Placements: []Placement{
					{Index: 1, BodyID: "sn-1", Side: "left", Top: 0, Height: 100},
				},
				Obstacles: 1,
			},
		},
	}

	path := filepath.Join(t.TempDir(), "run.report.json")
	if err := WriteReportFile(r, path); err != nil {
		t.Fatalf("WriteReportFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	got, err := UnmarshalReport(data)
	if err != nil {
		t.Fatalf("UnmarshalReport() error = %v", err)
	}

	if got.RunID != r.RunID || got.Mode != r.Mode {
		t.Errorf("round trip = %+v, want %+v", got, r)
	}
	if len(got.Columns) != 1 || len(got.Columns[0].Placements) != 1 {
		t.Fatalf("round trip columns = %+v", got.Columns)
	}
	if got.Columns[0].Placements[0] != r.Columns[0].Placements[0] {
		t.Errorf("placement = %+v, want %+v", got.Columns[0].Placements[0], r.Columns[0].Placements[0])
	}
}

func TestUnmarshalReportInvalid(t *testing.T) {
	if _, err := UnmarshalReport([]byte("{not json")); err == nil {
		t.Error("UnmarshalReport() error = nil, want parse error")
	}
}
