package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"github.com/SharkLava/gwern.net/pkg/sidenote"
)

const layoutRequest = `{
  "document": {
    "mode": "sidenote",
    "anchors": [
      {"id": "fnref-1", "body": "sn-1"},
      {"id": "fnref-2", "body": "sn-2"}
    ]
  },
  "boxes": {
    "fnref-1": {"top": 100, "bottom": 120, "left": 300, "right": 320},
    "sn-1": {"top": 0, "bottom": 80, "left": 0, "right": 200},
    "fnref-2": {"top": 300, "bottom": 320, "left": 500, "right": 520},
    "sn-2": {"top": 0, "bottom": 120, "left": 900, "right": 1100}
  },
  "left": {"top": 0, "bottom": 2000, "left": 0, "right": 200},
  "right": {"top": 0, "bottom": 2000, "left": 900, "right": 1100}
}`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := charmlog.NewWithOptions(io.Discard, charmlog.Options{})
	srv := httptest.NewServer(newRouter(DefaultConfig(), logger))
	t.Cleanup(srv.Close)
	return srv
}

func TestServeHealthz(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestServeLayout(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/layout", "application/json", strings.NewReader(layoutRequest))
	if err != nil {
		t.Fatalf("POST /layout: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}

	var report sidenote.RunReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !report.Success() || report.RunID == "" {
		t.Fatalf("report = %+v, want successful run with ID", report)
	}

	left := report.Column(sidenote.SideLeft)
	if left == nil || len(left.Placements) != 1 || left.Placements[0].Top != 100 {
		t.Errorf("left column = %+v, want one anchor-aligned placement", left)
	}
}

func TestServeLayoutBadRequest(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{nope"},
		{"invalid document", `{"document": {"anchors": [{"id": "a"}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/layout", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
			var herr httpError
			if err := json.NewDecoder(resp.Body).Decode(&herr); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if herr.Message == "" {
				t.Error("error body has empty message")
			}
		})
	}
}

func TestReportStatus(t *testing.T) {
	tests := []struct {
		name   string
		report sidenote.RunReport
		want   string
	}{
		{"skipped", sidenote.RunReport{Skipped: true}, sidenote.OutcomeSkipped},
		{"success", sidenote.RunReport{}, sidenote.OutcomeSuccess},
		{
			"overflow",
			sidenote.RunReport{Columns: []sidenote.ColumnReport{{Outcome: sidenote.OutcomeOverflow}}},
			sidenote.OutcomeOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reportStatus(tt.report); got != tt.want {
				t.Errorf("reportStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}
