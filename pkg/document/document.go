// Package document models the structure the layout engine consumes from its
// document-parsing collaborator: the ordered anchor/annotation pairs,
// the disclosure (collapse) regions anchors may be nested in, and the page
// elements that sidenotes must route around.
//
// The engine never parses document markup itself. A Document is handed to it
// fully constructed, stable for a session, and paired with a geometry
// provider that can measure the referenced element IDs.
package document

import (
	"github.com/SharkLava/gwern.net/pkg/errors"
)

// Display modes for a document. The viewport mode signal flips between them;
// the layout engine only operates in sidenote mode.
const (
	ModeSidenote = "sidenote"
	ModeFootnote = "footnote"
)

// ValidMode reports whether mode is a recognized display mode.
func ValidMode(mode string) bool {
	return mode == ModeSidenote || mode == ModeFootnote
}

// Anchor pairs an in-text reference mark with its annotation block.
// Anchors are 1-indexed by their position in Document.Anchors.
type Anchor struct {
	// ID is the geometry element ID of the reference mark in the body text.
	ID string `json:"id" toml:"id"`

	// Body is the geometry element ID of the rendered annotation block.
	Body string `json:"body" toml:"body"`

	// Region is the ID of the innermost disclosure region containing the
	// anchor, or empty when the anchor sits in always-visible text.
	Region string `json:"region,omitempty" toml:"region,omitempty"`
}

// Region is a collapsible disclosure section of the document. A region nested in a
// collapsed ancestor is hidden regardless of its own Collapsed flag.
type Region struct {
	ID        string `json:"id" toml:"id"`
	Parent    string `json:"parent,omitempty" toml:"parent,omitempty"`
	Collapsed bool   `json:"collapsed" toml:"collapsed"`
}

// Document is the structural view of one loaded page.
type Document struct {
	// Title is informational only.
	Title string `json:"title,omitempty" toml:"title,omitempty"`

	// Mode is the current display mode: ModeSidenote or ModeFootnote.
	Mode string `json:"mode" toml:"mode"`

	// Anchors are the footnote references in document order. Position+1 is
	// the sidenote index that decides left/right column assignment.
	Anchors []Anchor `json:"anchors" toml:"anchors"`

	// Regions are the disclosure regions, keyed by ID via Region().
	Regions []Region `json:"regions,omitempty" toml:"regions,omitempty"`

	// Obstructions are element IDs flagged as potentially overlapping the
	// margin columns (full-width tables, figures, margin content), in
	// document order.
	Obstructions []string `json:"obstructions,omitempty" toml:"obstructions,omitempty"`

	// FirstFullBleed is the element ID the column boundaries are re-homed
	// to before each run, or empty to keep the columns' own geometry.
	FirstFullBleed string `json:"first_full_bleed,omitempty" toml:"first_full_bleed,omitempty"`
}

// Validate checks cross-references inside the document: anchors must name a
// body element, anchor regions must exist, and region parents must exist.
func (d *Document) Validate() error {
	if d.Mode != "" && !ValidMode(d.Mode) {
		return errors.New(errors.ErrCodeInvalidMode, "unknown display mode %q", d.Mode)
	}
	regions := make(map[string]bool, len(d.Regions))
	for _, r := range d.Regions {
		if r.ID == "" {
			return errors.New(errors.ErrCodeInvalidRegion, "region with empty ID")
		}
		if regions[r.ID] {
			return errors.New(errors.ErrCodeInvalidRegion, "duplicate region %q", r.ID)
		}
		regions[r.ID] = true
	}
	for _, r := range d.Regions {
		if r.Parent != "" && !regions[r.Parent] {
			return errors.New(errors.ErrCodeInvalidRegion, "region %q references unknown parent %q", r.ID, r.Parent)
		}
	}
	for i, a := range d.Anchors {
		if a.ID == "" || a.Body == "" {
			return errors.New(errors.ErrCodeInvalidSnapshot, "anchor %d missing element IDs", i+1)
		}
		if a.Region != "" && !regions[a.Region] {
			return errors.New(errors.ErrCodeInvalidRegion, "anchor %d references unknown region %q", i+1, a.Region)
		}
	}
	return nil
}

// Region looks up a disclosure region by ID.
func (d *Document) Region(id string) (Region, bool) {
	for _, r := range d.Regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

// Collapsed reports whether the region, or any of its ancestors, is
// currently collapsed. The ancestor chain is walked iteratively; a chain
// that loops back on itself (malformed input) terminates at the revisit.
// An unknown region ID is treated as not collapsed.
func (d *Document) Collapsed(regionID string) bool {
	seen := make(map[string]bool)
	for id := regionID; id != "" && !seen[id]; {
		seen[id] = true
		r, ok := d.Region(id)
		if !ok {
			return false
		}
		if r.Collapsed {
			return true
		}
		id = r.Parent
	}
	return false
}

// SetCollapsed updates a region's own collapsed state. Returns an error for
// unknown region IDs.
func (d *Document) SetCollapsed(regionID string, collapsed bool) error {
	for i := range d.Regions {
		if d.Regions[i].ID == regionID {
			d.Regions[i].Collapsed = collapsed
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidRegion, "unknown region %q", regionID)
}
