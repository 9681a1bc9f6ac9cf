package document

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/SharkLava/gwern.net/pkg/errors"
	"github.com/SharkLava/gwern.net/pkg/geom"
	"github.com/SharkLava/gwern.net/pkg/sidenote"
)

// Snapshot is a self-contained capture of a document and the measured page
// geometry it was last observed with. Snapshots exist for tooling and tests;
// a live host supplies the same data through its own geometry provider.
type Snapshot struct {
	Document Document `json:"document" toml:"document"`

	// Boxes maps element IDs (anchors, annotation bodies, obstructions,
	// full-bleed blocks) to their measured bounding boxes.
	Boxes map[string]geom.Box `json:"boxes" toml:"boxes"`

	// Left and Right are the margin columns' bounding boxes before
	// re-homing.
	Left  geom.Box `json:"left" toml:"left"`
	Right geom.Box `json:"right" toml:"right"`

	// Spacing overrides the minimum gap between adjacent sidenotes.
	// Zero means sidenote.DefaultSpacing.
	Spacing float64 `json:"spacing,omitempty" toml:"spacing,omitempty"`
}

// Validate checks the document structure and that every referenced element
// has measured geometry. Anchors without geometry are allowed - they are
// skipped per-run, not rejected at load time - but obstruction and
// full-bleed references must resolve.
func (s *Snapshot) Validate() error {
	if err := s.Document.Validate(); err != nil {
		return err
	}
	for _, id := range s.Document.Obstructions {
		if _, ok := s.Boxes[id]; !ok {
			return errors.New(errors.ErrCodeMissingGeometry, "obstruction %q has no measured box", id)
		}
	}
	if id := s.Document.FirstFullBleed; id != "" {
		if _, ok := s.Boxes[id]; !ok {
			return errors.New(errors.ErrCodeMissingGeometry, "full-bleed block %q has no measured box", id)
		}
	}
	return nil
}

// EffectiveSpacing returns the snapshot's spacing override, or the default.
func (s *Snapshot) EffectiveSpacing() float64 {
	if s.Spacing > 0 {
		return s.Spacing
	}
	return sidenote.DefaultSpacing
}

// LoadSnapshot reads a snapshot from a JSON or TOML file, chosen by
// extension (.toml decodes as TOML, anything else as JSON), and validates it.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "snapshot %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "read %s", path)
	}

	var s Snapshot
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &s)
	} else {
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode %s", path)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseSnapshot decodes and validates a JSON snapshot from raw bytes.
// This is the entry point for the HTTP surface.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode snapshot body")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
