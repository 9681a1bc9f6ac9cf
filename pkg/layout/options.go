package layout

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/SharkLava/gwern.net/pkg/errors"
	"github.com/SharkLava/gwern.net/pkg/sidenote"
)

// Options is the explicit configuration context for a layout session.
// It is constructed once per document session and passed into the driver;
// there is no global mutable engine state.
type Options struct {
	// Spacing is the minimum vertical gap between adjacent sidenotes in the
	// same column, in page units. Defaults to sidenote.DefaultSpacing.
	Spacing float64 `json:"spacing,omitempty" toml:"spacing,omitempty"`

	// RevealOnSuccess controls whether the driver marks columns revealed
	// after the first fully successful run. Defaults to true; snapshot
	// tooling may disable it.
	RevealOnSuccess bool `json:"reveal_on_success,omitempty" toml:"reveal_on_success,omitempty"`

	// Logger receives structured run diagnostics. Defaults to a discarding
	// logger.
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-" toml:"-"`
}

// DefaultOptions returns the options a live document session uses.
func DefaultOptions() Options {
	return Options{
		Spacing:         sidenote.DefaultSpacing,
		RevealOnSuccess: true,
	}
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Spacing < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "spacing must not be negative, got %v", o.Spacing)
	}
	if o.Spacing == 0 {
		o.Spacing = sidenote.DefaultSpacing
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
