package layout

import (
	"testing"

	"github.com/SharkLava/gwern.net/pkg/errors"
	"github.com/SharkLava/gwern.net/pkg/sidenote"
)

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	t.Run("zero value gets defaults", func(t *testing.T) {
		var opts Options
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("ValidateAndSetDefaults() error = %v", err)
		}
		if opts.Spacing != sidenote.DefaultSpacing {
			t.Errorf("Spacing = %v, want %v", opts.Spacing, sidenote.DefaultSpacing)
		}
		if opts.Logger == nil {
			t.Error("Logger = nil after defaults")
		}
	})

	t.Run("negative spacing rejected", func(t *testing.T) {
		opts := Options{Spacing: -1}
		err := opts.ValidateAndSetDefaults()
		if !errors.Is(err, errors.ErrCodeInvalidOptions) {
			t.Errorf("error = %v, want %v", err, errors.ErrCodeInvalidOptions)
		}
	})

	t.Run("explicit spacing kept", func(t *testing.T) {
		opts := Options{Spacing: 24}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("ValidateAndSetDefaults() error = %v", err)
		}
		if opts.Spacing != 24 {
			t.Errorf("Spacing = %v, want 24", opts.Spacing)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		opts := DefaultOptions()
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		logger := opts.Logger
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if opts.Logger != logger {
			t.Error("second validation replaced the logger")
		}
	})
}
