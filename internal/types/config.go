package types

import (
	"slices"

	ierr "github.com/flexprice/pricing/internal/errors"
)

type RunMode string

const (
	// ModeLocal runs the API server with a catalog loaded from disk
	ModeLocal RunMode = "local"
	// ModeAPI runs just the API server
	ModeAPI RunMode = "api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func (m RunMode) Validate() error {
	if !slices.Contains([]RunMode{ModeLocal, ModeAPI}, m) {
		return ierr.NewErrorf("invalid run mode %q", m).
			WithHint("Deployment mode must be either local or api").
			Mark(ierr.ErrValidation)
	}
	return nil
}
