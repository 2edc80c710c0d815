// Package logging holds the process logger shared by the scrive packages.
//
// The logger is silent until an application installs one with SetLogger,
// so importing scrive never produces output on its own.
package logging

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var current atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	current.Store(&nop)
}

// SetLogger installs l as the process logger.
func SetLogger(l zerolog.Logger) {
	current.Store(&l)
}

// GetLogger returns the process logger tagged with the given component name.
func GetLogger(component string) zerolog.Logger {
	return current.Load().With().Str("component", component).Logger()
}
