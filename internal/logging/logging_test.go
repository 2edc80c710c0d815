package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGetLoggerDefaultIsSilent(t *testing.T) {
	l := GetLogger("test")
	if l.GetLevel() != zerolog.Disabled {
		t.Errorf("default level = %v, want disabled", l.GetLevel())
	}
}

func TestSetLoggerTagsComponent(t *testing.T) {
	saved := *current.Load()
	t.Cleanup(func() { SetLogger(saved) })

	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))

	log := GetLogger("emit")
	log.Info().Msg("compiled")

	out := buf.String()
	if !strings.Contains(out, `"component":"emit"`) {
		t.Errorf("output %q has no component field", out)
	}
	if !strings.Contains(out, `"message":"compiled"`) {
		t.Errorf("output %q has no message", out)
	}
}
