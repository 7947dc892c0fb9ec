package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, pterm.LogLevelTrace, ParseLevel("TRACE"))
	assert.Equal(t, pterm.LogLevelDebug, ParseLevel(" debug "))
	assert.Equal(t, pterm.LogLevelInfo, ParseLevel("info"))
	assert.Equal(t, pterm.LogLevelError, ParseLevel("error"))
	assert.Equal(t, pterm.LogLevelDisabled, ParseLevel("off"))
	assert.Equal(t, pterm.LogLevelWarn, ParseLevel("whatever"))
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(pterm.LogLevelWarn, &buf)

	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown", l.Args("path", "/api/logout"))
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "/api/logout")
}

func TestPresentErrorMasks(t *testing.T) {
	assert.Equal(t, "", PresentError("login", nil))
	assert.Equal(t, "login: bad body senha=***", PresentError("login", errors.New("bad body senha=hunter2")))
}
