package logging

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.True(t, logger != nil)
	// must accept every level without output or panic
	logger.Debug("debug")
	logger.Info("info")
	logger.Error("error", nil)
}

func TestNew(t *testing.T) {
	assert.True(t, New(true, false) != nil)
	assert.True(t, New(false, true) != nil)
	assert.True(t, New(false, false) != nil)
}
