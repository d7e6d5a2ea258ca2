package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_MapsLevelStringsToZerologLevels(t *testing.T) {
	cases := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		New(Config{Level: tc.level})
		assert.Equal(t, tc.expected, zerolog.GlobalLevel())
	}
}

func TestNew_ReturnsUsableLogger(t *testing.T) {
	log := New(Config{Level: "info"})
	assert.NotNil(t, log.Info())
}

func TestNew_PrettyModeDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		New(Config{Level: "debug", Pretty: true})
	})
}
