package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
}

func TestNewLogger_JSONWritesKeyvals(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Config{Level: DebugLevel, Output: &buf, JSON: true})

	l.With("user_id", 7).Info("first step accepted", "validator", "single_sentence")

	out := buf.String()
	require.Contains(t, out, `"msg":"first step accepted"`)
	assert.Contains(t, out, `"user_id":7`)
	assert.Contains(t, out, `"validator":"single_sentence"`)
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Config{Level: WarnLevel, Output: &buf})

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFromContext(t *testing.T) {
	t.Run("Should fall back to the default logger", func(t *testing.T) {
		assert.Equal(t, GetDefault(), FromContext(context.Background()))
	})

	t.Run("Should return the logger stored in the context", func(t *testing.T) {
		l := Nop()
		ctx := ContextWithLogger(context.Background(), l)
		assert.Equal(t, l, FromContext(ctx))
	})
}
