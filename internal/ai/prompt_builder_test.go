package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFirstStepPrompt(t *testing.T) {
	prompt := BuildFirstStepPrompt("  Get organized for the week ")

	assert.True(t, strings.HasSuffix(prompt, "task: Get organized for the week\n"))
	assert.Contains(t, prompt, `{"suggestion": "<imperative sentence>"}`)
	assert.Contains(t, prompt, "five minutes or less")
	assert.Contains(t, prompt, "single imperative sentence")
	assert.Contains(t, prompt, "do not assume tools")
	assert.Contains(t, prompt, "No code fences")
}

func TestBuildFirstStepPrompt_Deterministic(t *testing.T) {
	a := BuildFirstStepPrompt("Write the quarterly report")
	b := BuildFirstStepPrompt("Write the quarterly report")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, BuildFirstStepPrompt("Clean the kitchen"))
}
