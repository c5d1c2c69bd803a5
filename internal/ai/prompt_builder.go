package ai

import "strings"

// BuildFirstStepPrompt renders the model instruction for one task
// description. Pure; the same description always yields the same prompt.
func BuildFirstStepPrompt(description string) string {
	var b strings.Builder

	b.WriteString(firstStepInstructions)
	b.WriteString("\n")

	b.WriteString("task: ")
	b.WriteString(strings.TrimSpace(description))
	b.WriteString("\n")

	return b.String()
}
