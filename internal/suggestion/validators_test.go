package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonEmpty(t *testing.T) {
	v := nonEmpty()
	assert.True(t, v.Check("Open the file."))
	assert.False(t, v.Check(""))
	assert.False(t, v.Check(" \n\t "))
}

func TestActionable(t *testing.T) {
	v := actionable(flatten(DefaultRules().ActionVerbs))

	pass := []string{
		"Open the document.",
		"open the document.",
		"Write one sentence.",
		"Look up the train times.",
		"Set up a folder for receipts.",
		"Take out a blank sheet of paper.",
		"Go to the kitchen and fill a glass.",
		"Email Dana about Friday.",
		"Run the failing test once.",
		"Reviewing the notes counts too.",
	}
	for _, text := range pass {
		assert.True(t, v.Check(text), text)
	}

	fail := []string{
		"Think about your options.",
		"You should write an outline.",
		"Maybe open the document.",
		"Consider what matters most.",
		"Why not start with a list?",
		"Look at the calendar.",
	}
	for _, text := range fail {
		assert.False(t, v.Check(text), text)
	}
}

func TestBoundedScope(t *testing.T) {
	v := boundedScope(flatten(DefaultRules().RedFlags))

	assert.True(t, v.Check("List three tasks for this week."))
	assert.True(t, v.Check("Open the report and read the title."))

	fail := []string{
		"Finish the entire module.",
		"Complete the report.",
		"Write the full introduction.",
		"Review all of the open tickets.",
		"Open the first draft and skim it.",
		"CLEAN THE ENTIRE garage.",
		"Read the rest of the chapter.",
	}
	for _, text := range fail {
		assert.False(t, v.Check(text), text)
	}
}

func TestBoundedScope_SubstringNotWordMatch(t *testing.T) {
	v := boundedScope([]string{"build the"})
	assert.False(t, v.Check("Rebuild the index."))
}

func TestSingleSentence(t *testing.T) {
	v := singleSentence()

	assert.True(t, v.Check("Open a document."))
	assert.True(t, v.Check("Open a document"))
	assert.True(t, v.Check("Open a document!  "))
	assert.True(t, v.Check("Is the file open?"))

	assert.False(t, v.Check("Open a document. Then write a title."))
	assert.False(t, v.Check("Open a document! Write a title"))
	assert.False(t, v.Check("Open a document..."))
	assert.False(t, v.Check("Open v2.1 of the doc"))
}
