package suggestion

import "strings"

// Validator names, in pipeline order.
const (
	NonEmpty       = "non_empty"
	Actionable     = "actionable"
	BoundedScope   = "bounded_scope"
	SingleSentence = "single_sentence"
)

// Validator is one content predicate over a trimmed candidate.
type Validator struct {
	Name  string
	Check func(text string) bool
}

func nonEmpty() Validator {
	return Validator{Name: NonEmpty, Check: func(text string) bool {
		return len(strings.TrimSpace(text)) > 0
	}}
}

// actionable matches the opening words against the verb prefixes. For a
// single-word prefix this is a prefix match on the first token.
func actionable(verbs []string) Validator {
	return Validator{Name: Actionable, Check: func(text string) bool {
		lower := strings.ToLower(strings.TrimSpace(text))
		for _, verb := range verbs {
			if strings.HasPrefix(lower, verb) {
				return true
			}
		}
		return false
	}}
}

// boundedScope is a plain substring search; no word boundaries.
func boundedScope(redFlags []string) Validator {
	return Validator{Name: BoundedScope, Check: func(text string) bool {
		lower := strings.ToLower(text)
		for _, phrase := range redFlags {
			if strings.Contains(lower, phrase) {
				return false
			}
		}
		return true
	}}
}

func singleSentence() Validator {
	return Validator{Name: SingleSentence, Check: func(text string) bool {
		i := strings.IndexAny(text, ".?!")
		if i < 0 {
			return true
		}
		return strings.TrimSpace(text[i+1:]) == ""
	}}
}
