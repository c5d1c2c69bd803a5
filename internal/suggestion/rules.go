package suggestion

// PhraseGroup is a named family of literal phrases.
type PhraseGroup struct {
	Name    string
	Phrases []string
}

// Rules are the literal tables the content validators match against.
// All phrases are lower case.
type Rules struct {
	// ActionVerbs are prefixes the suggestion must open with.
	ActionVerbs []PhraseGroup
	// RedFlags are substrings that mark a suggestion as too large in scope.
	RedFlags []PhraseGroup
}

// DefaultRules returns a fresh copy of the built-in tables.
func DefaultRules() Rules {
	return Rules{
		ActionVerbs: []PhraseGroup{
			{Name: "creation", Phrases: []string{"write", "create", "draft", "outline", "list", "sketch", "draw", "jot", "type"}},
			{Name: "investigation", Phrases: []string{"find", "search", "look up", "read", "review", "identify", "gather", "watch"}},
			{Name: "setup", Phrases: []string{"open", "set up", "organize", "schedule", "book", "add", "download", "install"}},
			{Name: "communication", Phrases: []string{"email", "message", "call", "ask", "send"}},
			{Name: "physical", Phrases: []string{"take out", "move", "put", "go to", "get"}},
			{Name: "technical", Phrases: []string{"run", "test", "debug", "check"}},
		},
		RedFlags: []PhraseGroup{
			{Name: "finality", Phrases: []string{
				"complete the", "finish the", "finalize the", "implement the", "build the", "design the",
				"write the entire", "write the full", "create the whole",
			}},
			{Name: "large_scope", Phrases: []string{
				"the entire module", "the whole chapter", "the full draft", "the first draft",
				"the final version", "the complete list",
			}},
			{Name: "totalizing", Phrases: []string{
				"all of the", "every part of", "the rest of the", "organize all", "clean the entire",
			}},
		},
	}
}

func flatten(groups []PhraseGroup) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g.Phrases...)
	}
	return out
}
