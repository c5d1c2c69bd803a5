// Package suggestion turns raw model output into an accepted first-step
// suggestion, or explains why it could not.
package suggestion

import "strings"

type Pipeline struct {
	validators []Validator
}

// NewPipeline builds the fixed validator chain over the given rule tables.
func NewPipeline(rules Rules) *Pipeline {
	return &Pipeline{validators: []Validator{
		nonEmpty(),
		actionable(flatten(rules.ActionVerbs)),
		boundedScope(flatten(rules.RedFlags)),
		singleSentence(),
	}}
}

func Default() *Pipeline {
	return NewPipeline(DefaultRules())
}

// Validators reports the chain in the order it runs.
func (p *Pipeline) Validators() []string {
	names := make([]string, 0, len(p.validators))
	for _, v := range p.validators {
		names = append(names, v.Name)
	}
	return names
}

// Validate runs the chain; the first failing validator aborts it.
// The accepted suggestion is the trimmed candidate.
func (p *Pipeline) Validate(candidate string) (string, error) {
	text := strings.TrimSpace(candidate)
	for _, v := range p.validators {
		if !v.Check(text) {
			return "", &ValidationError{Validator: v.Name, Text: candidate}
		}
	}
	return text, nil
}

// Accept extracts the candidate from raw and validates it.
func (p *Pipeline) Accept(raw string) (string, error) {
	candidate, err := Extract(raw)
	if err != nil {
		return "", err
	}
	return p.Validate(candidate)
}
