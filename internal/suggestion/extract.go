package suggestion

import (
	"encoding/json"
	"errors"
	"strings"
)

// FieldName is the only field the model is asked to return.
const FieldName = "suggestion"

// Extract pulls the candidate suggestion out of a raw model response.
//
// The span from the first '{' to the last '}' is decoded as JSON, so prose
// or markdown fences around the object are tolerated.
func Extract(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return "", &ExtractionError{Reason: ReasonNoJSONObject, Raw: raw}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return "", &ExtractionError{Reason: ReasonInvalidJSON, Raw: raw, Err: err}
	}

	field, ok := obj[FieldName]
	if !ok {
		return "", &ExtractionError{Reason: ReasonMissingField, Raw: raw}
	}

	var text string
	if err := json.Unmarshal(field, &text); err != nil || string(field) == "null" {
		return "", &ExtractionError{
			Reason: ReasonMissingField,
			Raw:    raw,
			Err:    errors.New(`field "suggestion" is not a string`),
		}
	}
	return text, nil
}
