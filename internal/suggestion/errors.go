package suggestion

import "fmt"

// Extraction failure reasons.
const (
	ReasonNoJSONObject = "no_json_object"
	ReasonInvalidJSON  = "invalid_json"
	ReasonMissingField = "missing_field"
)

// ExtractionError means the model response held no usable JSON object.
// Raw is the complete response text.
type ExtractionError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract suggestion: %s: %v (raw=%q)", e.Reason, e.Err, e.Raw)
	}
	return fmt.Sprintf("extract suggestion: %s (raw=%q)", e.Reason, e.Raw)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ValidationError names the first validator the candidate failed.
type ValidationError struct {
	Validator string
	Text      string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("suggestion rejected by %s validator: %q", e.Validator, e.Text)
}
