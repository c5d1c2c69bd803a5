package ai

import "errors"

var (
	ErrUnauthorized  = errors.New("llm unauthorized")
	ErrRateLimited   = errors.New("llm rate limited")
	ErrUnavailable   = errors.New("llm unavailable")
	ErrEmptyResponse = errors.New("llm returned no text")

	// ErrTimeout reports Timeout() == true, like net.Error.
	ErrTimeout error = timeoutError{}
)

type timeoutError struct{}

func (timeoutError) Error() string { return "llm request timed out" }
func (timeoutError) Timeout() bool { return true }
