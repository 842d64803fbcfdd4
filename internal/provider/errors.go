package provider

import "fmt"

// RequestError represents a failed provider API request.
type RequestError struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider request failed: %s (status %d): %s", e.URL, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("provider request failed: %s: %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("provider request failed: %s: %s", e.URL, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// DecodeError represents a provider payload that could not be decoded or
// failed schema validation.
type DecodeError struct {
	Resource string
	Message  string
	Cause    error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode %s payload: %s: %v", e.Resource, e.Message, e.Cause)
	}
	return fmt.Sprintf("decode %s payload: %s", e.Resource, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
