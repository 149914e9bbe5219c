package extraction

import "fmt"

// APICallError represents a transport or provider failure during extraction.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents a response that could not be interpreted as JSON
// even after best-effort recovery. Logged distinctly from transport failures.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NotSignedInError indicates no provider credentials are configured. The
// provider sign-in happens once per session outside this package; this error
// propagates the missing-session case distinctly.
type NotSignedInError struct{}

func (e *NotSignedInError) Error() string {
	return "not signed in: no API key configured for the extraction provider"
}
