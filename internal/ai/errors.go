package ai

import "fmt"

// ServiceUnavailableError wraps a failed call to the language-model
// service: network, auth, or quota. The operation that triggered the call
// is aborted; no retries are attempted.
type ServiceUnavailableError struct {
	Op  string // which agent operation was in flight
	Err error
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("%s: AI service unavailable: %v", e.Op, e.Err)
}

func (e *ServiceUnavailableError) Unwrap() error { return e.Err }

// MalformedResponseError means the service answered but the response could
// not be parsed into the structure the agent expected. The raw text is kept
// for diagnostics.
type MalformedResponseError struct {
	Op     string
	Reason string
	Raw    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed AI response: %s", e.Op, e.Reason)
}
