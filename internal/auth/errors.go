package auth

import "fmt"

// NetworkError reports a request that never produced an HTTP response:
// DNS failure, refused or reset connection, timeout, cancelled context.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("mtn login request to %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response. Body holds a trimmed snippet.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("mtn login failed: %s", e.Status)
	}
	return fmt.Sprintf("mtn login failed: %s (%s)", e.Status, e.Body)
}

// ParseError reports a response body that is not the expected JSON object.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("decode mtn login response: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// MissingFieldError reports a JSON response without a usable token field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("mtn login response missing %s", e.Field)
}
