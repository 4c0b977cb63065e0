package page

import "fmt"

// ErrorKind classifies a fetch or parse failure. Every kind is terminal
// for the request in progress; nothing is retried internally.
type ErrorKind int

const (
	// ErrEmptyInput means the raw input was empty or whitespace-only.
	ErrEmptyInput ErrorKind = iota

	// ErrUnresolvableEndpoint means a site handler could not map the
	// URL to an API endpoint. No network call was attempted.
	ErrUnresolvableEndpoint

	// ErrNetworkFailure means the request never reached the server,
	// including timeouts. Status is always 0.
	ErrNetworkFailure

	// ErrHTTP means the server answered with a non-2xx status.
	ErrHTTP

	// ErrDecodeFailure means the response body was not valid JSON or
	// HTML where one was expected.
	ErrDecodeFailure

	// ErrSchemaMismatch means the body decoded but did not match the
	// expected shape. Distinct from ErrDecodeFailure so callers can
	// tell "bad JSON" from "unexpected JSON".
	ErrSchemaMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case ErrEmptyInput:
		return "empty input"
	case ErrUnresolvableEndpoint:
		return "unresolvable endpoint"
	case ErrNetworkFailure:
		return "network failure"
	case ErrHTTP:
		return "http error"
	case ErrDecodeFailure:
		return "decode failure"
	case ErrSchemaMismatch:
		return "schema mismatch"
	}
	return "unknown"
}

// Error is a classified failure carried inside a Result.
type Error struct {
	Kind    ErrorKind
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}
