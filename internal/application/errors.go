package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrTransport marks network/HTTP failures reaching the remote API.
	ErrTransport = errors.New("transport error")
	// ErrDecode marks payloads that arrived but could not be parsed
	// into the expected shape - "server changed its contract", as
	// opposed to "can't reach server".
	ErrDecode = errors.New("decode error")
	// ErrNoCache is returned when a cached document was requested but
	// none has ever been fetched.
	ErrNoCache = errors.New("no cached document")
	// ErrNotFound covers missing nodes, assets, and index rows.
	ErrNotFound = errors.New("not found")
	// ErrEmptyURL marks a download item whose render URL came back
	// empty - the server failed that node. The item is reported
	// failed and its slot gets a placeholder for the next pass.
	ErrEmptyURL = errors.New("empty download url")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TransportError wraps a failure to reach the remote API. Fatal to the
// current phase; no partial state is corrupted.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// DecodeError wraps a payload that could not be deserialized.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
