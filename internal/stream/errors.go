package stream

import "fmt"

type streamClosedError struct {
	id string
}

func (e *streamClosedError) Error() string {
	return fmt.Sprintf("stream %s is closed", e.id)
}

// ErrStreamClosed reports a write to an ended session.
func ErrStreamClosed(id string) error {
	return &streamClosedError{id: id}
}

// IsStreamClosed reports whether err is a closed-stream error.
func IsStreamClosed(err error) bool {
	_, ok := err.(*streamClosedError)
	return ok
}

type streamExistsError struct {
	id string
}

func (e *streamExistsError) Error() string {
	return fmt.Sprintf("stream %s already exists", e.id)
}

// ErrStreamExists reports a create with an id already held by a live session.
func ErrStreamExists(id string) error {
	return &streamExistsError{id: id}
}

// IsStreamExists reports whether err is a duplicate-stream error.
func IsStreamExists(err error) bool {
	_, ok := err.(*streamExistsError)
	return ok
}

type streamNotFoundError struct {
	id string
}

func (e *streamNotFoundError) Error() string {
	return fmt.Sprintf("stream %s not found", e.id)
}

// ErrStreamNotFound reports an operation on an unknown session id.
func ErrStreamNotFound(id string) error {
	return &streamNotFoundError{id: id}
}

// IsStreamNotFound reports whether err is an unknown-stream error.
func IsStreamNotFound(err error) bool {
	_, ok := err.(*streamNotFoundError)
	return ok
}
