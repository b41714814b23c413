package memory

import "fmt"

// outOfBudgetError signals that an allocation cannot proceed even after a
// reclamation pass.
type outOfBudgetError struct {
	id   string
	need int64
	max  int64
}

func (e outOfBudgetError) Error() string {
	return fmt.Sprintf("memory budget exceeded for %s: need %d bytes, ceiling %d", e.id, e.need, e.max)
}

// ErrOutOfBudget constructs an outOfBudgetError.
func ErrOutOfBudget(id string, need, max int64) error {
	return outOfBudgetError{id: id, need: need, max: max}
}

// IsOutOfBudget reports whether err indicates the memory ceiling was hit.
func IsOutOfBudget(err error) bool {
	_, ok := err.(outOfBudgetError)
	return ok
}

type modelNotFoundError struct{ id string }

func (e modelNotFoundError) Error() string { return "model not found: " + e.id }

// ErrModelNotFound returns an error for an id absent from the registry.
func ErrModelNotFound(id string) error { return modelNotFoundError{id: id} }

// IsModelNotFound reports whether the error indicates a missing model id.
func IsModelNotFound(err error) bool {
	_, ok := err.(modelNotFoundError)
	return ok
}

type modelExistsError struct{ id string }

func (e modelExistsError) Error() string { return "model already allocated: " + e.id }

// ErrModelExists returns an error for a duplicate allocation.
func ErrModelExists(id string) error { return modelExistsError{id: id} }

// IsModelExists reports whether the error indicates a duplicate model id.
func IsModelExists(err error) bool {
	_, ok := err.(modelExistsError)
	return ok
}

// notResidentError signals an operation that needs an in-memory payload was
// called on a swapped or accounting-only record.
type notResidentError struct{ id string }

func (e notResidentError) Error() string { return "payload not resident: " + e.id }

// ErrNotResident constructs a notResidentError.
func ErrNotResident(id string) error { return notResidentError{id: id} }

// IsNotResident reports whether the error indicates an absent payload.
func IsNotResident(err error) bool {
	_, ok := err.(notResidentError)
	return ok
}
