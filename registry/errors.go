package registry

import (
	"fmt"
)

// ValidationError reports the first failing field of a malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// DuplicateKeyError reports a natural-key collision. ExistingOwner is the
// national ID currently holding the key, when known.
type DuplicateKeyError struct {
	Kind          string
	Key           string
	ExistingOwner string
}

func (e *DuplicateKeyError) Error() string {
	if e.ExistingOwner != "" {
		return fmt.Sprintf("%s %s already registered to %s", e.Kind, e.Key, e.ExistingOwner)
	}
	return fmt.Sprintf("%s %s already registered", e.Kind, e.Key)
}

type NotFoundError struct {
	Resource string
	Ref      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Ref)
}

// InvalidStateError reports an operation attempted on a request that is not
// in the expected state, e.g. deciding an already-decided registration.
type InvalidStateError struct {
	Resource string
	Ref      string
	State    string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s is %s", e.Resource, e.Ref, e.State)
}

// StoreError wraps an underlying transactional failure. The transaction that
// produced it has been rolled back; no partial state remains.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
