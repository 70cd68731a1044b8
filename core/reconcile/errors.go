package reconcile

import (
	"errors"
	"fmt"
)

// ErrSnapshotNotFound is returned by a Store when no snapshot exists for a kind.
// The engine treats it as an empty snapshot.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ProviderError is a fetch, authentication or network failure from the external feed.
type ProviderError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s %s: %v", e.Kind, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// StoreError is a read, decode or write failure against the snapshot store.
type StoreError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Kind, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NotifyError is a downstream dispatch failure.
type NotifyError struct {
	Kind    Kind
	Changes int
	Err     error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("notify %s (%d changes): %v", e.Kind, e.Changes, e.Err)
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}
