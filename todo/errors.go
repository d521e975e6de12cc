package todo

import "fmt"

// DuplicateIDError reports an attempt to add an item whose ID is already
// present in the repository.
type DuplicateIDError struct {
	ID string
}

// Error implements the error interface.
func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("an item with ID %s already exists", e.ID)
}

// IndexWriteError reports a search index write that failed after the
// repository mutation already committed. The repository state is final;
// the index is temporarily stale until the next successful write for the
// same item.
type IndexWriteError struct {
	Op  string
	ID  string
	Err error
}

// Error implements the error interface.
func (e *IndexWriteError) Error() string {
	return fmt.Sprintf("index %s for item %s failed: %v", e.Op, e.ID, e.Err)
}

// Unwrap exposes the underlying index failure.
func (e *IndexWriteError) Unwrap() error { return e.Err }

// ValidationError reports an item field that violates a model invariant.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "invalid item field " + e.Field + ": " + e.Message
}
