package model

import "fmt"

// StorageError reports a table that could not be loaded or persisted:
// missing file, malformed contents, or a schema mismatch. It is fatal to
// the running command; no partial table set is ever returned.
type StorageError struct {
	Table string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error on table %q: %v", e.Table, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NotFoundError reports an edit or delete that matched no rows. The
// caller may re-prompt for a valid reference.
type NotFoundError struct {
	Table  string
	Column string
	Value  any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no row in %q with %s = %v", e.Table, e.Column, e.Value)
}

// ValidationError reports a field value that violates a type or range
// constraint. Values are never silently coerced.
type ValidationError struct {
	Table  string
	Column string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s.%s: %s", e.Table, e.Column, e.Reason)
}

// ReferentialError reports a row whose anchor id does not resolve. View
// building treats unresolved keys as "no match" instead of failing, so
// this surfaces only from mutations.
type ReferentialError struct {
	Table  string
	Column string
	ID     int
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s.%s references missing id %d", e.Table, e.Column, e.ID)
}
