package models

import "errors"

// ErrOrderNumberTaken is reported by the order repository when the unique
// index on (table_id, order_number) rejects a write. The sequence allocator
// retries once with a fresh sequence before giving up with a ConflictError.
var ErrOrderNumberTaken = errors.New("order number already taken")

// ValidationError rejects a malformed or stale cart. Maps to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NotFoundError reports an unknown table, order or menu. Maps to 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// ConflictError reports a write that lost a concurrency race (duplicate
// order number that survived the allocator, or a stale lock_version). Maps to 409.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}
