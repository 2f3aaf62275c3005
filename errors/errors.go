/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable is returned when the backing store is unreachable
	// or misconfigured (network failure, timeout, credentials)
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrConflict is reserved for optimistic-concurrency failures.
	// No current operation triggers it; writes are last-writer-wins.
	ErrConflict = errors.New("conflicting write")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents a single field-level validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ValidationErrors aggregates field-level failures from a single validation
// pass so callers see every bad field at once.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "; ")
}

func (e ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// Fields returns the names of the fields that failed validation.
func (e ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, v := range e {
		fields = append(fields, v.Field)
	}
	return fields
}

// StorageUnavailableError represents a failure to reach the backing store
type StorageUnavailableError struct {
	Op    string
	Cause error
}

func (e *StorageUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage unavailable during %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("storage unavailable during %s", e.Op)
}

func (e *StorageUnavailableError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

func (e *StorageUnavailableError) Unwrap() error {
	return e.Cause
}

// ConflictError represents a detected concurrent modification.
// Reserved for a future optimistic version check.
type ConflictError struct {
	Type string
	Key  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with key %q was modified concurrently", e.Type, e.Key)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewStorageUnavailableError creates a new StorageUnavailableError wrapping cause
func NewStorageUnavailableError(op string, cause error) error {
	return &StorageUnavailableError{Op: op, Cause: cause}
}

// NewConflictError creates a new ConflictError
func NewConflictError(entityType, key string) error {
	return &ConflictError{Type: entityType, Key: key}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsStorageUnavailable checks if an error is a storage availability error
func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
