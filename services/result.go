/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package services implements the entity services of the showcase catalog.
// Every operation returns a Result envelope rather than a bare error, so
// callers branch on Success and read either Data or Error.
package services

import (
	"fmt"

	"github.com/suparena/showcase/errors"
)

// Result is the uniform outcome envelope for service operations. Error is
// the human-readable message; Err carries the typed error for callers that
// need to distinguish kinds (errors.IsNotFound and friends) and is excluded
// from serialization.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Err     error  `json:"-"`
}

// Ok wraps a successful outcome.
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail wraps a failed outcome.
func Fail[T any](err error) Result[T] {
	return Result[T]{Error: err.Error(), Err: err}
}

// normalize maps adapter errors onto the service error taxonomy. Known kinds
// pass through untouched; anything else is treated as the storage layer being
// unavailable so no raw backend error escapes the envelope unclassified.
func normalize(op string, err error) error {
	if errors.IsNotFound(err) || errors.IsValidationError(err) ||
		errors.IsStorageUnavailable(err) || errors.IsConflict(err) {
		return err
	}
	return errors.NewStorageUnavailableError(op, err)
}

// notFound builds the typed error services return for an unknown id.
func notFound(entityType, id string) error {
	return errors.NewNotFoundError(entityType, id)
}

// requireID rejects blank identifiers before any storage call.
func requireID(field, id string) error {
	if id == "" {
		return errors.NewValidationError(field, fmt.Sprintf("%s is required", field))
	}
	return nil
}
