/*
Package errors provides semantic error types for the showcase storage layer.

The taxonomy mirrors the outcomes a caller must distinguish:

  - ErrNotFound / NotFoundError: the entity does not exist (maps to a
    missing-resource response)
  - ErrInvalidInput / ValidationError, ValidationErrors: field-level
    validation failures, produced before any storage call
  - ErrStorageUnavailable / StorageUnavailableError: the backing store is
    unreachable or misconfigured (timeouts, throttling, credentials)
  - ErrConflict / ConflictError: reserved for optimistic-concurrency use;
    not triggered today because writes are last-writer-wins

All typed errors implement Is so that errors.Is works against the sentinels,
and the Is* helpers wrap the common checks.
*/
package errors
