/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/showcase/keys"
	"github.com/suparena/showcase/storagemodels"
)

// DataStore is the capability set every storage backend implements for an
// entity type T. Entities are opaque payloads to the backend; the backend
// only manipulates keys and the managed record attributes.
type DataStore[T any] interface {
	// Get performs a point lookup. It returns a typed not-found error when no
	// record exists at the key; hidden records are still returned.
	Get(ctx context.Context, key keys.Key) (*T, error)

	// GetAll returns every record matching the partition/prefix described by
	// params, fully drained before returning (no partial-page leakage).
	// Ordering is key order, not any domain ordering. Hidden records are
	// included; excluding them is the caller's responsibility.
	GetAll(ctx context.Context, params *storagemodels.ListParams) ([]T, error)

	// Put is an idempotent upsert: it overwrites any existing record at the
	// entity's keys, all-or-nothing per key. Key attributes and the entity
	// type discriminator are derived from the registered index map.
	Put(ctx context.Context, entity T) error

	// Hide soft-deletes the record at key: it sets isHidden=true and
	// refreshes updatedAt. It fails with a typed not-found error when the
	// record does not exist.
	Hide(ctx context.Context, key keys.Key) error
}
