/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package local provides a synchronous in-process implementation of the
// DataStore interface, optionally persisted to a JSON file. It is a
// non-durable, non-shared fallback: data is scoped to one host and lost if
// the file is removed. Operations satisfy the asynchronous-looking contract
// but never actually suspend.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	eserrors "github.com/suparena/showcase/errors"
	"github.com/suparena/showcase/keys"
	"github.com/suparena/showcase/registry"
	"github.com/suparena/showcase/storagemodels"
)

// record is one stored item: its denormalized key attributes plus the opaque
// entity payload.
type record struct {
	Keys map[string]string `json:"keys"`
	Data json.RawMessage   `json:"data"`
}

// snapshot is the on-disk file layout, an ordered list so insertion order
// survives a reload.
type snapshot struct {
	Records []persistedRecord `json:"records"`
}

type persistedRecord struct {
	Key  string            `json:"key"`
	Keys map[string]string `json:"keys"`
	Data json.RawMessage   `json:"data"`
}

// DataStore implements datastore.DataStore[T] over an in-process ordered map.
type DataStore[T any] struct {
	mu         sync.RWMutex
	entityType string
	path       string
	items      map[string]*record
	order      []string
}

// New constructs a local DataStore for type T. The type must have an index
// map registered. With a non-empty path, existing contents are loaded and
// every write is flushed back to the file.
func New[T any](entityType string, path string) (*DataStore[T], error) {
	if _, ok := registry.GetIndexMap[T](); !ok {
		return nil, fmt.Errorf("no index map registered for %T", *new(T))
	}

	d := &DataStore[T]{
		entityType: entityType,
		path:       path,
		items:      make(map[string]*record),
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create local store directory: %w", err)
		}
		if err := d.load(); err != nil {
			return nil, fmt.Errorf("failed to load local store %s: %w", path, err)
		}
	}
	return d, nil
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros fills the index-map templates from the entity's JSON
// attributes, mirroring the DynamoDB adapter's expansion: templates whose
// macros expand to nothing are omitted.
func expandMacros(indexMap map[string]string, attrs map[string]interface{}) map[string]string {
	res := make(map[string]string, len(indexMap))

	for fieldName, template := range indexMap {
		missing := false
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			name := strings.Trim(macro, "{}")

			val, ok := attrs[name]
			if !ok {
				missing = true
				return ""
			}
			switch tv := val.(type) {
			case string:
				if tv == "" {
					missing = true
				}
				return tv
			case float64:
				return strconv.FormatFloat(tv, 'f', -1, 64)
			case bool:
				return strconv.FormatBool(tv)
			default:
				missing = true
				return ""
			}
		})
		if missing {
			continue
		}
		res[fieldName] = expanded
	}

	return res
}

// Get performs a point lookup. Hidden records are returned like any other.
func (d *DataStore[T]) Get(ctx context.Context, key keys.Key) (*T, error) {
	if key.IsZero() {
		return nil, eserrors.NewValidationError("key", "both PK and SK are required")
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	rec, ok := d.items[key.String()]
	if !ok {
		return nil, eserrors.NewNotFoundError(d.entityType, key.String())
	}

	entity := new(T)
	if err := json.Unmarshal(rec.Data, entity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return entity, nil
}

// GetAll walks the insertion-ordered records and returns every one matching
// the partition/prefix. The scan is re-executable and always complete; there
// is no pagination to leak.
func (d *DataStore[T]) GetAll(ctx context.Context, params *storagemodels.ListParams) ([]T, error) {
	if params == nil || params.PartitionKey == "" {
		return nil, fmt.Errorf("list params require a partition key")
	}
	if params.SortKey != "" && params.SortKeyPrefix != "" {
		return nil, fmt.Errorf("sort key and sort key prefix are mutually exclusive")
	}
	pkAttr, skAttr := params.KeyAttributes()

	d.mu.RLock()
	defer d.mu.RUnlock()

	order := d.order
	if params.Descending {
		order = make([]string, len(d.order))
		for i, k := range d.order {
			order[len(d.order)-1-i] = k
		}
	}

	var results []T
	for _, storedKey := range order {
		rec := d.items[storedKey]

		if rec.Keys[pkAttr] != params.PartitionKey {
			continue
		}
		sk, ok := rec.Keys[skAttr]
		if !ok {
			continue
		}
		if params.SortKey != "" && sk != params.SortKey {
			continue
		}
		if params.SortKeyPrefix != "" && !strings.HasPrefix(sk, params.SortKeyPrefix) {
			continue
		}
		if et, ok := rec.Keys[storagemodels.AttrEntityType]; ok && et != d.entityType {
			continue
		}

		entity := new(T)
		if err := json.Unmarshal(rec.Data, entity); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		results = append(results, *entity)
		if params.Limit > 0 && int32(len(results)) >= params.Limit {
			break
		}
	}
	return results, nil
}

// Put upserts the entity at its derived keys. Overwrites keep the original
// insertion-order slot, matching idempotent-upsert semantics.
func (d *DataStore[T]) Put(ctx context.Context, entity T) error {
	indexMap, _ := registry.GetIndexMap[T]()

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}
	var attrs map[string]interface{}
	if err := json.Unmarshal(data, &attrs); err != nil {
		return fmt.Errorf("failed to decode entity attributes: %w", err)
	}

	recKeys := expandMacros(indexMap, attrs)
	pk, sk := recKeys[storagemodels.AttrPK], recKeys[storagemodels.AttrSK]
	if pk == "" {
		return eserrors.NewValidationError("key", "entity is missing the fields its partition key derives from")
	}
	if sk == "" {
		return eserrors.NewValidationError("key", "entity is missing the fields its sort key derives from")
	}
	recKeys[storagemodels.AttrEntityType] = d.entityType

	storedKey := keys.Key{PK: pk, SK: sk}.String()

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.items[storedKey]; !exists {
		d.order = append(d.order, storedKey)
	}
	d.items[storedKey] = &record{Keys: recKeys, Data: data}

	return d.flushLocked()
}

// Hide soft-deletes the record at key: it rewrites the payload with
// isHidden=true and a refreshed updatedAt.
func (d *DataStore[T]) Hide(ctx context.Context, key keys.Key) error {
	if key.IsZero() {
		return eserrors.NewValidationError("key", "both PK and SK are required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	rec, ok := d.items[key.String()]
	if !ok {
		return eserrors.NewNotFoundError(d.entityType, key.String())
	}

	var attrs map[string]interface{}
	if err := json.Unmarshal(rec.Data, &attrs); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	attrs[storagemodels.AttrIsHidden] = true
	attrs[storagemodels.AttrUpdatedAt] = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	rec.Data = data

	return d.flushLocked()
}

// load reads the snapshot file, tolerating a missing file (fresh store).
func (d *DataStore[T]) load() error {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return err
	}
	for _, pr := range snap.Records {
		d.items[pr.Key] = &record{Keys: pr.Keys, Data: pr.Data}
		d.order = append(d.order, pr.Key)
	}
	return nil
}

// flushLocked writes the snapshot atomically (temp file + rename). Callers
// hold the write lock. A memory-only store skips persistence.
func (d *DataStore[T]) flushLocked() error {
	if d.path == "" {
		return nil
	}

	snap := snapshot{Records: make([]persistedRecord, 0, len(d.order))}
	for _, storedKey := range d.order {
		rec := d.items[storedKey]
		snap.Records = append(snap.Records, persistedRecord{
			Key:  storedKey,
			Keys: rec.Keys,
			Data: rec.Data,
		})
	}

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), ".showcase-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), d.path)
}
