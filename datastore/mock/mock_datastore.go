/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides a mock implementation of the DataStore interface for
// testing services without a real backend.
package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/suparena/showcase/errors"
	"github.com/suparena/showcase/keys"
	"github.com/suparena/showcase/storagemodels"
)

// DataStore is a mock implementation of datastore.DataStore[T]. Entities are
// held in insertion order and keyed by the composite PK|SK the KeyFunc
// derives. Per-operation errors can be injected, and call counts are recorded
// so tests can assert how many writes a code path issued.
type DataStore[T any] struct {
	mu    sync.RWMutex
	data  map[string]T
	order []string

	keyFunc    func(entity T) keys.Key
	getAllFunc func(ctx context.Context, params *storagemodels.ListParams) ([]T, error)
	hideFunc   func(entity T) T

	getError    error
	getAllError error
	putError    error
	hideError   error

	GetCalls    int
	GetAllCalls int
	PutCalls    int
	HideCalls   int
}

// New creates a new mock DataStore.
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		data: make(map[string]T),
	}
}

// WithKeyFunc sets the function used to derive an entity's primary key.
// Required before Put can store anything.
func (m *DataStore[T]) WithKeyFunc(f func(T) keys.Key) *DataStore[T] {
	m.keyFunc = f
	return m
}

// WithGetAllFunc overrides listing entirely. Without it, GetAll falls back to
// a prefix match over the stored composite keys.
func (m *DataStore[T]) WithGetAllFunc(f func(ctx context.Context, params *storagemodels.ListParams) ([]T, error)) *DataStore[T] {
	m.getAllFunc = f
	return m
}

// WithHideFunc sets the transformation Hide applies to the stored entity,
// typically flipping its hidden flag.
func (m *DataStore[T]) WithHideFunc(f func(T) T) *DataStore[T] {
	m.hideFunc = f
	return m
}

// WithGetError makes Get return an error.
func (m *DataStore[T]) WithGetError(err error) *DataStore[T] {
	m.getError = err
	return m
}

// WithGetAllError makes GetAll return an error.
func (m *DataStore[T]) WithGetAllError(err error) *DataStore[T] {
	m.getAllError = err
	return m
}

// WithPutError makes Put return an error.
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithHideError makes Hide return an error.
func (m *DataStore[T]) WithHideError(err error) *DataStore[T] {
	m.hideError = err
	return m
}

// Seed stores entities directly, bypassing error injection and counters.
func (m *DataStore[T]) Seed(entities ...T) *DataStore[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entities {
		m.storeLocked(e)
	}
	return m
}

// Get retrieves an entity by key.
func (m *DataStore[T]) Get(ctx context.Context, key keys.Key) (*T, error) {
	m.mu.Lock()
	m.GetCalls++
	m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[key.String()]; exists {
		return &entity, nil
	}
	var zero T
	return nil, errors.NewNotFoundError(typeName(zero), key.String())
}

// GetAll lists entities. The default behavior matches the stored composite
// key against "PartitionKey|SortKeyPrefix", which covers the common
// parent-partition listings; anything fancier needs WithGetAllFunc.
func (m *DataStore[T]) GetAll(ctx context.Context, params *storagemodels.ListParams) ([]T, error) {
	m.mu.Lock()
	m.GetAllCalls++
	m.mu.Unlock()

	if m.getAllError != nil {
		return nil, m.getAllError
	}
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, params)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []T
	for _, k := range m.order {
		if !strings.HasPrefix(k, params.PartitionKey+"|"+params.SortKeyPrefix) {
			continue
		}
		results = append(results, m.data[k])
		if params.Limit > 0 && int32(len(results)) >= params.Limit {
			break
		}
	}
	return results, nil
}

// Put stores an entity under the key the KeyFunc derives.
func (m *DataStore[T]) Put(ctx context.Context, entity T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls++

	if m.putError != nil {
		return m.putError
	}
	if m.keyFunc == nil {
		return errors.NewValidationError("key", "mock has no key function configured")
	}
	m.storeLocked(entity)
	return nil
}

// Hide applies the configured hide transformation to the stored entity.
func (m *DataStore[T]) Hide(ctx context.Context, key keys.Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HideCalls++

	if m.hideError != nil {
		return m.hideError
	}

	entity, exists := m.data[key.String()]
	if !exists {
		var zero T
		return errors.NewNotFoundError(typeName(zero), key.String())
	}
	if m.hideFunc != nil {
		m.data[key.String()] = m.hideFunc(entity)
	}
	return nil
}

// Len returns the number of stored entities.
func (m *DataStore[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *DataStore[T]) storeLocked(entity T) {
	key := m.keyFunc(entity).String()
	if _, exists := m.data[key]; !exists {
		m.order = append(m.order, key)
	}
	m.data[key] = entity
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
