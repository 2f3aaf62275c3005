/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UnmarshalFunc defines a function that takes a raw DynamoDB item and returns the unmarshaled object.
type UnmarshalFunc func(item map[string]types.AttributeValue) (interface{}, error)

var (
	// typeRegistry holds the mapping from an entity type name (like "Event" or
	// "Project") to its unmarshal function.
	typeRegistry   = make(map[string]UnmarshalFunc)
	typeRegistryMu sync.RWMutex
)

// RegisterType registers an unmarshal function for a given entity type name.
// If a type is already registered for the given name, it panics to prevent accidental overrides.
func RegisterType(name string, fn UnmarshalFunc) {
	typeRegistryMu.Lock()
	defer typeRegistryMu.Unlock()
	if _, exists := typeRegistry[name]; exists {
		panic(fmt.Sprintf("type registry: type %q already registered", name))
	}
	typeRegistry[name] = fn
}

// GetUnmarshalFunc returns the registered unmarshal function for the given entity type name.
// If no function is registered, it returns an error.
func GetUnmarshalFunc(name string) (UnmarshalFunc, error) {
	typeRegistryMu.RLock()
	defer typeRegistryMu.RUnlock()
	fn, ok := typeRegistry[name]
	if !ok {
		return nil, fmt.Errorf("type registry: no type registered for %q", name)
	}
	return fn, nil
}
