/*
Package datastore defines the core interface for the showcase persistence layer.

The main interface is DataStore[T], a uniform capability set implemented by
every backend:

	type DataStore[T any] interface {
	    Get(ctx context.Context, key keys.Key) (*T, error)
	    GetAll(ctx context.Context, params *storagemodels.ListParams) ([]T, error)
	    Put(ctx context.Context, entity T) error
	    Hide(ctx context.Context, key keys.Key) error
	}

Implementations:
  - ddb: networked DynamoDB backend with single-table design, internal
    pagination and typed failures
  - local: synchronous in-process backend persisted to a local JSON file,
    a non-durable fallback
  - mock: counting in-memory test double

Deletion is always a soft delete (Hide); no backend physically removes
records on behalf of the application.
*/
package datastore
