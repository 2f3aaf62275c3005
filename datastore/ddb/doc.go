/*
Package ddb provides the DynamoDB implementation of the DataStore interface.

The DataStore supports:
  - Single-table design over (PK, SK) with two secondary indexes
  - Macro-based key expansion (e.g., "EVENT#{id}") from registered index maps
  - Internally drained pagination: GetAll never returns a partial page
  - Bounded per-call waits and typed failures for transient errors
  - entityType discrimination for polymorphic storage

Key expansion:
Keys use macros that are replaced with entity attribute values at write time:

	indexMap := map[string]string{
	    "PK":     "EVENT#{eventId}", // becomes "EVENT#E1"
	    "SK":     "PROJECT#{id}",    // becomes "PROJECT#P7"
	    "GSI1PK": "PROJECT",         // static value
	}

A template whose macro expands to nothing is omitted, so optional index
projections never produce dangling prefix-only keys.

Failure semantics: not-found and failed condition checks map to typed
not-found errors; transport, throttling and credential failures map to
storage-unavailable errors. Throttled query pages are retried a bounded
number of times inside the adapter; callers never retry.
*/
package ddb
