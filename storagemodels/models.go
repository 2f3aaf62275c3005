/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// Index names for the two secondary access-pattern mappings. An empty index
// name targets the primary PK/SK mapping.
const (
	IndexGSI1 = "GSI1"
	IndexGSI2 = "GSI2"
)

// Reserved attribute names injected by the storage adapters alongside the
// entity payload. Key attributes come from the registered index maps; the
// remaining three are managed fields every record carries.
const (
	AttrPK         = "PK"
	AttrSK         = "SK"
	AttrGSI1PK     = "GSI1PK"
	AttrGSI1SK     = "GSI1SK"
	AttrGSI2PK     = "GSI2PK"
	AttrGSI2SK     = "GSI2SK"
	AttrEntityType = "entityType"
	AttrIsHidden   = "isHidden"
	AttrUpdatedAt  = "updatedAt"
)

// ListParams defines a partition listing shared by every backend: partition
// key equality plus an optional sort key constraint, against the primary key
// or one of the secondary indexes.
type ListParams struct {
	// PartitionKey is the PK value (or GSI PK value when Index is set).
	PartitionKey string
	// SortKey constrains the sort key to an exact value. Mutually exclusive
	// with SortKeyPrefix.
	SortKey string
	// SortKeyPrefix constrains the sort key to a begins_with range scan.
	SortKeyPrefix string
	// Index selects a secondary index ("GSI1", "GSI2"); empty targets the
	// primary key.
	Index string
	// Descending reverses the key-order traversal.
	Descending bool
	// Limit caps the total number of items returned. Zero means unbounded;
	// the adapter still drains its internal pagination up to this cap.
	Limit int32
}

// KeyAttributes returns the PK/SK attribute pair addressed by the params,
// i.e. the GSI key names when a secondary index is selected.
func (p *ListParams) KeyAttributes() (pkAttr, skAttr string) {
	switch p.Index {
	case IndexGSI1:
		return AttrGSI1PK, AttrGSI1SK
	case IndexGSI2:
		return AttrGSI2PK, AttrGSI2SK
	default:
		return AttrPK, AttrSK
	}
}
