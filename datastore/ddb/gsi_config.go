/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import "github.com/suparena/showcase/storagemodels"

// GSIConfig holds the configuration for GSI key mappings
type GSIConfig struct {
	// IndexName is the actual GSI name in DynamoDB (e.g., "GSI1")
	IndexName string
	// PartitionKeyName is the actual partition key attribute name in the GSI (e.g., "GSI1PK")
	PartitionKeyName string
	// SortKeyName is the actual sort key attribute name in the GSI (e.g., "GSI1SK")
	SortKeyName string
}

// DefaultGSIConfigs holds the two secondary indexes of the showcase table:
// GSI1 serves type-wide listings and child point lookups, GSI2 serves
// projects-by-submitter.
var DefaultGSIConfigs = map[string]GSIConfig{
	storagemodels.IndexGSI1: {
		IndexName:        storagemodels.IndexGSI1,
		PartitionKeyName: storagemodels.AttrGSI1PK,
		SortKeyName:      storagemodels.AttrGSI1SK,
	},
	storagemodels.IndexGSI2: {
		IndexName:        storagemodels.IndexGSI2,
		PartitionKeyName: storagemodels.AttrGSI2PK,
		SortKeyName:      storagemodels.AttrGSI2SK,
	},
}

// GetGSIConfig returns the GSI configuration for a given index name
func GetGSIConfig(indexName string) (GSIConfig, bool) {
	config, ok := DefaultGSIConfigs[indexName]
	return config, ok
}
