/*
Package registry manages type registration and index mapping for the
showcase storage layer.

The registry system enables:
  - Polymorphic entity storage in a single table
  - Dynamic type resolution based on the entityType attribute
  - Flexible key patterns through index maps

Type Registry:
Maps entity type names to unmarshal functions:

	registry.RegisterType("Event", func(item map[string]types.AttributeValue) (interface{}, error) {
	    e := &models.Event{}
	    return e, attributevalue.UnmarshalMap(item, e)
	})

Index Map Registry:
Associates Go types with key patterns:

	indexMap := map[string]string{
	    "PK":     "EVENT#{id}",
	    "SK":     "EVENT#{id}",
	    "GSI1PK": "EVENT",
	    "GSI1SK": "EVENT#{id}",
	}
	registry.RegisterIndexMap[models.Event](indexMap)

Macro names refer to the attribute names an entity marshals to, so the same
map drives both the DynamoDB and the local backend. The index maps registered
in package models and the pure builders in package keys describe the same
schema; the models package tests assert they agree.

The registry is thread-safe and should be populated during initialization,
typically in init() functions.
*/
package registry
