/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/showcase/registry"
)

// Index maps for the showcase single table. Macro names are the attribute
// names the entities marshal to; the patterns must stay in agreement with
// the pure builders in package keys (asserted in register_test.go).
func init() {
	registry.RegisterIndexMap[Event](map[string]string{
		"PK":     "EVENT#{id}",
		"SK":     "EVENT#{id}",
		"GSI1PK": "EVENT",
		"GSI1SK": "EVENT#{id}",
	})
	registry.RegisterIndexMap[Project](map[string]string{
		"PK":     "EVENT#{eventId}",
		"SK":     "PROJECT#{id}",
		"GSI1PK": "PROJECT",
		"GSI1SK": "PROJECT#{id}",
		"GSI2PK": "USER#{submittedBy}",
		"GSI2SK": "PROJECT#{id}",
	})
	registry.RegisterIndexMap[PrizeAward](map[string]string{
		"PK":     "PROJECT#{projectId}",
		"SK":     "AWARD#{id}",
		"GSI1PK": "AWARD",
		"GSI1SK": "AWARD#{id}",
	})
	registry.RegisterIndexMap[User](map[string]string{
		"PK":     "USER#{id}",
		"SK":     "USER#{id}",
		"GSI1PK": "EMAIL#{email}",
		"GSI1SK": "USER",
	})

	registry.RegisterType(TypeEvent, unmarshalAs[Event])
	registry.RegisterType(TypeProject, unmarshalAs[Project])
	registry.RegisterType(TypePrizeAward, unmarshalAs[PrizeAward])
	registry.RegisterType(TypeUser, unmarshalAs[User])
}

func unmarshalAs[T any](item map[string]types.AttributeValue) (interface{}, error) {
	out := new(T)
	if err := attributevalue.UnmarshalMap(item, out); err != nil {
		return nil, err
	}
	return out, nil
}
