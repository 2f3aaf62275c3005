/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/showcase/storagemodels"
)

func newTestStore(t *testing.T) *DataStore[ddbTestProject] {
	t.Helper()
	return &DataStore[ddbTestProject]{
		tableName:  "showcase-test",
		entityType: "Project",
	}
}

func stringValue(t *testing.T, av types.AttributeValue) string {
	t.Helper()
	s, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		t.Fatalf("expected string attribute, got %T", av)
	}
	return s.Value
}

func TestBuildQueryInput(t *testing.T) {
	store := newTestStore(t)

	t.Run("PartitionWithPrefix", func(t *testing.T) {
		input, err := store.buildQueryInput(&storagemodels.ListParams{
			PartitionKey:  "EVENT#E1",
			SortKeyPrefix: "PROJECT#",
		})
		if err != nil {
			t.Fatalf("buildQueryInput failed: %v", err)
		}

		if *input.KeyConditionExpression != "#pk = :pk AND begins_with(#sk, :sk)" {
			t.Errorf("unexpected key condition: %s", *input.KeyConditionExpression)
		}
		if input.ExpressionAttributeNames["#pk"] != "PK" || input.ExpressionAttributeNames["#sk"] != "SK" {
			t.Errorf("unexpected attribute names: %v", input.ExpressionAttributeNames)
		}
		if got := stringValue(t, input.ExpressionAttributeValues[":pk"]); got != "EVENT#E1" {
			t.Errorf("unexpected :pk value %q", got)
		}
		if got := stringValue(t, input.ExpressionAttributeValues[":sk"]); got != "PROJECT#" {
			t.Errorf("unexpected :sk value %q", got)
		}
		if input.IndexName != nil {
			t.Errorf("primary-key query must not set an index, got %q", *input.IndexName)
		}
	})

	t.Run("GSI1Equality", func(t *testing.T) {
		input, err := store.buildQueryInput(&storagemodels.ListParams{
			PartitionKey: "PROJECT",
			SortKey:      "PROJECT#P7",
			Index:        storagemodels.IndexGSI1,
		})
		if err != nil {
			t.Fatalf("buildQueryInput failed: %v", err)
		}

		if *input.IndexName != "GSI1" {
			t.Errorf("expected GSI1, got %q", *input.IndexName)
		}
		if input.ExpressionAttributeNames["#pk"] != "GSI1PK" || input.ExpressionAttributeNames["#sk"] != "GSI1SK" {
			t.Errorf("unexpected attribute names: %v", input.ExpressionAttributeNames)
		}
		if *input.KeyConditionExpression != "#pk = :pk AND #sk = :sk" {
			t.Errorf("unexpected key condition: %s", *input.KeyConditionExpression)
		}
	})

	t.Run("GSI2Partition", func(t *testing.T) {
		input, err := store.buildQueryInput(&storagemodels.ListParams{
			PartitionKey:  "USER#U5",
			SortKeyPrefix: "PROJECT#",
			Index:         storagemodels.IndexGSI2,
		})
		if err != nil {
			t.Fatalf("buildQueryInput failed: %v", err)
		}
		if *input.IndexName != "GSI2" {
			t.Errorf("expected GSI2, got %q", *input.IndexName)
		}
		if input.ExpressionAttributeNames["#pk"] != "GSI2PK" {
			t.Errorf("unexpected partition attribute: %v", input.ExpressionAttributeNames)
		}
	})

	t.Run("Descending", func(t *testing.T) {
		input, err := store.buildQueryInput(&storagemodels.ListParams{
			PartitionKey: "EVENT#E1",
			Descending:   true,
		})
		if err != nil {
			t.Fatalf("buildQueryInput failed: %v", err)
		}
		if input.ScanIndexForward == nil || *input.ScanIndexForward {
			t.Error("descending listing must set ScanIndexForward=false")
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		if _, err := store.buildQueryInput(&storagemodels.ListParams{}); err == nil {
			t.Error("expected error for missing partition key")
		}
		if _, err := store.buildQueryInput(&storagemodels.ListParams{
			PartitionKey:  "EVENT#E1",
			SortKey:       "PROJECT#P7",
			SortKeyPrefix: "PROJECT#",
		}); err == nil {
			t.Error("expected error for sort key and prefix together")
		}
		if _, err := store.buildQueryInput(&storagemodels.ListParams{
			PartitionKey: "EVENT#E1",
			Index:        "GSI9",
		}); err == nil {
			t.Error("expected error for unknown index")
		}
	})
}

func TestMatchesEntityType(t *testing.T) {
	store := newTestStore(t)

	project := map[string]types.AttributeValue{
		"entityType": &types.AttributeValueMemberS{Value: "Project"},
	}
	event := map[string]types.AttributeValue{
		"entityType": &types.AttributeValueMemberS{Value: "Event"},
	}
	legacy := map[string]types.AttributeValue{}

	if !store.matchesEntityType(project) {
		t.Error("matching entityType should pass the filter")
	}
	if store.matchesEntityType(event) {
		t.Error("foreign entityType should be filtered out")
	}
	if !store.matchesEntityType(legacy) {
		t.Error("records without a discriminator are let through")
	}
}

func TestIsRetryableError(t *testing.T) {
	if !isRetryableError(&types.ProvisionedThroughputExceededException{}) {
		t.Error("throughput exceeded should be retryable")
	}
	if !isRetryableError(&types.InternalServerError{}) {
		t.Error("internal server error should be retryable")
	}
	if isRetryableError(&types.ConditionalCheckFailedException{}) {
		t.Error("condition failures must not be retried")
	}
}
