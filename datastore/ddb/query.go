/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/showcase/registry"
	"github.com/suparena/showcase/storagemodels"
)

// defaultPageSize is the per-page limit used while draining a query.
const defaultPageSize = 100

// GetAll queries a partition (PK equality plus optional sort-key constraint,
// on the primary key or a secondary index) and drains every page before
// returning. Callers never see a partial page. Ordering is key order.
func (d *DataStore[T]) GetAll(ctx context.Context, params *storagemodels.ListParams) ([]T, error) {
	input, err := d.buildQueryInput(params)
	if err != nil {
		return nil, err
	}

	var results []T
	var lastEvaluatedKey map[string]types.AttributeValue
	pages := 0

	for {
		if lastEvaluatedKey != nil {
			input.ExclusiveStartKey = lastEvaluatedKey
		}

		out, err := d.queryPage(ctx, input)
		if err != nil {
			return nil, err
		}
		pages++

		for _, item := range out.Items {
			if !d.matchesEntityType(item) {
				continue
			}
			entity := new(T)
			if err := attributevalue.UnmarshalMap(item, entity); err != nil {
				return nil, fmt.Errorf("failed to unmarshal item: %w", err)
			}
			results = append(results, *entity)
			if params.Limit > 0 && int32(len(results)) >= params.Limit {
				return results, nil
			}
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}

	d.log.Debug("query drained",
		zap.String("table", d.tableName),
		zap.String("partition", params.PartitionKey),
		zap.Int("pages", pages),
		zap.Int("items", len(results)),
	)
	return results, nil
}

// buildQueryInput translates backend-neutral ListParams into a QueryInput.
func (d *DataStore[T]) buildQueryInput(params *storagemodels.ListParams) (*sdk.QueryInput, error) {
	if params == nil || params.PartitionKey == "" {
		return nil, fmt.Errorf("list params require a partition key")
	}
	if params.SortKey != "" && params.SortKeyPrefix != "" {
		return nil, fmt.Errorf("sort key and sort key prefix are mutually exclusive")
	}

	pkAttr, skAttr := params.KeyAttributes()

	keyCond := "#pk = :pk"
	exprNames := map[string]string{"#pk": pkAttr}
	exprValues := map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: params.PartitionKey},
	}

	switch {
	case params.SortKey != "":
		keyCond += " AND #sk = :sk"
		exprNames["#sk"] = skAttr
		exprValues[":sk"] = &types.AttributeValueMemberS{Value: params.SortKey}
	case params.SortKeyPrefix != "":
		keyCond += " AND begins_with(#sk, :sk)"
		exprNames["#sk"] = skAttr
		exprValues[":sk"] = &types.AttributeValueMemberS{Value: params.SortKeyPrefix}
	}

	input := &sdk.QueryInput{
		TableName:                 &d.tableName,
		KeyConditionExpression:    &keyCond,
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
		Limit:                     aws.Int32(defaultPageSize),
	}
	if params.Index != "" {
		gsi, ok := GetGSIConfig(params.Index)
		if !ok {
			return nil, fmt.Errorf("unknown index %q", params.Index)
		}
		input.IndexName = aws.String(gsi.IndexName)
	}
	if params.Descending {
		input.ScanIndexForward = aws.Bool(false)
	}
	return input, nil
}

// queryPage runs one Query round-trip with bounded retry on throttling.
func (d *DataStore[T]) queryPage(ctx context.Context, input *sdk.QueryInput) (*sdk.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, d.storageErr("Query", ctx.Err())
		default:
		}

		pageCtx, cancel := d.opContext(ctx)
		out, err := d.client.Query(pageCtx, input)
		cancel()
		if err == nil {
			return out, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			return nil, d.storageErr("Query", err)
		}

		if attempt < d.maxRetries {
			backoff := time.Duration(attempt+1) * d.retryBackoff
			d.log.Debug("retrying throttled query page",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil, d.storageErr("Query", ctx.Err())
			case <-time.After(backoff):
			}
		}
	}

	return nil, d.storageErr("Query", fmt.Errorf("query failed after %d retries: %w", d.maxRetries, lastErr))
}

// matchesEntityType filters out foreign records when a PK-only listing walks
// a partition that holds more than one entity type.
func (d *DataStore[T]) matchesEntityType(item map[string]types.AttributeValue) bool {
	attr, ok := item[storagemodels.AttrEntityType]
	if !ok {
		return true
	}
	var entityType string
	if err := attributevalue.Unmarshal(attr, &entityType); err != nil {
		return false
	}
	return entityType == d.entityType
}

// QueryRaw runs the query and resolves each item through the type registry,
// returning heterogeneous results for partitions holding mixed entity types.
func (d *DataStore[T]) QueryRaw(ctx context.Context, params *storagemodels.ListParams) ([]interface{}, error) {
	input, err := d.buildQueryInput(params)
	if err != nil {
		return nil, err
	}

	var results []interface{}
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		if lastEvaluatedKey != nil {
			input.ExclusiveStartKey = lastEvaluatedKey
		}

		out, err := d.queryPage(ctx, input)
		if err != nil {
			return nil, err
		}

		for _, item := range out.Items {
			var entityType string
			if attr, ok := item[storagemodels.AttrEntityType]; ok {
				if err := attributevalue.Unmarshal(attr, &entityType); err != nil {
					return nil, fmt.Errorf("failed to unmarshal entityType: %w", err)
				}
			}

			unmarshalFn, err := registry.GetUnmarshalFunc(entityType)
			if err != nil {
				// No registered type: fall back to a generic map.
				var generic map[string]interface{}
				if err := attributevalue.UnmarshalMap(item, &generic); err != nil {
					return nil, fmt.Errorf("failed to unmarshal generic item: %w", err)
				}
				results = append(results, generic)
				continue
			}

			obj, err := unmarshalFn(item)
			if err != nil {
				return nil, fmt.Errorf("failed to unmarshal item for entityType %q: %w", entityType, err)
			}
			results = append(results, obj)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}

	return results, nil
}

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	switch err.(type) {
	case *types.ProvisionedThroughputExceededException:
		return true
	case *types.RequestLimitExceeded:
		return true
	case *types.InternalServerError:
		return true
	}

	if awsErr, ok := err.(interface{ IsRetryable() bool }); ok {
		return awsErr.IsRetryable()
	}

	return false
}
