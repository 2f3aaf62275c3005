/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	eserrors "github.com/suparena/showcase/errors"
	"github.com/suparena/showcase/keys"
	"github.com/suparena/showcase/registry"
	"github.com/suparena/showcase/storagemodels"
)

// DataStore implements datastore.DataStore[T] against a DynamoDB single
// table. Every operation is one bounded round-trip (or an internally drained
// pagination loop for GetAll); transient failures surface as typed errors.
type DataStore[T any] struct {
	client       *sdk.Client
	tableName    string
	entityType   string
	opTimeout    time.Duration
	maxRetries   int
	retryBackoff time.Duration
	log          *zap.Logger
}

// Option configures a DataStore.
type Option func(*settings)

type settings struct {
	opTimeout    time.Duration
	maxRetries   int
	retryBackoff time.Duration
	log          *zap.Logger
}

// WithOperationTimeout bounds the wait applied to each network call.
func WithOperationTimeout(d time.Duration) Option {
	return func(s *settings) { s.opTimeout = d }
}

// WithMaxRetries sets the retry attempts for throttled query pages.
func WithMaxRetries(n int) Option {
	return func(s *settings) { s.maxRetries = n }
}

// WithRetryBackoff sets the backoff between throttled-page retries.
func WithRetryBackoff(d time.Duration) Option {
	return func(s *settings) { s.retryBackoff = d }
}

// WithLogger attaches a logger; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.log = l }
}

// ClientConfig carries the connection parameters for the DynamoDB client.
type ClientConfig struct {
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the service endpoint, for DynamoDB Local.
	Endpoint string
}

// NewClient initializes a DynamoDB client. Static credentials are used only
// when both halves are supplied; otherwise the default provider chain applies.
func NewClient(ctx context.Context, cc ClientConfig) (*sdk.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cc.Region),
	}
	if cc.AccessKey != "" && cc.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cc.AccessKey, cc.SecretKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	var clientOpts []func(*sdk.Options)
	if cc.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *sdk.Options) {
			o.BaseEndpoint = aws.String(cc.Endpoint)
		})
	}
	return sdk.NewFromConfig(cfg, clientOpts...), nil
}

// New constructs a DataStore for type T over an existing client. The type
// must have an index map registered; entityType is the discriminator written
// with every record.
func New[T any](client *sdk.Client, tableName, entityType string, opts ...Option) (*DataStore[T], error) {
	if tableName == "" {
		return nil, eserrors.NewValidationError("tableName", "table name is required")
	}
	if _, ok := registry.GetIndexMap[T](); !ok {
		return nil, fmt.Errorf("no index map registered for %T", *new(T))
	}

	s := settings{
		opTimeout:    10 * time.Second,
		maxRetries:   3,
		retryBackoff: time.Second,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	return &DataStore[T]{
		client:       client,
		tableName:    tableName,
		entityType:   entityType,
		opTimeout:    s.opTimeout,
		maxRetries:   s.maxRetries,
		retryBackoff: s.retryBackoff,
		log:          s.log,
	}, nil
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros fills the index-map templates from the entity's marshaled
// attributes. A template whose macro expands to nothing is omitted entirely,
// so optional index projections (e.g. a project without a submitter) do not
// produce dangling prefix-only keys.
func expandMacros(indexMap map[string]string, av map[string]types.AttributeValue) map[string]string {
	res := make(map[string]string, len(indexMap))

	for fieldName, template := range indexMap {
		missing := false
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			name := strings.Trim(macro, "{}")

			val, ok := av[name]
			if !ok {
				missing = true
				return ""
			}

			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				if tv.Value == "" {
					missing = true
				}
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				missing = true
				return ""
			}
		})
		if missing {
			continue
		}
		res[fieldName] = expanded
	}

	return res
}

// keyAttributes converts a keys.Key into the DynamoDB key map.
func keyAttributes(key keys.Key) (map[string]types.AttributeValue, error) {
	if key.IsZero() {
		return nil, eserrors.NewValidationError("key", "both PK and SK are required")
	}
	return map[string]types.AttributeValue{
		storagemodels.AttrPK: &types.AttributeValueMemberS{Value: key.PK},
		storagemodels.AttrSK: &types.AttributeValueMemberS{Value: key.SK},
	}, nil
}

// opContext applies the per-call bounded wait.
func (d *DataStore[T]) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.opTimeout)
}

// Get retrieves a single item by its main-table key. Hidden records are
// returned like any other; not-found is a typed error. The read is strongly
// consistent so a get immediately after a put observes the write; GSI reads
// (GetAll with an index) remain eventually consistent, which DynamoDB does
// not allow to be overridden.
func (d *DataStore[T]) Get(ctx context.Context, key keys.Key) (*T, error) {
	keyMap, err := keyAttributes(key)
	if err != nil {
		return nil, err
	}

	ctx, cancel := d.opContext(ctx)
	defer cancel()

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:      &d.tableName,
		Key:            keyMap,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, d.storageErr("GetItem", err)
	}
	if out.Item == nil {
		return nil, eserrors.NewNotFoundError(d.entityType, key.String())
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Put upserts the entity, deriving key attributes from the registered index
// map and stamping the entityType discriminator. The write is all-or-nothing
// per key; repeating it with the same value is a no-op for stored state.
func (d *DataStore[T]) Put(ctx context.Context, entity T) error {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return fmt.Errorf("no index map registered for %T", entity)
	}

	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	for k, v := range expandMacros(indexMap, av) {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}
	av[storagemodels.AttrEntityType] = &types.AttributeValueMemberS{Value: d.entityType}

	if _, ok := av[storagemodels.AttrPK]; !ok {
		return eserrors.NewValidationError("key", "entity is missing the fields its partition key derives from")
	}
	if _, ok := av[storagemodels.AttrSK]; !ok {
		return eserrors.NewValidationError("key", "entity is missing the fields its sort key derives from")
	}

	ctx, cancel := d.opContext(ctx)
	defer cancel()

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	})
	if err != nil {
		return d.storageErr("PutItem", err)
	}
	return nil
}

// Hide soft-deletes the record at key: isHidden is set and updatedAt
// refreshed in one conditional update, which fails as not-found when the
// record is absent.
func (d *DataStore[T]) Hide(ctx context.Context, key keys.Key) error {
	keyMap, err := keyAttributes(key)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	updateExpr := "SET #hidden = :hidden, #updatedAt = :updatedAt"
	condExpr := "attribute_exists(#pk)"

	ctx, cancel := d.opContext(ctx)
	defer cancel()

	_, err = d.client.UpdateItem(ctx, &sdk.UpdateItemInput{
		TableName:           &d.tableName,
		Key:                 keyMap,
		UpdateExpression:    &updateExpr,
		ConditionExpression: &condExpr,
		ExpressionAttributeNames: map[string]string{
			"#pk":        storagemodels.AttrPK,
			"#hidden":    storagemodels.AttrIsHidden,
			"#updatedAt": storagemodels.AttrUpdatedAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":hidden":    &types.AttributeValueMemberBOOL{Value: true},
			":updatedAt": &types.AttributeValueMemberS{Value: now},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return eserrors.NewNotFoundError(d.entityType, key.String())
		}
		return d.storageErr("UpdateItem", err)
	}
	return nil
}

// storageErr normalizes SDK failures into the typed taxonomy. Anything that
// reaches here is a transport- or service-level failure; not-found and
// condition failures are mapped at the call sites.
func (d *DataStore[T]) storageErr(op string, err error) error {
	d.log.Debug("dynamodb operation failed",
		zap.String("op", op),
		zap.String("table", d.tableName),
		zap.Error(err),
	)
	return eserrors.NewStorageUnavailableError(op, err)
}
