/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package showcase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	ddbsdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/suparena/showcase/datastore"
	"github.com/suparena/showcase/datastore/ddb"
	"github.com/suparena/showcase/datastore/local"
	"github.com/suparena/showcase/models"
	"github.com/suparena/showcase/services"
)

// Catalog bundles the entity services over one configured backend. Services
// are injected explicitly; there is no package-level singleton.
type Catalog struct {
	Events      *services.EventService
	Projects    *services.ProjectService
	PrizeAwards *services.PrizeAwardService
}

// Option configures catalog construction.
type Option func(*settings)

type settings struct {
	log *zap.Logger
}

// WithLogger sets the logger shared by the adapters and services.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// New validates the config, builds the selected backend once and wires the
// entity services over it.
func New(ctx context.Context, cfg *Config, opts ...Option) (*Catalog, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := settings{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}

	b, err := newBuilder(ctx, cfg, &s)
	if err != nil {
		return nil, err
	}

	events, err := buildStore[models.Event](b, models.TypeEvent)
	if err != nil {
		return nil, err
	}
	projects, err := buildStore[models.Project](b, models.TypeProject)
	if err != nil {
		return nil, err
	}
	awards, err := buildStore[models.PrizeAward](b, models.TypePrizeAward)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		Events:      services.NewEventService(events, s.log),
		Projects:    services.NewProjectService(projects, s.log),
		PrizeAwards: services.NewPrizeAwardService(awards, s.log),
	}, nil
}

// builder holds backend state shared across the per-type stores, so the
// dynamodb client is constructed once per catalog.
type builder struct {
	cfg    *Config
	s      *settings
	client *ddbsdk.Client
}

func newBuilder(ctx context.Context, cfg *Config, s *settings) (*builder, error) {
	b := &builder{cfg: cfg, s: s}
	if cfg.Backend == BackendDynamoDB {
		client, err := ddb.NewClient(ctx, ddb.ClientConfig{
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Endpoint:  cfg.Endpoint,
		})
		if err != nil {
			return nil, err
		}
		b.client = client
	}
	return b, nil
}

func buildStore[T any](b *builder, entityType string) (datastore.DataStore[T], error) {
	switch b.cfg.Backend {
	case BackendLocal:
		return local.New[T](entityType, localSnapshotPath(b.cfg.LocalPath, entityType))
	case BackendDynamoDB:
		return ddb.New[T](b.client, b.cfg.Table, entityType, ddb.WithLogger(b.s.log))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", b.cfg.Backend)
	}
}

// NewDataStore builds a single adapter for type T against the configured
// backend. The type must have an index map registered.
func NewDataStore[T any](ctx context.Context, cfg *Config, entityType string, opts ...Option) (datastore.DataStore[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := settings{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}

	b, err := newBuilder(ctx, cfg, &s)
	if err != nil {
		return nil, err
	}
	return buildStore[T](b, entityType)
}

// localSnapshotPath maps an entity type to its snapshot file under the
// configured directory. An empty directory keeps the store memory-only.
func localSnapshotPath(dir, entityType string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, strings.ToLower(entityType)+".json")
}
