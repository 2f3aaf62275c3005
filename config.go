/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package showcase

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Backend selects the storage implementation.
type Backend string

const (
	// BackendLocal is the in-process store, optionally persisted to JSON
	// files. Non-durable and single-host.
	BackendLocal Backend = "local"

	// BackendDynamoDB is the networked single-table store.
	BackendDynamoDB Backend = "dynamodb"
)

// Config selects and parameterizes the storage backend. Loadable from the
// environment or a YAML file; either way Validate runs before anything is
// constructed, so a misconfigured backend fails at startup rather than on
// first use.
type Config struct {

	// Backend is "local" or "dynamodb".
	Backend Backend `env:"SHOWCASE_BACKEND" envDefault:"local" yaml:"backend"`

	// Table is the DynamoDB table name. Required for the dynamodb backend.
	Table string `env:"SHOWCASE_TABLE" yaml:"table"`

	// Region is the AWS region. Required for the dynamodb backend.
	Region string `env:"AWS_REGION" yaml:"region"`

	// AccessKey and SecretKey are optional static credentials; when unset
	// the default AWS credential chain applies.
	AccessKey string `env:"AWS_ACCESS_KEY_ID" yaml:"accessKey"`
	SecretKey string `env:"AWS_SECRET_ACCESS_KEY" yaml:"secretKey"`

	// Endpoint overrides the DynamoDB endpoint, for local emulators.
	Endpoint string `env:"SHOWCASE_ENDPOINT" yaml:"endpoint"`

	// LocalPath is the directory the local backend persists to. Empty
	// means memory-only.
	LocalPath string `env:"SHOWCASE_LOCAL_PATH" yaml:"localPath"`
}

// LoadConfig reads configuration from the environment, first loading a .env
// file if one is present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile reads configuration from a YAML file.
func LoadConfigFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{Backend: BackendLocal}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on an unknown backend or a dynamodb selection missing
// its table or region.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendLocal:
		return nil
	case BackendDynamoDB:
		if c.Table == "" {
			return fmt.Errorf("dynamodb backend requires a table name")
		}
		if c.Region == "" {
			return fmt.Errorf("dynamodb backend requires a region")
		}
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q", c.Backend)
	}
}
