// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the bootstrap configuration of the configuration
// server: where to listen, where the configuration record lives and how
// operators authenticate. It is assembled from environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env:       environment variable name for scalar fields.
//   - validate:  go-playground/validator rules checked after merging.
type StructuredConfig struct {
	App      App      `envPrefix:"APP_"`
	Storage  Storage  `envPrefix:"STORAGE_"`
	Server   Server   `envPrefix:"SERVER_"`
	Adapter  Adapter  `envPrefix:"ADAPTER_"`
	Workers  Workers  `envPrefix:"WORKERS_"`
	Defaults Defaults `envPrefix:"DEFAULTS_"`

	// JSONFilePath is the optional path to a JSON bootstrap file.
	// Env: CONFIG, flags: -c / -config
	JSONFilePath string `env:"CONFIG"`
}

// App holds admin authentication and version settings.
type App struct {
	// TokenSignKey signs and verifies admin JWTs (HS256).
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY" validate:"required,min=8"`

	// TokenIssuer is the expected "iss" claim of admin JWTs.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER" validate:"required"`

	// TokenDuration is the lifetime of tokens minted by configctl.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION" validate:"gt=0"`

	// Version is exposed via /api/version/.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the minimum zerolog level.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
}

// Storage groups persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB selects and configures the backend holding the configuration record.
// The DSN scheme picks the backend: mongodb:// or mongodb+srv:// for MongoDB,
// postgres:// or postgresql:// for PostgreSQL, sqlite://, file: or a *.db
// path for SQLite, and memory:// or empty for the in-process store.
type DB struct {
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// Database is the MongoDB database name.
	// Env: STORAGE_DB_DATABASE
	Database string `env:"DATABASE"`

	// Collection is the MongoDB collection holding the record.
	// Env: STORAGE_DB_COLLECTION
	Collection string `env:"COLLECTION"`
}

// Server holds settings of the inbound HTTP server.
type Server struct {
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" validate:"required,hostname_port"`

	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gt=0"`
}

// Adapter configures the outbound client used by configctl.
type Adapter struct {
	// BaseURL of the configuration server, e.g. http://localhost:8080.
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL" validate:"omitempty,url"`

	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gte=0"`
}

// Workers configures background workers.
type Workers struct {
	// ReloadInterval is how often the persisted record is re-read and merged
	// into memory. Zero disables the reload worker.
	// Env: WORKERS_RELOAD_INTERVAL
	ReloadInterval time.Duration `env:"RELOAD_INTERVAL" validate:"gte=0"`
}

// Defaults points at an optional YAML or JSON file whose content is layered
// over the built-in default options before the store is initialised.
type Defaults struct {
	// Env: DEFAULTS_FILE_PATH
	FilePath string `env:"FILE_PATH"`
}

// GetStructuredConfig loads, merges and validates the server configuration.
// For every field the first source that sets it wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in fallbacks
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withFallbacks().
		build()
}

// GetClientConfig loads the configuration used by configctl: environment
// variables, the JSON file named by CONFIG and the built-in fallbacks.
// Command-line flags belong to the CLI itself and are not read here.
func GetClientConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSON().
		withFallbacks().
		merge()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.ValidateClient()
}
