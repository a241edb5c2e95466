package config

import "errors"

// Validation errors returned when a configuration section is incomplete or
// invalid. Match with [errors.Is].
var (
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidAppConfigs indicates missing or malformed admin token settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates a bad listen address or timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates an unusable storage DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAdapterConfigs indicates a bad client base URL or timeout.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidWorkerConfigs indicates a negative reload interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")

	// ErrDefaultsOverlay is returned when the default options overlay file
	// cannot be loaded.
	ErrDefaultsOverlay = errors.New("error loading defaults overlay")
)
