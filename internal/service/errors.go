package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrPersistenceFailure wraps any storage failure. When returned by Set
	// the in-memory document has already been updated.
	ErrPersistenceFailure = errors.New("configuration persistence failed")
	ErrNotInitialized     = errors.New("configuration service is not initialized")
	// ErrConfigChanged is returned by SetIfMatch when the document no longer
	// has the expected fingerprint.
	ErrConfigChanged = errors.New("configuration changed since it was read")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
