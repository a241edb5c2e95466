package store

import "errors"

// ErrConfigNotFound is returned by [ConfigRepository.FindConfig] when no
// configuration record has been written yet.
var ErrConfigNotFound = errors.New("config record not found")

// ErrUnsupportedKey is returned when a document key cannot be stored as a
// MongoDB field name: it contains "." or starts with "$".
var ErrUnsupportedKey = errors.New("unsupported document key")

// ErrUnsupportedDSN is returned when no backend matches the DSN scheme.
var ErrUnsupportedDSN = errors.New("unsupported storage DSN")

// Low-level operation errors. Repository methods wrap the driver error
// inside one of these.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to executing statement")
	ErrScanningRow          = errors.New("failed to scan config row")

	// ErrDecodingDocument is returned when a stored record is not a JSON
	// object.
	ErrDecodingDocument = errors.New("failed to decode config document")

	// ErrEncodingDocument is returned when a document cannot be serialised
	// for storage.
	ErrEncodingDocument = errors.New("failed to encode config document")
)
