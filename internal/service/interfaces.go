package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=ConfigServiceWrapper

import (
	"context"

	"github.com/MKhiriev/go-conf-keeper/models"
)

// ConfigService owns the process-wide configuration document.
//
// Init must return before Get or Set are used; the bootstrap sequences this.
type ConfigService interface {
	// Init loads the persisted record, layers it over defaults and writes
	// the result back.
	Init(ctx context.Context, defaults models.Document) error

	// Get returns the live document. It performs no I/O and no copy.
	Get() models.Document

	// Set deep-merges partial into the document and persists partial.
	Set(ctx context.Context, partial models.Document) error

	// SetIfMatch is Set guarded by the document fingerprint: it fails with
	// ErrConfigChanged unless utils.Fingerprint of the live document equals
	// fingerprint. The comparison and the write happen under one lock.
	SetIfMatch(ctx context.Context, partial models.Document, fingerprint string) error

	// Options decodes the live document into its typed view.
	Options() (models.Options, error)

	// Reload merges the persisted record over the document without writing.
	Reload(ctx context.Context) error
}

type AuthService interface {
	CreateToken(ctx context.Context, operator string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// IdentifyService validates gateway handshake payloads.
type IdentifyService interface {
	Identify(ctx context.Context, raw []byte) (models.Identify, error)
}

// ConfigServiceWrapper defines middleware composition for ConfigService.
// Implementations wrap an existing ConfigService to add behavior such as
// metrics.
type ConfigServiceWrapper interface {
	Wrap(ConfigService) ConfigService
}
