package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-conf-keeper/internal/config"
	"github.com/MKhiriev/go-conf-keeper/internal/logger"
)

// Backend names the storage implementation selected from a DSN.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendMongo    Backend = "mongodb"
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// Storages bundles the repositories and the resources behind them.
type Storages struct {
	ConfigRepository ConfigRepository
	Backend          Backend

	closers []func(ctx context.Context) error
}

// BackendFromDSN maps a DSN to its backend by scheme.
func BackendFromDSN(dsn string) (Backend, error) {
	lower := strings.ToLower(strings.TrimSpace(dsn))

	switch {
	case lower == "" || strings.HasPrefix(lower, "memory://"):
		return BackendMemory, nil
	case strings.HasPrefix(lower, "mongodb://"), strings.HasPrefix(lower, "mongodb+srv://"):
		return BackendMongo, nil
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return BackendPostgres, nil
	case strings.HasPrefix(lower, "sqlite://"), strings.HasPrefix(lower, "file:"),
		strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"):
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
	}
}

// NewStorages connects the backend named by cfg.DB.DSN, runs SQL
// migrations where applicable and returns the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	backend, err := BackendFromDSN(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	s := &Storages{Backend: backend}

	switch backend {
	case BackendMemory:
		log.Warn().Str("func", "NewStorages").Msg("using in-memory config storage, changes are lost on restart")
		s.ConfigRepository = NewMemoryConfigRepository()

	case BackendMongo:
		client, err := NewConnectMongo(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Disconnect)
		collection := client.Database(cfg.DB.Database).Collection(cfg.DB.Collection)
		s.ConfigRepository = NewMongoConfigRepository(collection, log)

	case BackendPostgres, BackendSQLite:
		var db *DB
		if backend == BackendPostgres {
			db, err = NewConnectPostgres(ctx, cfg.DB, log)
		} else {
			db, err = NewConnectSQLite(ctx, cfg.DB, log)
		}
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(); err != nil {
			log.Err(err).Str("func", "NewStorages").Msg("error migrating database")
			db.Close()
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return db.Close() })
		s.ConfigRepository = NewSQLConfigRepository(db, log)
	}

	log.Info().Str("func", "NewStorages").Str("backend", string(backend)).Msg("config storage ready")
	return s, nil
}

// Close releases connections held by the storages.
func (s *Storages) Close(ctx context.Context) error {
	var firstErr error
	for _, closeFn := range s.closers {
		if err := closeFn(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
