package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/utils"
	"github.com/MKhiriev/go-conf-keeper/models"
)

// sqlConfigRepository keeps the configuration record as a single JSON row
// in the "config" table.
type sqlConfigRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSQLConfigRepository returns a [ConfigRepository] backed by db.
func NewSQLConfigRepository(db *DB, logger *logger.Logger) ConfigRepository {
	logger.Debug().Str("dialect", string(db.dialect)).Msg("creating sql config repository")
	return &sqlConfigRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// FindConfig reads the stored document. A missing row yields
// [ErrConfigNotFound].
func (r *sqlConfigRepository) FindConfig(ctx context.Context) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectConfigQuery(r.db.builder(), false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, args...))
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		log.Err(err).Str("func", "*sqlConfigRepository.FindConfig").
			Stringer("class", r.db.classify(err)).
			Msg("error reading config row")
	}

	return doc, err
}

// UpsertConfig merges fields into the stored document inside a transaction.
// On PostgreSQL the row is locked with SELECT ... FOR UPDATE so concurrent
// writers from other processes do not lose each other's keys.
func (r *sqlConfigRepository) UpsertConfig(ctx context.Context, fields models.Document) (err error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*sqlConfigRepository.UpsertConfig").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Err(rbErr).Str("func", "*sqlConfigRepository.UpsertConfig").Msg("error rolling back transaction")
			}
		}
	}()

	query, args, err := selectConfigQuery(r.db.builder(), r.db.dialect == DialectPostgres)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	current, err := scanDocument(tx.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, ErrConfigNotFound):
		current = models.Document{}
	case err != nil:
		log.Err(err).Str("func", "*sqlConfigRepository.UpsertConfig").
			Stringer("class", r.db.classify(err)).
			Msg("error reading config row")
		return err
	}

	merged, err := utils.DeepMerge(current, fields)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	query, args, err = upsertConfigQuery(r.db.builder(), string(raw), r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sqlConfigRepository.UpsertConfig").
			Stringer("class", r.db.classify(err)).
			Msg("error writing config row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*sqlConfigRepository.UpsertConfig").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func scanDocument(row *sql.Row) (models.Document, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	doc, err := models.ParseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	return doc, nil
}
