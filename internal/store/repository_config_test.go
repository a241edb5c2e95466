package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-conf-keeper/internal/config"
	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/models"
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

const (
	selectForUpdate = "SELECT document FROM config WHERE id = $1 FOR UPDATE"
	selectPlain     = "SELECT document FROM config WHERE id = $1"
	insertConfig    = "INSERT INTO config (id,document,updated_at) VALUES ($1,$2,$3)"
)

func newTestConfigRepo(t *testing.T) (*sqlConfigRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logger.Nop()
	repo := &sqlConfigRepository{
		db:     &DB{DB: db, dialect: DialectPostgres, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
		now:    func() time.Time { return fixedNow },
	}
	return repo, mock
}

func TestSQLFindConfig(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    models.Document
		wantErr error
	}{
		{
			name: "stored document",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectPlain)).
					WithArgs(configRowID).
					WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow([]byte(`{"a":{"b":true}}`)))
			},
			want: models.Document{"a": map[string]any{"b": true}},
		},
		{
			name: "no row",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectPlain)).
					WithArgs(configRowID).
					WillReturnRows(sqlmock.NewRows([]string{"document"}))
			},
			wantErr: ErrConfigNotFound,
		},
		{
			name: "corrupt document",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectPlain)).
					WithArgs(configRowID).
					WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow([]byte(`[1,2]`)))
			},
			wantErr: ErrDecodingDocument,
		},
		{
			name: "driver error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectPlain)).
					WithArgs(configRowID).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.ConnectionFailure})
			},
			wantErr: ErrScanningRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestConfigRepo(t)
			tt.setup(mock)

			got, err := repo.FindConfig(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLUpsertConfig_MergesIntoStoredRow(t *testing.T) {
	repo, mock := newTestConfigRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectForUpdate)).
		WithArgs(configRowID).
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow([]byte(`{"a":1,"b":{"c":2,"d":3}}`)))
	mock.ExpectExec(regexp.QuoteMeta(insertConfig)).
		WithArgs(configRowID, `{"a":1,"b":{"c":9,"d":3},"e":false}`, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpsertConfig(context.Background(), models.Document{"b": map[string]any{"c": 9.0}, "e": false})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLUpsertConfig_CreatesMissingRow(t *testing.T) {
	repo, mock := newTestConfigRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectForUpdate)).
		WithArgs(configRowID).
		WillReturnRows(sqlmock.NewRows([]string{"document"}))
	mock.ExpectExec(regexp.QuoteMeta(insertConfig)).
		WithArgs(configRowID, `{"x":"y"}`, fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpsertConfig(context.Background(), models.Document{"x": "y"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLUpsertConfig_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "begin fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("conn refused"))
			},
			wantErr: ErrBeginningTransaction,
		},
		{
			name: "select fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(selectForUpdate)).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.DeadlockDetected})
				mock.ExpectRollback()
			},
			wantErr: ErrScanningRow,
		},
		{
			name: "insert fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(selectForUpdate)).
					WillReturnRows(sqlmock.NewRows([]string{"document"}))
				mock.ExpectExec(regexp.QuoteMeta(insertConfig)).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.CheckViolation})
				mock.ExpectRollback()
			},
			wantErr: ErrExecutingStatement,
		},
		{
			name: "commit fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(selectForUpdate)).
					WillReturnRows(sqlmock.NewRows([]string{"document"}))
				mock.ExpectExec(regexp.QuoteMeta(insertConfig)).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit().WillReturnError(errors.New("disk full"))
			},
			wantErr: ErrCommitingTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestConfigRepo(t)
			tt.setup(mock)

			err := repo.UpsertConfig(context.Background(), models.Document{"a": 1.0})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLiteConfigRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := NewConnectSQLite(ctx, config.DB{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	repo := NewSQLConfigRepository(db, logger.Nop())

	_, err = repo.FindConfig(ctx)
	require.ErrorIs(t, err, ErrConfigNotFound)

	require.NoError(t, repo.UpsertConfig(ctx, models.Document{"a": 1.0, "b": map[string]any{"c": 2.0, "d": 3.0}}))
	require.NoError(t, repo.UpsertConfig(ctx, models.Document{"b": map[string]any{"c": 9.0}, "list": []any{"x"}}))

	got, err := repo.FindConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Document{
		"a":    1.0,
		"b":    map[string]any{"c": 9.0, "d": 3.0},
		"list": []any{"x"},
	}, got)
}

func TestClassifyPgError(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(&pgconn.PgError{Code: pgerrcode.SerializationFailure}))
	assert.Equal(t, Retryable, c.Classify(&pgconn.PgError{Code: pgerrcode.ConnectionFailure}))
	assert.Equal(t, Retryable, c.Classify(&pgconn.PgError{Code: pgerrcode.CannotConnectNow}))
	assert.Equal(t, NonRetryable, c.Classify(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.Equal(t, NonRetryable, c.Classify(sql.ErrConnDone))
	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.Equal(t, "retryable", Retryable.String())
}
