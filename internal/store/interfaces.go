package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-conf-keeper/models"
)

// ConfigRepository persists the singleton configuration record.
//
// FindConfig returns the stored record or ErrConfigNotFound when none
// exists yet. UpsertConfig deep-merges fields into the stored record,
// creating it when absent; fields that are not mentioned keep their stored
// values.
type ConfigRepository interface {
	FindConfig(ctx context.Context) (models.Document, error)
	UpsertConfig(ctx context.Context, fields models.Document) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
