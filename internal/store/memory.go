package store

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-conf-keeper/internal/utils"
	"github.com/MKhiriev/go-conf-keeper/models"
)

// MemoryConfigRepository keeps the record in process memory. Used for
// memory:// DSNs, local development and tests.
type MemoryConfigRepository struct {
	mu     sync.Mutex
	record models.Document
}

func NewMemoryConfigRepository() *MemoryConfigRepository {
	return &MemoryConfigRepository{}
}

// FindConfig returns a copy of the record.
func (r *MemoryConfigRepository) FindConfig(ctx context.Context) (models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.record == nil {
		return nil, ErrConfigNotFound
	}

	doc, err := utils.DeepMerge(r.record, nil)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// UpsertConfig deep-merges fields into the record, creating it if needed.
func (r *MemoryConfigRepository) UpsertConfig(ctx context.Context, fields models.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	merged, err := utils.DeepMerge(r.record, fields)
	if err != nil {
		return err
	}
	r.record = merged

	return nil
}
