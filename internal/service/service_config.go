// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/store"
	"github.com/MKhiriev/go-conf-keeper/internal/utils"
	"github.com/MKhiriev/go-conf-keeper/models"
)

// configService is the concrete implementation of ConfigService.
//
// The document is replaced, never mutated: every write builds a fresh tree
// with utils.DeepMerge and swaps it in, so a document handed out by Get is
// not changed by later writes.
type configService struct {
	// repository holds the persisted singleton record.
	repository store.ConfigRepository

	// mu guards document and initialized.
	mu          sync.RWMutex
	document    models.Document
	initialized bool

	// writeMu serialises the read-merge-assign-persist sequence of Init,
	// Set and Reload.
	writeMu sync.Mutex

	logger *logger.Logger
}

// NewConfigService constructs a ConfigService backed by repository. The
// service is unusable until Init succeeds.
func NewConfigService(repository store.ConfigRepository, logger *logger.Logger) ConfigService {
	return &configService{
		repository: repository,
		logger:     logger,
	}
}

// Init fetches the persisted record (absent means empty), deep-merges it over
// defaults so persisted values win, assigns the result and persists it back
// so first-run defaults become durable.
//
// Calling Init again with the same defaults and storage yields the same
// document.
//
// Returns ErrPersistenceFailure if reading or writing the record fails. A
// failed read leaves the service uninitialized; a failed write does not.
func (s *configService) Init(ctx context.Context, defaults models.Document) error {
	log := logger.FromContext(ctx)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	persisted, err := s.repository.FindConfig(ctx)
	if err != nil && !errors.Is(err, store.ErrConfigNotFound) {
		log.Err(err).Str("func", "*configService.Init").Msg("error reading persisted config")
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	merged, err := utils.DeepMerge(defaults, persisted)
	if err != nil {
		log.Err(err).Str("func", "*configService.Init").Msg("error merging persisted config over defaults")
		return fmt.Errorf("error merging persisted config over defaults: %w", err)
	}

	s.assign(merged)

	if err = s.repository.UpsertConfig(ctx, merged); err != nil {
		log.Err(err).Str("func", "*configService.Init").Msg("error persisting merged config")
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	log.Info().Str("func", "*configService.Init").Int("persisted_keys", len(persisted)).Msg("config initialized")
	return nil
}

// Get returns the live document, or nil before Init.
func (s *configService) Get() models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.document
}

// Set deep-merges partial into the current document and assigns the result
// before persisting partial. Concurrent calls are serialised, so the last
// call wins both in memory and in storage.
//
// Returns ErrNotInitialized before Init, and ErrPersistenceFailure when the
// write fails; in that case memory already holds the new value.
func (s *configService) Set(ctx context.Context, partial models.Document) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, ok := s.current()
	if !ok {
		return ErrNotInitialized
	}

	return s.apply(ctx, "*configService.Set", current, partial)
}

// SetIfMatch applies partial like Set only when the live document still has
// the given fingerprint. Two writers holding the same fingerprint cannot
// both succeed: the second one sees the first one's document.
//
// Returns ErrConfigChanged on a mismatch, with nothing written.
func (s *configService) SetIfMatch(ctx context.Context, partial models.Document, fingerprint string) error {
	log := logger.FromContext(ctx)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, ok := s.current()
	if !ok {
		return ErrNotInitialized
	}

	actual, err := utils.Fingerprint(current)
	if err != nil {
		log.Err(err).Str("func", "*configService.SetIfMatch").Msg("error fingerprinting config")
		return fmt.Errorf("error fingerprinting config: %w", err)
	}
	if actual != fingerprint {
		return ErrConfigChanged
	}

	return s.apply(ctx, "*configService.SetIfMatch", current, partial)
}

// apply merges partial over current, assigns the result and persists
// partial. The caller holds writeMu.
func (s *configService) apply(ctx context.Context, caller string, current, partial models.Document) error {
	log := logger.FromContext(ctx)

	merged, err := utils.DeepMerge(current, partial)
	if err != nil {
		log.Err(err).Str("func", caller).Msg("error merging partial config")
		return fmt.Errorf("error merging partial config: %w", err)
	}

	s.assign(merged)

	if err = s.repository.UpsertConfig(ctx, partial); err != nil {
		log.Err(err).Str("func", caller).Msg("config updated in memory but not persisted")
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	log.Debug().Str("func", caller).Int("keys", len(partial)).Msg("config updated")
	return nil
}

// Options decodes the live document into models.Options.
func (s *configService) Options() (models.Options, error) {
	current, ok := s.current()
	if !ok {
		return models.Options{}, ErrNotInitialized
	}

	var opts models.Options
	if err := current.Decode(&opts); err != nil {
		return models.Options{}, fmt.Errorf("error decoding options: %w", err)
	}

	return opts, nil
}

// Reload re-reads the persisted record and merges it over the current
// document so that edits made directly in storage become visible. Nothing is
// written back. A missing record leaves the document unchanged.
func (s *configService) Reload(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, ok := s.current()
	if !ok {
		return ErrNotInitialized
	}

	persisted, err := s.repository.FindConfig(ctx)
	if errors.Is(err, store.ErrConfigNotFound) {
		log.Warn().Str("func", "*configService.Reload").Msg("persisted config is gone, keeping memory")
		return nil
	}
	if err != nil {
		log.Err(err).Str("func", "*configService.Reload").Msg("error reading persisted config")
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	merged, err := utils.DeepMerge(current, persisted)
	if err != nil {
		return fmt.Errorf("error merging persisted config: %w", err)
	}

	s.assign(merged)
	return nil
}

func (s *configService) current() (models.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.document, s.initialized
}

func (s *configService) assign(doc models.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.document = doc
	s.initialized = true
}
