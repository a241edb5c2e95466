// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles the configuration server: storage, services, HTTP
// surface and background workers, in the order they depend on each other.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-conf-keeper/internal/config"
	"github.com/MKhiriev/go-conf-keeper/internal/handler"
	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/metrics"
	"github.com/MKhiriev/go-conf-keeper/internal/server"
	"github.com/MKhiriev/go-conf-keeper/internal/service"
	"github.com/MKhiriev/go-conf-keeper/internal/store"
	"github.com/MKhiriev/go-conf-keeper/internal/workers"
	"github.com/MKhiriev/go-conf-keeper/models"
)

const closeTimeout = 5 * time.Second

// App is a fully wired configuration server.
type App struct {
	cfg      *config.StructuredConfig
	storages *store.Storages
	services *service.Services
	server   server.Server
	workers  *workers.Workers
	logger   *logger.Logger
}

// NewApp opens storage, initialises the configuration store with the
// default options (plus the optional overlay file) and builds the HTTP
// server. Storage is closed again if any later step fails.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	m := metrics.New()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	a, err := newApp(ctx, cfg, storages, buildInfo, m, log)
	if err != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		return nil, errors.Join(err, storages.Close(closeCtx))
	}

	return a, nil
}

func newApp(ctx context.Context, cfg *config.StructuredConfig, storages *store.Storages, buildInfo models.AppBuildInfo, m *metrics.Metrics, log *logger.Logger) (*App, error) {
	services, err := service.NewServices(storages, *cfg, buildInfo, m, log)
	if err != nil {
		return nil, fmt.Errorf("create services: %w", err)
	}

	overlay, err := config.LoadDefaultsOverlay(cfg.Defaults.FilePath)
	if err != nil {
		return nil, err
	}

	defaults, err := service.DefaultDocument(overlay)
	if err != nil {
		return nil, fmt.Errorf("build default options: %w", err)
	}

	if err = services.ConfigService.Init(ctx, defaults); err != nil {
		// a failed first write still leaves the merged document live
		if !errors.Is(err, service.ErrPersistenceFailure) || services.ConfigService.Get() == nil {
			return nil, fmt.Errorf("init configuration: %w", err)
		}
		log.Warn().Err(err).Str("backend", string(storages.Backend)).Msg("configuration initialised but not persisted")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, m, log)
	if err != nil {
		return nil, fmt.Errorf("create handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}

	return &App{
		cfg:      cfg,
		storages: storages,
		services: services,
		server:   srv,
		workers:  workers.NewWorkers(services, cfg.Workers, log),
		logger:   log,
	}, nil
}

// Run serves until ctx is cancelled or the process receives SIGINT/SIGTERM,
// then stops the workers and closes storage.
func (a *App) Run(ctx context.Context) error {
	workerCtx, stopWorkers := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.workers.Run(workerCtx)
	}()

	a.logger.Info().
		Str("address", a.cfg.Server.HTTPAddress).
		Str("backend", string(a.storages.Backend)).
		Msg("configuration server starting")

	runErr := a.server.RunServer(ctx)

	stopWorkers()
	<-done

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := a.storages.Close(closeCtx); err != nil {
		a.logger.Err(err).Str("func", "*App.Run").Msg("error closing storages")
		runErr = errors.Join(runErr, err)
	}

	return runErr
}
