package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/service"
)

// ReloadWorker periodically merges the persisted configuration record into
// memory, so edits made directly in storage reach the running process.
type ReloadWorker struct {
	configService service.ConfigService
	interval      time.Duration
	logger        *logger.Logger
}

func NewReloadWorker(configService service.ConfigService, interval time.Duration, logger *logger.Logger) *ReloadWorker {
	return &ReloadWorker{
		configService: configService,
		interval:      interval,
		logger:        logger,
	}
}

// Run reloads once per interval until ctx is cancelled. Failures are logged
// and retried on the next tick.
func (w *ReloadWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Str("func", "*ReloadWorker.Run").Msg("config reload worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Str("func", "*ReloadWorker.Run").Msg("config reload worker stopped")
			return
		case <-ticker.C:
			if err := w.configService.Reload(ctx); err != nil {
				w.logger.Err(err).Str("func", "*ReloadWorker.Run").Msg("config reload failed")
			}
		}
	}
}
