package main

import (
	"os"

	"github.com/MKhiriev/go-conf-keeper/internal/adapter"
	"github.com/MKhiriev/go-conf-keeper/internal/config"
	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/service"
)

func main() {
	log := logger.NewConsoleLogger("configctl", os.Stderr)
	if err := logger.SetLevel(os.Getenv("APP_LOG_LEVEL")); err != nil {
		log.Warn().Err(err).Msg("ignoring log level")
	}

	deps := dependencies{
		loadConfig: config.GetClientConfig,
		newAdapter: func(cfg config.Adapter) (adapter.ConfigServerAdapter, error) {
			return adapter.NewHTTPServerAdapter(cfg, log)
		},
		newAuth: func(cfg config.App) service.AuthService {
			return service.NewAuthService(cfg, log)
		},
		logger: log,
	}

	if err := newRootCommand(deps).Execute(); err != nil {
		log.Error().Err(err).Msg("configctl failed")
		os.Exit(1)
	}
}
