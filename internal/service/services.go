package service

import (
	"github.com/MKhiriev/go-conf-keeper/internal/config"
	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/metrics"
	"github.com/MKhiriev/go-conf-keeper/internal/store"
	"github.com/MKhiriev/go-conf-keeper/models"
)

type Services struct {
	ConfigService   ConfigService
	AuthService     AuthService
	AppInfoService  AppInfoService
	IdentifyService IdentifyService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, m *metrics.Metrics, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	configService := NewConfigMetricsService(m).Wrap(NewConfigService(storages.ConfigRepository, logger))

	return &Services{
		ConfigService:   configService,
		AuthService:     NewAuthService(cfg.App, logger),
		AppInfoService:  appInfoService,
		IdentifyService: NewIdentifyService(m),
	}, nil
}
