package service

import (
	"context"

	"github.com/MKhiriev/go-conf-keeper/internal/metrics"
	"github.com/MKhiriev/go-conf-keeper/models"
)

// ConfigMetricsService counts writes and reloads of the wrapped ConfigService.
type ConfigMetricsService struct {
	inner   ConfigService
	metrics *metrics.Metrics
}

func NewConfigMetricsService(m *metrics.Metrics) ConfigServiceWrapper {
	return &ConfigMetricsService{metrics: m}
}

func (s *ConfigMetricsService) Init(ctx context.Context, defaults models.Document) error {
	return s.inner.Init(ctx, defaults)
}

func (s *ConfigMetricsService) Get() models.Document {
	return s.inner.Get()
}

func (s *ConfigMetricsService) Set(ctx context.Context, partial models.Document) error {
	err := s.inner.Set(ctx, partial)
	s.metrics.ConfigWrites.WithLabelValues(result(err)).Inc()
	return err
}

func (s *ConfigMetricsService) SetIfMatch(ctx context.Context, partial models.Document, fingerprint string) error {
	err := s.inner.SetIfMatch(ctx, partial, fingerprint)
	s.metrics.ConfigWrites.WithLabelValues(result(err)).Inc()
	return err
}

func (s *ConfigMetricsService) Options() (models.Options, error) {
	return s.inner.Options()
}

func (s *ConfigMetricsService) Reload(ctx context.Context) error {
	err := s.inner.Reload(ctx)
	s.metrics.ConfigReloads.WithLabelValues(result(err)).Inc()
	return err
}

func (s *ConfigMetricsService) Wrap(inner ConfigService) ConfigService {
	s.inner = inner
	return s
}

func result(err error) string {
	if err != nil {
		return metrics.ResultFailure
	}
	return metrics.ResultSuccess
}
