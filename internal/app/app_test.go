package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-conf-keeper/internal/config"
	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.StructuredConfig {
	t.Helper()
	return &config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "long-enough-key",
			TokenIssuer:   config.DefaultTokenIssuer,
			TokenDuration: time.Hour,
			Version:       "v0.0.1-test",
		},
		Server: config.Server{
			HTTPAddress:    "127.0.0.1:0",
			RequestTimeout: time.Second,
		},
	}
}

func TestNewApp(t *testing.T) {
	overlayPath := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(overlayPath, []byte("general:\n  instance_id: fixed-id\n"), 0o600))

	tests := []struct {
		name        string
		mutate      func(cfg *config.StructuredConfig)
		wantErr     error
		wantInstance string
	}{
		{
			name: "memory backend",
		},
		{
			name: "defaults overlay",
			mutate: func(cfg *config.StructuredConfig) {
				cfg.Defaults.FilePath = overlayPath
			},
			wantInstance: "fixed-id",
		},
		{
			name: "missing overlay file",
			mutate: func(cfg *config.StructuredConfig) {
				cfg.Defaults.FilePath = filepath.Join(t.TempDir(), "absent.yaml")
			},
			wantErr: config.ErrDefaultsOverlay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			a, err := NewApp(context.Background(), cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, a)
				return
			}
			require.NoError(t, err)

			doc := a.services.ConfigService.Get()
			require.NotNil(t, doc)

			instanceID, ok := doc.Lookup("general.instance_id")
			require.True(t, ok)
			if tt.wantInstance != "" {
				assert.Equal(t, tt.wantInstance, instanceID)
			} else {
				assert.NotEmpty(t, instanceID)
			}
		})
	}
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Workers.ReloadInterval = 10 * time.Millisecond

	a, err := NewApp(context.Background(), cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}
