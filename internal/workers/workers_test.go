// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-conf-keeper/internal/config"
	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/mock"
	"github.com/MKhiriev/go-conf-keeper/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// countingWorker counts Run calls and blocks until cancelled.
type countingWorker struct {
	runs atomic.Int32
}

func (c *countingWorker) Run(ctx context.Context) {
	c.runs.Add(1)
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2 := &countingWorker{}, &countingWorker{}
	ws := &Workers{workers: []Worker{w1, w2}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return w1.runs.Load() == 1 && w2.runs.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("workers did not stop")
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	(&Workers{}).Run(context.Background())
}

func TestNewWorkers(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		want     int
	}{
		{name: "reload disabled", interval: 0, want: 0},
		{name: "reload enabled", interval: time.Minute, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := NewWorkers(&service.Services{}, config.Workers{ReloadInterval: tt.interval}, logger.Nop())
			assert.Len(t, ws.workers, tt.want)
		})
	}
}

func TestReloadWorker_ReloadsUntilCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	configService := mock.NewMockConfigService(ctrl)

	var calls atomic.Int32
	configService.EXPECT().Reload(gomock.Any()).DoAndReturn(func(context.Context) error {
		if calls.Add(1) == 1 {
			return service.ErrPersistenceFailure
		}
		return nil
	}).MinTimes(2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewReloadWorker(configService, 5*time.Millisecond, logger.Nop()).Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	<-done
}
