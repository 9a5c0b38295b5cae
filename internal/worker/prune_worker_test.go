package worker

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dustin/crop-recommender/config"
	"github.com/dustin/crop-recommender/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPruner struct {
	calls   atomic.Int32
	deleted int64
	err     error
}

func (s *stubPruner) Prune(context.Context) (int64, error) {
	s.calls.Add(1)
	return s.deleted, s.err
}

func testLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	log, err := logger.NewWithWriter(&config.LoggingConfig{
		Level:       "debug",
		Format:      "json",
		ServiceName: "test-worker",
	}, buf)
	require.NoError(t, err)
	return log, buf
}

func TestNewPruneWorker(t *testing.T) {
	log, _ := testLogger(t)

	testCases := []struct {
		name        string
		cfg         *config.WorkerConfig
		expected    time.Duration
		expectError string
	}{
		{"nil config uses default", nil, time.Hour, ""},
		{"empty interval uses default", &config.WorkerConfig{}, time.Hour, ""},
		{"explicit interval", &config.WorkerConfig{PruneInterval: "15m"}, 15 * time.Minute, ""},
		{"invalid interval", &config.WorkerConfig{PruneInterval: "invalid-duration"}, 0, "invalid prune interval"},
		{"interval too short", &config.WorkerConfig{PruneInterval: "10s"}, 0, "must be at least 1m"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			worker, err := NewPruneWorker(tc.cfg, &stubPruner{}, log)
			if tc.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectError)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, worker.cron)
			assert.Equal(t, tc.expected, worker.pruneInterval)
		})
	}
}

func TestNewPruneWorker_RequiresPruner(t *testing.T) {
	log, _ := testLogger(t)

	_, err := NewPruneWorker(nil, nil, log)
	require.Error(t, err)
}

func TestPruneWorker_StartStop(t *testing.T) {
	log, buf := testLogger(t)
	worker, err := NewPruneWorker(&config.WorkerConfig{PruneInterval: "5m"}, &stubPruner{}, log)
	require.NoError(t, err)

	// Initially not running
	assert.False(t, worker.IsRunning())

	require.NoError(t, worker.Start())
	assert.True(t, worker.IsRunning())

	// Second start is rejected
	assert.Error(t, worker.Start())

	require.NoError(t, worker.Stop())
	assert.False(t, worker.IsRunning())

	// Stopping twice is harmless
	assert.NoError(t, worker.Stop())
	assert.Contains(t, buf.String(), "Prune worker stopped")
}

func TestPruneWorker_RunOnce(t *testing.T) {
	log, buf := testLogger(t)
	pruner := &stubPruner{deleted: 7}

	worker, err := NewPruneWorker(nil, pruner, log)
	require.NoError(t, err)

	deleted, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
	assert.Equal(t, int32(1), pruner.calls.Load())
	assert.Contains(t, buf.String(), "7 records removed")
}

func TestPruneWorker_RunOnceError(t *testing.T) {
	log, buf := testLogger(t)
	pruner := &stubPruner{err: errors.New("database is locked")}

	worker, err := NewPruneWorker(nil, pruner, log)
	require.NoError(t, err)

	deleted, err := worker.RunOnce(context.Background())
	require.Error(t, err)
	assert.Zero(t, deleted)
	assert.Contains(t, buf.String(), "History prune failed: database is locked")
}

func TestDurationToCronExpression(t *testing.T) {
	testCases := []struct {
		duration time.Duration
		expected string
	}{
		{time.Hour, "0 */1 * * *"},
		{6 * time.Hour, "0 */6 * * *"},
		{5 * time.Minute, "*/5 * * * *"},
		{15 * time.Minute, "*/15 * * * *"},
		{7 * time.Minute, "@every 7m0s"},
		{90 * time.Minute, "@every 1h30m0s"},
		{5 * time.Hour, "@every 5h0m0s"},
		{48 * time.Hour, "@every 48h0m0s"},
		{90 * time.Second, "@every 1m30s"},
	}

	for _, tc := range testCases {
		t.Run(tc.duration.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, durationToCronExpression(tc.duration))
		})
	}
}
