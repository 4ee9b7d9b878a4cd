package cli

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/server"
)

// fakeSource serves fixed data through the real HTTP API.
type fakeSource struct {
	stats metrics.SystemStats
	procs []metrics.ProcessInfo
}

func (f *fakeSource) Stats(ctx context.Context) (metrics.SystemStats, error) {
	return f.stats, nil
}

func (f *fakeSource) Processes(ctx context.Context, sortBy metrics.Column, limit int) ([]metrics.ProcessInfo, error) {
	if limit < len(f.procs) {
		return f.procs[:limit], nil
	}
	return f.procs, nil
}

func testSource() *fakeSource {
	return &fakeSource{
		stats: metrics.SystemStats{CPUPercent: 12.5, MemoryPercent: 40, TotalProcesses: 3},
		procs: []metrics.ProcessInfo{
			{PID: 10, Name: "postgres", CPUPercent: 4.2, MemoryPercent: 22.1},
			{PID: 7, Name: "chrome", CPUPercent: 35.5, MemoryPercent: 9.8},
			{PID: 99, Name: "bash", CPUPercent: 0, MemoryPercent: 0.3},
		},
	}
}

// newTestBackend starts an httptest server in front of src.
func newTestBackend(t *testing.T, src server.Source) *httptest.Server {
	t.Helper()
	srv := server.New(src, server.Options{Version: "test", Logger: logger.Noop()})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// useTestConfig writes cfg to a temp file and points --config at it for the
// duration of the test.
func useTestConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, config.Save(cfg, path))

	old := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = old })
	return path
}
