package collector

import (
	"context"
	"os"
	"testing"

	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCPU(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		cores   int
		want    float64
	}{
		{"single core", 42.0, 1, 42.0},
		{"eight cores", 200.0, 8, 25.0},
		{"rounds to one decimal", 10.0, 3, 3.3},
		{"zero cores treated as one", 12.34, 0, 12.3},
		{"idle", 0, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCPU(tt.percent, tt.cores))
		})
	}
}

func sampleProcs() []metrics.ProcessInfo {
	return []metrics.ProcessInfo{
		{PID: 1, Name: "init", CPUPercent: 0.1, MemoryPercent: 0.5},
		{PID: 2, Name: "postgres", CPUPercent: 12.0, MemoryPercent: 30.2},
		{PID: 3, Name: "chrome", CPUPercent: 40.5, MemoryPercent: 12.0},
		{PID: 4, Name: "sshd", CPUPercent: 12.0, MemoryPercent: 0.1},
	}
}

func pids(procs []metrics.ProcessInfo) []int32 {
	out := make([]int32, len(procs))
	for i, p := range procs {
		out[i] = p.PID
	}
	return out
}

func TestSortForResponse(t *testing.T) {
	tests := []struct {
		name   string
		sortBy metrics.Column
		want   []int32
	}{
		{"cpu descending, ties keep order", metrics.ColumnCPU, []int32{3, 2, 4, 1}},
		{"memory descending", metrics.ColumnMemory, []int32{2, 3, 1, 4}},
		{"unknown falls back to cpu", metrics.Column("user"), []int32{3, 2, 4, 1}},
		{"name falls back to cpu", metrics.ColumnName, []int32{3, 2, 4, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			procs := sampleProcs()
			SortForResponse(procs, tt.sortBy)
			assert.Equal(t, tt.want, pids(procs))
		})
	}
}

func TestTruncate(t *testing.T) {
	procs := sampleProcs()

	assert.Len(t, Truncate(procs, 2), 2)
	assert.Len(t, Truncate(procs, 10), 4)
	assert.Len(t, Truncate(procs, 0), 4)
	assert.Len(t, Truncate(procs, -3), 4)
	assert.Empty(t, Truncate(nil, 5))
}

func TestCollector_LocalHost(t *testing.T) {
	if _, err := os.Stat("/proc/self"); err != nil {
		t.Skip("procfs not available")
	}

	c := New(0, logger.Noop())
	assert.Equal(t, DefaultCPUSample, c.cpuSample)
	assert.GreaterOrEqual(t, c.cores, 1)

	procs, err := c.Processes(context.Background(), metrics.ColumnMemory, 5)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(procs), 5)
	for i := 1; i < len(procs); i++ {
		assert.GreaterOrEqual(t, procs[i-1].MemoryPercent, procs[i].MemoryPercent)
	}
	for _, p := range procs {
		assert.NotZero(t, p.PID)
		assert.NotEqual(t, idleProcessName, p.Name)
	}
}
