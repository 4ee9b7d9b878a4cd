// Package collector samples host metrics with gopsutil and shapes them into
// the sysmon wire model served by internal/server.
package collector

import (
	"context"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// idleProcessName is the Windows pseudo-process that only reports idle time.
const idleProcessName = "System Idle Process"

// DefaultCPUSample is how long Stats samples CPU when no duration is configured.
const DefaultCPUSample = 500 * time.Millisecond

// Collector gathers system and per-process metrics from the local host.
//
// Process CPU percentages are computed from the delta between two calls, so
// the collector keeps one *process.Process per PID across calls. A process
// reports 0% the first time it is seen.
type Collector struct {
	cpuSample time.Duration
	cores     int
	log       logger.Logger

	mu    sync.Mutex
	procs map[int32]*process.Process
}

// New creates a Collector. cpuSample <= 0 uses DefaultCPUSample.
func New(cpuSample time.Duration, log logger.Logger) *Collector {
	if cpuSample <= 0 {
		cpuSample = DefaultCPUSample
	}
	if log == nil {
		log = logger.Noop()
	}

	cores, err := cpu.Counts(true)
	if err != nil || cores < 1 {
		cores = runtime.NumCPU()
	}

	return &Collector{
		cpuSample: cpuSample,
		cores:     cores,
		log:       log,
		procs:     make(map[int32]*process.Process),
	}
}

// Stats samples total CPU usage over the configured window, memory usage, and
// the number of running processes.
func (c *Collector) Stats(ctx context.Context) (metrics.SystemStats, error) {
	cpuPct, err := cpu.PercentWithContext(ctx, c.cpuSample, false)
	if err != nil {
		return metrics.SystemStats{}, errors.WrapWithCode(err, errors.ErrCollect, "Couldn't sample CPU usage", "")
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return metrics.SystemStats{}, errors.WrapWithCode(err, errors.ErrCollect, "Couldn't read memory usage", "")
	}

	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return metrics.SystemStats{}, errors.WrapWithCode(err, errors.ErrCollect, "Couldn't list processes", "")
	}

	var total float64
	if len(cpuPct) > 0 {
		total = cpuPct[0]
	}

	return metrics.SystemStats{
		CPUPercent:     roundTenth(total),
		MemoryPercent:  roundTenth(vm.UsedPercent),
		TotalProcesses: len(pids),
	}, nil
}

// Processes returns up to limit processes sorted descending by memory when
// sortBy is the memory column, and by CPU otherwise. limit <= 0 returns all.
func (c *Collector) Processes(ctx context.Context, sortBy metrics.Column, limit int) ([]metrics.ProcessInfo, error) {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCollect, "Couldn't list processes", "")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[int32]bool, len(pids))
	out := make([]metrics.ProcessInfo, 0, len(pids))

	for _, pid := range pids {
		if pid == 0 {
			continue
		}
		seen[pid] = true

		info, ok := c.sampleProcess(ctx, pid)
		if !ok {
			continue
		}
		out = append(out, info)
	}

	// Forget exited processes so a reused PID starts from a fresh baseline.
	for pid := range c.procs {
		if !seen[pid] {
			delete(c.procs, pid)
		}
	}

	SortForResponse(out, sortBy)
	return Truncate(out, limit), nil
}

// sampleProcess reads one process. Processes that vanish or deny access
// mid-read are skipped. Must be called with c.mu held.
func (c *Collector) sampleProcess(ctx context.Context, pid int32) (metrics.ProcessInfo, bool) {
	p, ok := c.procs[pid]
	if !ok {
		var err error
		p, err = process.NewProcessWithContext(ctx, pid)
		if err != nil {
			return metrics.ProcessInfo{}, false
		}
		c.procs[pid] = p
	}

	name, err := p.NameWithContext(ctx)
	if err != nil {
		c.log.Debug("skipping pid %d: %v", pid, err)
		delete(c.procs, pid)
		return metrics.ProcessInfo{}, false
	}
	if name == idleProcessName {
		return metrics.ProcessInfo{}, false
	}

	cpuPct, err := p.PercentWithContext(ctx, 0)
	if err != nil {
		cpuPct = 0
	}
	memPct, err := p.MemoryPercentWithContext(ctx)
	if err != nil {
		memPct = 0
	}

	return metrics.ProcessInfo{
		PID:           pid,
		Name:          name,
		CPUPercent:    NormalizeCPU(cpuPct, c.cores),
		MemoryPercent: roundTenth(float64(memPct)),
	}, true
}

// NormalizeCPU converts a per-core percentage (which can exceed 100 on
// multi-core hosts) into a share of total capacity, rounded to one decimal.
func NormalizeCPU(percent float64, cores int) float64 {
	if cores < 1 {
		cores = 1
	}
	return roundTenth(percent / float64(cores))
}

// SortForResponse orders processes descending by memory for the memory
// column and by CPU for anything else.
func SortForResponse(procs []metrics.ProcessInfo, sortBy metrics.Column) {
	byMemory := sortBy == metrics.ColumnMemory
	sort.SliceStable(procs, func(i, j int) bool {
		if byMemory {
			return procs[i].MemoryPercent > procs[j].MemoryPercent
		}
		return procs[i].CPUPercent > procs[j].CPUPercent
	})
}

// Truncate returns the first limit entries. limit <= 0 keeps everything.
func Truncate(procs []metrics.ProcessInfo, limit int) []metrics.ProcessInfo {
	if limit <= 0 || len(procs) <= limit {
		return procs
	}
	return procs[:limit]
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
