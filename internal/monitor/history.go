package monitor

import (
	"fmt"
	"strings"
)

// DefaultWindow is the number of samples the chart keeps.
const DefaultWindow = 30

// Exponential smoothing weights: stored = retain*previous + weight*raw.
const (
	smoothingRetain = 0.6
	smoothingWeight = 0.4
)

// SmoothingMode selects how TimeSeriesBuffer stores incoming values. A buffer
// keeps the mode it was created with.
type SmoothingMode int

const (
	// SmoothingExponential blends each value with the previously stored one.
	SmoothingExponential SmoothingMode = iota
	// SmoothingRaw stores values verbatim.
	SmoothingRaw
)

// String returns the config spelling of the mode.
func (m SmoothingMode) String() string {
	if m == SmoothingRaw {
		return "raw"
	}
	return "exponential"
}

// ParseSmoothingMode converts a config value to a SmoothingMode.
func ParseSmoothingMode(s string) (SmoothingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exponential":
		return SmoothingExponential, nil
	case "raw":
		return SmoothingRaw, nil
	}
	return SmoothingExponential, fmt.Errorf("unknown smoothing mode %q", s)
}

// Sample is one chart point: a wall-clock label and the stored CPU and memory
// values.
type Sample struct {
	Label string
	CPU   float64
	Mem   float64
}

// SeriesSnapshot is a read-only copy of a TimeSeriesBuffer. All three slices
// have the same length and index i refers to the same sample.
type SeriesSnapshot struct {
	Labels []string
	CPU    []float64
	Mem    []float64
}

// Len returns the number of samples in the snapshot.
func (s SeriesSnapshot) Len() int {
	return len(s.Labels)
}

// TimeSeriesBuffer is a fixed-capacity FIFO window of Samples. Labels and both
// value series live in one ring of Sample structs, so eviction can never
// desynchronize them.
//
// It is owned by the dashboard Model and touched only from its Update loop;
// it is not safe for concurrent use.
type TimeSeriesBuffer struct {
	data  []Sample
	head  int
	count int
	size  int
	mode  SmoothingMode
}

// NewTimeSeriesBuffer creates a buffer holding at most capacity samples.
// capacity <= 0 uses DefaultWindow.
func NewTimeSeriesBuffer(capacity int, mode SmoothingMode) *TimeSeriesBuffer {
	if capacity <= 0 {
		capacity = DefaultWindow
	}
	return &TimeSeriesBuffer{
		data: make([]Sample, capacity),
		size: capacity,
		mode: mode,
	}
}

// Push appends a sample, smoothing it first in exponential mode, and evicts
// the oldest sample once the buffer is over capacity.
func (b *TimeSeriesBuffer) Push(cpu, mem float64, label string) {
	if b.mode == SmoothingExponential {
		if prev, ok := b.Latest(); ok {
			cpu = smoothingRetain*prev.CPU + smoothingWeight*cpu
			mem = smoothingRetain*prev.Mem + smoothingWeight*mem
		}
	}

	b.data[b.head] = Sample{Label: label, CPU: cpu, Mem: mem}
	b.head = (b.head + 1) % b.size
	if b.count < b.size {
		b.count++
	}
}

// Latest returns the most recently stored sample.
func (b *TimeSeriesBuffer) Latest() (Sample, bool) {
	if b.count == 0 {
		return Sample{}, false
	}
	return b.data[(b.head-1+b.size)%b.size], true
}

// Samples returns the stored samples oldest first.
func (b *TimeSeriesBuffer) Samples() []Sample {
	out := make([]Sample, b.count)
	start := (b.head - b.count + b.size) % b.size
	for i := 0; i < b.count; i++ {
		out[i] = b.data[(start+i)%b.size]
	}
	return out
}

// Snapshot returns fresh, index-aligned copies of the labels and both series.
func (b *TimeSeriesBuffer) Snapshot() SeriesSnapshot {
	samples := b.Samples()
	snap := SeriesSnapshot{
		Labels: make([]string, len(samples)),
		CPU:    make([]float64, len(samples)),
		Mem:    make([]float64, len(samples)),
	}
	for i, s := range samples {
		snap.Labels[i] = s.Label
		snap.CPU[i] = s.CPU
		snap.Mem[i] = s.Mem
	}
	return snap
}

// Len returns the number of stored samples.
func (b *TimeSeriesBuffer) Len() int {
	return b.count
}

// Cap returns the buffer capacity.
func (b *TimeSeriesBuffer) Cap() int {
	return b.size
}

// Mode returns the smoothing mode fixed at construction.
func (b *TimeSeriesBuffer) Mode() SmoothingMode {
	return b.mode
}
