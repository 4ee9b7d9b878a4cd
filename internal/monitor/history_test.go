package monitor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeSeriesBuffer(t *testing.T) {
	b := NewTimeSeriesBuffer(10, SmoothingRaw)
	assert.Equal(t, 10, b.Cap())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, SmoothingRaw, b.Mode())

	_, ok := b.Latest()
	assert.False(t, ok)
}

func TestNewTimeSeriesBuffer_DefaultCapacity(t *testing.T) {
	b := NewTimeSeriesBuffer(0, SmoothingExponential)
	assert.Equal(t, DefaultWindow, b.Cap())
}

func TestTimeSeriesBuffer_ExponentialSmoothing(t *testing.T) {
	b := NewTimeSeriesBuffer(DefaultWindow, SmoothingExponential)
	b.Push(10, 50, "10:00:00")
	b.Push(20, 60, "10:00:01")

	snap := b.Snapshot()
	require.Len(t, snap.CPU, 2)
	assert.InDelta(t, 10, snap.CPU[0], 1e-9, "first sample is stored raw")
	assert.InDelta(t, 14, snap.CPU[1], 1e-9)
	assert.InDelta(t, 50, snap.Mem[0], 1e-9)
	assert.InDelta(t, 54, snap.Mem[1], 1e-9)
	assert.Equal(t, []string{"10:00:00", "10:00:01"}, snap.Labels)
}

func TestTimeSeriesBuffer_RawMode(t *testing.T) {
	b := NewTimeSeriesBuffer(DefaultWindow, SmoothingRaw)
	b.Push(10, 50, "a")
	b.Push(20, 60, "b")

	snap := b.Snapshot()
	assert.Equal(t, []float64{10, 20}, snap.CPU)
	assert.Equal(t, []float64{50, 60}, snap.Mem)
}

func TestTimeSeriesBuffer_EvictsOldest(t *testing.T) {
	b := NewTimeSeriesBuffer(DefaultWindow, SmoothingRaw)
	for i := 0; i < 31; i++ {
		b.Push(float64(i), float64(i*2), fmt.Sprintf("t%d", i))
	}

	snap := b.Snapshot()
	require.Equal(t, 30, snap.Len())
	assert.Len(t, snap.CPU, 30)
	assert.Len(t, snap.Mem, 30)
	assert.Equal(t, "t1", snap.Labels[0], "oldest sample should be evicted")
	assert.Equal(t, "t30", snap.Labels[29])
	assert.Equal(t, 1.0, snap.CPU[0])
	assert.Equal(t, 60.0, snap.Mem[29])
}

func TestTimeSeriesBuffer_StaysAligned(t *testing.T) {
	b := NewTimeSeriesBuffer(5, SmoothingRaw)
	for i := 0; i < 17; i++ {
		b.Push(float64(i), float64(100+i), fmt.Sprintf("%d", i))
		snap := b.Snapshot()
		require.Equal(t, len(snap.Labels), len(snap.CPU))
		require.Equal(t, len(snap.Labels), len(snap.Mem))
		for j, label := range snap.Labels {
			assert.Equal(t, label, fmt.Sprintf("%d", int(snap.CPU[j])))
			assert.Equal(t, snap.CPU[j]+100, snap.Mem[j])
		}
	}
}

func TestTimeSeriesBuffer_SmoothingAfterEviction(t *testing.T) {
	b := NewTimeSeriesBuffer(2, SmoothingExponential)
	b.Push(0, 0, "a")
	b.Push(100, 100, "b") // 40
	b.Push(100, 100, "c") // 0.6*40 + 40 = 64

	latest, ok := b.Latest()
	require.True(t, ok)
	assert.InDelta(t, 64, latest.CPU, 1e-9)
	assert.Equal(t, 2, b.Len())
}

func TestTimeSeriesBuffer_SnapshotIsCopy(t *testing.T) {
	b := NewTimeSeriesBuffer(3, SmoothingRaw)
	b.Push(1, 2, "a")

	snap := b.Snapshot()
	snap.CPU[0] = 99
	snap.Labels[0] = "changed"

	again := b.Snapshot()
	assert.Equal(t, 1.0, again.CPU[0])
	assert.Equal(t, "a", again.Labels[0])
}

func TestParseSmoothingMode(t *testing.T) {
	tests := []struct {
		input   string
		want    SmoothingMode
		wantErr bool
	}{
		{input: "", want: SmoothingExponential},
		{input: "exponential", want: SmoothingExponential},
		{input: " RAW ", want: SmoothingRaw},
		{input: "cubic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSmoothingMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSmoothingMode_String(t *testing.T) {
	assert.Equal(t, "exponential", SmoothingExponential.String())
	assert.Equal(t, "raw", SmoothingRaw.String())
}
