package dockerhost

import (
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/dtop/dtop/internal/core"
	"github.com/stretchr/testify/assert"
)

func statsAt(cpuTotal, systemUsage uint64) *container.StatsResponse {
	s := &container.StatsResponse{}
	s.CPUStats.CPUUsage.TotalUsage = cpuTotal
	s.CPUStats.SystemUsage = systemUsage
	s.CPUStats.OnlineCPUs = 1
	s.MemoryStats.Usage = 100
	s.MemoryStats.Limit = 1000
	return s
}

func TestFirstSampleHasNoRateYet(t *testing.T) {
	tr := NewStatsTracker()
	key := core.NewContainerKey("local", "c1")
	event := tr.Apply(key, statsAt(1000, 2000))
	assert.Equal(t, 0.0, event.CPUPercent, "no prior sample means no delta to compute a percentage from")
}

func TestCPUPercentFromTwoSamples(t *testing.T) {
	tr := NewStatsTracker()
	key := core.NewContainerKey("local", "c1")
	tr.Apply(key, statsAt(1000, 2000))
	event := tr.Apply(key, statsAt(2000, 4000))
	// cpuDelta=1000, systemDelta=2000, numCPUs=1 -> instant 50%, EMA of
	// (0 baseline implicit, first real instant) takes the instant verbatim.
	assert.InDelta(t, 50.0, event.CPUPercent, 0.001)
}

func TestZeroCPUDeltaYieldsZeroPercent(t *testing.T) {
	tr := NewStatsTracker()
	key := core.NewContainerKey("local", "c1")
	tr.Apply(key, statsAt(1000, 2000))
	event := tr.Apply(key, statsAt(1000, 4000))
	assert.Equal(t, 0.0, event.CPUPercent, "a zero cpu delta must not be treated as a positive usage signal")
}

func TestNegativeCPUDeltaYieldsZeroPercent(t *testing.T) {
	tr := NewStatsTracker()
	key := core.NewContainerKey("local", "c1")
	tr.Apply(key, statsAt(5000, 2000))
	event := tr.Apply(key, statsAt(1000, 4000))
	assert.Equal(t, 0.0, event.CPUPercent, "a counter rollback (restart) yields 0%, not a negative percentage")
}

func TestForgetDropsSmoothingState(t *testing.T) {
	tr := NewStatsTracker()
	key := core.NewContainerKey("local", "c1")
	tr.Apply(key, statsAt(1000, 2000))
	tr.Forget(key)

	event := tr.Apply(key, statsAt(9000, 9000))
	assert.Equal(t, 0.0, event.CPUPercent, "after Forget the next sample is treated as a fresh baseline")
}
