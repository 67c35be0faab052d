package dockerhost

import (
	"sync"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/dtop/dtop/internal/core"
)

// emaAlpha is the smoothing factor applied to every instantaneous sample
// before it reaches the UI, so a single noisy tick doesn't make a
// sparkline jump.
const emaAlpha = 0.3

// sample holds the previous raw counters needed to turn two successive
// Docker stats snapshots into rates.
type sample struct {
	cpuTotal, systemUsage uint64
	memUsage, memLimit    uint64
	txBytes, rxBytes      uint64
	netAt                 time.Time // when txBytes/rxBytes were taken
	haveCPU, haveMem, haveNet          bool // have a prior raw counter to delta against
	haveEmaCPU, haveEmaTx, haveEmaRx   bool // have a prior smoothed value to blend against
	emaCPU, emaMem, emaTx, emaRx       float64
}

// StatsTracker holds the per-container smoothing state that must persist
// between successive stats snapshots. It lives outside internal/core
// because core.ContainerStats is a pure rendering snapshot, not a place to
// keep raw cumulative counters — the same separation the teacher's
// CPUStatsCache/LogRateTracker pair draws between live I/O state and the
// model's rendered view.
type StatsTracker struct {
	mu      sync.Mutex
	samples map[core.ContainerKey]*sample
}

// NewStatsTracker creates an empty tracker.
func NewStatsTracker() *StatsTracker {
	return &StatsTracker{samples: make(map[core.ContainerKey]*sample)}
}

// Forget drops smoothing state for a container that no longer exists, so a
// future container reusing the same short ID doesn't inherit stale rates.
func (t *StatsTracker) Forget(key core.ContainerKey) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.samples, key)
}

// Apply folds one raw engine stats snapshot into the tracked smoothing
// state and returns the core.ContainerStatEvent ready to publish. The CPU
// percentage formula matches Docker's own client-side calculation:
// (cpuDelta / systemDelta) * onlineCPUs * 100, gated on cpuDelta being
// strictly positive — a zero or negative delta (clock skew, a stats
// snapshot repeated before the container has run again) yields 0%, not a
// stale carried-over value.
func (t *StatsTracker) Apply(key core.ContainerKey, stats *container.StatsResponse) core.ContainerStatEvent {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, ok := t.samples[key]
	if !ok {
		prev = &sample{}
		t.samples[key] = prev
	}

	event := core.ContainerStatEvent{Key: key}

	cpuTotal := stats.CPUStats.CPUUsage.TotalUsage
	systemUsage := stats.CPUStats.SystemUsage
	if prev.haveCPU {
		cpuDelta := float64(cpuTotal) - float64(prev.cpuTotal)
		systemDelta := float64(systemUsage) - float64(prev.systemUsage)
		numCPUs := float64(stats.CPUStats.OnlineCPUs)
		if numCPUs == 0 {
			numCPUs = float64(len(stats.CPUStats.CPUUsage.PercpuUsage))
		}
		if numCPUs == 0 {
			numCPUs = 1
		}

		var instant float64
		if systemDelta > 0 && cpuDelta > 0 {
			instant = (cpuDelta / systemDelta) * numCPUs * 100.0
			if instant > 999.0 {
				instant = 999.0
			}
		}
		havePrevEma := prev.haveEmaCPU
		prev.emaCPU = ema(prev.emaCPU, instant, havePrevEma)
		prev.haveEmaCPU = true
	}
	prev.cpuTotal, prev.systemUsage, prev.haveCPU = cpuTotal, systemUsage, true
	event.CPUPercent = prev.emaCPU

	memUsage := stats.MemoryStats.Usage
	memLimit := stats.MemoryStats.Limit
	var memPercent float64
	if memLimit > 0 {
		memPercent = float64(memUsage) / float64(memLimit) * 100.0
	}
	prev.emaMem = ema(prev.emaMem, memPercent, prev.haveMem)
	prev.haveMem = true
	event.MemPercent = prev.emaMem
	event.MemUsed = memUsage
	event.MemLimit = memLimit

	var txBytes, rxBytes uint64
	for _, iface := range stats.Networks {
		txBytes += iface.TxBytes
		rxBytes += iface.RxBytes
	}
	now := time.Now()
	if prev.haveNet {
		var txRate, rxRate float64
		if elapsed := now.Sub(prev.netAt).Seconds(); elapsed > 0 {
			txRate = float64(txBytes-prev.txBytes) / elapsed
			rxRate = float64(rxBytes-prev.rxBytes) / elapsed
		}
		prev.emaTx = ema(prev.emaTx, txRate, prev.haveEmaTx)
		prev.haveEmaTx = true
		prev.emaRx = ema(prev.emaRx, rxRate, prev.haveEmaRx)
		prev.haveEmaRx = true
	}
	prev.txBytes, prev.rxBytes, prev.haveNet, prev.netAt = txBytes, rxBytes, true, now
	event.NetTxBps = prev.emaTx
	event.NetRxBps = prev.emaRx

	return event
}

// ema applies exponential smoothing; the first sample is taken verbatim
// since there is no prior value to blend against.
func ema(prevValue, instant float64, havePrev bool) float64 {
	if !havePrev {
		return instant
	}
	return emaAlpha*instant + (1-emaAlpha)*prevValue
}
