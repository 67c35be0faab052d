package core

import "time"

func currentBucket() int64 {
	return time.Now().Unix() / BucketDurationSecs
}

func (s *AppState) handleInitialContainerList(e InitialContainerListEvent) RenderAction {
	for i := range e.Containers {
		c := e.Containers[i]
		s.Containers[c.Key] = &c
		s.SortedKeys = append(s.SortedKeys, c.Key)
	}

	s.forceSortContainers()

	if len(s.Containers) > 0 {
		s.SelectedIndex = 0
	}
	return renderNow()
}

func (s *AppState) handleContainerCreated(e ContainerCreatedEvent) RenderAction {
	c := e.Container
	s.Containers[c.Key] = &c
	s.SortedKeys = append(s.SortedKeys, c.Key)

	s.forceSortContainers()

	if len(s.Containers) == 1 {
		s.SelectedIndex = 0
	}
	return renderNow()
}

func (s *AppState) handleContainerDestroyed(e ContainerDestroyedEvent) RenderAction {
	delete(s.Containers, e.Key)
	s.SortedKeys = removeKey(s.SortedKeys, e.Key)

	s.clampSelectionAfterFilter()
	return renderNow()
}

func (s *AppState) handleContainerStateChanged(e ContainerStateChangedEvent) RenderAction {
	if c, ok := s.Containers[e.Key]; ok {
		c.State = e.State
		return renderNow()
	}
	return renderNone()
}

func (s *AppState) handleContainerHealthChanged(e ContainerHealthChangedEvent) RenderAction {
	if c, ok := s.Containers[e.Key]; ok {
		c.Health = e.Health
	}
	return renderNow()
}

// handleContainerStat applies a stat sample. Events for a key not yet in
// the containers map are silently dropped, matching the source's
// documented race between a container's `start` event and its first stat
// sample (see SPEC_FULL.md §9 open questions).
func (s *AppState) handleContainerStat(e ContainerStatEvent) RenderAction {
	c, ok := s.Containers[e.Key]
	if !ok {
		return renderNone()
	}

	stats := c.Stats
	lastBucket := stats.LastBucket
	bucket := currentBucket()

	if bucket > lastBucket {
		stats.CPUHistory = appendCapped(stats.CPUHistory, e.CPUPercent, HistoryBufferSize)
		stats.MemoryHistory = appendCapped(stats.MemoryHistory, e.MemPercent, HistoryBufferSize)
		stats.LastBucket = bucket
	} else {
		stats.LastBucket = lastBucket
	}

	stats.CPUPercent = e.CPUPercent
	stats.MemoryPercent = e.MemPercent
	stats.MemoryUsedBytes = e.MemUsed
	stats.MemoryLimitByte = e.MemLimit
	stats.NetTxBps = e.NetTxBps
	stats.NetRxBps = e.NetRxBps

	c.Stats = stats
	// Background re-sort, skipped while SortThrottle has not yet elapsed.
	s.SortContainers()
	s.clampSelectionAfterFilter()
	return renderNone() // stats-only update: no forced redraw, periodic tick handles it
}

func appendCapped(history []float64, v float64, cap int) []float64 {
	history = append(history, v)
	if len(history) > cap {
		history = history[len(history)-cap:]
	}
	return history
}

func removeKey(keys []ContainerKey, target ContainerKey) []ContainerKey {
	out := keys[:0]
	for _, k := range keys {
		if k != target {
			out = append(out, k)
		}
	}
	return out
}

// clampSelectionAfterFilter enforces invariant 4: after any rebuild the
// selection index is either out of range (empty list) or valid.
func (s *AppState) clampSelectionAfterFilter() {
	n := len(s.SortedKeys)
	if n == 0 {
		s.SelectedIndex = -1
		return
	}
	if s.SelectedIndex >= n {
		s.SelectedIndex = n - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
}
