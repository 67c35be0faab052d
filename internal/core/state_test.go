package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedContainer(host HostID, id, name string, state ContainerState) Container {
	return Container{
		Key:   NewContainerKey(host, id),
		Name:  name,
		State: state,
	}
}

// Scenario 2 from SPEC_FULL.md §8: container lifecycle.
func TestContainerLifecycle(t *testing.T) {
	s := NewAppState()
	c1 := seedContainer("local", "c1c1c1c1c1c1", "c1", StateRunning)
	s.Handle(InitialContainerListEvent{Host: "local", Containers: []Container{c1}})
	require.Len(t, s.SortedKeys, 1)

	c2 := seedContainer("local", "c2c2c2c2c2c2", "c2", StateRunning)
	s.Handle(ContainerCreatedEvent{Container: c2})
	assert.Len(t, s.SortedKeys, 2)

	s.Handle(ContainerStatEvent{Key: c2.Key, CPUPercent: 1, MemPercent: 1})
	s.Handle(ContainerStatEvent{Key: c2.Key, CPUPercent: 2, MemPercent: 2})

	s.Handle(ContainerStateChangedEvent{Key: c2.Key, State: StateExited})
	require.Contains(t, s.Containers, c2.Key)
	assert.Equal(t, StateExited, s.Containers[c2.Key].State)
	// show_all is false by default, so the now-exited c2 is filtered out of
	// sorted_keys even though it remains in the containers map (invariant 1
	// allows this: sorted_keys subset of containers, not the reverse).
	s.forceSortContainers()
	assert.Len(t, s.SortedKeys, 1)

	s.Handle(ContainerDestroyedEvent{Key: c2.Key})
	assert.Len(t, s.SortedKeys, 1)
	assert.NotContains(t, s.Containers, c2.Key)
	assert.GreaterOrEqual(t, s.SelectedIndex, 0)
}

// Open question: stats for an unknown key are dropped silently.
func TestContainerStatDroppedForUnknownKey(t *testing.T) {
	s := NewAppState()
	action := s.Handle(ContainerStatEvent{Key: NewContainerKey("local", "ghost"), CPUPercent: 50})
	assert.Equal(t, RenderNone, action.Kind)
	assert.Empty(t, s.Containers)
}

// Scenario 3: search filter.
func TestSearchFilterScenario(t *testing.T) {
	s := NewAppState()
	s.Handle(InitialContainerListEvent{Host: "local", Containers: []Container{
		seedContainer("local", "n1", "nginx", StateRunning),
		seedContainer("local", "p1", "postgres", StateRunning),
		seedContainer("local", "r1", "redis", StateRunning),
	}})

	s.Handle(EnterSearchModeEvent{})
	s.Handle(SearchKeyEvent{Key: "r"})
	names := namesOf(s)
	assert.Equal(t, []string{"postgres", "redis"}, names)

	s.Handle(SearchKeyEvent{Key: "e"})
	names = namesOf(s)
	// "postgres" contains "re" as well, so both stay in the list.
	assert.Equal(t, []string{"postgres", "redis"}, names)
	assert.Equal(t, 0, s.SelectedIndex)
}

func namesOf(s *AppState) []string {
	out := make([]string, 0, len(s.SortedKeys))
	for _, k := range s.SortedKeys {
		out = append(out, s.Containers[k].Name)
	}
	return out
}

// Scenario 4: log auto-follow vs scroll.
func TestLogAutoFollowVsScroll(t *testing.T) {
	s := NewAppState()
	c1 := seedContainer("local", "c1", "c1", StateRunning)
	s.Containers[c1.Key] = &c1
	s.ViewState = ViewState{Kind: ViewLogView, Key: c1.Key}
	s.LogState = NewLogState(c1.Key, nil)
	s.LastViewportHeight = 10

	entries := make([]LogEntry, 100)
	base := time.Now().Add(-100 * time.Minute)
	for i := range entries {
		entries[i] = LogEntry{Timestamp: base.Add(time.Duration(i) * time.Minute), Text: "line"}
	}
	s.Handle(LogBatchPrependEvent{Key: c1.Key, Entries: entries, HasMore: true})
	s.Handle(LogLineEvent{Key: c1.Key, Entry: LogEntry{Timestamp: time.Now(), Text: "live"}})
	require.True(t, s.LogState.IsAtBottom)

	s.Handle(ScrollToTopEvent{})
	assert.Equal(t, 0, s.LogState.ScrollOffset)
	assert.False(t, s.LogState.IsAtBottom)

	older := make([]LogEntry, 50)
	olderBase := base.Add(-50 * time.Minute)
	for i := range older {
		older[i] = LogEntry{Timestamp: olderBase.Add(time.Duration(i) * time.Minute), Text: "old"}
	}
	s.Handle(LogBatchPrependEvent{Key: c1.Key, Entries: older, HasMore: false})
	assert.Equal(t, 50, s.LogState.ScrollOffset)

	s.Handle(ScrollToBottomEvent{})
	assert.True(t, s.LogState.IsAtBottom)
	s.Handle(LogLineEvent{Key: c1.Key, Entry: LogEntry{Timestamp: time.Now(), Text: "another"}})
	assert.True(t, s.LogState.IsAtBottom)
}

// Scenario 5: throttled sort.
func TestThrottledSort(t *testing.T) {
	s := NewAppState()
	c1 := seedContainer("local", "c1", "c1", StateRunning)
	s.Handle(ContainerCreatedEvent{Container: c1}) // forced sort
	firstSortTime := s.LastSortTime

	for i := 0; i < 10; i++ {
		s.Handle(ContainerStatEvent{Key: c1.Key, CPUPercent: float64(i)})
	}
	assert.Equal(t, firstSortTime, s.LastSortTime, "stat-only events inside the throttle window must not trigger a rebuild")
}

// Invariant 4 + selection clamp on destroy.
func TestSelectionClampsOnDestroy(t *testing.T) {
	s := NewAppState()
	s.Handle(InitialContainerListEvent{Host: "local", Containers: []Container{
		seedContainer("local", "a", "a", StateRunning),
		seedContainer("local", "b", "b", StateRunning),
	}})
	s.SelectedIndex = 1
	lastKey := s.SortedKeys[1]
	s.Handle(ContainerDestroyedEvent{Key: lastKey})
	assert.Less(t, s.SelectedIndex, len(s.SortedKeys))
}

func TestConnectionErrorTTLReap(t *testing.T) {
	s := NewAppState()
	s.Handle(ConnectionErrorEvent{Host: "bad", Message: "boom"})
	require.Contains(t, s.ConnectionErrors, HostID("bad"))

	entry := s.ConnectionErrors["bad"]
	entry.At = time.Now().Add(-11 * time.Second)
	s.ConnectionErrors["bad"] = entry

	s.ReapConnectionErrors()
	assert.NotContains(t, s.ConnectionErrors, HostID("bad"))
}

func TestShellRoundTrip(t *testing.T) {
	s := NewAppState()
	c1 := seedContainer("local", "c1", "c1", StateRunning)
	s.Handle(ContainerCreatedEvent{Container: c1})
	s.SelectedIndex = 0

	action := s.Handle(EnterPressedEvent{})
	require.Equal(t, RenderNow, action.Kind)
	require.Equal(t, ViewActionMenu, s.ViewState.Kind)

	// Shell is first in AvailableActionsForState(Running).
	action = s.Handle(EnterPressedEvent{})
	require.Equal(t, RenderStartShell, action.Kind)
	assert.Equal(t, c1.Key, action.Key)
	assert.Equal(t, ViewContainerList, s.ViewState.Kind)
}
