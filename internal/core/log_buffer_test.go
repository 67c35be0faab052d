package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHandleLogLineTrimsToMaxLogEntries(t *testing.T) {
	s := NewAppState()
	s.MaxLogEntries = 3

	c := seedContainer("local", "c1c1c1c1c1c1", "c1", StateRunning)
	s.Handle(InitialContainerListEvent{Host: "local", Containers: []Container{c}})
	s.SelectedIndex = 0
	s.Handle(ShowLogViewEvent{})
	require.NotNil(t, s.LogState)

	for i := 0; i < 5; i++ {
		s.Handle(LogLineEvent{Key: c.Key, Entry: LogEntry{Timestamp: time.Now(), Text: string(rune('a' + i))}})
	}

	require.Len(t, s.LogState.Entries, 3)
	require.Equal(t, "c", s.LogState.Entries[0].Text)
	require.Equal(t, "e", s.LogState.Entries[2].Text)
}
