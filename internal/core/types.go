// Package core implements the single-writer event bus and application state
// machine: the part of dtop that owns no I/O and is unit-testable without a
// runtime.
package core

import (
	"strings"
	"time"
)

// HistoryBufferSize caps the number of samples retained per CPU/memory
// sparkline history.
const HistoryBufferSize = 20

// BucketDurationSecs is the width, in wall-clock seconds, of a history
// bucket. Samples landing in the same bucket never produce more than one
// history entry, which keeps sparklines across containers ticking in
// lockstep regardless of per-container sampling jitter.
const BucketDurationSecs = 2

// SortThrottle bounds how often a background event burst may force a
// re-sort of the visible container list.
const SortThrottle = 3 * time.Second

// ConnectionErrorTTL is how long a connection-error toast survives before
// being reaped.
const ConnectionErrorTTL = 10 * time.Second

// HostID is an opaque identifier for a connected engine host.
type HostID string

// ContainerKey identifies a container uniquely across all connected hosts.
type ContainerKey struct {
	HostID      HostID
	ContainerID string // first 12 characters of the engine-assigned id
}

// ShortID truncates an engine container id to the 12-character form used
// throughout the UI and as half of a ContainerKey.
func ShortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12]
}

// NewContainerKey builds a ContainerKey, truncating the container id.
func NewContainerKey(host HostID, containerID string) ContainerKey {
	return ContainerKey{HostID: host, ContainerID: ShortID(containerID)}
}

// ContainerState is the lifecycle state of a container as reported by the
// engine.
type ContainerState int

const (
	StateUnknown ContainerState = iota
	StateRunning
	StatePaused
	StateRestarting
	StateRemoving
	StateExited
	StateDead
	StateCreated
)

// ParseContainerState maps an engine-reported status string to a
// ContainerState using substring matching, mirroring the permissive
// matching the original implementation performs against Docker's free-form
// status text (e.g. "Up 3 hours" vs. bare "running").
func ParseContainerState(raw string) ContainerState {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "running") || strings.HasPrefix(s, "up "):
		return StateRunning
	case strings.Contains(s, "paused"):
		return StatePaused
	case strings.Contains(s, "restarting"):
		return StateRestarting
	case strings.Contains(s, "removing"):
		return StateRemoving
	case strings.Contains(s, "exited"):
		return StateExited
	case strings.Contains(s, "dead"):
		return StateDead
	case strings.Contains(s, "created"):
		return StateCreated
	default:
		return StateUnknown
	}
}

func (s ContainerState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateRestarting:
		return "restarting"
	case StateRemoving:
		return "removing"
	case StateExited:
		return "exited"
	case StateDead:
		return "dead"
	case StateCreated:
		return "created"
	default:
		return "unknown"
	}
}

// HealthStatus is the optional health-check result of a container.
type HealthStatus int

const (
	HealthNone HealthStatus = iota
	HealthStarting
	HealthHealthy
	HealthUnhealthy
)

// ParseHealthStatus maps an engine health string to a HealthStatus.
func ParseHealthStatus(raw string) HealthStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "starting":
		return HealthStarting
	case "healthy":
		return HealthHealthy
	case "unhealthy":
		return HealthUnhealthy
	default:
		return HealthNone
	}
}

func (h HealthStatus) String() string {
	switch h {
	case HealthStarting:
		return "starting"
	case HealthHealthy:
		return "healthy"
	case HealthUnhealthy:
		return "unhealthy"
	default:
		return ""
	}
}

// ContainerStats holds the latest smoothed resource usage for a container
// plus its bucketed sparkline history.
type ContainerStats struct {
	CPUPercent      float64
	MemoryPercent   float64
	MemoryUsedBytes uint64
	MemoryLimitByte uint64
	NetTxBps        float64
	NetRxBps        float64

	CPUHistory    []float64
	MemoryHistory []float64
	LastBucket    int64

	// not written anywhere: smoothing state lives in dockerhost.StatsTracker
	haveCPU, haveMem, haveTx, haveRx             bool
	prevCPU, prevMem, prevTx, prevRx             float64
}

// Container is one row of the monitored fleet.
type Container struct {
	Key        ContainerKey
	Name       string
	State      ContainerState
	Health     HealthStatus
	CreatedAt  *time.Time
	Stats      ContainerStats
	DozzleURL  string
}

// ViewKind is the tagged discriminant of ViewState.
type ViewKind int

const (
	ViewContainerList ViewKind = iota
	ViewLogView
	ViewActionMenu
	ViewSearchMode
)

// ViewState is a closed sum over the screens the renderer may show. Only
// ViewLogView and ViewActionMenu carry a payload (the container in focus).
type ViewState struct {
	Kind ViewKind
	Key  ContainerKey
}

// SortField selects the secondary sort key (primary is always host id).
type SortField int

const (
	SortUptime SortField = iota
	SortName
	SortCPU
	SortMemory
)

// Next cycles to the following sort field in the fixed rotation order.
func (f SortField) Next() SortField {
	switch f {
	case SortUptime:
		return SortName
	case SortName:
		return SortCPU
	case SortCPU:
		return SortMemory
	default:
		return SortUptime
	}
}

// SortDirection is ascending or descending.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// Toggle flips the direction.
func (d SortDirection) Toggle() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Symbol returns the glyph used in the column header.
func (d SortDirection) Symbol() string {
	if d == Ascending {
		return "▲"
	}
	return "▼"
}

// DefaultDirection returns the field's natural sort direction.
func (f SortField) DefaultDirection() SortDirection {
	switch f {
	case SortName:
		return Ascending
	default:
		return Descending
	}
}

// SortState is the field+direction pair driving the secondary sort.
type SortState struct {
	Field     SortField
	Direction SortDirection
}

// NewSortState builds a SortState using the field's default direction.
func NewSortState(field SortField) SortState {
	return SortState{Field: field, Direction: field.DefaultDirection()}
}

// ContainerAction enumerates the lifecycle operations the action menu may
// dispatch.
type ContainerAction int

const (
	ActionStart ContainerAction = iota
	ActionStop
	ActionRestart
	ActionRemove
	ActionShell
)

// DisplayName is the label shown in the action menu.
func (a ContainerAction) DisplayName() string {
	switch a {
	case ActionStart:
		return "Start"
	case ActionStop:
		return "Stop"
	case ActionRestart:
		return "Restart"
	case ActionRemove:
		return "Remove"
	case ActionShell:
		return "Shell"
	default:
		return "?"
	}
}

// AvailableActionsForState returns the actions the action menu offers for a
// container in the given state.
func AvailableActionsForState(state ContainerState) []ContainerAction {
	switch state {
	case StateRunning:
		return []ContainerAction{ActionShell, ActionStop, ActionRestart, ActionRemove}
	case StatePaused:
		return []ContainerAction{ActionStop, ActionRemove}
	case StateExited, StateCreated, StateDead:
		return []ContainerAction{ActionStart, ActionRemove}
	default:
		return nil
	}
}

// RenderActionKind is the closed sum of directives AppState.Handle returns
// to the event loop.
type RenderActionKind int

const (
	RenderNone RenderActionKind = iota
	RenderNow
	RenderRunAction
	RenderStartShell
)

// RenderAction tells the event loop whether (and why) to redraw, to invoke
// a lifecycle action against the engine client, or to surrender the
// terminal to the shell subsystem.
type RenderAction struct {
	Kind   RenderActionKind
	Key    ContainerKey    // valid when Kind == RenderStartShell or RenderRunAction
	Action ContainerAction // valid when Kind == RenderRunAction
}

// Merge composes two directives from the same drain cycle, keeping the
// highest-priority one: StartShell > RunAction > Render > None.
func (r RenderAction) Merge(other RenderAction) RenderAction {
	if r.Kind == RenderStartShell || other.Kind == RenderStartShell {
		if r.Kind == RenderStartShell {
			return r
		}
		return other
	}
	if r.Kind == RenderRunAction || other.Kind == RenderRunAction {
		if r.Kind == RenderRunAction {
			return r
		}
		return other
	}
	if r.Kind == RenderNow || other.Kind == RenderNow {
		return RenderAction{Kind: RenderNow}
	}
	return RenderAction{Kind: RenderNone}
}

// LogEntry is one line of container output with its parsed timestamp.
type LogEntry struct {
	Timestamp time.Time
	Text      string // ANSI control sequences already parsed into spans by the caller
}

// LogState tracks the pagination and scroll position of the currently open
// log view.
type LogState struct {
	ContainerKey      ContainerKey
	Entries           []LogEntry
	ScrollOffset      int
	OldestTS          *time.Time
	NewestTS          *time.Time
	HasMoreHistory    bool
	FetchingOlder     bool
	ContainerCreated  *time.Time
	IsAtBottom        bool
}

// NewLogState creates the initial, empty log state for a newly opened view.
func NewLogState(key ContainerKey, createdAt *time.Time) *LogState {
	return &LogState{
		ContainerKey:     key,
		IsAtBottom:       true,
		ContainerCreated: createdAt,
	}
}

// CalculateProgress returns the [0,100] progress value for the log entry at
// visibleIndex, or nil when it cannot be computed (missing timestamps or no
// entries). A degenerate time range (newest not after creation) gives 100.
func (ls *LogState) CalculateProgress(visibleIndex int) *float64 {
	if ls.ContainerCreated == nil || ls.NewestTS == nil {
		return nil
	}
	var visible time.Time
	if visibleIndex >= 0 && visibleIndex < len(ls.Entries) {
		visible = ls.Entries[visibleIndex].Timestamp
	} else if len(ls.Entries) > 0 {
		visible = ls.Entries[len(ls.Entries)-1].Timestamp
	} else {
		return nil
	}

	total := ls.NewestTS.Sub(*ls.ContainerCreated).Seconds()
	if total <= 0 {
		full := 100.0
		return &full
	}
	offset := visible.Sub(*ls.ContainerCreated).Seconds()
	pct := (offset / total) * 100.0
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return &pct
}
