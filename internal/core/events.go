package core

// AppEvent is the sealed interface implemented by every event kind carried
// on the shared event bus. The marker method keeps the sum closed: only
// types declared in this package can satisfy it.
type AppEvent interface {
	isAppEvent()
}

type baseEvent struct{}

func (baseEvent) isAppEvent() {}

// --- container lifecycle -----------------------------------------------

type InitialContainerListEvent struct {
	baseEvent
	Host       HostID
	Containers []Container
}

type ContainerCreatedEvent struct {
	baseEvent
	Container Container
}

type ContainerDestroyedEvent struct {
	baseEvent
	Key ContainerKey
}

type ContainerStateChangedEvent struct {
	baseEvent
	Key   ContainerKey
	State ContainerState
}

type ContainerHealthChangedEvent struct {
	baseEvent
	Key    ContainerKey
	Health HealthStatus
}

type ContainerStatEvent struct {
	baseEvent
	Key        ContainerKey
	CPUPercent float64
	MemPercent float64
	MemUsed    uint64
	MemLimit   uint64
	NetTxBps   float64
	NetRxBps   float64
	SampledAt  int64 // unix seconds; not read: the core buckets by its own clock on arrival
}

// --- host connectivity ----------------------------------------------------

type HostConnectedEvent struct {
	baseEvent
	Host HostID
}

type ConnectionErrorEvent struct {
	baseEvent
	Host    HostID
	Message string
}

// --- navigation -------------------------------------------------------

type SelectPreviousEvent struct{ baseEvent }
type SelectNextEvent struct{ baseEvent }
type EnterPressedEvent struct{ baseEvent }
type ShowLogViewEvent struct{ baseEvent }
type ExitLogViewEvent struct{ baseEvent }
type CancelActionMenuEvent struct{ baseEvent }
type SelectActionUpEvent struct{ baseEvent }
type SelectActionDownEvent struct{ baseEvent }

// --- log-view scrolling -------------------------------------------------

type ScrollUpEvent struct{ baseEvent }
type ScrollDownEvent struct{ baseEvent }
type ScrollToTopEvent struct{ baseEvent }
type ScrollToBottomEvent struct{ baseEvent }
type ScrollPageUpEvent struct{ baseEvent }
type ScrollPageDownEvent struct{ baseEvent }

// --- logs ----------------------------------------------------------------

type LogBatchPrependEvent struct {
	baseEvent
	Key     ContainerKey
	Entries []LogEntry
	HasMore bool
}

type LogLineEvent struct {
	baseEvent
	Key   ContainerKey
	Entry LogEntry
}

// --- control --------------------------------------------------------------

type CycleSortFieldEvent struct{ baseEvent }
type SetSortFieldEvent struct {
	baseEvent
	Field SortField
}
type ToggleShowAllEvent struct{ baseEvent }
type ToggleHelpEvent struct{ baseEvent }
type OpenDozzleEvent struct{ baseEvent }
type EnterSearchModeEvent struct{ baseEvent }
type SearchKeyEvent struct {
	baseEvent
	Key string // "backspace", "enter", "esc", or a single printable rune
}

// --- actions ---------------------------------------------------------------

type ActionInProgressEvent struct {
	baseEvent
	Key    ContainerKey
	Action ContainerAction
}

type ActionSuccessEvent struct {
	baseEvent
	Key    ContainerKey
	Action ContainerAction
}

type ActionErrorEvent struct {
	baseEvent
	Key     ContainerKey
	Action  ContainerAction
	Message string
}

// --- terminal ---------------------------------------------------------

type ResizeEvent struct {
	baseEvent
	Width, Height int
}

type QuitEvent struct{ baseEvent }
