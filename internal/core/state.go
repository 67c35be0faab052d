package core

import (
	"os"
	"time"
)

// ConnectionErrorEntry is a toast-worthy connection failure with its arrival
// time, used to reap stale entries after ConnectionErrorTTL.
type ConnectionErrorEntry struct {
	Message string
	At      time.Time
}

// AppState is the process-wide, single-writer application state. Every
// mutation happens inside Handle, called synchronously from the event
// loop's single consumer goroutine; nothing else may write to it.
type AppState struct {
	Containers map[ContainerKey]*Container
	SortedKeys []ContainerKey

	ViewState ViewState
	LogState  *LogState

	SelectedIndex int
	ActionIndex   int
	ActionKeys    []ContainerAction

	SearchInput string

	ConnectionErrors map[HostID]ConnectionErrorEntry

	ShowAll  bool
	ShowHelp bool

	SortState    SortState
	LastSortTime time.Time

	LastViewportHeight int
	IsSSHSession       bool

	// MaxLogEntries caps how many lines handleLogLine keeps per open log
	// view before trimming the oldest; 0 means unbounded. Set by the
	// caller from the logs_buffer_length config/flag.
	MaxLogEntries int
}

// NewAppState builds an empty AppState with defaults matching the source
// implementation: default sort by Uptime, show-all off, and is_ssh_session
// derived from the SSH_CLIENT/SSH_TTY/SSH_CONNECTION environment trio.
func NewAppState() *AppState {
	return &AppState{
		Containers:       make(map[ContainerKey]*Container),
		SortedKeys:       nil,
		ViewState:        ViewState{Kind: ViewContainerList},
		SelectedIndex:    0,
		ConnectionErrors: make(map[HostID]ConnectionErrorEntry),
		SortState:        NewSortState(SortUptime),
		IsSSHSession:     detectSSHSession(),
	}
}

func detectSSHSession() bool {
	for _, name := range []string{"SSH_CLIENT", "SSH_TTY", "SSH_CONNECTION"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// Handle applies a single event to the state machine and returns the
// directive the event loop should act on. It never blocks and never
// performs I/O.
func (s *AppState) Handle(event AppEvent) RenderAction {
	switch e := event.(type) {
	case InitialContainerListEvent:
		return s.handleInitialContainerList(e)
	case ContainerCreatedEvent:
		return s.handleContainerCreated(e)
	case ContainerDestroyedEvent:
		return s.handleContainerDestroyed(e)
	case ContainerStateChangedEvent:
		return s.handleContainerStateChanged(e)
	case ContainerHealthChangedEvent:
		return s.handleContainerHealthChanged(e)
	case ContainerStatEvent:
		return s.handleContainerStat(e)

	case HostConnectedEvent:
		return s.handleHostConnected(e)
	case ConnectionErrorEvent:
		return s.handleConnectionError(e)

	case SelectPreviousEvent:
		return s.handleSelectPrevious()
	case SelectNextEvent:
		return s.handleSelectNext()
	case EnterPressedEvent:
		return s.handleEnterPressed()
	case ShowLogViewEvent:
		return s.handleShowLogView()
	case ExitLogViewEvent:
		return s.handleExitLogView()
	case CancelActionMenuEvent:
		return s.handleCancelActionMenu()
	case SelectActionUpEvent:
		return s.handleSelectActionUp()
	case SelectActionDownEvent:
		return s.handleSelectActionDown()

	case ScrollUpEvent:
		return s.handleScrollUp()
	case ScrollDownEvent:
		return s.handleScrollDown()
	case ScrollToTopEvent:
		return s.handleScrollToTop()
	case ScrollToBottomEvent:
		return s.handleScrollToBottom()
	case ScrollPageUpEvent:
		return s.handleScrollPageUp()
	case ScrollPageDownEvent:
		return s.handleScrollPageDown()

	case LogBatchPrependEvent:
		return s.handleLogBatchPrepend(e)
	case LogLineEvent:
		return s.handleLogLine(e)

	case CycleSortFieldEvent:
		return s.handleCycleSortField()
	case SetSortFieldEvent:
		return s.handleSetSortField(e.Field)
	case ToggleShowAllEvent:
		return s.handleToggleShowAll()
	case ToggleHelpEvent:
		s.ShowHelp = !s.ShowHelp
		return renderNow()
	case EnterSearchModeEvent:
		return s.handleEnterSearchMode()
	case SearchKeyEvent:
		return s.handleSearchKeyEvent(e)

	case ActionInProgressEvent, ActionSuccessEvent, ActionErrorEvent:
		return s.handleActionResult(e)

	case ResizeEvent:
		s.LastViewportHeight = e.Height
		return renderNow()

	case OpenDozzleEvent, QuitEvent:
		return renderNow()

	default:
		return RenderAction{Kind: RenderNone}
	}
}

func renderNow() RenderAction { return RenderAction{Kind: RenderNow} }

func renderNone() RenderAction { return RenderAction{Kind: RenderNone} }
