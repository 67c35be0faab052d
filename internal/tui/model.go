// Package tui hosts dtop's bubbletea program: a Model that owns the core
// event bus, drains it on a timer the way the spec's single-consumer event
// loop demands, and renders AppState every time a directive asks for it.
package tui

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dtop/dtop/internal/config"
	"github.com/dtop/dtop/internal/core"
	"github.com/dtop/dtop/internal/crashlog"
	"github.com/dtop/dtop/internal/dockerhost"
	"github.com/sirupsen/logrus"
)

// eventDrainWindow bounds how long waitForEvents blocks before handing
// whatever arrived (possibly nothing) back to Update, matching §4.1's
// 500ms batch-drain policy.
const eventDrainWindow = 500 * time.Millisecond

// eventBatchMsg carries every AppEvent that arrived during one drain
// window, applied to AppState in order by Update.
type eventBatchMsg []core.AppEvent

// startShellMsg asks Update to run tea.Exec for the given
// container, handing the terminal to the interactive shell subsystem.
type startShellMsg struct{ key core.ContainerKey }

// NewConnectionMsg reports a host that finished connecting after the
// program already started, sent via tea.Program.Send from the goroutine
// draining EstablishConnections's remaining channel. Routing it through
// Send keeps every write to Model.conns on bubbletea's single Update
// goroutine, since a second goroutine writing the map directly would race
// with execShell's reads.
type NewConnectionMsg struct{ Connection dockerhost.Connection }

// Model is the bubbletea program's state: the pure core.AppState plus the
// I/O handles needed to act on its directives.
type Model struct {
	state *core.AppState
	bus   chan core.AppEvent

	conns map[core.HostID]dockerhost.Connection

	width, height int
	paused        atomic.Bool

	log *logrus.Logger
	cfg config.Config

	quitting bool
}

// New builds a Model. conns must already be established (see
// dockerhost.EstablishConnections); bus is shared with every manager
// goroutine spawned for those connections.
func New(state *core.AppState, bus chan core.AppEvent, conns map[core.HostID]dockerhost.Connection, cfg config.Config, log *logrus.Logger) *Model {
	return &Model{state: state, bus: bus, conns: conns, cfg: cfg, log: log}
}

func (m *Model) Init() tea.Cmd {
	return waitForEvents(m.bus)
}

// waitForEvents blocks up to eventDrainWindow for the first event, then
// drains everything else immediately available without blocking further —
// the generalized form of the teacher's "blocking channel read as a Cmd"
// idiom, extended to batch a burst instead of dispatching one Msg per
// event.
func waitForEvents(bus <-chan core.AppEvent) tea.Cmd {
	return func() tea.Msg {
		var batch []core.AppEvent
		select {
		case e := <-bus:
			batch = append(batch, e)
		case <-time.After(eventDrainWindow):
			return eventBatchMsg(nil)
		}
		for {
			select {
			case e := <-bus:
				batch = append(batch, e)
			default:
				return eventBatchMsg(batch)
			}
		}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.state.Handle(core.ResizeEvent{Width: msg.Width, Height: msg.Height - chromeHeight})
		return m, nil

	case tea.KeyMsg:
		if m.paused.Load() {
			return m, nil
		}
		event, ok := KeyToEvent(msg, m.state.ViewState.Kind)
		if !ok {
			return m, nil
		}
		return m.apply(event)

	case eventBatchMsg:
		cmd := m.applyBatch(msg)
		return m, tea.Batch(cmd, waitForEvents(m.bus))

	case startShellMsg:
		return m, m.execShell(msg.key)

	case NewConnectionMsg:
		m.conns[msg.Connection.HostID] = msg.Connection
		return m, nil

	case shellDoneMsg:
		m.paused.Store(false)
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("shell session ended with an error")
		}
		return m, waitForEvents(m.bus)
	}
	return m, nil
}

// apply runs one locally-originated event (a key press) through the state
// machine, honoring the same Render/StartShell/Quit handling the batch
// path does.
func (m *Model) apply(event core.AppEvent) (tea.Model, tea.Cmd) {
	if _, ok := event.(core.QuitEvent); ok {
		m.quitting = true
		return m, tea.Quit
	}
	if _, ok := event.(core.OpenDozzleEvent); ok {
		m.openDozzle()
		return m, nil
	}

	action := m.state.Handle(event)
	return m, m.dispatchAction(action)
}

// applyBatch feeds every event of a drain cycle through the state machine
// in order, short-circuiting on the first StartShell directive per §5's
// ordering guarantee ("StartShell short-circuits drain").
func (m *Model) applyBatch(events []core.AppEvent) tea.Cmd {
	var last core.RenderAction
	for _, e := range events {
		action := m.state.Handle(e)
		last = last.Merge(action)
		if action.Kind == core.RenderStartShell {
			break
		}
	}
	m.state.ReapConnectionErrors()
	return m.dispatchAction(last)
}

func (m *Model) dispatchAction(action core.RenderAction) tea.Cmd {
	switch action.Kind {
	case core.RenderStartShell:
		return func() tea.Msg { return startShellMsg{key: action.Key} }
	case core.RenderRunAction:
		m.runAction(action.Key, action.Action)
		return nil
	default:
		return nil
	}
}

// runAction dispatches a lifecycle action (start/stop/restart/remove)
// against the container's host in the background; dockerhost.RunAction
// publishes ActionInProgress/Success/Error back onto the bus itself, so
// the result reaches AppState through the normal drain cycle rather than
// a dedicated tea.Msg.
func (m *Model) runAction(key core.ContainerKey, action core.ContainerAction) {
	conn, ok := m.conns[key.HostID]
	if !ok {
		return
	}
	bus := m.bus
	crashlog.SafeGo(fmt.Sprintf("dockerhost.RunAction(%s)", key.ContainerID), func() {
		dockerhost.RunAction(conn, key, action, bus)
	})
}

const chromeHeight = 3 // header + status bar + margin reserved by the layout

// shellDoneMsg reports the outcome of a completed shell session.
type shellDoneMsg struct{ err error }

// execShell surrenders the terminal to an interactive container shell via
// tea.Exec, bubbletea's documented mechanism for temporarily
// restoring the terminal to a foreground child and resuming afterward.
// The paused flag is set here and cleared in shellDoneMsg's handling,
// documenting the invariant explicitly even though bubbletea itself
// already suspends its own input reader for the duration.
func (m *Model) execShell(key core.ContainerKey) tea.Cmd {
	m.paused.Store(true)
	conn, ok := m.conns[key.HostID]
	if !ok {
		m.paused.Store(false)
		return func() tea.Msg { return shellDoneMsg{err: nil} }
	}

	return tea.Exec(&shellSessionCmd{ctx: context.Background(), conn: conn, key: key}, func(err error) tea.Msg {
		return shellDoneMsg{err: err}
	})
}

// shellSessionCmd adapts dockerhost.RunShell to tea.ExecCommand, the
// interface tea.Exec uses to hand a foreground task the real terminal file
// descriptors before calling Run and restore bubbletea's own input reader
// afterward.
type shellSessionCmd struct {
	ctx    context.Context
	conn   dockerhost.Connection
	key    core.ContainerKey
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (s *shellSessionCmd) SetStdin(r io.Reader)  { s.stdin = r }
func (s *shellSessionCmd) SetStdout(w io.Writer) { s.stdout = w }
func (s *shellSessionCmd) SetStderr(w io.Writer) { s.stderr = w }

func (s *shellSessionCmd) Run() error {
	return dockerhost.RunShell(s.ctx, s.conn, s.key)
}

func (m *Model) openDozzle() {
	key, ok := m.selectedContainerKey()
	if !ok {
		return
	}
	c, ok := m.state.Containers[key]
	if !ok || c.DozzleURL == "" {
		return
	}
	open(c.DozzleURL)
}

func (m *Model) selectedContainerKey() (core.ContainerKey, bool) {
	if m.state.SelectedIndex < 0 || m.state.SelectedIndex >= len(m.state.SortedKeys) {
		return core.ContainerKey{}, false
	}
	return m.state.SortedKeys[m.state.SelectedIndex], true
}

// open launches the platform's default browser, best-effort: a failure to
// open a browser is not worth surfacing as a connection error.
func open(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}

func (m *Model) View() string {
	return Render(m.state, m.width, m.height, m.cfg.IconSet == "nerd")
}
