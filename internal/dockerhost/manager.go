package dockerhost

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/events"
	"github.com/docker/docker/api/types/filters"
	"github.com/dtop/dtop/internal/core"
	"github.com/dtop/dtop/internal/crashlog"
)

// statsPollInterval matches the teacher's 5-second cadence for CPU/memory
// refreshes.
const statsPollInterval = 5 * time.Second

// Manager owns one connected host: the initial container snapshot, the
// engine's lifecycle event stream, and the periodic stats poll, all
// translated into core.AppEvent values published onto a shared bus.
type Manager struct {
	conn         Connection
	bus          chan<- core.AppEvent
	stats        *StatsTracker
	filters      filters.Args
	pollInterval time.Duration
}

// publish is a non-blocking send onto the shared bus: a saturated bus means
// the UI can't keep up, and a blocked producer here would pile up goroutines
// (pollOnce spawns one per container per tick) rather than events, so the
// event is dropped instead of buffered.
func (m *Manager) publish(event core.AppEvent) {
	select {
	case m.bus <- event:
	default:
	}
}

// NewManager builds a Manager for one already-verified connection. bus is
// the single shared event channel every host's manager publishes onto; the
// core package's single-writer state machine is the only consumer.
func NewManager(conn Connection, bus chan<- core.AppEvent) *Manager {
	args := filters.NewArgs()
	for key, values := range conn.Filters {
		for _, v := range values {
			args.Add(key, v)
		}
	}
	return &Manager{conn: conn, bus: bus, stats: NewStatsTracker(), filters: args, pollInterval: statsPollInterval}
}

// WithPollInterval overrides the default 5-second stats cadence, honoring
// the config file's refresh_seconds setting.
func (m *Manager) WithPollInterval(d time.Duration) *Manager {
	if d > 0 {
		m.pollInterval = d
	}
	return m
}

// Run fetches the initial container list, then streams lifecycle events
// and stats samples until ctx is cancelled. It never returns an error: a
// broken host surfaces as a ConnectionErrorEvent so the rest of the fleet
// keeps running.
func (m *Manager) Run(ctx context.Context) {
	defer crashlog.Recover(fmt.Sprintf("dockerhost.Manager(%s)", m.conn.HostID))

	if err := m.publishInitialList(ctx); err != nil {
		m.publish(core.ConnectionErrorEvent{Host: m.conn.HostID, Message: err.Error()})
		return
	}
	m.publish(core.HostConnectedEvent{Host: m.conn.HostID})

	crashlog.SafeGo(fmt.Sprintf("dockerhost.statsLoop(%s)", m.conn.HostID), func() {
		m.statsLoop(ctx)
	})

	m.eventLoop(ctx)
}

func (m *Manager) publishInitialList(ctx context.Context) error {
	listCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	raw, err := m.conn.Client.ContainerList(listCtx, container.ListOptions{All: true, Filters: m.filters})
	if err != nil {
		return fmt.Errorf("listing containers: %w", err)
	}

	containers := make([]core.Container, 0, len(raw))
	for _, c := range raw {
		containers = append(containers, m.toCoreContainer(c.ID, containerName(c.Names), c.State, c.Status, c.Created))
	}
	m.publish(core.InitialContainerListEvent{Host: m.conn.HostID, Containers: containers})
	return nil
}

func (m *Manager) toCoreContainer(id, name, state, status string, createdUnix int64) core.Container {
	created := time.Unix(createdUnix, 0)
	return core.Container{
		Key:       core.NewContainerKey(m.conn.HostID, id),
		Name:      name,
		State:     core.ParseContainerState(firstNonEmpty(state, status)),
		CreatedAt: &created,
	}
}

func containerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// eventLoop subscribes to the engine's event stream and maps the subset of
// lifecycle events the UI cares about onto core events. A dropped
// connection reconnects after a short backoff rather than tearing the
// whole manager down, since the fleet should tolerate a daemon restart.
func (m *Manager) eventLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		msgs, errs := m.conn.Client.Events(ctx, events.ListOptions{Filters: filters.NewArgs(filters.Arg("type", "container"))})
		if !m.drainEvents(ctx, msgs, errs) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(1 * time.Second):
		}
	}
}

// drainEvents returns false once ctx is cancelled (caller should stop
// retrying), true if the stream broke and should be reconnected.
func (m *Manager) drainEvents(ctx context.Context, msgs <-chan events.Message, errs <-chan error) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case err, ok := <-errs:
			if !ok || err == nil {
				continue
			}
			return true
		case msg, ok := <-msgs:
			if !ok {
				return true
			}
			m.handleEngineEvent(msg)
		}
	}
}

func (m *Manager) handleEngineEvent(msg events.Message) {
	key := core.NewContainerKey(m.conn.HostID, msg.Actor.ID)
	name := containerName([]string{msg.Actor.Attributes["name"]})

	switch msg.Action {
	case "start", "unpause":
		m.publish(core.ContainerStateChangedEvent{Key: key, State: core.StateRunning})
	case "die", "stop":
		m.publish(core.ContainerStateChangedEvent{Key: key, State: core.StateExited})
		m.stats.Forget(key)
	case "pause":
		m.publish(core.ContainerStateChangedEvent{Key: key, State: core.StatePaused})
	case "destroy":
		m.publish(core.ContainerDestroyedEvent{Key: key})
		m.stats.Forget(key)
	case "create":
		m.publish(core.ContainerCreatedEvent{Container: core.Container{
			Key: key, Name: name, State: core.StateCreated,
		}})
	case "health_status: healthy":
		m.publish(core.ContainerHealthChangedEvent{Key: key, Health: core.HealthHealthy})
	case "health_status: unhealthy":
		m.publish(core.ContainerHealthChangedEvent{Key: key, Health: core.HealthUnhealthy})
	case "health_status: starting":
		m.publish(core.ContainerHealthChangedEvent{Key: key, Health: core.HealthStarting})
	}
}

// statsLoop polls one-shot stats for every running container every poll
// interval (statsPollInterval unless WithPollInterval changed it),
// publishing a ContainerStatEvent per sample.
func (m *Manager) statsLoop(ctx context.Context) {
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.pollOnce(ctx)
		}
	}
}

func (m *Manager) pollOnce(ctx context.Context) {
	listCtx, cancel := context.WithTimeout(ctx, m.pollInterval)
	defer cancel()

	containers, err := m.conn.Client.ContainerList(listCtx, container.ListOptions{Filters: m.filters})
	if err != nil {
		return
	}

	for _, c := range containers {
		c := c
		crashlog.SafeGo(fmt.Sprintf("dockerhost.pollStats(%s)", c.ID), func() {
			m.pollOne(ctx, c.ID)
		})
	}
}

func (m *Manager) pollOne(ctx context.Context, containerID string) {
	statsCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := m.conn.Client.ContainerStats(statsCtx, containerID, false)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	var raw container.StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return
	}

	key := core.NewContainerKey(m.conn.HostID, containerID)
	event := m.stats.Apply(key, &raw)
	m.publish(event)
}
