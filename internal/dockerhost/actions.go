package dockerhost

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/dtop/dtop/internal/core"
)

// actionTimeout bounds a single start/stop/restart/remove call.
const actionTimeout = 30 * time.Second

// stopTimeoutSecs is passed to the engine as the grace period before a
// stop/restart escalates to SIGKILL.
const stopTimeoutSecs = 10

// RunAction executes one container action against the given connection and
// publishes the matching ActionInProgress/Success/Error events onto bus, so
// the core state machine can render a spinner and a result toast without
// knowing anything about the Docker API.
func RunAction(conn Connection, key core.ContainerKey, action core.ContainerAction, bus chan<- core.AppEvent) {
	publishAction(bus, core.ActionInProgressEvent{Key: key, Action: action})

	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	id := key.ContainerID
	var err error
	timeout := stopTimeoutSecs

	switch action {
	case core.ActionStart:
		err = conn.Client.ContainerStart(ctx, id, container.StartOptions{})
	case core.ActionStop:
		err = conn.Client.ContainerStop(ctx, id, container.StopOptions{Timeout: &timeout})
	case core.ActionRestart:
		err = conn.Client.ContainerRestart(ctx, id, container.StopOptions{Timeout: &timeout})
	case core.ActionRemove:
		err = conn.Client.ContainerRemove(ctx, id, container.RemoveOptions{Force: true})
	default:
		err = fmt.Errorf("unsupported action %v", action)
	}

	if err != nil {
		publishAction(bus, core.ActionErrorEvent{Key: key, Action: action, Message: err.Error()})
		return
	}
	publishAction(bus, core.ActionSuccessEvent{Key: key, Action: action})
}

// publishAction is a non-blocking send onto the shared bus, matching every
// other dockerhost producer: a saturated bus drops the event rather than
// blocking this goroutine.
func publishAction(bus chan<- core.AppEvent, event core.AppEvent) {
	select {
	case bus <- event:
	default:
	}
}
