package core

import "time"

// handleActionResult applies ActionInProgress/Success/Error. The state
// machine only needs to know an action is underway or finished so it can
// render accordingly; it does not track per-container in-flight state
// beyond a render pulse, matching the source's "no force draw beyond
// redraw" treatment of these events.
func (s *AppState) handleActionResult(event AppEvent) RenderAction {
	switch event.(type) {
	case ActionInProgressEvent, ActionSuccessEvent, ActionErrorEvent:
		return renderNow()
	default:
		return renderNone()
	}
}

// handleConnectionError stores a toast-worthy error and reaps stale
// entries, per invariant 6.
func (s *AppState) handleConnectionError(e ConnectionErrorEvent) RenderAction {
	s.ConnectionErrors[e.Host] = ConnectionErrorEntry{Message: e.Message, At: time.Now()}
	s.reapConnectionErrors()
	return renderNow()
}

// ReapConnectionErrors drops entries older than ConnectionErrorTTL. Called
// on every render in addition to every insertion, per invariant 6.
func (s *AppState) ReapConnectionErrors() { s.reapConnectionErrors() }

func (s *AppState) reapConnectionErrors() {
	now := time.Now()
	for host, entry := range s.ConnectionErrors {
		if now.Sub(entry.At) >= ConnectionErrorTTL {
			delete(s.ConnectionErrors, host)
		}
	}
}

// handleHostConnected clears any stale connection error for the host. The
// actual container manager is spawned in cmd/dtop, outside the state
// machine, which is why this returns None: the manager publishes its
// InitialContainerList event before this one.
func (s *AppState) handleHostConnected(e HostConnectedEvent) RenderAction {
	delete(s.ConnectionErrors, e.Host)
	return renderNone()
}
