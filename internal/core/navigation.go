package core

func (s *AppState) handleSelectPrevious() RenderAction {
	if s.ViewState.Kind != ViewContainerList || len(s.SortedKeys) == 0 {
		return renderNone()
	}
	if s.SelectedIndex <= 0 {
		s.SelectedIndex = 0
	} else {
		s.SelectedIndex--
	}
	return renderNow()
}

func (s *AppState) handleSelectNext() RenderAction {
	if s.ViewState.Kind != ViewContainerList || len(s.SortedKeys) == 0 {
		return renderNone()
	}
	if s.SelectedIndex >= len(s.SortedKeys)-1 {
		s.SelectedIndex = len(s.SortedKeys) - 1
	} else {
		s.SelectedIndex++
	}
	return renderNow()
}

func (s *AppState) selectedKey() (ContainerKey, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.SortedKeys) {
		return ContainerKey{}, false
	}
	return s.SortedKeys[s.SelectedIndex], true
}

// handleEnterPressed opens the action menu from the list, or — from the
// action menu — returns a RunAction directive naming the chosen lifecycle
// action, or a StartShell directive when Shell is chosen. The event loop is
// responsible for invoking the engine client and feeding
// ActionInProgress/Success/Error back onto the bus; this state machine only
// decides what the user asked for.
func (s *AppState) handleEnterPressed() RenderAction {
	switch s.ViewState.Kind {
	case ViewContainerList:
		key, ok := s.selectedKey()
		if !ok {
			return renderNone()
		}
		c, ok := s.Containers[key]
		if !ok {
			return renderNone()
		}
		actions := AvailableActionsForState(c.State)
		if len(actions) == 0 {
			return renderNone()
		}
		s.ViewState = ViewState{Kind: ViewActionMenu, Key: key}
		s.ActionKeys = actions
		s.ActionIndex = 0
		return renderNow()

	case ViewActionMenu:
		if s.ActionIndex < 0 || s.ActionIndex >= len(s.ActionKeys) {
			return renderNone()
		}
		action := s.ActionKeys[s.ActionIndex]
		key := s.ViewState.Key
		s.ViewState = ViewState{Kind: ViewContainerList}
		if action == ActionShell {
			return RenderAction{Kind: RenderStartShell, Key: key}
		}
		return RenderAction{Kind: RenderRunAction, Key: key, Action: action}

	default:
		return renderNone()
	}
}

func (s *AppState) handleShowLogView() RenderAction {
	if s.ViewState.Kind != ViewContainerList {
		return renderNone()
	}
	key, ok := s.selectedKey()
	if !ok {
		return renderNone()
	}
	c, ok := s.Containers[key]
	if !ok {
		return renderNone()
	}
	s.ViewState = ViewState{Kind: ViewLogView, Key: key}
	s.LogState = NewLogState(key, c.CreatedAt)
	return renderNow()
}

func (s *AppState) handleExitLogView() RenderAction {
	if s.ViewState.Kind != ViewLogView {
		return renderNone()
	}
	s.ViewState = ViewState{Kind: ViewContainerList}
	s.LogState = nil
	return renderNow()
}

func (s *AppState) handleCancelActionMenu() RenderAction {
	if s.ViewState.Kind != ViewActionMenu {
		return renderNone()
	}
	s.ViewState = ViewState{Kind: ViewContainerList}
	s.ActionKeys = nil
	s.ActionIndex = 0
	return renderNow()
}

func (s *AppState) handleSelectActionUp() RenderAction {
	if s.ViewState.Kind != ViewActionMenu || len(s.ActionKeys) == 0 {
		return renderNone()
	}
	if s.ActionIndex <= 0 {
		s.ActionIndex = 0
	} else {
		s.ActionIndex--
	}
	return renderNow()
}

func (s *AppState) handleSelectActionDown() RenderAction {
	if s.ViewState.Kind != ViewActionMenu || len(s.ActionKeys) == 0 {
		return renderNone()
	}
	if s.ActionIndex >= len(s.ActionKeys)-1 {
		s.ActionIndex = len(s.ActionKeys) - 1
	} else {
		s.ActionIndex++
	}
	return renderNow()
}
