package core

func (s *AppState) handleEnterSearchMode() RenderAction {
	if s.ViewState.Kind != ViewContainerList {
		return renderNone()
	}
	s.ViewState = ViewState{Kind: ViewSearchMode}
	s.SearchInput = ""
	return renderNow()
}

func (s *AppState) exitSearchMode() RenderAction {
	if s.ViewState.Kind != ViewSearchMode {
		return renderNone()
	}
	s.ViewState = ViewState{Kind: ViewContainerList}
	s.SearchInput = ""
	s.forceSortContainers()
	s.selectAfterFilterChange()
	return renderNow()
}

func (s *AppState) handleSearchKeyEvent(e SearchKeyEvent) RenderAction {
	if s.ViewState.Kind != ViewSearchMode {
		return renderNone()
	}

	switch e.Key {
	case "enter":
		// Confirm: return to ContainerList keeping the filter applied.
		s.ViewState = ViewState{Kind: ViewContainerList}
		return renderNow()
	case "esc":
		return s.exitSearchMode()
	case "backspace":
		if len(s.SearchInput) > 0 {
			s.SearchInput = s.SearchInput[:len(s.SearchInput)-1]
		}
	default:
		s.SearchInput += e.Key
	}

	s.forceSortContainers()
	s.selectAfterFilterChange()
	return renderNow()
}

// selectAfterFilterChange applies §4.5's selection-maintenance rule after a
// rebuild triggered by search/show-all changes.
func (s *AppState) selectAfterFilterChange() {
	n := len(s.SortedKeys)
	if n == 0 {
		s.SelectedIndex = -1
	} else if s.SelectedIndex >= n {
		s.SelectedIndex = n - 1
	} else if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
}
