package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dtop/dtop/internal/core"
)

// KeyToEvent translates one decoded key press into the core.AppEvent it
// corresponds to, dispatching on the currently active view the way §4.6
// specifies: search mode steals every printable key for its buffer; the
// action menu and log view each have their own small binding sets; the
// container list gets the remaining global bindings.
func KeyToEvent(msg tea.KeyMsg, view core.ViewKind) (core.AppEvent, bool) {
	if view == core.ViewSearchMode {
		return searchKeyEvent(msg), true
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return core.QuitEvent{}, true
	case "?":
		return core.ToggleHelpEvent{}, true
	}

	switch view {
	case core.ViewActionMenu:
		switch msg.String() {
		case "up", "k":
			return core.SelectActionUpEvent{}, true
		case "down", "j":
			return core.SelectActionDownEvent{}, true
		case "enter":
			return core.EnterPressedEvent{}, true
		case "esc":
			return core.CancelActionMenuEvent{}, true
		}
		return nil, false

	case core.ViewLogView:
		switch msg.String() {
		case "up", "k":
			return core.ScrollUpEvent{}, true
		case "down", "j":
			return core.ScrollDownEvent{}, true
		case "g":
			return core.ScrollToTopEvent{}, true
		case "G":
			return core.ScrollToBottomEvent{}, true
		case "ctrl+u", "b":
			return core.ScrollPageUpEvent{}, true
		case "ctrl+d", " ":
			return core.ScrollPageDownEvent{}, true
		case "esc":
			return core.ExitLogViewEvent{}, true
		}
		return nil, false

	default: // ViewContainerList
		switch msg.String() {
		case "up", "k":
			return core.SelectPreviousEvent{}, true
		case "down", "j":
			return core.SelectNextEvent{}, true
		case "enter":
			return core.EnterPressedEvent{}, true
		case "l":
			return core.ShowLogViewEvent{}, true
		case "s":
			return core.CycleSortFieldEvent{}, true
		case "a":
			return core.ToggleShowAllEvent{}, true
		case "o":
			return core.OpenDozzleEvent{}, true
		case "/":
			return core.EnterSearchModeEvent{}, true
		}
		return nil, false
	}
}

// searchKeyEvent maps every key relevant to the search buffer; printable
// runes pass through verbatim as SearchKeyEvent.Key, matching the core
// package's contract (see SPEC_FULL.md §4.6).
func searchKeyEvent(msg tea.KeyMsg) core.AppEvent {
	switch msg.Type {
	case tea.KeyBackspace:
		return core.SearchKeyEvent{Key: "backspace"}
	case tea.KeyEnter:
		return core.SearchKeyEvent{Key: "enter"}
	case tea.KeyEsc:
		return core.SearchKeyEvent{Key: "esc"}
	case tea.KeyRunes:
		return core.SearchKeyEvent{Key: string(msg.Runes)}
	default:
		return core.SearchKeyEvent{Key: ""}
	}
}
