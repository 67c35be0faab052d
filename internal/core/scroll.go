package core

import "strconv"

// totalLines is the number of log lines currently buffered for the open
// view.
func (s *AppState) totalLines() int {
	if s.LogState == nil {
		return 0
	}
	return len(s.LogState.Entries)
}

// clampScroll enforces invariant 3: 0 <= scroll_offset <= max(0, total -
// viewport), and invariant 4: is_at_bottom iff scroll_offset equals that
// upper bound.
func (s *AppState) clampScroll() {
	ls := s.LogState
	if ls == nil {
		return
	}
	maxOffset := s.totalLines() - s.LastViewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if ls.ScrollOffset > maxOffset {
		ls.ScrollOffset = maxOffset
	}
	if ls.ScrollOffset < 0 {
		ls.ScrollOffset = 0
	}
	ls.IsAtBottom = ls.ScrollOffset == maxOffset
}

func (s *AppState) handleScrollUp() RenderAction {
	if s.ViewState.Kind != ViewLogView || s.LogState == nil {
		return renderNone()
	}
	s.LogState.ScrollOffset--
	s.clampScroll()
	return renderNow()
}

func (s *AppState) handleScrollDown() RenderAction {
	if s.ViewState.Kind != ViewLogView || s.LogState == nil {
		return renderNone()
	}
	s.LogState.ScrollOffset++
	s.clampScroll()
	return renderNow()
}

func (s *AppState) handleScrollToTop() RenderAction {
	if s.ViewState.Kind != ViewLogView || s.LogState == nil {
		return renderNone()
	}
	s.LogState.ScrollOffset = 0
	s.clampScroll()
	return renderNow()
}

func (s *AppState) handleScrollToBottom() RenderAction {
	if s.ViewState.Kind != ViewLogView || s.LogState == nil {
		return renderNone()
	}
	maxOffset := s.totalLines() - s.LastViewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	s.LogState.ScrollOffset = maxOffset
	s.LogState.IsAtBottom = true
	return renderNow()
}

func (s *AppState) handleScrollPageUp() RenderAction {
	if s.ViewState.Kind != ViewLogView || s.LogState == nil {
		return renderNone()
	}
	page := s.LastViewportHeight
	if page <= 0 {
		page = 1
	}
	s.LogState.ScrollOffset -= page
	s.clampScroll()
	return renderNow()
}

func (s *AppState) handleScrollPageDown() RenderAction {
	if s.ViewState.Kind != ViewLogView || s.LogState == nil {
		return renderNone()
	}
	page := s.LastViewportHeight
	if page <= 0 {
		page = 1
	}
	s.LogState.ScrollOffset += page
	s.clampScroll()
	return renderNow()
}

// handleLogBatchPrepend inserts a page of older entries at the front of the
// buffer, preserving visual position per §4.4: scroll_offset grows by the
// number of prepended entries unless the view was already at the bottom, in
// which case it moves to the new bottom so the newest entries stay in view.
func (s *AppState) handleLogBatchPrepend(e LogBatchPrependEvent) RenderAction {
	if s.LogState == nil || s.LogState.ContainerKey != e.Key {
		return renderNone()
	}
	ls := s.LogState
	wasAtBottom := ls.IsAtBottom

	ls.Entries = append(append([]LogEntry{}, e.Entries...), ls.Entries...)
	if len(e.Entries) > 0 {
		oldest := e.Entries[0].Timestamp
		for _, entry := range e.Entries {
			if entry.Timestamp.Before(oldest) {
				oldest = entry.Timestamp
			}
		}
		ls.OldestTS = &oldest
	}
	ls.HasMoreHistory = e.HasMore
	ls.FetchingOlder = false

	if wasAtBottom {
		ls.ScrollOffset = len(ls.Entries) - s.LastViewportHeight
		if ls.ScrollOffset < 0 {
			ls.ScrollOffset = 0
		}
	} else {
		ls.ScrollOffset += len(e.Entries)
	}
	s.clampScroll()
	return renderNow()
}

// handleLogLine appends one streamed line, auto-following the bottom when
// the view was already anchored there.
func (s *AppState) handleLogLine(e LogLineEvent) RenderAction {
	if s.LogState == nil || s.LogState.ContainerKey != e.Key {
		return renderNone()
	}
	ls := s.LogState
	ls.Entries = append(ls.Entries, e.Entry)
	ls.NewestTS = &e.Entry.Timestamp

	if max := s.MaxLogEntries; max > 0 && len(ls.Entries) > max {
		overflow := len(ls.Entries) - max
		ls.Entries = ls.Entries[overflow:]
		if !ls.IsAtBottom {
			ls.ScrollOffset -= overflow
			if ls.ScrollOffset < 0 {
				ls.ScrollOffset = 0
			}
		}
	}

	if ls.IsAtBottom {
		maxOffset := s.totalLines() - s.LastViewportHeight
		if maxOffset < 0 {
			maxOffset = 0
		}
		ls.ScrollOffset = maxOffset
	}
	return renderNow()
}

// ShouldFetchOlder reports whether the pagination trigger condition of
// §4.4 holds: scrolled to the top, more history is known to exist, and no
// fetch is already in flight.
func (s *AppState) ShouldFetchOlder() bool {
	ls := s.LogState
	if ls == nil {
		return false
	}
	return ls.ScrollOffset == 0 && ls.HasMoreHistory && !ls.FetchingOlder
}

// MarkFetchingOlder sets the fetching_older flag, preventing duplicate
// pagination requests; the caller (log tail producer) clears it via the
// next LogBatchPrepend.
func (s *AppState) MarkFetchingOlder() {
	if s.LogState != nil {
		s.LogState.FetchingOlder = true
	}
}

// ProgressLabel returns the status text for the log view's progress
// indicator: "LIVE", "Loading…", a percentage, or "100%" per §4.4.
func (s *AppState) ProgressLabel() string {
	ls := s.LogState
	if ls == nil {
		return ""
	}
	if ls.IsAtBottom {
		return "LIVE"
	}
	if ls.FetchingOlder {
		return "Loading…"
	}
	pct := ls.CalculateProgress(ls.ScrollOffset)
	if pct == nil {
		return "100%"
	}
	return formatPercent(*pct)
}

func formatPercent(p float64) string {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	// integer percent, matching a compact status-bar rendering
	i := int(p + 0.5)
	return strconv.Itoa(i) + "%"
}
