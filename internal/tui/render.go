package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dtop/dtop/internal/core"
	"github.com/dtop/dtop/internal/dockerhost"
)

// sparklineMinWidth is the terminal width (in columns) at or above which the
// list view grows sparkline columns for CPU/memory history, per §4.7.
const sparklineMinWidth = 128

// Render is an idempotent function of AppState: given the same state and
// dimensions it always draws the same frame. It is the sole place string
// layout is decided; AppState itself never holds a rendered string.
func Render(s *core.AppState, width, height int, nerdIcons bool) string {
	var body string
	switch s.ViewState.Kind {
	case core.ViewLogView:
		body = renderLogView(s, width, height)
	default:
		body = renderContainerList(s, width, height, nerdIcons)
	}

	if s.ViewState.Kind == core.ViewActionMenu {
		body = overlayActionMenu(s, body, width, height)
	}
	if s.ShowHelp {
		body = overlayHelp(body, width, height)
	}
	body = overlayToasts(s, body, width)

	return body
}

func renderContainerList(s *core.AppState, width, height int, nerdIcons bool) string {
	showHost := distinctHostCount(s) > 1
	showSparklines := width >= sparklineMinWidth

	header := listHeader(showHost, showSparklines)
	rows := make([]string, 0, len(s.SortedKeys))
	for i, key := range s.SortedKeys {
		c := s.Containers[key]
		if c == nil {
			continue
		}
		row := listRow(c, showHost, showSparklines, nerdIcons)
		if i == s.SelectedIndex {
			row = selectedLineStyle.Render(row)
		}
		rows = append(rows, row)
	}

	statusBar := listStatusBar(s)

	var searchBar string
	if s.ViewState.Kind == core.ViewSearchMode {
		searchBar = statusBarStyle.Render("/" + s.SearchInput)
	}

	lines := []string{titleStyle.Render("dtop"), header}
	lines = append(lines, rows...)
	if searchBar != "" {
		lines = append(lines, searchBar)
	}
	lines = append(lines, statusBar)
	return strings.Join(lines, "\n")
}

func listHeader(showHost, showSparklines bool) string {
	cols := []string{}
	if showHost {
		cols = append(cols, fmt.Sprintf("%-12s", "HOST"))
	}
	cols = append(cols, fmt.Sprintf("%-10s", "STATE"), fmt.Sprintf("%-24s", "NAME"))
	if showSparklines {
		cols = append(cols, fmt.Sprintf("%-22s", "CPU"), fmt.Sprintf("%-22s", "MEM"))
	} else {
		cols = append(cols, fmt.Sprintf("%-7s", "CPU"), fmt.Sprintf("%-7s", "MEM"))
	}
	cols = append(cols, fmt.Sprintf("%-10s", "NET TX"), fmt.Sprintf("%-10s", "NET RX"), "UPTIME")
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Render(strings.Join(cols, " "))
}

func listRow(c *core.Container, showHost, showSparklines, nerdIcons bool) string {
	cols := []string{}
	if showHost {
		cols = append(cols, fmt.Sprintf("%-12s", c.Key.HostID))
	}

	icon := stateIconSet(c.State == core.StateRunning, c.State == core.StatePaused, c.State == core.StateRestarting, nerdIcons)
	stateStyle := stoppedStyle
	if c.State == core.StateRunning {
		stateStyle = runningStyle
	}
	cols = append(cols, stateStyle.Render(fmt.Sprintf("%s %-8s", icon, c.State.String())))
	cols = append(cols, fmt.Sprintf("%-24s", truncate(c.Name, 24)))

	if showSparklines {
		cols = append(cols, fmt.Sprintf("%5.1f%% %-15s", c.Stats.CPUPercent, Sparkline(c.Stats.CPUHistory)))
		cols = append(cols, fmt.Sprintf("%5.1f%% %-15s", c.Stats.MemoryPercent, Sparkline(c.Stats.MemoryHistory)))
	} else {
		cols = append(cols, fmt.Sprintf("%6.1f%%", c.Stats.CPUPercent))
		cols = append(cols, fmt.Sprintf("%6.1f%%", c.Stats.MemoryPercent))
	}

	cols = append(cols, fmt.Sprintf("%-10s", dockerhost.FormatBytesPerSec(c.Stats.NetTxBps)))
	cols = append(cols, fmt.Sprintf("%-10s", dockerhost.FormatBytesPerSec(c.Stats.NetRxBps)))

	uptime := "-"
	if c.CreatedAt != nil && c.State == core.StateRunning {
		uptime = dockerhost.FormatUptime(int64(time.Since(*c.CreatedAt).Seconds()))
	}
	cols = append(cols, uptime)

	return strings.Join(cols, " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func distinctHostCount(s *core.AppState) int {
	hosts := map[core.HostID]struct{}{}
	for _, c := range s.Containers {
		hosts[c.Key.HostID] = struct{}{}
	}
	return len(hosts)
}

func sortFieldLabel(f core.SortField) string {
	switch f {
	case core.SortName:
		return "name"
	case core.SortCPU:
		return "cpu"
	case core.SortMemory:
		return "mem"
	case core.SortUptime:
		return "uptime"
	default:
		return "?"
	}
}

func listStatusBar(s *core.AppState) string {
	sortLabel := fmt.Sprintf("sort:%s%s", sortFieldLabel(s.SortState.Field), s.SortState.Direction.Symbol())
	showAll := "running only"
	if s.ShowAll {
		showAll = "all"
	}
	return statusBarStyle.Render(fmt.Sprintf(" %d containers | %s | %s | ? for help ", len(s.SortedKeys), sortLabel, showAll))
}

func renderLogView(s *core.AppState, width, height int) string {
	if s.LogState == nil {
		return ""
	}
	viewport := height - 2
	if viewport < 1 {
		viewport = 1
	}
	s.LastViewportHeight = viewport

	entries := s.LogState.Entries
	start := s.LogState.ScrollOffset
	end := start + viewport
	if end > len(entries) {
		end = len(entries)
	}
	if start > end {
		start = end
	}

	var b strings.Builder
	for _, e := range entries[start:end] {
		b.WriteString(RenderLogLine(e.Text))
		b.WriteString("\n")
	}
	b.WriteString(statusBarStyle.Render(" " + s.ProgressLabel() + " "))
	return containerBoxStyle.Render(b.String())
}

func overlayActionMenu(s *core.AppState, base string, width, height int) string {
	var b strings.Builder
	for i, action := range s.ActionKeys {
		style := menuItemStyle
		if i == s.ActionIndex {
			style = menuItemSelectedStyle
		}
		b.WriteString(style.Render(action.DisplayName()))
		b.WriteString("\n")
	}
	popup := containerBoxStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup, lipgloss.WithWhitespaceChars(" "))
}

func overlayHelp(base string, width, height int) string {
	help := containerBoxStyle.Render(helpText)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, help)
}

func overlayToasts(s *core.AppState, base string, width int) string {
	if len(s.ConnectionErrors) == 0 {
		return base
	}
	var toasts []string
	for host, entry := range s.ConnectionErrors {
		toasts = append(toasts, toastErrorStyle.Render(fmt.Sprintf("%s: %s", host, entry.Message)))
	}
	return base + "\n" + strings.Join(toasts, "\n")
}
