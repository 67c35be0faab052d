package tui

import "github.com/charmbracelet/lipgloss"

// State icons, kept from the teacher's compact glyph set. A nerd-font
// variant is offered for terminals with a patched font installed, selected
// by --icons/config rather than autodetected.
const (
	iconRunning = "▶"
	iconStopped = "■"
	iconPaused  = "⏸"
	iconRestart = "⟳"

	iconRunningNerd = ""
	iconStoppedNerd = ""
	iconPausedNerd  = ""
	iconRestartNerd = ""
)

// VSCode-derived palette, same choice the teacher made for a sober,
// low-contrast terminal UI.
const (
	bgSelected = "#264f78"
	bgBorder   = "#3c3c3c"
	bgDefault  = "#1e1e1e"

	fgBright = "#ffffff"
	fgDim    = "#808080"

	colorRunning = "#4ec9b0"
	colorStopped = "#f48771"
	colorProcess = "#4fc1ff"
	colorError   = "#f48771"
	colorSuccess = "#89d185"
	colorWarning = "#dcdcaa"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorProcess))

	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(fgBright))

	selectedLineStyle = lipgloss.NewStyle().Background(lipgloss.Color(bgSelected))

	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRunning))
	stoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorStopped))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(fgDim))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorError)).Bold(true)

	toastSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorSuccess)).
				Background(lipgloss.Color(bgDefault)).
				Bold(true).Padding(0, 1)

	toastErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError)).
			Background(lipgloss.Color(bgDefault)).
			Bold(true).Padding(0, 1)

	containerBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(bgBorder)).
				Padding(0, 1)

	menuItemStyle         = lipgloss.NewStyle().Padding(0, 1)
	menuItemSelectedStyle = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color(bgSelected)).Bold(true)
)

// stateIconSet returns the glyph for a container's state, choosing the
// nerd-font set when nerd is true.
func stateIconSet(running, paused, restarting, nerd bool) string {
	if nerd {
		switch {
		case restarting:
			return iconRestartNerd
		case paused:
			return iconPausedNerd
		case running:
			return iconRunningNerd
		default:
			return iconStoppedNerd
		}
	}
	switch {
	case restarting:
		return iconRestart
	case paused:
		return iconPaused
	case running:
		return iconRunning
	default:
		return iconStopped
	}
}
