package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorVeryDim  = "242" // Even dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196" // Red for dangerous actions
	ColorSuccess  = "28"  // Green for success
	ColorWhite    = "255" // White
	ColorDark     = "235" // Dark for contrast
	ColorPrimary  = "33"  // Blue for primary actions
	ColorTeal     = "30"  // Teal for resolved/done states
	ColorAmber    = "178" // Amber for pending states
)

// Common styles
var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorDim))

	FrozenHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(ColorPrimary))

	GroupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(ColorWarning))

	EmptyActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorWarning)).
				Bold(true)

	EmptyInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorVeryDim))

	// Muted placeholder for null or missing cell values
	EmptyCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorVeryDim)).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDanger))

	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Bold(true)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim)).
				Italic(true)

	ConfirmDangerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDanger)).
				Bold(true).
				Padding(1)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorActive)).
			Padding(0, 1)

	BulkBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorSelected)).
			Foreground(lipgloss.Color(ColorWhite)).
			Padding(0, 1)

	CardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorWhite))

	CardLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim))
)

// StatusColor maps a status-like select value to its badge color.
// Unrecognized values render gray.
func StatusColor(value string) string {
	switch normalizeStatus(value) {
	case "in-progress", "in progress", "open":
		return ColorPrimary
	case "resolved", "closed", "done":
		return ColorTeal
	case "active":
		return ColorSuccess
	case "inactive", "pending":
		return ColorAmber
	case "cancelled", "canceled", "rejected":
		return ColorDanger
	default:
		return ColorInactive
	}
}

// GetStatusBadgeStyle returns the colored badge style for a status value.
func GetStatusBadgeStyle(value string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(StatusColor(value))).
		Foreground(lipgloss.Color(ColorWhite)).
		Padding(0, 1)
}

// NeutralBadgeStyle is used for non-status select values and
// multi-select entries.
var NeutralBadgeStyle = lipgloss.NewStyle().
	Background(lipgloss.Color(ColorSelected)).
	Foreground(lipgloss.Color(ColorNormal)).
	Padding(0, 1)

func GetActiveHeaderStyle(isActive bool) lipgloss.Style {
	color := ColorInactive
	if isActive {
		color = ColorActive
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(color))
}
