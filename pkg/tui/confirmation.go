package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Message     string
	Warning     string // optional warning text (shown in orange)
	Destructive bool   // if true, Yes renders red
	YesLabel    string // default "Yes"
	NoLabel     string // default "No"
}

// ConfirmationModel handles confirmation prompts
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel

	if m.config.YesLabel == "" {
		m.config.YesLabel = "Yes"
	}
	if m.config.NoLabel == "" {
		m.config.NoLabel = "No"
	}
}

// Hide deactivates the confirmation
func (m *ConfirmationModel) Hide() {
	m.active = false
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y", "enter":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
	}
	return nil
}

// View renders the confirmation prompt
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	var b strings.Builder
	msgStyle := NormalStyle
	if m.config.Destructive {
		msgStyle = ConfirmDangerStyle
	}
	b.WriteString(msgStyle.Render(m.config.Message))
	if m.config.Warning != "" {
		b.WriteString("\n" + EmptyActiveStyle.Render(m.config.Warning))
	}

	yesStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Bold(true)
	noStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDanger)).Bold(true)
	if m.config.Destructive {
		yesStyle, noStyle = noStyle, yesStyle
	}

	b.WriteString("\n\n")
	b.WriteString(yesStyle.Render("["+m.config.YesLabel+"]") + "  " + noStyle.Render("["+m.config.NoLabel+"]"))
	b.WriteString("\n" + EmptyInactiveStyle.Render("y/enter confirm · n/esc cancel"))

	return ActiveBorderStyle.Padding(0, 1).Render(b.String())
}
