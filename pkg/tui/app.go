package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// App is the top-level model: a title bar, one grid, and a status line.
type App struct {
	title  string
	grid   *GridModel
	width  int
	height int
}

// NewApp wraps a grid model for standalone use.
func NewApp(title string, grid *GridModel) *App {
	return &App{title: title, grid: grid}
}

func (a *App) Init() tea.Cmd {
	return a.grid.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.grid.SetSize(msg.Width, msg.Height-2)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			a.grid.Close()
			return a, tea.Quit
		}
		// "q" quits only while the table itself has focus; every other
		// surface needs it as an ordinary character.
		if msg.String() == "q" && a.grid.focus == focusTable {
			a.grid.Close()
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	var mdl tea.Model
	mdl, cmd = a.grid.Update(msg)
	if g, ok := mdl.(*GridModel); ok {
		a.grid = g
	}
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWhite)).
		Background(lipgloss.Color(ColorActive)).
		Padding(0, 1)

	mode := "GRID"
	if a.grid.CardMode() {
		mode = "CARDS"
	}
	header := titleStyle.Render(a.title) + " " + EmptyInactiveStyle.Render(mode)

	return lipgloss.JoinVertical(lipgloss.Top, header, a.grid.View())
}
