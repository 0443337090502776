package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabledeck/tabledeck-cli/pkg/export"
	"github.com/tabledeck/tabledeck-cli/pkg/grid"
	"github.com/tabledeck/tabledeck-cli/pkg/prefs"
)

// Callbacks are the host's hooks. The grid proposes mutations and
// actions through them and never touches the record store itself.
type Callbacks struct {
	OnCellEdit   func(row grid.Row, columnID string, value any) error
	OnRowDelete  func(rows []grid.Row) error
	OnBulkAction func(action string, rows []grid.Row, args ...string) error
	OnExport     func(format export.Format, rows []grid.Row) error
}

// Options configure one grid instance.
type Options struct {
	StorageKey string // empty disables layout persistence
	PrefsDir   string
	Breakpoint int // terminal width below which cards replace the grid
	Density    grid.Density
	Debounce   time.Duration
	CardSlots  map[CardSlot]string // explicit slot -> column id mapping
}

// DefaultBreakpoint is the card-view cutoff when the host sets none.
const DefaultBreakpoint = 80

type focusArea int

const (
	focusTable focusArea = iota
	focusSearch
	focusPanel
	focusEditor
	focusPicker
	focusConfirm
)

// pickerAction consumes the choice made in the overlay picker.
type pickerAction func(choice string)

// GridModel is the interactive data grid: it owns the view state,
// re-derives rows on every relevant change, and renders either the
// table or the card fallback depending on terminal width.
type GridModel struct {
	rows      []grid.Row
	cols      []grid.Column
	state     *grid.ViewState
	editor    *grid.Editor
	store     *prefs.Store
	callbacks Callbacks
	opts      Options

	search      *SearchBar
	filterPanel *Panel
	sortPanel   *Panel
	groupPanel  *Panel
	openPanel   *Panel
	confirm     *ConfirmationModel

	width, height int
	focus         focusArea
	rowCursor     int
	colCursor     int
	viewport      viewport.Model

	derived     grid.Derived
	deriveSig   string
	rowsVersion int

	editInput    textinput.Model
	picker       []string
	pickerIdx    int
	pickerTitle  string
	pickerChoose pickerAction

	statusMsg string
}

// NewGridModel builds a grid over the host's rows and columns.
func NewGridModel(rows []grid.Row, cols []grid.Column, callbacks Callbacks, opts Options) *GridModel {
	if opts.Breakpoint <= 0 {
		opts.Breakpoint = DefaultBreakpoint
	}

	state := grid.NewViewState()
	if opts.Density != "" {
		state.SetDensity(opts.Density)
	}

	var storeOpts []prefs.Option
	if opts.Debounce > 0 {
		storeOpts = append(storeOpts, prefs.WithDebounce(opts.Debounce))
	}
	store := prefs.NewStore(opts.PrefsDir, opts.StorageKey, storeOpts...)
	if snap, ok := store.Load(); ok {
		prefs.Apply(snap, state)
	}
	state.SyncColumns(cols)

	ti := textinput.New()
	ti.CharLimit = 200

	m := &GridModel{
		rows:      rows,
		cols:      cols,
		state:     state,
		store:     store,
		callbacks: callbacks,
		opts:      opts,
		search:    NewSearchBar(),
		confirm:   NewConfirmation(),
		viewport:  viewport.New(80, 20),
		editInput: ti,
	}
	m.editor = grid.NewEditor(state, m.commitCell)
	m.filterPanel = NewPanel(panelFilter, state)
	m.sortPanel = NewPanel(panelSort, state)
	m.groupPanel = NewPanel(panelGroup, state)
	m.refreshPanelColumns()
	return m
}

func (m *GridModel) refreshPanelColumns() {
	m.filterPanel.SetColumns(m.cols)
	m.sortPanel.SetColumns(m.cols)
	m.groupPanel.SetColumns(m.cols)
}

// SetRows replaces the row collection, e.g. after the host reloads.
func (m *GridModel) SetRows(rows []grid.Row) {
	m.rows = rows
	m.rowsVersion++
}

// SetColumns replaces the column set. The view state reconciles its
// order with the new set; layout for surviving columns is preserved.
func (m *GridModel) SetColumns(cols []grid.Column) {
	m.cols = cols
	m.state.SyncColumns(cols)
	m.refreshPanelColumns()
	m.rowsVersion++
}

// SetSize updates the model to the terminal dimensions.
func (m *GridModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = height - 8
	m.search.SetWidth(width)
	for _, p := range []*Panel{m.filterPanel, m.sortPanel, m.groupPanel} {
		p.SetWidth(width)
	}
}

// CardMode reports whether the card fallback is active at the current
// terminal width.
func (m *GridModel) CardMode() bool {
	return m.width > 0 && m.width < m.opts.Breakpoint
}

// Close flushes any pending layout write. Call on unmount.
func (m *GridModel) Close() {
	m.store.Close()
}

func (m *GridModel) Init() tea.Cmd { return nil }

// derive recomputes the pipeline output only when one of its value
// inputs actually changed. Comparing a rendered signature instead of
// object identity keeps re-renders from triggering useless recomputes.
func (m *GridModel) derive() grid.Derived {
	q := grid.Query{
		Search:   m.state.Search,
		Filters:  m.state.Filters,
		Sorting:  m.state.Sorting,
		Grouping: m.state.Grouping,
	}
	sig := fmt.Sprintf("%d|%q|%v|%v|%v", m.rowsVersion, q.Search, q.Filters, q.Sorting, q.Grouping)
	if sig != m.deriveSig {
		m.derived = grid.Derive(m.rows, m.cols, q)
		m.deriveSig = sig
		if m.rowCursor >= len(m.derived.Rows) {
			m.rowCursor = len(m.derived.Rows) - 1
		}
		if m.rowCursor < 0 {
			m.rowCursor = 0
		}
	}
	return m.derived
}

// visibleColumns resolves the ordered visible descriptors, frozen first.
func (m *GridModel) visibleColumns() []grid.Column {
	ids := m.state.VisibleOrder()
	cols := make([]grid.Column, 0, len(ids))
	for _, id := range ids {
		if c, ok := grid.ColumnByID(m.cols, id); ok {
			cols = append(cols, c)
		}
	}
	return cols
}

func (m *GridModel) currentRow() (grid.Row, bool) {
	d := m.derive()
	if m.rowCursor < 0 || m.rowCursor >= len(d.Rows) {
		return nil, false
	}
	return d.Rows[m.rowCursor], true
}

func (m *GridModel) currentColumn() (grid.Column, bool) {
	cols := m.visibleColumns()
	if m.colCursor < 0 || m.colCursor >= len(cols) {
		return grid.Column{}, false
	}
	return cols[m.colCursor], true
}

// persist schedules a debounced write of the layout subset.
func (m *GridModel) persist() {
	m.store.Put(prefs.Capture(m.state))
}

func (m *GridModel) setStatus(format string, args ...any) {
	m.statusMsg = fmt.Sprintf(format, args...)
}

// Update is the bubbletea message handler.
func (m *GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *GridModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusSearch:
		return m.updateSearch(msg)
	case focusPanel:
		return m.updatePanel(msg)
	case focusEditor:
		return m.updateEditor(msg)
	case focusPicker:
		return m.updatePicker(msg)
	case focusConfirm:
		if cmd := m.confirm.Update(msg); cmd != nil {
			return m, cmd
		}
		if !m.confirm.Active() {
			m.focus = focusTable
		}
		return m, nil
	}
	return m.updateTable(msg)
}

func (m *GridModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Reset()
		m.state.SetSearch("")
		m.search.SetActive(false)
		m.focus = focusTable
		return m, nil
	case "enter":
		m.search.SetActive(false)
		m.focus = focusTable
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.state.SetSearch(m.search.Value())
	return m, cmd
}

func (m *GridModel) updatePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.openPanel == nil {
		m.focus = focusTable
		return m, nil
	}
	cmd := m.openPanel.Update(msg)
	if !m.openPanel.Active() {
		m.openPanel = nil
		m.focus = focusTable
	}
	return m, cmd
}

func (m *GridModel) openConditionPanel(p *Panel) {
	p.Open()
	m.openPanel = p
	m.focus = focusPanel
}

func (m *GridModel) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.derive()
	cardMode := m.CardMode()

	switch msg.String() {
	case "up", "k":
		if m.rowCursor > 0 {
			m.rowCursor--
		}
	case "down", "j":
		if m.rowCursor < len(d.Rows)-1 {
			m.rowCursor++
		}
	case "left", "h":
		if !cardMode && m.colCursor > 0 {
			m.colCursor--
		}
	case "right", "l":
		if !cardMode && m.colCursor < len(m.visibleColumns())-1 {
			m.colCursor++
		}

	case "/":
		m.focus = focusSearch
		m.search.SetActive(true)
		return m, m.search.Focus()
	case "f":
		m.openConditionPanel(m.filterPanel)
	case "s":
		m.openConditionPanel(m.sortPanel)
	case "g":
		m.openConditionPanel(m.groupPanel)

	case "o":
		if col, ok := m.currentColumn(); ok && col.Sortable {
			m.state.CycleSort(col.ID)
		}

	case " ":
		if row, ok := m.currentRow(); ok {
			m.state.ToggleSelection(row.Key())
		}
	case "a":
		m.toggleSelectAllVisible(d)
	case "esc":
		if len(m.state.Selection) > 0 {
			m.state.ClearSelection()
		}

	case "enter", "e":
		m.startEdit()

	case "<":
		if col, ok := m.currentColumn(); ok && !cardMode {
			m.state.ResizeColumn(col, -2)
			m.persist()
		}
	case ">":
		if col, ok := m.currentColumn(); ok && !cardMode {
			m.state.ResizeColumn(col, 2)
			m.persist()
		}
	case "[":
		m.moveColumn(-1)
	case "]":
		m.moveColumn(1)
	case "p":
		if col, ok := m.currentColumn(); ok && !cardMode {
			m.state.SetFrozen(col.ID, !m.state.Frozen[col.ID])
			m.persist()
		}
	case "v":
		if col, ok := m.currentColumn(); ok && !cardMode {
			m.state.SetVisibility(col.ID, false)
			if m.colCursor >= len(m.visibleColumns()) {
				m.colCursor = len(m.visibleColumns()) - 1
			}
			m.persist()
		}
	case "V":
		for _, c := range m.cols {
			m.state.SetVisibility(c.ID, true)
		}
		m.persist()
	case "d":
		m.state.SetDensity(grid.CycleDensity(m.state.Density))
		m.persist()

	case "x":
		m.openExportPicker()
	case "D":
		m.confirmDelete()
	case "r":
		m.openRolePicker()
	case "t":
		m.dispatchBulk("deactivate")
	case "T":
		m.dispatchBulk("activate")
	}
	return m, nil
}

// toggleSelectAllVisible selects every derived row, or clears them all
// when every one is already selected.
func (m *GridModel) toggleSelectAllVisible(d grid.Derived) {
	keys := make([]string, len(d.Rows))
	all := true
	for i, r := range d.Rows {
		keys[i] = r.Key()
		if !m.state.Selection[r.Key()] {
			all = false
		}
	}
	m.state.SelectAll(keys, !all)
}

// moveColumn reorders the current column one position left or right
// among the non-frozen visible columns.
func (m *GridModel) moveColumn(delta int) {
	if m.CardMode() {
		return
	}
	cols := m.visibleColumns()
	target := m.colCursor + delta
	if m.colCursor < 0 || m.colCursor >= len(cols) || target < 0 || target >= len(cols) {
		return
	}
	dragged, other := cols[m.colCursor], cols[target]
	if delta > 0 {
		// Moving right: insert dragged after the neighbor, i.e. before
		// the one past it, or append at the end.
		if target+1 < len(cols) {
			m.state.ReorderColumn(dragged.ID, cols[target+1].ID)
		} else {
			m.state.ReorderColumn(other.ID, dragged.ID)
		}
	} else {
		m.state.ReorderColumn(dragged.ID, other.ID)
	}
	m.colCursor = target
	m.persist()
}

// selectedRows resolves the full row objects behind the selection, not
// just the currently visible subset.
func (m *GridModel) selectedRows() []grid.Row {
	var out []grid.Row
	for _, r := range m.rows {
		if m.state.Selection[r.Key()] {
			out = append(out, r)
		}
	}
	return out
}

func (m *GridModel) confirmDelete() {
	rows := m.selectedRows()
	if len(rows) == 0 {
		if row, ok := m.currentRow(); ok {
			rows = []grid.Row{row}
		}
	}
	if len(rows) == 0 || m.callbacks.OnRowDelete == nil {
		return
	}
	m.confirm.Show(ConfirmationConfig{
		Message:     fmt.Sprintf("Delete %d record(s)?", len(rows)),
		Destructive: true,
	}, func() tea.Cmd {
		if err := m.callbacks.OnRowDelete(rows); err != nil {
			m.setStatus("Delete failed: %v", err)
		} else {
			m.state.ClearSelection()
			m.setStatus("Deleted %d record(s)", len(rows))
		}
		m.focus = focusTable
		return nil
	}, func() tea.Cmd {
		m.focus = focusTable
		return nil
	})
	m.focus = focusConfirm
}

func (m *GridModel) dispatchBulk(action string, args ...string) {
	rows := m.selectedRows()
	if len(rows) == 0 || m.callbacks.OnBulkAction == nil {
		return
	}
	if err := m.callbacks.OnBulkAction(action, rows, args...); err != nil {
		m.setStatus("%s failed: %v", action, err)
		return
	}
	m.rowsVersion++
	m.setStatus("Applied %s to %d record(s)", action, len(rows))
}

func (m *GridModel) openPicker(title string, choices []string, choose pickerAction) {
	if len(choices) == 0 {
		return
	}
	m.picker = choices
	m.pickerIdx = 0
	m.pickerTitle = title
	m.pickerChoose = choose
	m.focus = focusPicker
}

func (m *GridModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePicker()
		if m.editor.Active() {
			m.editor.Cancel()
		}
	case "up", "k":
		if m.pickerIdx > 0 {
			m.pickerIdx--
		}
	case "down", "j":
		if m.pickerIdx < len(m.picker)-1 {
			m.pickerIdx++
		}
	case "enter":
		choose := m.pickerChoose
		choice := m.picker[m.pickerIdx]
		m.closePicker()
		if choose != nil {
			choose(choice)
		}
	}
	return m, nil
}

func (m *GridModel) closePicker() {
	m.picker = nil
	m.pickerChoose = nil
	m.focus = focusTable
}

func (m *GridModel) openExportPicker() {
	rows := m.selectedRows()
	if len(rows) == 0 {
		rows = m.derive().Rows
	}
	if m.callbacks.OnExport == nil {
		return
	}
	m.openPicker("Export as", []string{"csv", "json", "xlsx"}, func(choice string) {
		format, err := export.ParseFormat(choice)
		if err != nil {
			m.setStatus("%v", err)
			return
		}
		if err := m.callbacks.OnExport(format, rows); err != nil {
			m.setStatus("Export failed: %v", err)
			return
		}
		m.setStatus("Exported %d record(s) as %s", len(rows), format)
	})
}

// openRolePicker drives the bulk role-reassignment action with the
// option list of the role column.
func (m *GridModel) openRolePicker() {
	if len(m.selectedRows()) == 0 {
		return
	}
	var roleCol *grid.Column
	for i := range m.cols {
		if m.cols[i].Role == grid.RoleRole {
			roleCol = &m.cols[i]
			break
		}
	}
	if roleCol == nil || len(roleCol.Options) == 0 {
		return
	}
	m.openPicker("Assign role", roleCol.Options, func(choice string) {
		m.dispatchBulk("assign-role", choice)
	})
}
