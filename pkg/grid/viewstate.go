package grid

// Density is the vertical row-height preset.
type Density string

const (
	DensityCompact     Density = "compact"
	DensityStandard    Density = "standard"
	DensityComfortable Density = "comfortable"
)

// CycleDensity returns the next density preset in order.
func CycleDensity(d Density) Density {
	switch d {
	case DensityCompact:
		return DensityStandard
	case DensityStandard:
		return DensityComfortable
	default:
		return DensityCompact
	}
}

// SortKey is one entry of a multi-key sort; earlier entries have higher
// priority.
type SortKey struct {
	ColumnID   string
	Descending bool
}

// FilterOperator names a per-column filter predicate. All operators
// compare case-insensitively against the stringified field value.
type FilterOperator string

const (
	OpEquals      FilterOperator = "equals"
	OpNotEquals   FilterOperator = "notEquals"
	OpContains    FilterOperator = "contains"
	OpNotContains FilterOperator = "notContains"
	OpStartsWith  FilterOperator = "startsWith"
	OpEndsWith    FilterOperator = "endsWith"
	OpIsEmpty     FilterOperator = "isEmpty"
	OpIsNotEmpty  FilterOperator = "isNotEmpty"
)

// FilterOperators lists every operator in panel display order.
var FilterOperators = []FilterOperator{
	OpEquals, OpNotEquals, OpContains, OpNotContains,
	OpStartsWith, OpEndsWith, OpIsEmpty, OpIsNotEmpty,
}

// NeedsValue reports whether the operator evaluates its value operand.
func (op FilterOperator) NeedsValue() bool {
	return op != OpIsEmpty && op != OpIsNotEmpty
}

// Filter is one conjunctive filter condition.
type Filter struct {
	ColumnID string
	Operator FilterOperator
	Value    string
}

// CellRef identifies a cell by row key and column id.
type CellRef struct {
	RowKey   string
	ColumnID string
}

// ViewState is the grid's own mutable state. One instance exists per
// grid; every mutation replaces a whole slice of the state, so separate
// affordances touching separate slices never conflict.
type ViewState struct {
	Visibility map[string]bool // column id -> visible; absent means visible
	Order      []string        // permutation of registered column ids
	Sizing     map[string]int  // column id -> width
	Frozen     map[string]bool // column id -> pinned left
	Density    Density

	Sorting  []SortKey
	Filters  []Filter
	Grouping []string // column ids, outermost first

	Selection map[string]bool // row key -> selected
	Editing   *CellRef
	Search    string
}

// NewViewState returns an empty view state with standard density.
func NewViewState() *ViewState {
	return &ViewState{
		Visibility: make(map[string]bool),
		Sizing:     make(map[string]int),
		Frozen:     make(map[string]bool),
		Selection:  make(map[string]bool),
		Density:    DensityStandard,
	}
}

// SyncColumns reconciles Order with the currently registered column set:
// ids no longer registered are dropped, newly appeared ids are appended
// in registration order. Frozen and visibility entries for unregistered
// ids are pruned as well.
func (s *ViewState) SyncColumns(cols []Column) {
	known := make(map[string]bool, len(cols))
	for _, c := range cols {
		known[c.ID] = true
	}

	order := s.Order[:0]
	seen := make(map[string]bool, len(cols))
	for _, id := range s.Order {
		if known[id] && !seen[id] {
			order = append(order, id)
			seen[id] = true
		}
	}
	for _, c := range cols {
		if !seen[c.ID] {
			order = append(order, c.ID)
			seen[c.ID] = true
		}
	}
	s.Order = order

	for id := range s.Frozen {
		if !known[id] {
			delete(s.Frozen, id)
		}
	}
	for id := range s.Visibility {
		if !known[id] {
			delete(s.Visibility, id)
		}
	}
}

// Visible reports whether a column is currently shown. Columns default
// to visible until explicitly hidden.
func (s *ViewState) Visible(id string) bool {
	v, ok := s.Visibility[id]
	if !ok {
		return true
	}
	return v
}

// VisibleOrder returns the ordered visible column ids with frozen
// columns first, preserving relative order within each group.
func (s *ViewState) VisibleOrder() []string {
	var frozen, rest []string
	for _, id := range s.Order {
		if !s.Visible(id) {
			continue
		}
		if s.Frozen[id] {
			frozen = append(frozen, id)
		} else {
			rest = append(rest, id)
		}
	}
	return append(frozen, rest...)
}

// SetSorting replaces the sort keys.
func (s *ViewState) SetSorting(keys []SortKey) { s.Sorting = keys }

// SetFilters replaces the filter conditions.
func (s *ViewState) SetFilters(filters []Filter) { s.Filters = filters }

// SetGrouping replaces the grouping keys.
func (s *ViewState) SetGrouping(ids []string) { s.Grouping = ids }

// SetSearch replaces the global search text.
func (s *ViewState) SetSearch(text string) { s.Search = text }

// SetDensity replaces the density preset.
func (s *ViewState) SetDensity(d Density) {
	switch d {
	case DensityCompact, DensityStandard, DensityComfortable:
		s.Density = d
	default:
		s.Density = DensityStandard
	}
}

// SetVisibility shows or hides a column.
func (s *ViewState) SetVisibility(id string, visible bool) {
	s.Visibility[id] = visible
	if !visible {
		delete(s.Frozen, id)
	}
}

// SetFrozen pins or unpins a column. Hidden columns cannot be frozen.
func (s *ViewState) SetFrozen(id string, frozen bool) {
	if frozen && !s.Visible(id) {
		return
	}
	if frozen {
		s.Frozen[id] = true
	} else {
		delete(s.Frozen, id)
	}
}

// ReorderColumn removes draggedID from the order and reinserts it
// immediately before targetID. No-op when either id is absent or they
// are equal.
func (s *ViewState) ReorderColumn(draggedID, targetID string) {
	if draggedID == targetID {
		return
	}
	from, to := -1, -1
	for i, id := range s.Order {
		switch id {
		case draggedID:
			from = i
		case targetID:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return
	}
	order := make([]string, 0, len(s.Order))
	for i, id := range s.Order {
		if i == from {
			continue
		}
		if id == targetID {
			order = append(order, draggedID)
		}
		order = append(order, id)
	}
	s.Order = order
}

// Width returns the current width of a column, falling back to the
// column's default and clamping into its bounds.
func (s *ViewState) Width(c Column) int {
	min, def, max := c.WidthBounds()
	w, ok := s.Sizing[c.ID]
	if !ok {
		return def
	}
	if w < min {
		return min
	}
	if w > max {
		return max
	}
	return w
}

// ResizeColumn adjusts a column width by delta, clamped into the
// column's bounds. Intermediate drag updates call this repeatedly; only
// the settled value matters for persistence.
func (s *ViewState) ResizeColumn(c Column, delta int) {
	if !c.Resizable {
		return
	}
	min, _, max := c.WidthBounds()
	w := s.Width(c) + delta
	if w < min {
		w = min
	}
	if w > max {
		w = max
	}
	s.Sizing[c.ID] = w
}

// ToggleSelection flips selection of one row.
func (s *ViewState) ToggleSelection(rowKey string) {
	if s.Selection[rowKey] {
		delete(s.Selection, rowKey)
	} else {
		s.Selection[rowKey] = true
	}
}

// SelectAll sets or clears selection for the given row keys, typically
// the currently visible derived rows.
func (s *ViewState) SelectAll(rowKeys []string, selected bool) {
	for _, k := range rowKeys {
		if selected {
			s.Selection[k] = true
		} else {
			delete(s.Selection, k)
		}
	}
}

// ClearSelection empties the selection set.
func (s *ViewState) ClearSelection() {
	s.Selection = make(map[string]bool)
}

// SelectedKeys returns the selected row keys in no particular order.
func (s *ViewState) SelectedKeys() []string {
	keys := make([]string, 0, len(s.Selection))
	for k := range s.Selection {
		keys = append(keys, k)
	}
	return keys
}

// CycleSort advances a column's sort among asc -> desc -> none, keeping
// it as the only sort key. Panels manipulate Sorting directly for
// multi-key ordering; this is the quick header toggle.
func (s *ViewState) CycleSort(columnID string) {
	if len(s.Sorting) == 1 && s.Sorting[0].ColumnID == columnID {
		if s.Sorting[0].Descending {
			s.Sorting = nil
		} else {
			s.Sorting = []SortKey{{ColumnID: columnID, Descending: true}}
		}
		return
	}
	s.Sorting = []SortKey{{ColumnID: columnID}}
}
