package grid

// FieldType identifies how a column's values are displayed and edited.
// It is a closed set: every switch over FieldType handles each variant
// explicitly so that adding one is a compile-visible change.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEmail
	FieldPhone
	FieldSelect
	FieldMultiSelect
	FieldDate
	FieldCustom
)

func (f FieldType) String() string {
	switch f {
	case FieldText:
		return "text"
	case FieldEmail:
		return "email"
	case FieldPhone:
		return "phone"
	case FieldSelect:
		return "select"
	case FieldMultiSelect:
		return "multi-select"
	case FieldDate:
		return "date"
	case FieldCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ColumnRole declares what a column semantically holds. Card view uses it
// to map columns onto card slots, and badge rendering uses RoleStatus
// instead of guessing from the column name.
type ColumnRole int

const (
	RoleNone ColumnRole = iota
	RoleName
	RoleEmail
	RolePhone
	RoleRole
	RoleStatus
	RoleDate
)

// Column is the static per-column configuration supplied by the host.
// It is treated as immutable for the lifetime of a render pass; the host
// may replace the whole column set at any time and the view state resyncs.
type Column struct {
	ID       string
	Key      string // field name looked up on each row; defaults to ID
	Label    string
	Type     FieldType
	Role     ColumnRole
	Options  []string // choices for select / multi-select columns

	Sortable   bool
	Filterable bool
	Resizable  bool
	Groupable  bool
	Editable   bool

	MinWidth int
	Width    int // default width before any user resize
	MaxWidth int

	// Render, when set on a FieldCustom column, produces the display
	// string for a value. Ignored for other field types.
	Render func(value any) string
}

// Default width bounds applied when a column leaves them zero.
const (
	DefaultMinWidth = 6
	DefaultWidth    = 20
	DefaultMaxWidth = 60
)

// FieldKey returns the row field this column reads, falling back to the
// column id when no explicit accessor key is set.
func (c Column) FieldKey() string {
	if c.Key != "" {
		return c.Key
	}
	return c.ID
}

// WidthBounds returns the (min, default, max) widths with zero values
// replaced by package defaults and inverted bounds normalized.
func (c Column) WidthBounds() (min, def, max int) {
	min, def, max = c.MinWidth, c.Width, c.MaxWidth
	if min <= 0 {
		min = DefaultMinWidth
	}
	if max <= 0 {
		max = DefaultMaxWidth
	}
	if max < min {
		max = min
	}
	if def <= 0 {
		def = DefaultWidth
	}
	if def < min {
		def = min
	}
	if def > max {
		def = max
	}
	return min, def, max
}

// ColumnByID returns the column with the given id.
func ColumnByID(cols []Column, id string) (Column, bool) {
	for _, c := range cols {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// SortableColumns returns the columns eligible for sort conditions.
func SortableColumns(cols []Column) []Column {
	return filterColumns(cols, func(c Column) bool { return c.Sortable })
}

// FilterableColumns returns the columns eligible for filter conditions.
func FilterableColumns(cols []Column) []Column {
	return filterColumns(cols, func(c Column) bool { return c.Filterable })
}

// GroupableColumns returns the columns eligible for grouping.
func GroupableColumns(cols []Column) []Column {
	return filterColumns(cols, func(c Column) bool { return c.Groupable })
}

func filterColumns(cols []Column, keep func(Column) bool) []Column {
	var out []Column
	for _, c := range cols {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
