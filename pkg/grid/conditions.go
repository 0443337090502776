package grid

// Helpers behind the filter/sort/group panels: each panel appends a new
// condition with the first eligible column and a sensible default, edits
// conditions in place, and removes them by position. Condition order is
// priority for sorting, nesting depth for grouping, and cosmetic for
// filters.

// NewFilterCondition returns a default filter on the first filterable
// column. ok is false when no column is filterable.
func NewFilterCondition(cols []Column) (Filter, bool) {
	eligible := FilterableColumns(cols)
	if len(eligible) == 0 {
		return Filter{}, false
	}
	return Filter{ColumnID: eligible[0].ID, Operator: OpContains}, true
}

// NewSortCondition returns an ascending sort on the first sortable
// column not already used by an existing key, falling back to the first
// sortable column.
func NewSortCondition(cols []Column, existing []SortKey) (SortKey, bool) {
	eligible := SortableColumns(cols)
	if len(eligible) == 0 {
		return SortKey{}, false
	}
	used := make(map[string]bool, len(existing))
	for _, k := range existing {
		used[k.ColumnID] = true
	}
	for _, c := range eligible {
		if !used[c.ID] {
			return SortKey{ColumnID: c.ID}, true
		}
	}
	return SortKey{ColumnID: eligible[0].ID}, true
}

// NewGroupCondition returns the first groupable column id not already in
// the grouping list. ok is false when every groupable column is used.
func NewGroupCondition(cols []Column, existing []string) (string, bool) {
	used := make(map[string]bool, len(existing))
	for _, id := range existing {
		used[id] = true
	}
	for _, c := range GroupableColumns(cols) {
		if !used[c.ID] {
			return c.ID, true
		}
	}
	return "", false
}

// RemoveAt deletes one element by position, tolerating out-of-range
// indexes.
func RemoveAt[T any](list []T, index int) []T {
	if index < 0 || index >= len(list) {
		return list
	}
	return append(list[:index], list[index+1:]...)
}
