package grid

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Query is the slice of view state the derivation pipeline consumes.
type Query struct {
	Search   string
	Filters  []Filter
	Sorting  []SortKey
	Grouping []string
}

// Group is one partition of derived rows. Nested grouping produces
// children instead of direct rows.
type Group struct {
	ColumnID string
	Value    string
	Rows     []Row
	Children []Group
}

// Derived is the pipeline output: the filtered, sorted row sequence and,
// when grouping is active, the same rows partitioned into groups.
type Derived struct {
	Rows   []Row
	Groups []Group // nil when no grouping is active
}

var collator = collate.New(language.Und, collate.IgnoreCase)

// Derive runs the filter, sort and group stages over the host's rows.
// It is pure: the same inputs always yield the same output, and input
// rows are never mutated.
func Derive(rows []Row, cols []Column, q Query) Derived {
	filtered := filterRows(rows, cols, q)
	sorted := sortRows(filtered, cols, q.Sorting)

	d := Derived{Rows: sorted}
	if len(q.Grouping) > 0 {
		d.Groups = groupRows(sorted, cols, q.Grouping)
	}
	return d
}

// MatchesFilter evaluates one filter condition against a row. A filter
// referencing an unknown column passes everything.
func MatchesFilter(r Row, cols []Column, f Filter) bool {
	col, ok := ColumnByID(cols, f.ColumnID)
	if !ok {
		return true
	}
	raw, _ := r.Get(col.FieldKey())

	switch f.Operator {
	case OpIsEmpty:
		return IsEmptyValue(raw)
	case OpIsNotEmpty:
		return !IsEmptyValue(raw)
	}

	have := strings.ToLower(Stringify(raw))
	want := strings.ToLower(f.Value)

	switch f.Operator {
	case OpEquals:
		return have == want
	case OpNotEquals:
		return have != want
	case OpContains:
		return strings.Contains(have, want)
	case OpNotContains:
		return !strings.Contains(have, want)
	case OpStartsWith:
		return strings.HasPrefix(have, want)
	case OpEndsWith:
		return strings.HasSuffix(have, want)
	default:
		return true
	}
}

// MatchesSearch reports whether any field named by the column set
// contains the search text, case-insensitively.
func MatchesSearch(r Row, cols []Column, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, c := range cols {
		v, ok := r.Get(c.FieldKey())
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(Stringify(v)), search) {
			return true
		}
	}
	return false
}

func filterRows(rows []Row, cols []Column, q Query) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if !MatchesSearch(r, cols, q.Search) {
			continue
		}
		pass := true
		for _, f := range q.Filters {
			if !MatchesFilter(r, cols, f) {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, r)
		}
	}
	return out
}

// sortRows applies the multi-key comparator with a stable sort, so an
// empty key list is an identity pass-through of the filtered order.
func sortRows(rows []Row, cols []Column, keys []SortKey) []Row {
	if len(keys) == 0 {
		return rows
	}
	out := make([]Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		for _, k := range keys {
			col, ok := ColumnByID(cols, k.ColumnID)
			if !ok {
				continue
			}
			cmp := compareValues(valueOf(out[i], col), valueOf(out[j], col))
			if cmp == 0 {
				continue
			}
			if k.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return out
}

func valueOf(r Row, c Column) any {
	v, ok := r.Get(c.FieldKey())
	if !ok {
		return nil
	}
	return v
}

// compareValues orders two field values. Nil or missing values compare
// greater than everything else, so they land last ascending and first
// descending. Numbers compare numerically, times chronologically, and
// strings through the locale collator.
func compareValues(a, b any) int {
	aNil, bNil := a == nil, b == nil
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return 1
	case bNil:
		return -1
	}

	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}

	return collator.CompareString(Stringify(a), Stringify(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// groupRows partitions rows by the first grouping column, preserving the
// incoming sort order inside each partition, then recurses for nested
// grouping keys. Partitions appear in order of first encounter.
func groupRows(rows []Row, cols []Column, grouping []string) []Group {
	if len(grouping) == 0 {
		return nil
	}
	col, ok := ColumnByID(cols, grouping[0])
	if !ok {
		// Unknown grouping column: skip it rather than fail the pipeline.
		return groupRows(rows, cols, grouping[1:])
	}

	var order []string
	buckets := make(map[string][]Row)
	for _, r := range rows {
		key := Stringify(valueOf(r, col))
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], r)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		g := Group{ColumnID: col.ID, Value: key}
		if len(grouping) > 1 {
			if children := groupRows(buckets[key], cols, grouping[1:]); children != nil {
				g.Children = children
			} else {
				g.Rows = buckets[key]
			}
		} else {
			g.Rows = buckets[key]
		}
		groups = append(groups, g)
	}
	return groups
}
