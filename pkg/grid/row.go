package grid

import (
	"fmt"
	"strings"
	"time"
)

// Row is one host-supplied record. The engine never creates or deletes
// rows; it only reads fields and proposes mutations through the host's
// edit callback. Key must be stable for the lifetime of the record.
type Row interface {
	Key() string
	Get(field string) (any, bool)
}

// MapRow is the plain map-backed Row used by the host application and
// throughout the tests.
type MapRow struct {
	ID     string
	Fields map[string]any
}

func (r MapRow) Key() string { return r.ID }

func (r MapRow) Get(field string) (any, bool) {
	v, ok := r.Fields[field]
	return v, ok
}

// Stringify renders a field value for searching, filtering and plain-text
// display. Nil and missing values become the empty string; multi-valued
// fields join with ", ".
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, e := range val {
			parts = append(parts, Stringify(e))
		}
		return strings.Join(parts, ", ")
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format("Jan 2, 2006")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// FieldString returns the stringified value of a row field.
func FieldString(r Row, field string) string {
	v, ok := r.Get(field)
	if !ok {
		return ""
	}
	return Stringify(v)
}

// IsEmptyValue reports whether a field value renders as empty.
func IsEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	case time.Time:
		return val.IsZero()
	default:
		return false
	}
}
