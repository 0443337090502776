package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tabledeck/tabledeck-cli/pkg/grid"
)

const emptyPlaceholder = "Empty"

// normalizeStatus lowercases and trims a status value for color lookup.
func normalizeStatus(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// isStatusColumn decides whether a select column renders colored status
// badges. The explicit column role wins; guessing from the id or label
// is only a fallback for hosts that declare no role.
func isStatusColumn(col grid.Column) bool {
	switch col.Role {
	case grid.RoleStatus:
		return true
	case grid.RoleNone:
		id := strings.ToLower(col.ID)
		label := strings.ToLower(col.Label)
		return strings.Contains(id, "status") || strings.Contains(label, "status")
	default:
		return false
	}
}

// RenderCell produces the display-mode representation of one cell,
// padded or truncated to width. A missing or empty value renders a
// muted placeholder so one bad row never blanks the grid.
func RenderCell(r grid.Row, col grid.Column, width int) string {
	raw, _ := r.Get(col.FieldKey())
	if grid.IsEmptyValue(raw) {
		return padCell(EmptyCellStyle.Render(emptyPlaceholder), width)
	}

	switch col.Type {
	case grid.FieldSelect:
		text := grid.Stringify(raw)
		if isStatusColumn(col) {
			return padCell(GetStatusBadgeStyle(text).Render(truncateCell(text, width-2)), width)
		}
		return padCell(NeutralBadgeStyle.Render(truncateCell(text, width-2)), width)

	case grid.FieldMultiSelect:
		var badges []string
		for _, entry := range splitMulti(raw) {
			badges = append(badges, NeutralBadgeStyle.Render(entry))
		}
		return padCell(truncateAnsi(strings.Join(badges, " "), width), width)

	case grid.FieldDate:
		return padCell(NormalStyle.Render(truncateCell(grid.Stringify(raw), width)), width)

	case grid.FieldCustom:
		text := grid.Stringify(raw)
		if col.Render != nil {
			text = col.Render(raw)
		}
		return padCell(NormalStyle.Render(truncateCell(text, width)), width)

	case grid.FieldText, grid.FieldEmail, grid.FieldPhone:
		return padCell(NormalStyle.Render(truncateCell(grid.Stringify(raw), width)), width)

	default:
		return padCell(NormalStyle.Render(truncateCell(grid.Stringify(raw), width)), width)
	}
}

// RenderCellPlain is the unstyled cell text used by the card view's
// detail lines and by width measurement.
func RenderCellPlain(r grid.Row, col grid.Column) string {
	raw, _ := r.Get(col.FieldKey())
	if grid.IsEmptyValue(raw) {
		return emptyPlaceholder
	}
	if col.Type == grid.FieldCustom && col.Render != nil {
		return col.Render(raw)
	}
	return grid.Stringify(raw)
}

func splitMulti(raw any) []string {
	switch val := raw.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, e := range val {
			out = append(out, grid.Stringify(e))
		}
		return out
	default:
		return []string{grid.Stringify(raw)}
	}
}

func truncateCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// truncateAnsi trims a styled string to a visible width.
func truncateAnsi(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	// Rebuild rune by rune, preserving escape sequences.
	var sb strings.Builder
	visible := 0
	inEsc := false
	for _, r := range s {
		if inEsc {
			sb.WriteRune(r)
			if r == 'm' {
				inEsc = false
			}
			continue
		}
		if r == '\x1b' {
			inEsc = true
			sb.WriteRune(r)
			continue
		}
		w := runewidth.RuneWidth(r)
		if visible+w > width-1 {
			sb.WriteString("…")
			break
		}
		visible += w
		sb.WriteRune(r)
	}
	return sb.String() + "\x1b[0m"
}

// padCell right-pads styled content to an exact visible width.
func padCell(s string, width int) string {
	if lipgloss.Width(s) > width {
		s = truncateAnsi(s, width)
	}
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
