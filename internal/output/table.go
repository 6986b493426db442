package output

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// emptyCell is rendered in place of a blank value so sparse care data (no
// due date yet, no recommendation set) reads as deliberate.
const emptyCell = "—"

// minColumnWidth is the floor below which layout stops shrinking a column.
const minColumnWidth = 8

// tableWidth caps the rendered row width. Zero means unlimited.
var tableWidth int

// SetWidth sets the target terminal width for table rendering.
func SetWidth(w int) {
	tableWidth = w
}

// Table renders aligned columns for plant listings and due-task reports.
// Cells may carry ANSI styling; alignment is computed on visible width.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a new table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = visualLen(h)
	}
	return &Table{
		headers: headers,
		widths:  widths,
	}
}

// AddRow adds a row of values to the table. Missing or empty values render
// as the empty-cell placeholder.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	for i := range t.headers {
		if i < len(values) {
			row[i] = values[i]
		}
		if row[i] == "" {
			row[i] = emptyCell
		}
		if w := visualLen(row[i]); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

// Render returns the formatted table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := t.layout()

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	var sb strings.Builder

	// Header row.
	for i, h := range t.headers {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(headerStyle.Render(pad(truncate(h, widths[i]), widths[i])))
	}
	sb.WriteString("\n")

	// Separator.
	for i, w := range widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleMuted.Render(strings.Repeat("─", w)))
	}
	sb.WriteString("\n")

	// Data rows.
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(pad(truncate(cell, widths[i]), widths[i]))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// layout returns the final column widths, shrinking the widest column while
// the row exceeds the configured width. Columns never drop below
// minColumnWidth; with enough columns the table may still overflow.
func (t *Table) layout() []int {
	widths := append([]int(nil), t.widths...)
	if tableWidth <= 0 {
		return widths
	}
	rowWidth := func() int {
		n := 2 * (len(widths) - 1)
		for _, w := range widths {
			n += w
		}
		return n
	}
	for rowWidth() > tableWidth {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColumnWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.Render()
}

// Print writes the table to stdout.
func (t *Table) Print() {
	fmt.Print(t.Render())
}

var ansiSeq = regexp.MustCompile("\x1b\\[[0-9;]*m")

// visualLen returns the printed width of a cell, ignoring ANSI escape
// sequences so styled status cells align with plain ones.
func visualLen(s string) int {
	return len([]rune(ansiSeq.ReplaceAllString(s, "")))
}

// pad right-pads a string to the given visible width.
func pad(s string, width int) string {
	n := visualLen(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// truncate shortens an over-wide plain cell to fit its column. Styled cells
// pass through unchanged; the styled values here are short status labels.
func truncate(s string, width int) string {
	if width < 1 || visualLen(s) <= width || strings.Contains(s, "\x1b") {
		return s
	}
	return string([]rune(s)[:width-1]) + "…"
}
