package pipeline

import (
	"regexp"
	"strings"
)

var delimiterCell = regexp.MustCompile(`^:?-+:?$`)

// alignment is the text alignment of a table column.
type alignment int

const (
	alignNone alignment = iota
	alignLeft
	alignRight
	alignCenter
)

// style returns the style attribute for the alignment, including its
// leading space, or "" when the column has no alignment.
func (a alignment) style() string {
	switch a {
	case alignLeft:
		return ` style="text-align:left;"`
	case alignRight:
		return ` style="text-align:right;"`
	case alignCenter:
		return ` style="text-align:center;"`
	default:
		return ""
	}
}

// renderTable renders a GFM table starting at lines[0]. It reports ok=false,
// with nothing consumed, when lines[0:2] is not a header plus delimiter row.
// Both rows must contain a pipe; a bare "---" is never a delimiter row.
func renderTable(lines []string) (html string, consumed int, ok bool) {
	if len(lines) < 2 || !isTableRow(lines[0]) || !isTableRow(lines[1]) {
		return "", 0, false
	}
	aligns, ok := parseDelimiterRow(lines[1])
	if !ok {
		return "", 0, false
	}

	header := splitTableRow(lines[0])
	cols := max(len(header), len(aligns))

	consumed = 2
	var rows [][]string
	for consumed < len(lines) && isTableRow(lines[consumed]) {
		rows = append(rows, splitTableRow(lines[consumed]))
		consumed++
	}

	var sb strings.Builder
	sb.WriteString(`<table class="md-table">` + "\n<thead><tr>")
	writeTableCells(&sb, "th", header, aligns, cols)
	sb.WriteString("</tr></thead>\n<tbody>\n")
	for _, row := range rows {
		sb.WriteString("<tr>")
		writeTableCells(&sb, "td", row, aligns, cols)
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>")

	return sb.String(), consumed, true
}

// writeTableCells writes exactly cols cells, padding short rows.
func writeTableCells(sb *strings.Builder, tag string, cells []string, aligns []alignment, cols int) {
	for i := 0; i < cols; i++ {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		a := alignNone
		if i < len(aligns) {
			a = aligns[i]
		}
		sb.WriteString("<" + tag + a.style() + ">")
		sb.WriteString(RenderInline(cell))
		sb.WriteString("</" + tag + ">")
	}
}

// isTableRow reports whether line can belong to a table.
func isTableRow(line string) bool {
	return strings.Contains(line, "|") && !isBlank(line) && !isCodeBlockLine(line)
}

// parseDelimiterRow validates a delimiter row and derives column alignments.
func parseDelimiterRow(line string) ([]alignment, bool) {
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return nil, false
	}
	aligns := make([]alignment, len(cells))
	for i, cell := range cells {
		if !delimiterCell.MatchString(cell) {
			return nil, false
		}
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		switch {
		case left && right:
			aligns[i] = alignCenter
		case right:
			aligns[i] = alignRight
		case left:
			aligns[i] = alignLeft
		}
	}
	return aligns, true
}

// splitTableRow splits a row on pipes, dropping the optional outer pipes
// and trimming each cell.
func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}
