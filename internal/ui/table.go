package ui

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	tableCellMaxWidth = 50
	tableCellEllipsis = "..."
	tableColumnGap    = "  "
)

var cellFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// TableBuilder lays out rows in aligned columns. Widths ignore ANSI
// styling, so highlighted IDs line up with plain ones.
type TableBuilder struct {
	headers []string
	right   map[int]bool
	rows    [][]string
}

// NewTableBuilder starts a table with the given header row and room for
// capacity data rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{
		headers: cleanCells(headers),
		right:   map[int]bool{},
		rows:    make([][]string, 0, capacity),
	}
}

// AlignRight pads the given columns on the left, for numbers.
func (b *TableBuilder) AlignRight(columns ...int) *TableBuilder {
	for _, column := range columns {
		b.right[column] = true
	}
	return b
}

// AddRow appends a row. Line breaks become spaces and cells wider than
// the column limit end in an ellipsis.
func (b *TableBuilder) AddRow(cells ...string) {
	b.rows = append(b.rows, cleanCells(cells))
}

// String renders the header and rows, one line each. The last column is
// never right-padded.
func (b *TableBuilder) String() string {
	lines := append([][]string{b.headers}, b.rows...)

	widths := make([]int, len(b.headers))
	for _, line := range lines {
		for i, cell := range line {
			if i < len(widths) {
				widths[i] = max(widths[i], ansi.PrintableRuneWidth(cell))
			}
		}
	}

	var out strings.Builder
	for _, line := range lines {
		for i, cell := range line {
			pad := ""
			if i < len(widths) {
				pad = strings.Repeat(" ", widths[i]-ansi.PrintableRuneWidth(cell))
			}
			last := i == len(line)-1
			switch {
			case b.right[i]:
				out.WriteString(pad + cell)
			case last:
				out.WriteString(cell)
			default:
				out.WriteString(cell + pad)
			}
			if !last {
				out.WriteString(tableColumnGap)
			}
		}
		out.WriteByte('\n')
	}
	return out.String()
}

func cleanCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = truncateCell(cellFlattener.Replace(cell))
	}
	return out
}

func truncateCell(cell string) string {
	if ansi.PrintableRuneWidth(cell) <= tableCellMaxWidth {
		return cell
	}
	return truncate.StringWithTail(cell, tableCellMaxWidth, tableCellEllipsis)
}
