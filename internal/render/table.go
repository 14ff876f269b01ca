package render

import (
	"fmt"
	"io"
	"strings"

	"nanowatch/internal/summary"
)

// Table writes a width-aligned plain-text table with a dashed separator under
// the header row.
func Table(w io.Writer, rows []summary.StudyRow) error {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}

	grid := make([][]string, 0, len(rows))
	for _, r := range rows {
		cs := cells(r)
		for i, c := range cs {
			if n := len([]rune(c)); n > widths[i] {
				widths[i] = n
			}
		}
		grid = append(grid, cs)
	}

	if err := writeRow(w, columns, widths); err != nil {
		return err
	}
	sep := make([]string, len(columns))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintln(w, strings.Join(sep, "-+-")); err != nil {
		return err
	}
	for _, cs := range grid {
		if err := writeRow(w, cs, widths); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, cs []string, widths []int) error {
	padded := make([]string, len(cs))
	for i, c := range cs {
		padded[i] = pad(c, widths[i])
	}
	_, err := fmt.Fprintln(w, strings.Join(padded, " | "))
	return err
}

func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
