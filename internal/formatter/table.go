// Package formatter renders the master table as aligned plain text for
// CLI output.
package formatter

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"toolbrowser/internal/models"
)

const maxCellWidth = 48

var columns = []string{"Name", "Category", "Access", "Status", "URL"}

// RenderTable formats up to maxRows records as an aligned text table.
// maxRows <= 0 renders everything.
func RenderTable(table models.MasterTable, maxRows int) string {
	if len(table) == 0 {
		return "(no records)\n"
	}

	rows := [][]string{columns}

	shown := len(table)
	if maxRows > 0 && maxRows < shown {
		shown = maxRows
	}

	for _, rec := range table[:shown] {
		rows = append(rows, []string{
			cell(rec.Name),
			cell(rec.Category),
			cell(string(rec.Access)),
			cell(string(rec.ValidationStatus)),
			cell(rec.URL),
		})
	}

	// Compute display widths per column.
	widths := make([]int, len(columns))

	for _, row := range rows {
		for i, c := range row {
			if w := runewidth.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	writeRow := func(row []string) {
		b.WriteString("|")

		for i, c := range row {
			b.WriteString(" ")
			b.WriteString(runewidth.FillRight(c, widths[i]))
			b.WriteString(" |")
		}

		b.WriteString("\n")
	}

	writeRow(rows[0])

	b.WriteString("|")

	for _, w := range widths {
		b.WriteString(" ")
		b.WriteString(strings.Repeat("-", w))
		b.WriteString(" |")
	}

	b.WriteString("\n")

	for _, row := range rows[1:] {
		writeRow(row)
	}

	if shown < len(table) {
		fmt.Fprintf(&b, "... showing %d of %d rows\n", shown, len(table))
	}

	return b.String()
}

func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	return runewidth.Truncate(s, maxCellWidth, "...")
}
