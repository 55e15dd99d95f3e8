package report

import (
	"fmt"
	"strings"
)

// Markdown renders the table as a titled Markdown table. Empty tables render
// a "(no data)" line instead of a header-only table.
func (t Table) Markdown(precision int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]\n", strings.ToUpper(strings.ReplaceAll(t.Name, "_", " "))))
	if t.Empty() {
		b.WriteString("(no data)\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n\n", len(t.Rows)))

	b.WriteString("| ")
	for i, f := range t.Fields {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeName(f))
	}
	b.WriteString(" |\n| ")
	for i := range t.Fields {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")
	for _, rec := range t.Records(precision) {
		b.WriteString("| ")
		for i := range t.Fields {
			if i > 0 {
				b.WriteString(" | ")
			}
			val := ""
			if i < len(rec) {
				val = rec[i]
			}
			if len(val) > 80 {
				val = val[:77] + "..."
			}
			b.WriteString(safeVal(val))
		}
		b.WriteString(" |\n")
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
