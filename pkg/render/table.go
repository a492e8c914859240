// Package render formats query results as terminal tables.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Table is a render-ready result: a title, column headers, and stringified
// rows.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// String renders the table as markdown with a colored title and row count.
func (t Table) String() string {
	var b strings.Builder
	if t.Title != "" {
		b.WriteString(color.CyanString(t.Title))
		b.WriteString("\n\n")
	}
	if len(t.Rows) == 0 {
		b.WriteString("_no rows_\n")
		return b.String()
	}

	tbl := tablewriter.NewTable(&b,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	tbl.Header(t.Headers)
	for _, row := range t.Rows {
		tbl.Append(row)
	}
	tbl.Render()

	b.WriteString("\n")
	b.WriteString(color.GreenString("%d", len(t.Rows)))
	if len(t.Rows) == 1 {
		b.WriteString(" row\n")
	} else {
		b.WriteString(" rows\n")
	}
	return b.String()
}

// Cell formatters shared by the CLI's result mappers.

func Float(v float64) string { return fmt.Sprintf("%.2f", v) }

func Int(v int64) string { return fmt.Sprintf("%d", v) }

func Date(t time.Time) string { return t.Format("2006-01-02") }
