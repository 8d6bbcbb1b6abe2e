package output

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// NewTable returns a rounded table rendering to w with the given headers.
func NewTable(w io.Writer, headers ...string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	row := make(table.Row, 0, len(headers))
	for _, h := range headers {
		row = append(row, text.FgHiCyan.Sprint(h))
	}
	t.AppendHeader(row)
	return t
}

// KeyValues renders pairs as a two column table. pairs alternate key and value.
func KeyValues(w io.Writer, pairs ...any) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	for i := 0; i+1 < len(pairs); i += 2 {
		t.AppendRow(table.Row{text.FgHiCyan.Sprint(pairs[i]), fmt.Sprint(pairs[i+1])})
	}
	t.Render()
}

// Empty prints a highlighted "nothing found" message.
func Empty(w io.Writer, message string) {
	_, _ = fmt.Fprintln(w, text.FgYellow.Sprint(message))
}
