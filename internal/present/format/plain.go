package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mithrel/inkleaf/internal/selection"
	"github.com/mithrel/inkleaf/pkg/models"
)

// Columns: selection marker, id, title, created
var headerLine = "sel\tid\ttitle\tcreated\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

// Marker is the list glyph for a note's selection membership.
func Marker(sel selection.State, id string) string {
	if !sel.Contains(id) {
		return " "
	}
	if sel.Mode() == selection.Multi {
		return "*"
	}
	return ">"
}

func WritePlainNotes(w io.Writer, notes []models.Note, sel selection.State, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, n := range notes {
		line := fmt.Sprintf("%s\t%s\t%s\t%s\n",
			Marker(sel, n.ID), esc(n.ID), esc(n.DisplayTitle()), models.FormatCreated(n.CreatedAt))
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}

// WritePlainNote prints the title, creation date and raw Markdown.
func WritePlainNote(w io.Writer, n models.Note) error {
	_, err := fmt.Fprintf(w, "%s\n%s  %s\n\n%s\n", n.DisplayTitle(), n.ID, models.FormatCreated(n.CreatedAt), n.Content)
	return err
}
