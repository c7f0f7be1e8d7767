package format

import (
	"fmt"
	"io"

	"github.com/mithrel/inkleaf/internal/render"
	"github.com/mithrel/inkleaf/pkg/models"
)

// NoteMarkdown builds the Markdown document shown for a note in terminals.
func NoteMarkdown(n models.Note) string {
	return fmt.Sprintf("# %s\n\n> **ID:** %s\n>\n> **Created:** %s\n\n---\n\n%s\n",
		n.DisplayTitle(), n.ID, models.FormatCreated(n.CreatedAt), n.Content)
}

// WritePrettyNote renders a single note with glamour.
func WritePrettyNote(w io.Writer, n models.Note, style string, width int) error {
	out, err := render.Terminal(NoteMarkdown(n), style, width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
