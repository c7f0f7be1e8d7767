package format

import (
	"html"
	"io"
	"strings"

	"github.com/mithrel/inkleaf/internal/render"
	"github.com/mithrel/inkleaf/pkg/models"
)

const htmlPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{title}}</title>
</head>
<body>
<article>
{{body}}
</article>
</body>
</html>
`

// NoteHTML is the sanitized HTML fragment for a note's content.
func NoteHTML(r *render.Renderer, n models.Note) string { return r.Render(n.Content) }

// WriteHTMLNote writes the sanitized fragment.
func WriteHTMLNote(w io.Writer, r *render.Renderer, n models.Note) error {
	_, err := io.WriteString(w, NoteHTML(r, n))
	return err
}

// HTMLPage wraps a rendered fragment into a standalone document.
func HTMLPage(title, fragment string) string {
	out := htmlPage
	out = strings.Replace(out, "{{title}}", html.EscapeString(title), 1)
	out = strings.Replace(out, "{{body}}", fragment, 1)
	return out
}
