package present

import (
	"context"
	"errors"
	"io"

	"github.com/mithrel/inkleaf/internal/present/format"
	"github.com/mithrel/inkleaf/internal/render"
	"github.com/mithrel/inkleaf/internal/selection"
	"github.com/mithrel/inkleaf/pkg/models"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
	ModeYAML
	ModeHTML
	ModeTUI
)

var ErrUnsupportedMode = errors.New("output mode not supported here")

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	Style      string
	WordWrap   int
}

// ParseMode parses a string like "plain", "pretty", "json", "ndjson", "yaml", "html", "tui".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	case "yaml":
		return ModeYAML, true
	case "html":
		return ModeHTML, true
	case "tui":
		return ModeTUI, true
	default:
		return ModePlain, false
	}
}

func (m Mode) String() string {
	return [...]string{"plain", "pretty", "json", "ndjson", "yaml", "html", "tui"}[m]
}

// RenderNotes renders a list of notes. The interactive list is started by
// the caller since it needs the live session.
func RenderNotes(ctx context.Context, w io.Writer, notes []models.Note, sel selection.State, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONNotes(w, notes, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONNotes(w, notes)
	case ModeYAML:
		return format.WriteYAMLNotes(w, notes)
	case ModePlain, ModePretty:
		return format.WritePlainNotes(w, notes, sel, opts.Headers)
	default:
		return ErrUnsupportedMode
	}
}

// RenderNote renders a single note.
func RenderNote(ctx context.Context, w io.Writer, n models.Note, r *render.Renderer, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONNote(w, n, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteJSONNote(w, n, false)
	case ModeYAML:
		return format.WriteYAMLNote(w, n)
	case ModePlain:
		return format.WritePlainNote(w, n)
	case ModePretty:
		return format.WritePrettyNote(w, n, opts.Style, opts.WordWrap)
	case ModeHTML:
		return format.WriteHTMLNote(w, r, n)
	default:
		return ErrUnsupportedMode
	}
}
