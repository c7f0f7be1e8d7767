package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/inkleaf/pkg/models"
)

func WriteJSONNotes(w io.Writer, notes []models.Note, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return enc.Encode(notes)
}

func WriteJSONNote(w io.Writer, n models.Note, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(n)
}

// WriteJSON encodes any value, used for selection and build info.
func WriteJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
