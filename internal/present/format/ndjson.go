package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/inkleaf/pkg/models"
)

// WriteNDJSONNotes writes notes as newline-delimited JSON objects.
func WriteNDJSONNotes(w io.Writer, notes []models.Note) error {
	enc := json.NewEncoder(w)
	for _, n := range notes {
		if err := enc.Encode(n); err != nil {
			return err
		}
	}
	return nil
}
