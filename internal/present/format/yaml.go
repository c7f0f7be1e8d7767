package format

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mithrel/inkleaf/pkg/models"
)

func WriteYAMLNotes(w io.Writer, notes []models.Note) error {
	if notes == nil {
		notes = []models.Note{}
	}
	return WriteYAML(w, notes)
}

func WriteYAMLNote(w io.Writer, n models.Note) error { return WriteYAML(w, n) }

func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
