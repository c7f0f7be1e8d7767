package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mithrel/inkleaf/internal/notes"
	"github.com/mithrel/inkleaf/internal/selection"
	"github.com/mithrel/inkleaf/pkg/models"
)

const (
	// NotesKey holds the JSON array of notes.
	NotesKey = "notesData"
	// SelectionKey holds the JSON-encoded selection state.
	SelectionKey = "notesSelection"
)

// LoadNotes reads the persisted collection. Unreadable or unparsable data
// yields an empty collection; individual malformed entries are skipped.
// Both cases are logged, never returned.
func LoadNotes(ctx context.Context, s Storage, log *zap.Logger) notes.Collection {
	if log == nil {
		log = zap.NewNop()
	}
	raw, ok, err := s.Get(ctx, NotesKey)
	if err != nil {
		log.Warn("storage read failed", zap.String("key", NotesKey), zap.Error(err))
		return notes.Collection{}
	}
	if !ok || raw == "" {
		return notes.Collection{}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Warn("stored notes are not a JSON array", zap.String("key", NotesKey), zap.Error(err))
		return notes.Collection{}
	}

	out := make(notes.Collection, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		var in models.NoteInput
		if err := json.Unmarshal(e, &in); err != nil {
			log.Warn("skipping malformed note", zap.Int("index", i), zap.Error(err))
			continue
		}
		n, err := models.ValidateStoredNote(in)
		if err != nil {
			log.Warn("skipping invalid note", zap.Int("index", i), zap.Error(err))
			continue
		}
		if _, dup := seen[n.ID]; dup {
			log.Warn("skipping duplicate note id", zap.Int("index", i), zap.String("id", n.ID))
			continue
		}
		seen[n.ID] = struct{}{}
		out = append(out, n)
	}
	return out
}

// SaveNotes writes the whole collection under NotesKey.
func SaveNotes(ctx context.Context, s Storage, c notes.Collection) error {
	if c == nil {
		c = notes.Collection{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := s.Set(ctx, NotesKey, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", NotesKey, err)
	}
	return nil
}

// LoadSelection reads the persisted selection and drops ids not present in
// known. Missing or corrupt data yields Empty.
func LoadSelection(ctx context.Context, s Storage, known notes.Collection, log *zap.Logger) selection.State {
	if log == nil {
		log = zap.NewNop()
	}
	raw, ok, err := s.Get(ctx, SelectionKey)
	if err != nil {
		log.Warn("storage read failed", zap.String("key", SelectionKey), zap.Error(err))
		return selection.State{}
	}
	if !ok || raw == "" {
		return selection.State{}
	}
	var st selection.State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		log.Warn("stored selection is invalid", zap.String("key", SelectionKey), zap.Error(err))
		return selection.State{}
	}
	return st.Retain(notes.IDs(known))
}

// SaveSelection writes st under SelectionKey.
func SaveSelection(ctx context.Context, s Storage, st selection.State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	if err := s.Set(ctx, SelectionKey, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", SelectionKey, err)
	}
	return nil
}
