// Package session owns the live note collection and selection, persists
// them after every change and gates deletes behind a confirmation.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mithrel/inkleaf/internal/confirm"
	"github.com/mithrel/inkleaf/internal/notes"
	"github.com/mithrel/inkleaf/internal/selection"
	"github.com/mithrel/inkleaf/internal/storage"
	"github.com/mithrel/inkleaf/pkg/models"
)

var (
	ErrNotFound        = errors.New("note not found")
	ErrNothingSelected = errors.New("nothing selected")
)

// PromptDelete is the confirmation shown before deleting one note.
const PromptDelete = "Delete this note?"

// PromptBulkDelete is the confirmation shown before deleting n notes.
func PromptBulkDelete(n int) string {
	if n == 1 {
		return "Delete 1 note?"
	}
	return fmt.Sprintf("Delete %d notes?", n)
}

// Session is safe for concurrent use. The collection and selection it hands
// out are snapshots; callers must not modify them.
type Session struct {
	mu    sync.Mutex
	notes notes.Collection
	sel   selection.State

	store   storage.Storage
	confirm confirm.Confirmer
	log     *zap.Logger
	now     func() time.Time
	newID   notes.IDFunc
}

type Option func(*Session)

func WithConfirmer(c confirm.Confirmer) Option {
	return func(s *Session) {
		if c != nil {
			s.confirm = c
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithNow overrides the clock used to stamp new notes.
func WithNow(now func() time.Time) Option { return func(s *Session) { s.now = now } }

// WithIDFunc overrides note id generation.
func WithIDFunc(f notes.IDFunc) Option { return func(s *Session) { s.newID = f } }

// Open loads the persisted collection and selection from store. Load
// problems are logged and leave the session empty; Open never fails.
func Open(ctx context.Context, store storage.Storage, opts ...Option) *Session {
	s := &Session{
		store:   store,
		confirm: confirm.Static(false),
		log:     zap.NewNop(),
		now:     time.Now,
		newID:   notes.NewID,
	}
	for _, o := range opts {
		o(s)
	}
	s.notes = storage.LoadNotes(ctx, store, s.log)
	s.sel = storage.LoadSelection(ctx, store, s.notes, s.log)
	s.log.Debug("session opened", zap.Int("notes", len(s.notes)), zap.Stringer("selection", s.sel))
	return s
}

// SetConfirmer replaces the confirmation used by later deletes.
func (s *Session) SetConfirmer(c confirm.Confirmer) {
	if c == nil {
		return
	}
	s.mu.Lock()
	s.confirm = c
	s.mu.Unlock()
}

func (s *Session) confirmer() confirm.Confirmer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirm
}

// Notes returns the current collection, newest first.
func (s *Session) Notes() notes.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes
}

func (s *Session) Selection() selection.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Active returns the note of a Single selection.
func (s *Session) Active() (models.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.sel.Active()
	if !ok {
		return models.Note{}, false
	}
	return notes.Find(s.notes, id)
}

// Get resolves a full id or a unique id prefix.
func (s *Session) Get(idOrPrefix string) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := notes.ResolvePrefix(s.notes, idOrPrefix)
	if !ok {
		return models.Note{}, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return n, nil
}

// Add creates an untitled note at the head of the collection and selects it.
func (s *Session) Add(ctx context.Context) models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, next := notes.Add(s.notes, s.now(), s.newID)
	s.notes = next
	s.sel = s.sel.NoteAdded(n.ID)
	s.flush(ctx)
	s.log.Info("note added", zap.String("id", n.ID))
	return n
}

// Update validates in and applies it to note id.
func (s *Session) Update(ctx context.Context, id string, in models.UpdateInput) (models.Note, error) {
	upd, err := models.ValidateNoteUpdate(in)
	if err != nil {
		return models.Note{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := notes.Find(s.notes, id)
	if !ok {
		return models.Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if upd.IsZero() {
		return cur, nil
	}
	s.notes = notes.Update(s.notes, id, upd)
	s.flush(ctx)
	return upd.Apply(cur), nil
}

// Select applies a click on id. The id must exist.
func (s *Session) Select(ctx context.Context, id string, modifier bool) (selection.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := notes.Find(s.notes, id); !ok {
		return s.sel, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := s.sel.Select(id, modifier)
	if !next.Equal(s.sel) {
		s.sel = next
		s.flush(ctx)
	}
	return s.sel, nil
}

// Cancel clears the selection.
func (s *Session) Cancel(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sel.Mode() == selection.Empty {
		return
	}
	s.sel = s.sel.Cancel()
	s.flush(ctx)
}

// Delete removes note id after confirmation. A declined prompt returns
// (false, nil) and changes nothing.
func (s *Session) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := notes.Find(s.Notes(), id); !ok {
		return false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	ok, err := s.confirmer().Confirm(ctx, PromptDelete)
	if err != nil || !ok {
		return false, err
	}
	return s.remove(ctx, []string{id}) > 0, nil
}

// BulkDelete removes every note in a Multi selection after one confirmation.
// It returns the number of notes removed.
func (s *Session) BulkDelete(ctx context.Context) (int, error) {
	sel := s.Selection()
	if !sel.CanBulkDelete() {
		return 0, ErrNothingSelected
	}
	ids := sel.IDs()
	ok, err := s.confirmer().Confirm(ctx, PromptBulkDelete(len(ids)))
	if err != nil || !ok {
		return 0, err
	}
	return s.remove(ctx, ids), nil
}

// DeleteSelected deletes the active note or the Multi set.
func (s *Session) DeleteSelected(ctx context.Context) (int, error) {
	sel := s.Selection()
	switch sel.Mode() {
	case selection.Single:
		id, _ := sel.Active()
		ok, err := s.Delete(ctx, id)
		if !ok {
			return 0, err
		}
		return 1, err
	case selection.Multi:
		return s.BulkDelete(ctx)
	default:
		return 0, ErrNothingSelected
	}
}

// Discard drops note id without asking when it has neither title nor
// content. It reports whether the note was dropped.
func (s *Session) Discard(ctx context.Context, id string) bool {
	n, ok := notes.Find(s.Notes(), id)
	if !ok || n.Title != "" || n.Content != "" {
		return false
	}
	return s.remove(ctx, []string{id}) > 0
}

func (s *Session) remove(ctx context.Context, ids []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.notes)
	s.notes = notes.BulkDelete(s.notes, ids)
	s.sel = s.sel.NotesDeleted(ids)
	removed := before - len(s.notes)
	if removed > 0 {
		s.flush(ctx)
		s.log.Info("notes deleted", zap.Int("count", removed))
	}
	return removed
}

// flush persists both keys. Callers hold s.mu. Write failures are logged;
// the in-memory state stays authoritative.
func (s *Session) flush(ctx context.Context) {
	if err := storage.SaveNotes(ctx, s.store, s.notes); err != nil {
		s.log.Error("persist notes failed", zap.String("key", storage.NotesKey), zap.Error(err))
	}
	if err := storage.SaveSelection(ctx, s.store, s.sel); err != nil {
		s.log.Error("persist selection failed", zap.String("key", storage.SelectionKey), zap.Error(err))
	}
}
