package models

import (
	"time"
)

// TitleMaxLength is the upper bound for a note title, counted in runes.
const TitleMaxLength = 200

// Note is a single user-authored Markdown note.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"` // exact Markdown text
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// NoteUpdate is a partial patch. Nil fields are left untouched.
// id and createdAt are never part of an update.
type NoteUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// IsZero reports whether the update carries no fields.
func (u NoteUpdate) IsZero() bool { return u.Title == nil && u.Content == nil }

// Apply returns n with the present fields of u replaced.
func (u NoteUpdate) Apply(n Note) Note {
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	return n
}

// NewNote creates an untitled, empty note stamped with now.
func NewNote(id string, now time.Time) Note {
	return Note{ID: id, CreatedAt: now}
}

// DisplayTitle returns the title, or a placeholder for untitled notes.
func (n Note) DisplayTitle() string {
	if n.Title == "" {
		return "(untitled)"
	}
	return n.Title
}

// String helper for building updates inline.
func String(s string) *string { return &s }
