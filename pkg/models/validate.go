package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
)

// FieldError describes one failed check on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// ValidationError is returned when a Note or NoteUpdate candidate breaks the schema.
type ValidationError struct {
	Issues []FieldError `json:"issues"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	e.Issues = append(e.Issues, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) errOrNil() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}

// Has reports whether any issue was recorded against field.
func (e *ValidationError) Has(field string) bool {
	for _, is := range e.Issues {
		if is.Field == field {
			return true
		}
	}
	return false
}

// IsValidationError unwraps err into a *ValidationError.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

const (
	msgRequired   = "Required"
	msgBadID      = "ID must be a valid UUID"
	msgTitleEmpty = "Title must not be empty"
	msgTitleLong  = "Title must not exceed 200 characters"
	msgBadDate    = "Invalid date"
)

// NoteInput is an unvalidated note as it arrives from an external boundary
// (storage, user input). Nil fields are treated as missing.
type NoteInput struct {
	ID        *string `json:"id"`
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	CreatedAt *string `json:"createdAt"`
}

// InputFromNote converts a Note back to its boundary representation.
func InputFromNote(n Note) NoteInput {
	created := n.CreatedAt.Format(time.RFC3339Nano)
	return NoteInput{
		ID:        String(n.ID),
		Title:     String(n.Title),
		Content:   String(n.Content),
		CreatedAt: &created,
	}
}

// UpdateInput is an unvalidated NoteUpdate.
type UpdateInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// ValidateNote checks every field of in and returns the typed Note.
// A non-nil error is always a *ValidationError.
func ValidateNote(in NoteInput) (Note, error) {
	return validateNote(in, true)
}

// ValidateStoredNote is ValidateNote without the non-empty title rule.
// Freshly added notes are untitled, so persisted collections contain them.
func ValidateStoredNote(in NoteInput) (Note, error) {
	return validateNote(in, false)
}

// MustParseNote is ValidateNote that panics on invalid input.
func MustParseNote(in NoteInput) Note {
	n, err := ValidateNote(in)
	if err != nil {
		panic(err)
	}
	return n
}

// ValidateNoteUpdate checks a partial update. Omitted fields are fine;
// a present title must satisfy the same bounds as a Note title.
func ValidateNoteUpdate(in UpdateInput) (NoteUpdate, error) {
	ve := &ValidationError{}
	if in.Title != nil {
		checkTitle(ve, *in.Title, true)
	}
	if err := ve.errOrNil(); err != nil {
		return NoteUpdate{}, err
	}
	return NoteUpdate{Title: in.Title, Content: in.Content}, nil
}

func validateNote(in NoteInput, requireTitle bool) (Note, error) {
	ve := &ValidationError{}
	var n Note

	switch {
	case in.ID == nil:
		ve.add("id", msgRequired)
	case !isUUID(*in.ID):
		ve.add("id", msgBadID)
	default:
		n.ID = *in.ID
	}

	if in.Title == nil {
		ve.add("title", msgRequired)
	} else if checkTitle(ve, *in.Title, requireTitle) {
		n.Title = *in.Title
	}

	if in.Content == nil {
		ve.add("content", msgRequired)
	} else {
		n.Content = *in.Content
	}

	if in.CreatedAt == nil {
		ve.add("createdAt", msgRequired)
	} else if t, err := parseCreatedAt(*in.CreatedAt); err != nil {
		ve.add("createdAt", msgBadDate)
	} else {
		n.CreatedAt = t
	}

	if err := ve.errOrNil(); err != nil {
		return Note{}, err
	}
	return n, nil
}

func checkTitle(ve *ValidationError, title string, requireNonEmpty bool) bool {
	l := utf8.RuneCountInString(title)
	if requireNonEmpty && l == 0 {
		ve.add("title", msgTitleEmpty)
		return false
	}
	if l > TitleMaxLength {
		ve.add("title", msgTitleLong)
		return false
	}
	return true
}

// isUUID accepts the canonical hyphenated form only.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func parseCreatedAt(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return dateparse.ParseAny(s)
}
