// Package notes holds the ordered note collection and its copy-on-write
// operations. Every operation returns a freshly allocated Collection and
// leaves its input untouched.
package notes

import (
	"time"

	"github.com/google/uuid"

	"github.com/mithrel/inkleaf/pkg/models"
)

// Collection is ordered most-recently-added first.
type Collection []models.Note

// IDFunc generates note ids.
type IDFunc func() string

// NewID returns a random v4 UUID.
func NewID() string { return uuid.NewString() }

// Add prepends an untitled, empty note created at now.
func Add(c Collection, now time.Time, newID IDFunc) (models.Note, Collection) {
	if newID == nil {
		newID = NewID
	}
	n := models.NewNote(newID(), now)
	out := make(Collection, 0, len(c)+1)
	out = append(out, n)
	out = append(out, c...)
	return n, out
}

// Update applies upd to the note with id. An absent id returns c as is.
func Update(c Collection, id string, upd models.NoteUpdate) Collection {
	idx := indexOf(c, id)
	if idx < 0 {
		return c
	}
	out := clone(c)
	out[idx] = upd.Apply(out[idx])
	return out
}

// Delete removes the note with id. An absent id returns c as is.
func Delete(c Collection, id string) Collection {
	if indexOf(c, id) < 0 {
		return c
	}
	return BulkDelete(c, []string{id})
}

// BulkDelete removes every note whose id is in ids; unknown ids are ignored.
func BulkDelete(c Collection, ids []string) Collection {
	if len(ids) == 0 {
		return c
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := make(Collection, 0, len(c))
	for _, n := range c {
		if _, ok := drop[n.ID]; ok {
			continue
		}
		out = append(out, n)
	}
	if len(out) == len(c) {
		return c
	}
	return out
}

// Find returns the note with id.
func Find(c Collection, id string) (models.Note, bool) {
	if i := indexOf(c, id); i >= 0 {
		return c[i], true
	}
	return models.Note{}, false
}

// IDs lists note ids in collection order.
func IDs(c Collection) []string {
	out := make([]string, 0, len(c))
	for _, n := range c {
		out = append(out, n.ID)
	}
	return out
}

// ResolvePrefix finds the unique note whose id starts with prefix.
// A full id always matches itself.
func ResolvePrefix(c Collection, prefix string) (models.Note, bool) {
	if n, ok := Find(c, prefix); ok {
		return n, true
	}
	var hit models.Note
	found := 0
	for _, n := range c {
		if len(prefix) > 0 && len(n.ID) >= len(prefix) && n.ID[:len(prefix)] == prefix {
			hit = n
			found++
		}
	}
	return hit, found == 1
}

func indexOf(c Collection, id string) int {
	for i, n := range c {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func clone(c Collection) Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}
