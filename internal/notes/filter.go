package notes

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

type titleSource Collection

func (s titleSource) String(i int) string { return s[i].DisplayTitle() }
func (s titleSource) Len() int            { return len(s) }

// Filter keeps notes whose title fuzzy-matches query, preserving collection
// order. An empty query returns c.
func Filter(c Collection, query string) Collection {
	query = strings.TrimSpace(query)
	if query == "" {
		return c
	}
	matches := fuzzy.FindFrom(query, titleSource(c))
	idx := make([]int, 0, len(matches))
	for _, m := range matches {
		idx = append(idx, m.Index)
	}
	sort.Ints(idx)
	out := make(Collection, 0, len(idx))
	for _, i := range idx {
		out = append(out, c[i])
	}
	return out
}
