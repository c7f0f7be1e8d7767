package selection

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleWalk(t *testing.T) {
	var s State
	assert.Equal(t, Empty, s.Mode())

	s = s.Select("A", false)
	assert.True(t, s.Equal(SingleOf("A")), s.String())

	s = s.Select("B", true)
	assert.True(t, s.Equal(MultiOf("A", "B")), s.String())

	s = s.Select("A", true)
	assert.True(t, s.Equal(MultiOf("B")), s.String())
	assert.Equal(t, Multi, s.Mode())

	s = s.Select("B", true)
	assert.Equal(t, Empty, s.Mode())
	assert.Equal(t, 0, s.Len())
}

func TestPlainClickCollapsesMulti(t *testing.T) {
	s := MultiOf("A", "B", "C").Select("B", false)
	id, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, "B", id)
}

func TestPlainClickOnActiveIsIdempotent(t *testing.T) {
	s := SingleOf("A")
	assert.True(t, s.Select("A", false).Equal(s))
}

func TestModifierFromEmpty(t *testing.T) {
	s := State{}.Select("A", true)
	assert.Equal(t, Multi, s.Mode())
	assert.Equal(t, []string{"A"}, s.IDs())
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	base := MultiOf("A", "B")
	_ = base.Select("C", true)
	_ = base.NoteDeleted("A")
	assert.Equal(t, []string{"A", "B"}, base.IDs())
}

func TestNoteAdded(t *testing.T) {
	s := MultiOf("A", "B").NoteAdded("N")
	id, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, "N", id)
}

func TestNoteDeleted(t *testing.T) {
	assert.Equal(t, Empty, SingleOf("A").NoteDeleted("A").Mode())
	assert.True(t, SingleOf("A").NoteDeleted("B").Equal(SingleOf("A")))

	s := MultiOf("A", "B").NoteDeleted("A")
	assert.True(t, s.Equal(MultiOf("B")))
	assert.Equal(t, Empty, s.NoteDeleted("B").Mode())

	assert.Equal(t, Empty, State{}.NoteDeleted("A").Mode())
}

func TestCancel(t *testing.T) {
	for _, s := range []State{{}, SingleOf("A"), MultiOf("A", "B")} {
		assert.Equal(t, Empty, s.Cancel().Mode())
	}
}

func TestCanBulkDelete(t *testing.T) {
	assert.False(t, State{}.CanBulkDelete())
	assert.False(t, SingleOf("A").CanBulkDelete())
	assert.True(t, MultiOf("A").CanBulkDelete())
}

func TestRetain(t *testing.T) {
	s := MultiOf("A", "B", "C").Retain([]string{"B", "Z"})
	assert.Equal(t, []string{"B"}, s.IDs())
	assert.Equal(t, Empty, SingleOf("gone").Retain(nil).Mode())
}

func TestJSONRoundTrip(t *testing.T) {
	for _, s := range []State{{}, SingleOf("A"), MultiOf("B", "A")} {
		b, err := json.Marshal(s)
		require.NoError(t, err)
		var got State
		require.NoError(t, json.Unmarshal(b, &got))
		assert.True(t, s.Equal(got), "%s -> %s", s, got)
	}

	b, err := json.Marshal(MultiOf("B", "A"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"multi","selectedIds":["A","B"]}`, string(b))

	var bad State
	assert.Error(t, json.Unmarshal([]byte(`{"mode":"weird"}`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`{"mode":"single"}`), &bad))
}
