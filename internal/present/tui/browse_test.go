package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/inkleaf/internal/confirm"
	"github.com/mithrel/inkleaf/internal/selection"
	"github.com/mithrel/inkleaf/internal/session"
	"github.com/mithrel/inkleaf/internal/storage"
	"github.com/mithrel/inkleaf/pkg/models"
)

func keys(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
	}
}

func newTestModel(t *testing.T) (*model, *session.Session, *confirm.Channel) {
	t.Helper()
	ch := confirm.NewChannel()
	sess := session.Open(context.Background(), storage.NewMem(),
		session.WithConfirmer(ch), session.WithIDFunc(seqIDs()))
	m := newModel(context.Background(), sess, ch, Options{Style: "notty", Debounce: time.Hour})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, sess, ch
}

func TestAddSelectsNewNote(t *testing.T) {
	m, sess, _ := newTestModel(t)
	m.Update(keys("a"))
	m.Update(keys("a"))
	require.Len(t, sess.Notes(), 2)
	assert.Equal(t, selection.Single, sess.Selection().Mode())
	assert.Len(t, m.visible, 2)
	assert.Contains(t, m.View(), "(untitled)")
}

func TestToggleAndCancel(t *testing.T) {
	m, sess, _ := newTestModel(t)
	m.Update(keys("a"))
	m.Update(keys("a"))
	m.table.SetCursor(1)
	m.Update(keys("x"))
	assert.Equal(t, selection.Multi, sess.Selection().Mode())
	assert.Equal(t, 2, sess.Selection().Len())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, selection.Empty, sess.Selection().Mode())

	m.table.SetCursor(0)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	id, ok := sess.Selection().Active()
	require.True(t, ok)
	assert.Equal(t, m.visible[0].ID, id)
}

func TestDeleteGoesThroughOverlay(t *testing.T) {
	m, sess, ch := newTestModel(t)
	m.Update(keys("a"))

	_, cmd := m.Update(keys("d"))
	require.NotNil(t, cmd)
	results := make(chan tea.Msg, 1)
	go func() { results <- cmd() }()

	req := waitForConfirm(ch)()
	m.Update(req)
	assert.Equal(t, modeConfirm, m.mode)
	assert.Equal(t, session.PromptDelete, m.pending.Message)
	assert.NotEmpty(t, m.View())

	m.Update(keys("y"))
	assert.Equal(t, modeBrowse, m.mode)

	select {
	case res := <-results:
		m.Update(res)
	case <-time.After(2 * time.Second):
		t.Fatal("delete did not finish")
	}
	assert.Empty(t, sess.Notes())
	assert.Equal(t, "Deleted 1 note", m.status)
}

func TestBulkDeleteDeclined(t *testing.T) {
	m, sess, ch := newTestModel(t)
	m.Update(keys("a"))
	m.Update(keys("a"))
	m.table.SetCursor(1)
	m.Update(keys("x"))

	_, cmd := m.Update(keys("D"))
	require.NotNil(t, cmd)
	results := make(chan tea.Msg, 1)
	go func() { results <- cmd() }()

	m.Update(waitForConfirm(ch)())
	assert.Equal(t, "Delete 2 notes?", m.pending.Message)
	m.Update(keys("n"))

	m.Update(<-results)
	assert.Len(t, sess.Notes(), 2)
	assert.Equal(t, selection.Multi, sess.Selection().Mode())
}

func TestBulkDeleteNeedsMulti(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(keys("a"))
	_, cmd := m.Update(keys("D"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.status, "multi-selection")
}

func TestInlineEditPersistsEveryKeystroke(t *testing.T) {
	m, sess, _ := newTestModel(t)
	m.Update(keys("a"))
	m.Update(keys("i"))
	require.Equal(t, modeEditContent, m.mode)

	m.Update(keys("h"))
	m.Update(keys("i"))
	n, ok := sess.Active()
	require.True(t, ok)
	assert.Equal(t, "hi", n.Content)
	assert.Equal(t, 1, m.previewer.Renders(), "only the initial flush; keystrokes are debounced")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeBrowse, m.mode)
	assert.Nil(t, m.previewer)
}

func TestResizeWhileEditingRebuildsPreviewer(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(keys("a"))
	m.Update(keys("i"))
	m.Update(keys("z"))
	before := m.previewer
	require.NotNil(t, before)

	m.Update(tea.WindowSizeMsg{Width: 70, Height: 30})
	require.Equal(t, modeEditContent, m.mode)
	assert.NotSame(t, before, m.previewer)
	assert.Equal(t, 1, m.previewer.Renders())
	assert.Contains(t, m.previewer.Current(), "z")
	assert.Equal(t, "z", m.editor.Value())
}

func TestTitleEditValidation(t *testing.T) {
	m, sess, _ := newTestModel(t)
	m.Update(keys("a"))
	m.Update(keys("t"))
	require.Equal(t, modeEditTitle, m.mode)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Title must not be empty", m.status)
	assert.Equal(t, modeEditTitle, m.mode)

	m.Update(keys("Groceries"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeBrowse, m.mode)
	n, _ := sess.Active()
	assert.Equal(t, "Groceries", n.Title)
}

func TestFilter(t *testing.T) {
	m, sess, _ := newTestModel(t)
	for _, title := range []string{"shopping", "meeting"} {
		n := sess.Add(context.Background())
		_, err := sess.Update(context.Background(), n.ID, updateTitle(title))
		require.NoError(t, err)
	}
	m.refresh()
	m.Update(keys("/"))
	m.Update(keys("shop"))
	require.Len(t, m.visible, 1)
	assert.Equal(t, "shopping", m.visible[0].Title)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.visible, 2)
}

func updateTitle(s string) models.UpdateInput { return models.UpdateInput{Title: &s} }
