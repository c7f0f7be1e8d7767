package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mithrel/inkleaf/internal/confirm"
	"github.com/mithrel/inkleaf/internal/session"
)

// confirmRequestMsg carries a question the session is blocked on.
type confirmRequestMsg struct{ req confirm.Request }

// deleteResultMsg conveys the outcome of a delete back to Update.
type deleteResultMsg struct {
	n   int
	err error
}

// previewMsg carries a debounced preview for note id.
type previewMsg struct {
	id  string
	out string
}

// waitForConfirm blocks until the session asks a question.
func waitForConfirm(ch *confirm.Channel) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		return confirmRequestMsg{req: <-ch.Requests()}
	}
}

// deleteCmd runs the single delete off the UI loop; it blocks on the
// confirmation overlay.
func deleteCmd(ctx context.Context, sess *session.Session, id string) tea.Cmd {
	return func() tea.Msg {
		ok, err := sess.Delete(ctx, id)
		if ok {
			return deleteResultMsg{n: 1}
		}
		return deleteResultMsg{err: err}
	}
}

func bulkDeleteCmd(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		n, err := sess.BulkDelete(ctx)
		return deleteResultMsg{n: n, err: err}
	}
}
