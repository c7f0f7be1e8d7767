// Package tui is the interactive note browser.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mithrel/inkleaf/internal/confirm"
	"github.com/mithrel/inkleaf/internal/notes"
	"github.com/mithrel/inkleaf/internal/preview"
	"github.com/mithrel/inkleaf/internal/render"
	"github.com/mithrel/inkleaf/internal/selection"
	"github.com/mithrel/inkleaf/internal/session"
	"github.com/mithrel/inkleaf/pkg/models"
)

// Options configures the browser.
type Options struct {
	Style    string
	WordWrap int
	Debounce time.Duration
	Headers  bool
	// Filter is the initial fuzzy title filter.
	Filter string
	Log    *zap.Logger
}

type mode int

const (
	modeBrowse mode = iota
	modeEditContent
	modeEditTitle
	modeFilter
	modeConfirm
)

// Browse runs the browser until the user quits. Deletes are confirmed
// through an in-app prompt fed by ch.
func Browse(ctx context.Context, sess *session.Session, ch *confirm.Channel, opts Options) error {
	m := newModel(ctx, sess, ch, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.send = func(msg tea.Msg) { go p.Send(msg) }
	_, err := p.Run()
	if m.previewer != nil {
		m.previewer.Close()
	}
	return err
}

type model struct {
	ctx      context.Context
	sess     *session.Session
	confirms *confirm.Channel
	opts     Options
	log      *zap.Logger

	table    table.Model
	pane     viewport.Model
	editor   textarea.Model
	title    textinput.Model
	filterIn textinput.Model

	mode    mode
	pending *confirm.Request
	filter  string
	visible notes.Collection

	// editingID is the note whose content the textarea holds.
	editingID string
	previewer *preview.Previewer
	send      func(tea.Msg)

	status string
	width  int
	height int
}

func newModel(ctx context.Context, sess *session.Session, ch *confirm.Channel, opts Options) *model {
	if opts.Style == "" {
		opts.Style = render.DefaultStyle
	}
	if opts.WordWrap <= 0 {
		opts.WordWrap = 80
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	m := &model{
		ctx:      ctx,
		sess:     sess,
		confirms: ch,
		opts:     opts,
		log:      opts.Log,
		pane:     viewport.New(40, 10),
		editor:   textarea.New(),
		title:    textinput.New(),
		filterIn: textinput.New(),
		send:     func(tea.Msg) {},
	}
	m.title.Prompt = "title: "
	m.title.CharLimit = models.TitleMaxLength
	m.filterIn.Prompt = "/"
	m.filter = opts.Filter
	m.filterIn.SetValue(opts.Filter)
	m.editor.ShowLineNumbers = false
	m.initTable()
	m.refresh()
	return m
}

func (m *model) Init() tea.Cmd { return waitForConfirm(m.confirms) }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.applyLayout()
		m.refresh()
		if m.mode == modeEditContent {
			// The running previewer captured the old width.
			m.startPreviewer(m.editingID, m.editor.Value())
		}
		return m, nil
	case confirmRequestMsg:
		req := msg.req
		m.pending = &req
		m.mode = modeConfirm
		return m, nil
	case deleteResultMsg:
		m.handleDeleteResult(msg)
		return m, nil
	case previewMsg:
		if m.mode == modeEditContent && msg.id == m.editingID {
			m.pane.SetContent(msg.out)
		}
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeEditContent:
			return m.updateEditContent(msg)
		case modeEditTitle:
			return m.updateEditTitle(msg)
		case modeFilter:
			return m.updateFilter(msg)
		}
		return m.updateBrowse(msg)
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.selectCursor(false)
		return m, nil
	case " ", "space", "x":
		m.selectCursor(true)
		return m, nil
	case "esc":
		m.sess.Cancel(m.ctx)
		m.status = "Selection cleared"
		m.refresh()
		return m, nil
	case "a":
		n := m.sess.Add(m.ctx)
		m.status = "Added " + shortID(n.ID)
		m.refresh()
		m.table.SetCursor(m.indexOf(n.ID))
		return m, nil
	case "i":
		n, ok := m.sess.Active()
		if !ok {
			m.status = "Select a note to edit"
			return m, nil
		}
		return m, m.startEditContent(n)
	case "t":
		n, ok := m.sess.Active()
		if !ok {
			m.status = "Select a note to rename"
			return m, nil
		}
		m.mode = modeEditTitle
		m.title.SetValue(n.Title)
		m.title.CursorEnd()
		return m, m.title.Focus()
	case "d":
		n, ok := m.sess.Active()
		if !ok {
			m.status = "Select a note to delete"
			return m, nil
		}
		m.status = "Deleting " + shortID(n.ID) + "…"
		return m, deleteCmd(m.ctx, m.sess, n.ID)
	case "D":
		if !m.sess.Selection().CanBulkDelete() {
			m.status = "Bulk delete needs a multi-selection"
			return m, nil
		}
		m.status = "Deleting selection…"
		return m, bulkDeleteCmd(m.ctx, m.sess)
	case "/":
		m.mode = modeFilter
		m.filterIn.SetValue(m.filter)
		m.filterIn.CursorEnd()
		return m, m.filterIn.Focus()
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pending == nil {
		m.mode = modeBrowse
		return m, waitForConfirm(m.confirms)
	}
	switch msg.String() {
	case "y", "Y", "enter":
		m.pending.Answer(true)
	case "n", "N", "esc", "q":
		m.pending.Answer(false)
		m.status = "Cancelled"
	default:
		return m, nil
	}
	m.pending = nil
	m.mode = modeBrowse
	return m, waitForConfirm(m.confirms)
}

func (m *model) updateEditContent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.stopEditContent()
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	content := m.editor.Value()
	if _, err := m.sess.Update(m.ctx, m.editingID, models.UpdateInput{Content: &content}); err != nil {
		m.status = err.Error()
		return m, cmd
	}
	m.previewer.Update(content)
	return m, cmd
}

func (m *model) updateEditTitle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.title.Blur()
		return m, nil
	case "enter":
		n, ok := m.sess.Active()
		if !ok {
			m.mode = modeBrowse
			return m, nil
		}
		title := m.title.Value()
		if _, err := m.sess.Update(m.ctx, n.ID, models.UpdateInput{Title: &title}); err != nil {
			m.status = validationStatus(err)
			return m, nil
		}
		m.mode = modeBrowse
		m.title.Blur()
		m.status = "Renamed"
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	return m, cmd
}

func (m *model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filter = ""
		m.mode = modeBrowse
		m.filterIn.Blur()
		m.refresh()
		return m, nil
	case "enter":
		m.mode = modeBrowse
		m.filterIn.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterIn, cmd = m.filterIn.Update(msg)
	m.filter = m.filterIn.Value()
	m.refresh()
	return m, cmd
}

func (m *model) selectCursor(modifier bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return
	}
	if _, err := m.sess.Select(m.ctx, m.visible[idx].ID, modifier); err != nil {
		m.status = err.Error()
	}
	m.refresh()
}

func (m *model) startEditContent(n models.Note) tea.Cmd {
	m.mode = modeEditContent
	m.editingID = n.ID
	m.editor.SetValue(n.Content)
	m.startPreviewer(n.ID, n.Content)
	return m.editor.Focus()
}

// startPreviewer replaces the previewer for note id. Its render func runs on
// the debounce timer goroutine, so it only sees values copied here.
func (m *model) startPreviewer(id, content string) {
	if m.previewer != nil {
		m.previewer.Close()
	}
	style, width, log, send := m.opts.Style, m.previewWidth(), m.log, m.send
	m.previewer = preview.New(func(md string) string {
		return terminalPreview(md, style, width, log)
	}, func(out string) {
		send(previewMsg{id: id, out: out})
	}, m.opts.Debounce, preview.WithLogger(m.log))
	m.previewer.Update(content)
	m.pane.SetContent(m.previewer.Flush())
}

func (m *model) stopEditContent() {
	m.editor.Blur()
	if m.previewer != nil {
		m.previewer.Close()
		m.previewer = nil
	}
	m.mode = modeBrowse
	m.editingID = ""
	m.status = "Saved"
	m.refresh()
}

func (m *model) handleDeleteResult(msg deleteResultMsg) {
	switch {
	case msg.err != nil:
		m.status = fmt.Sprintf("Delete failed: %v", msg.err)
	case msg.n == 0:
		m.status = "Nothing deleted"
	case msg.n == 1:
		m.status = "Deleted 1 note"
	default:
		m.status = fmt.Sprintf("Deleted %d notes", msg.n)
	}
	m.refresh()
}

// refresh rebuilds rows from the session and redraws the preview pane.
func (m *model) refresh() {
	m.visible = notes.Filter(m.sess.Notes(), m.filter)
	m.updateRows()
	if cur := m.table.Cursor(); cur >= len(m.visible) {
		m.table.SetCursor(max(0, len(m.visible)-1))
	}
	if m.mode != modeEditContent {
		m.pane.SetContent(m.paneContent())
	}
}

func (m *model) paneContent() string {
	sel := m.sess.Selection()
	switch sel.Mode() {
	case selection.Single:
		n, ok := m.sess.Active()
		if !ok {
			return ""
		}
		return terminalPreview(noteDocument(n), m.opts.Style, m.previewWidth(), m.log)
	case selection.Multi:
		return fmt.Sprintf("\n  %d notes selected\n\n  D deletes them all, esc clears the selection.\n", sel.Len())
	default:
		return "\n  No note selected.\n\n  enter selects, space/x adds to a multi-selection, a creates a note.\n"
	}
}

func (m *model) previewWidth() int {
	width := m.opts.WordWrap
	if m.pane.Width > 0 && m.pane.Width < width {
		width = m.pane.Width
	}
	return width
}

func terminalPreview(markdown, style string, width int, log *zap.Logger) string {
	out, err := render.Terminal(markdown, style, width)
	if err != nil {
		log.Warn("terminal preview failed", zap.Error(err))
		return markdown
	}
	return out
}

func (m *model) indexOf(id string) int {
	for i, n := range m.visible {
		if n.ID == id {
			return i
		}
	}
	return 0
}

func noteDocument(n models.Note) string {
	return "# " + n.DisplayTitle() + "\n\n*" + models.FormatCreated(n.CreatedAt) + "*\n\n" + n.Content + "\n"
}

func validationStatus(err error) string {
	if ve, ok := models.IsValidationError(err); ok && len(ve.Issues) > 0 {
		return ve.Issues[0].Message
	}
	return err.Error()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
