package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/inkleaf/internal/present/format"
	"github.com/mithrel/inkleaf/pkg/models"
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
	faint = lipgloss.NewStyle().Faint(true)
)

func (m *model) initTable() {
	cols := m.columnsFor(m.opts.Headers, 1, 30, 19)
	m.table = table.New(table.WithColumns(cols), table.WithFocused(true), table.WithHeight(10))
	m.applyStyles()
}

func (m *model) updateRows() {
	sel := m.sess.Selection()
	rows := make([]table.Row, 0, len(m.visible))
	for _, n := range m.visible {
		rows = append(rows, table.Row{
			format.Marker(sel, n.ID),
			n.DisplayTitle(),
			models.FormatCreated(n.CreatedAt),
		})
	}
	m.table.SetRows(rows)
}

func (m *model) applyLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	bodyH := max(6, m.height-2)
	listW := max(36, m.width*2/5)
	if listW > m.width-20 {
		listW = m.width
	}
	m.table.SetHeight(bodyH)
	m.table.SetWidth(listW)
	createdW := 19
	titleW := max(8, listW-createdW-1-6)
	m.table.SetColumns(m.columnsFor(m.opts.Headers, 1, titleW, createdW))

	paneW := max(10, m.width-listW-2)
	m.pane.Width = paneW
	m.pane.Height = max(3, bodyH-2)
	m.editor.SetWidth(paneW)
	m.editor.SetHeight(max(3, bodyH/2-2))
	m.title.Width = max(10, m.width-10)
	m.filterIn.Width = max(10, m.width-10)
}

func (m *model) applyStyles() {
	s := table.DefaultStyles()
	if m.opts.Headers {
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
	} else {
		s.Header = s.Header.
			BorderBottom(false).
			Bold(false)
	}
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(s)
}

// columnsFor returns columns with or without titles based on headers flag.
func (m *model) columnsFor(headers bool, markW, titleW, createdW int) []table.Column {
	if headers {
		return []table.Column{
			{Title: " ", Width: markW},
			{Title: "Title", Width: titleW},
			{Title: "Created", Width: createdW},
		}
	}
	return []table.Column{
		{Title: "", Width: markW},
		{Title: "", Width: titleW},
		{Title: "", Width: createdW},
	}
}

func (m *model) help() string {
	switch m.mode {
	case modeEditContent:
		return "editing content • esc=done"
	case modeEditTitle:
		return "enter=save • esc=cancel"
	case modeFilter:
		return "type to filter • enter=keep • esc=clear"
	case modeConfirm:
		return "y=yes • n=no"
	}
	return "enter=select • space/x=multi • a=add • i=edit • t=title • d=delete • D=bulk delete • /=filter • esc=clear • q=quit"
}

func (m *model) renderFooter() string {
	left := m.help()
	right := ""
	if m.status != "" {
		right = m.status + " • "
	}
	right += fmt.Sprintf("%d notes ", len(m.visible))
	if m.filter != "" {
		right = fmt.Sprintf("filter %q • ", m.filter) + right
	}
	width := m.width
	if width <= 0 {
		width = lipgloss.Width(left) + lipgloss.Width(right) + 1
	}
	space := width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		space = 1
	}
	return faint.Render(left) + strings.Repeat(" ", space) + right
}

func (m *model) View() string {
	list := m.table.View()
	if len(m.visible) == 0 {
		list = faint.Render("(no notes) press a to add one")
	}
	right := m.pane.View()
	if m.mode == modeEditContent {
		right = m.editor.View() + "\n" + m.pane.View()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, paneStyle.Render(right))

	var prompt string
	switch m.mode {
	case modeEditTitle:
		prompt = m.title.View()
	case modeFilter:
		prompt = m.filterIn.View()
	}
	view := body + "\n"
	if prompt != "" {
		view += prompt + "\n"
	}
	view += m.renderFooter() + "\n"

	if m.mode == modeConfirm && m.pending != nil {
		return m.renderConfirm(view, m.pending.Message)
	}
	return view
}
