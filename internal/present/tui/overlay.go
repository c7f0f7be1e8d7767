package tui

import (
	"github.com/charmbracelet/lipgloss/v2"
)

// renderConfirm draws a y/n prompt centered over base.
func (m *model) renderConfirm(base, question string) string {
	box := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("204")).
		Render(lipgloss.NewStyle().Bold(true).Render(question) + "\n\n" +
			lipgloss.NewStyle().Faint(true).Render("y = yes   n = no"))
	return m.renderOverlay(base, box, lipgloss.Width(box), lipgloss.Height(box))
}

// renderOverlay composes a centered modal on top of the given base view string.
func (m *model) renderOverlay(base, fg string, overlayW, overlayH int) string {
	termW, termH := m.width, m.height
	if termW <= 0 {
		termW = 80
	}
	if termH <= 0 {
		termH = 24
	}
	x := max(0, (termW-overlayW)/2)
	y := max(0, (termH-overlayH)/2)

	dimBase := lipgloss.NewStyle().Faint(true).Render(base)
	baseLayer := lipgloss.NewLayer(dimBase).
		Width(termW).
		Height(termH)
	fgLayer := lipgloss.NewLayer(fg).
		Width(overlayW).
		Height(overlayH).
		X(x).
		Y(y)
	return lipgloss.NewCanvas(baseLayer, fgLayer).Render()
}
