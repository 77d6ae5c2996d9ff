package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header is the banner printed before a subcommand does network work.
type Header struct {
	Title   string
	Command string
	Params  []Detail
	Width   int
}

func NewHeader(title, command string, params []Detail) *Header {
	return &Header{Title: title, Command: command, Params: params, Width: TerminalWidth()}
}

func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header.
func (h *Header) Render() string {
	width := clampWidth(h.Width)

	content := lipgloss.JoinVertical(lipgloss.Left,
		HeaderTitleStyle.Render(strings.ToUpper(h.Title)),
		HeaderCommandStyle.Render(h.Command),
	)
	if len(h.Params) > 0 {
		content = lipgloss.JoinVertical(lipgloss.Left,
			content,
			" "+Divider(width-6),
			strings.Join(renderDetails(h.Params), "\n"),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Render(content)
}

func (h *Header) String() string {
	return h.Render()
}
