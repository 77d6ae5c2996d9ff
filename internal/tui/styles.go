package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dockit/offert/internal/version"
)

const AppName = "DOCKIT OFFERT"

const (
	MinTerminalWidth = 72
	MaxContentWidth  = 120
)

var (
	PrimaryColor   = lipgloss.Color("#F2A900")
	SecondaryColor = lipgloss.Color("#43BF6D")
	WarningColor   = lipgloss.Color("#FFA500")
	ErrorColor     = lipgloss.Color("#FF5555")
	TextColor      = lipgloss.Color("#FFFFFF")
	SubtleColor    = lipgloss.Color("#626262")
)

var (
	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				MarginTop(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Width(10)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				Width(10)

	ToggleStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	FocusedToggleStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	ActionStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			PaddingRight(2)

	DisabledActionStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				PaddingRight(2)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	ResultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(0, 1)

	ErrorBoxStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(0, 1)

	MutedStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	OKStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor)

	FailStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)
)

// contentWidth clamps the terminal width for the inner layout.
func contentWidth(termWidth int) int {
	switch {
	case termWidth <= 0:
		return MinTerminalWidth
	case termWidth > MaxContentWidth:
		return MaxContentWidth
	case termWidth < MinTerminalWidth:
		return MinTerminalWidth
	default:
		return termWidth
	}
}

// renderContainer wraps a frame with the title bar and the help footer.
func renderContainer(content, status, footer string, termWidth, termHeight int) string {
	width := contentWidth(termWidth)

	title := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " " + version.Version)
	bar := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", status)

	header := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(PrimaryColor).
		Width(width-2).
		Padding(0, 1).
		Render(bar)

	foot := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(PrimaryColor).
		Foreground(SubtleColor).
		Width(width-2).
		Padding(0, 1).
		Render(footer)

	body := lipgloss.NewStyle().
		Width(width - 2).
		PaddingLeft(1).
		Render(content)

	// Keep the header and footer on screen; the body gives way.
	if termHeight > 0 {
		avail := termHeight - lipgloss.Height(header) - lipgloss.Height(foot)
		if avail > 0 && lipgloss.Height(body) > avail {
			body = lipgloss.NewStyle().MaxHeight(avail).Render(body)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, foot)
}
