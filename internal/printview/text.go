package printview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	paperBorder = lipgloss.Color("#7D7D7D")
	inkMuted    = lipgloss.Color("#8A8A8A")
	inkAccent   = lipgloss.Color("#00A3E0")

	paperStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(paperBorder).
			Padding(1, 2)

	letterheadStyle = lipgloss.NewStyle().Bold(true).Foreground(inkAccent)
	docTitleStyle   = lipgloss.NewStyle().Bold(true)
	metaStyle       = lipgloss.NewStyle().Foreground(inkMuted)
	labelStyle      = lipgloss.NewStyle().Foreground(inkMuted).Width(10)
	totalStyle      = lipgloss.NewStyle().Bold(true)
	footerStyle     = lipgloss.NewStyle().Foreground(inkMuted).Italic(true)
)

// RenderText renders doc as a terminal preview. width is the total width
// available; zero means no limit.
func RenderText(doc *Document, width int) string {
	if doc == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(letterheadStyle.Render(doc.Company.Name))
	b.WriteString("\n")
	title := "OFFERT"
	if doc.Title != "" {
		title = doc.Title
	}
	b.WriteString(docTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("Offertnr: %s   Datum: %s", dash(doc.Number), doc.Date)))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Kund") + doc.CustomerName + "\n")
	b.WriteString(labelStyle.Render("E-post") + doc.CustomerEmail + "\n")
	b.WriteString(labelStyle.Render("Uppdrag") + doc.JobSummary + "\n\n")

	rows := make([][]string, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		rows = append(rows, []string{
			l.Kind.Label(),
			l.Description,
			Number(l.Qty),
			Money(l.UnitPriceSEK),
			Money(l.Total()),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(paperBorder)).
		Headers("Typ", "Beskrivning", "Antal", "À-pris", "Summa").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			if col >= 2 {
				return s.Align(lipgloss.Right)
			}
			return s
		})
	b.WriteString(t.String())
	b.WriteString("\n\n")

	b.WriteString(totalsLine("Delsumma", Money(doc.SubtotalSEK), false))
	b.WriteString(totalsLine("ROT-avdrag", Discount(doc.ROTDiscountSEK), false))
	b.WriteString(totalsLine("Att betala", Money(doc.TotalSEK), true))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(doc.Company.Footer))

	style := paperStyle
	if width > 0 {
		style = style.MaxWidth(width)
	}
	return style.Render(b.String())
}

func totalsLine(label, value string, bold bool) string {
	line := fmt.Sprintf("%-12s %14s", label, value)
	if bold {
		line = totalStyle.Render(line)
	}
	return line + "\n"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
