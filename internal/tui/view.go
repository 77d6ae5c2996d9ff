package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dockit/offert/internal/printview"
	"github.com/dockit/offert/internal/quote"
	"github.com/dockit/offert/internal/session"
)

// View renders the whole form.
func (m Model) View() string {
	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.showHelp {
		return renderContainer(m.help.FullHelpView(m.keys.FullHelp()), m.renderHealth(), "valfri tangent stänger", m.Width, m.Height)
	}

	sections := []string{
		m.renderCustomer(),
		m.renderLines(),
		m.renderActions(),
	}
	if s := m.renderQuoteSlot(); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, m.renderLookup())
	if s := m.renderPrintStatus(); s != "" {
		sections = append(sections, s)
	}
	if m.showPreview {
		if doc := m.document(); doc != nil {
			sections = append(sections, SectionTitleStyle.Render("Förhandsgranskning"),
				printview.RenderText(doc, contentWidth(m.Width)-6))
		}
	}

	return renderContainer(lipgloss.JoinVertical(lipgloss.Left, sections...), m.renderHealth(), footer, m.Width, m.Height)
}

func (m Model) renderHealth() string {
	h := m.state.Health
	api := MutedStyle.Render(m.baseURL)
	switch {
	case h.Checking:
		return api + " " + m.spinner.View() + MutedStyle.Render("kontrollerar…")
	case h.Status == session.HealthFailed:
		return api + " " + FailStyle.Render(h.Status)
	case h.Status == session.HealthUnknown:
		return api + " " + MutedStyle.Render(h.Status)
	default:
		return api + " " + OKStyle.Render(h.Status)
	}
}

func (m Model) label(text string, kind fieldKind) string {
	if m.isFocused(kind, 0) {
		return FocusedLabelStyle.Render(text)
	}
	return LabelStyle.Render(text)
}

func (m Model) renderCustomer() string {
	rot := "[ ] ROT-avdrag"
	if m.form.ApplyROT() {
		rot = "[x] ROT-avdrag"
	}
	rotStyle := ToggleStyle
	if m.isFocused(fieldROT, 0) {
		rotStyle = FocusedToggleStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		SectionTitleStyle.Render("Kund"),
		m.label("Namn", fieldName)+m.name.View(),
		m.label("E-post", fieldEmail)+m.email.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.label("Uppdrag", fieldSummary), m.summary.View()),
		rotStyle.Render(rot),
	)
}

func (m Model) renderLines() string {
	header := MutedStyle.Render(fmt.Sprintf("%-3s %-10s %-29s %-7s %s", "#", "Typ", "Beskrivning", "Antal", "À-pris (kr)"))
	lines := []string{SectionTitleStyle.Render("Rader"), header}

	for i, row := range m.rows {
		l, _ := m.form.Line(i)
		kind := "[" + l.Kind.Label() + "]"
		kindStyle := ToggleStyle
		if m.isFocused(fieldLineKind, i) {
			kindStyle = FocusedToggleStyle
		}
		lines = append(lines, fmt.Sprintf("%-3d %s %s %s %s",
			i+1,
			kindStyle.Width(10).Render(kind),
			lipgloss.NewStyle().Width(29).Render(row.desc.View()),
			lipgloss.NewStyle().Width(7).Render(row.qty.View()),
			row.price.View(),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) action(label string, enabled, running bool) string {
	switch {
	case running:
		return ActionStyle.Render(m.spinner.View() + label)
	case enabled:
		return ActionStyle.Render(label)
	default:
		return DisabledActionStyle.Render(label)
	}
}

func (m Model) renderActions() string {
	st := m.state
	canPrint := printview.CanPrint(st)
	actions := []string{
		m.action("^R Hälsa", !st.Health.Checking, st.Health.Checking),
		m.action("^D Beräkna", !st.Quote.Drafting, st.Quote.Drafting),
		m.action("^S Spara", !st.Quote.Saving, st.Quote.Saving),
		m.action("^P Skriv ut", canPrint && !m.printing, m.printing),
		m.action("^N Ny rad", true, false),
		m.action("^X Ta bort rad", m.form.CanRemoveLine(), false),
	}
	return lipgloss.NewStyle().MarginTop(1).Render(lipgloss.JoinHorizontal(lipgloss.Top, actions...))
}

func (m Model) renderQuoteSlot() string {
	q := m.state.Quote
	var parts []string

	if q.Result != nil {
		parts = append(parts, ResultBoxStyle.Render(renderResult(q.Result, q.SavedID)))
	}
	if q.Err != "" {
		parts = append(parts, ErrorBoxStyle.Render(q.Err))
	}
	if len(parts) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderResult(r *quote.DraftResult, savedID quote.ID) string {
	rows := []string{
		lipgloss.NewStyle().Bold(true).Render(r.Title),
		fmt.Sprintf("%-12s %s", "Delsumma", printview.Money(r.SubtotalSEK)),
		fmt.Sprintf("%-12s %s", "ROT-avdrag", printview.Discount(r.ROTDiscountSEK)),
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%-12s %s", "Att betala", printview.Money(r.TotalSEK))),
	}
	if savedID != "" {
		rows = append(rows, OKStyle.Render("Sparad som offert #"+string(savedID)))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderLookup() string {
	lk := m.state.Lookup
	lines := []string{
		SectionTitleStyle.Render("Hämta sparad offert"),
		m.label("Nummer", fieldLookup) + m.lookup.View(),
	}
	if lk.Fetching {
		lines = append(lines, m.spinner.View()+MutedStyle.Render("hämtar…"))
	}
	if lk.Err != "" {
		lines = append(lines, ErrorBoxStyle.Render(lk.Err))
	}
	if q := lk.Quote; q != nil {
		summary := []string{
			lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("#%s %s", q.ID, q.Title)),
		}
		if q.CustomerName != "" {
			summary = append(summary, "Kund: "+q.CustomerName)
		}
		summary = append(summary,
			fmt.Sprintf("%d rader, att betala %s", len(q.Lines), printview.Money(q.TotalSEK)),
			MutedStyle.Render("ctrl+l återgår till utkastet"),
		)
		lines = append(lines, ResultBoxStyle.Render(strings.Join(summary, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderPrintStatus() string {
	switch {
	case m.printing:
		return m.spinner.View() + MutedStyle.Render("skapar PDF…")
	case m.printErr != "":
		return ErrorBoxStyle.Render(m.printErr)
	case m.printStatus != "":
		return OKStyle.Render(m.printStatus)
	}
	return ""
}
