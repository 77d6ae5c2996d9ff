package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dockit/offert/internal/quote"
)

type fieldKind int

const (
	fieldName fieldKind = iota
	fieldEmail
	fieldSummary
	fieldROT
	fieldLineKind
	fieldLineDesc
	fieldLineQty
	fieldLinePrice
	fieldLookup
)

// focusTarget is one stop in the tab order. line is only meaningful for the
// per-line fields.
type focusTarget struct {
	kind fieldKind
	line int
}

// lineRow holds the inputs of one quote line. The kind is a toggle and is
// read straight from the form.
type lineRow struct {
	desc  textinput.Model
	qty   textinput.Model
	price textinput.Model
}

func newInput(placeholder string, width, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.Width = width
	ti.CharLimit = limit
	return ti
}

func newSummary() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Vad ska göras?"
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 2000
	ta.SetWidth(50)
	ta.SetHeight(3)
	return ta
}

func newLineRow(l quote.Line) lineRow {
	row := lineRow{
		desc:  newInput("Beskrivning", 28, 200),
		qty:   newInput("1", 6, 12),
		price: newInput("0", 10, 16),
	}
	row.desc.SetValue(l.Description)
	row.qty.SetValue(l.Qty)
	row.price.SetValue(l.UnitPrice)
	return row
}

// targets lists the tab order for the current number of lines.
func (m Model) targets() []focusTarget {
	t := []focusTarget{{kind: fieldName}, {kind: fieldEmail}, {kind: fieldSummary}, {kind: fieldROT}}
	for i := range m.rows {
		t = append(t,
			focusTarget{kind: fieldLineKind, line: i},
			focusTarget{kind: fieldLineDesc, line: i},
			focusTarget{kind: fieldLineQty, line: i},
			focusTarget{kind: fieldLinePrice, line: i},
		)
	}
	return append(t, focusTarget{kind: fieldLookup})
}

func (m Model) current() focusTarget {
	t := m.targets()
	if m.focus < 0 || m.focus >= len(t) {
		return t[0]
	}
	return t[m.focus]
}

func (m Model) isFocused(kind fieldKind, line int) bool {
	c := m.current()
	return c.kind == kind && c.line == line
}

// rebuildRows recreates the line inputs from the form after lines were added
// or removed.
func (m *Model) rebuildRows() {
	m.rows = make([]lineRow, 0, m.form.Len())
	for i := 0; i < m.form.Len(); i++ {
		l, _ := m.form.Line(i)
		m.rows = append(m.rows, newLineRow(l))
	}
}

// setFocus moves focus to target index i, wrapping around.
func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.targets())
	m.focus = ((i % n) + n) % n

	m.name.Blur()
	m.email.Blur()
	m.summary.Blur()
	m.lookup.Blur()
	for r := range m.rows {
		m.rows[r].desc.Blur()
		m.rows[r].qty.Blur()
		m.rows[r].price.Blur()
	}

	c := m.current()
	switch c.kind {
	case fieldName:
		return m.name.Focus()
	case fieldEmail:
		return m.email.Focus()
	case fieldSummary:
		return m.summary.Focus()
	case fieldLineDesc:
		return m.rows[c.line].desc.Focus()
	case fieldLineQty:
		return m.rows[c.line].qty.Focus()
	case fieldLinePrice:
		return m.rows[c.line].price.Focus()
	case fieldLookup:
		return m.lookup.Focus()
	}
	return nil
}

// focusLine moves focus to the description of line i.
func (m *Model) focusLine(i int) tea.Cmd {
	for idx, t := range m.targets() {
		if t.kind == fieldLineDesc && t.line == i {
			return m.setFocus(idx)
		}
	}
	return nil
}

// updateInput forwards msg to the focused input and copies its value into
// the form.
func (m Model) updateInput(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	c := m.current()

	switch c.kind {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
		m.form.SetCustomerName(m.name.Value())
	case fieldEmail:
		m.email, cmd = m.email.Update(msg)
		m.form.SetCustomerEmail(m.email.Value())
	case fieldSummary:
		m.summary, cmd = m.summary.Update(msg)
		m.form.SetJobSummary(m.summary.Value())
	case fieldLineDesc:
		m.rows[c.line].desc, cmd = m.rows[c.line].desc.Update(msg)
		m.form.UpdateLine(c.line, quote.LinePatch{Description: quote.Ptr(m.rows[c.line].desc.Value())})
	case fieldLineQty:
		m.rows[c.line].qty, cmd = m.rows[c.line].qty.Update(msg)
		m.form.UpdateLine(c.line, quote.LinePatch{Qty: quote.Ptr(m.rows[c.line].qty.Value())})
	case fieldLinePrice:
		m.rows[c.line].price, cmd = m.rows[c.line].price.Update(msg)
		m.form.UpdateLine(c.line, quote.LinePatch{UnitPrice: quote.Ptr(m.rows[c.line].price.Value())})
	case fieldLookup:
		m.lookup, cmd = m.lookup.Update(msg)
	}
	return m, cmd
}

// toggle flips the focused toggle field. It reports false when the focused
// field is not a toggle.
func (m Model) toggle() (Model, bool) {
	c := m.current()
	switch c.kind {
	case fieldROT:
		m.form.SetApplyROT(!m.form.ApplyROT())
		return m, true
	case fieldLineKind:
		l, ok := m.form.Line(c.line)
		if !ok {
			return m, false
		}
		m.form.UpdateLine(c.line, quote.LinePatch{Kind: quote.Ptr(l.Kind.Toggle())})
		return m, true
	}
	return m, false
}
