package tui

import (
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dockit/offert/internal/printview"
	"github.com/dockit/offert/internal/quote"
	"github.com/dockit/offert/internal/quoteapi"
	"github.com/dockit/offert/internal/quoteapi/quoteapitest"
	"github.com/dockit/offert/internal/session"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
}

func newTestModel(t *testing.T, form *quote.Form) (Model, *quoteapitest.Server) {
	t.Helper()
	srv := quoteapitest.NewServer(t)
	m := New(Options{
		API:     quoteapi.NewClient(srv.URL),
		Form:    form,
		Printer: &printview.Printer{Dir: t.TempDir()},
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
		Now:     fixedNow,
	})
	m.Width, m.Height = 100, 0
	return m, srv
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

// collect runs cmd and any batched commands, returning the action results.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
	case healthMsg, draftMsg, saveMsg, lookupMsg, printMsg:
		out = append(out, msg)
	}
	return out
}

// settle feeds every action result of cmd back into the model.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNewFocusesCustomerName(t *testing.T) {
	m, _ := newTestModel(t, quote.DemoForm())

	assert.Equal(t, fieldName, m.current().kind)
	assert.Equal(t, "Dockit El & Data AB", m.name.Value())
	assert.Len(t, m.rows, 2)
	assert.Equal(t, session.HealthUnknown, m.State().Health.Status)
}

func TestInitProbesHealth(t *testing.T) {
	m, _ := newTestModel(t, nil)

	cmd := m.Init()
	assert.True(t, m.State().Health.Checking)

	m = settle(t, m, cmd)
	assert.False(t, m.State().Health.Checking)
	assert.Equal(t, `{"message":"ok"}`, m.State().Health.Status)
	assert.Contains(t, m.View(), `{"message":"ok"}`)
}

func TestHealthFailure(t *testing.T) {
	m, srv := newTestModel(t, nil)
	srv.Fail("GET", "/health", 500, "boom")

	m, cmd := press(t, m, tea.KeyCtrlR)
	require.NotNil(t, cmd)
	m = settle(t, m, cmd)
	assert.Equal(t, session.HealthFailed, m.State().Health.Status)
}

func TestTypingUpdatesForm(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = typeText(t, m, "Anna")
	assert.Equal(t, "Anna", m.Form().CustomerName())

	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "anna@example.se")
	assert.Equal(t, "anna@example.se", m.Form().CustomerEmail())

	// summary, ROT, then line 1 kind and description
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "Byta uttag")
	assert.Equal(t, "Byta uttag", m.Form().JobSummary())

	m, _ = press(t, m, tea.KeyTab)
	m, _ = press(t, m, tea.KeyTab)
	m, _ = press(t, m, tea.KeyTab)
	require.Equal(t, fieldLineDesc, m.current().kind)
	m = typeText(t, m, "Montering")

	l, ok := m.Form().Line(0)
	require.True(t, ok)
	assert.Equal(t, "Montering", l.Description)
}

func TestFocusWraps(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = press(t, m, tea.KeyShiftTab)
	assert.Equal(t, fieldLookup, m.current().kind)

	m, _ = press(t, m, tea.KeyTab)
	assert.Equal(t, fieldName, m.current().kind)
}

func TestToggles(t *testing.T) {
	m, _ := newTestModel(t, nil)
	require.True(t, m.Form().ApplyROT())

	for i := 0; i < 3; i++ {
		m, _ = press(t, m, tea.KeyTab)
	}
	require.Equal(t, fieldROT, m.current().kind)
	m, _ = press(t, m, tea.KeySpace)
	assert.False(t, m.Form().ApplyROT())

	m, _ = press(t, m, tea.KeyTab)
	require.Equal(t, fieldLineKind, m.current().kind)
	m, _ = press(t, m, tea.KeyEnter)
	l, _ := m.Form().Line(0)
	assert.Equal(t, quote.KindMaterial, l.Kind)
}

func TestSpaceInTextFieldIsText(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = typeText(t, m, "Anna B")
	assert.Equal(t, "Anna B", m.Form().CustomerName())
	assert.True(t, m.Form().ApplyROT())
}

func TestDraftValidationError(t *testing.T) {
	m, srv := newTestModel(t, nil)

	m, cmd := press(t, m, tea.KeyCtrlD)
	assert.Nil(t, cmd)
	assert.Equal(t, "customer name missing", m.State().Quote.Err)
	assert.Contains(t, m.View(), "customer name missing")
	assert.Empty(t, srv.Requests())
}

func TestDraftFlow(t *testing.T) {
	m, _ := newTestModel(t, quote.DemoForm())

	m, cmd := press(t, m, tea.KeyCtrlD)
	require.NotNil(t, cmd)
	assert.True(t, m.State().Quote.Drafting)

	// second press while in flight is ignored
	m, again := press(t, m, tea.KeyCtrlD)
	assert.Nil(t, again)

	m = settle(t, m, cmd)
	require.NotNil(t, m.State().Quote.Result)
	assert.False(t, m.State().Quote.Drafting)
	assert.Equal(t, "5144", m.State().Quote.Result.TotalSEK.String())
	assert.Contains(t, m.View(), "Preliminär offert för Dockit El & Data AB")
}

func TestDraftAndSaveConcurrently(t *testing.T) {
	m, _ := newTestModel(t, quote.DemoForm())

	m, draft := press(t, m, tea.KeyCtrlD)
	m, save := press(t, m, tea.KeyCtrlS)
	require.NotNil(t, draft)
	require.NotNil(t, save)
	assert.True(t, m.State().Quote.Drafting)
	assert.True(t, m.State().Quote.Saving)

	m = settle(t, m, save)
	m = settle(t, m, draft)
	assert.Equal(t, quote.ID("1"), m.State().Quote.SavedID)
	require.NotNil(t, m.State().Quote.Result)
	assert.Contains(t, m.View(), "Sparad som offert #1")
}

func TestSaveServerError(t *testing.T) {
	m, srv := newTestModel(t, quote.DemoForm())
	srv.Fail("POST", "/quotes", 500, "")

	m, cmd := press(t, m, tea.KeyCtrlS)
	m = settle(t, m, cmd)
	assert.Equal(t, session.ErrSaveFailed, m.State().Quote.Err)
	assert.Empty(t, m.State().Quote.SavedID)
}

func focusLookup(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = press(t, m, tea.KeyShiftTab)
	require.Equal(t, fieldLookup, m.current().kind)
	return m
}

func TestLookupEmptyIdentifier(t *testing.T) {
	m, srv := newTestModel(t, nil)
	m = focusLookup(t, m)

	m, cmd := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, session.ErrIdentifierNeeded, m.State().Lookup.Err)
	assert.Empty(t, srv.Requests())
}

func TestLookupNotFound(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = focusLookup(t, m)
	m = typeText(t, m, "999")

	m, cmd := press(t, m, tea.KeyCtrlF)
	require.NotNil(t, cmd)
	m = settle(t, m, cmd)
	assert.Contains(t, m.State().Lookup.Err, quoteapitest.NotFoundDetail)
	assert.Empty(t, m.State().Quote.Err)
}

func TestLookupThenClear(t *testing.T) {
	m, srv := newTestModel(t, nil)
	id := srv.Seed(quoteapitest.Price(quote.DemoForm().Snapshot().Payload()))

	m = focusLookup(t, m)
	m = typeText(t, m, " "+id+" ")
	m, cmd := press(t, m, tea.KeyEnter)
	m = settle(t, m, cmd)

	require.NotNil(t, m.State().Lookup.Quote)
	assert.Equal(t, quote.ID(id), m.State().Lookup.Quote.ID)
	assert.Contains(t, m.View(), "#"+id)

	m, _ = press(t, m, tea.KeyCtrlL)
	assert.Nil(t, m.State().Lookup.Quote)
}

func TestAddAndRemoveLines(t *testing.T) {
	m, _ := newTestModel(t, nil)
	require.Equal(t, 1, m.Form().Len())

	// the only line cannot be removed
	m, _ = press(t, m, tea.KeyCtrlX)
	assert.Equal(t, 1, m.Form().Len())

	m, _ = press(t, m, tea.KeyCtrlN)
	assert.Equal(t, 2, m.Form().Len())
	assert.Len(t, m.rows, 2)
	assert.Equal(t, focusTarget{kind: fieldLineDesc, line: 1}, m.current())

	m = typeText(t, m, "Kabel")
	l, _ := m.Form().Line(1)
	assert.Equal(t, "Kabel", l.Description)

	m, _ = press(t, m, tea.KeyCtrlX)
	assert.Equal(t, 1, m.Form().Len())
	assert.Equal(t, focusTarget{kind: fieldLineDesc, line: 0}, m.current())
}

func TestPrintRequiresSubject(t *testing.T) {
	m, _ := newTestModel(t, quote.DemoForm())

	m, cmd := press(t, m, tea.KeyCtrlP)
	assert.Nil(t, cmd)
	assert.False(t, m.printing)
}

func TestPrintExportsPDF(t *testing.T) {
	m, _ := newTestModel(t, quote.DemoForm())

	m, cmd := press(t, m, tea.KeyCtrlD)
	m = settle(t, m, cmd)
	require.NotNil(t, m.State().Quote.Result)

	m, cmd = press(t, m, tea.KeyCtrlP)
	require.NotNil(t, cmd)
	assert.True(t, m.printing)

	m = settle(t, m, cmd)
	assert.False(t, m.printing)
	assert.Empty(t, m.printErr)
	assert.Contains(t, m.printStatus, "offert-utkast-2026-03-14.pdf")

	path := m.printStatus[len("Sparad som PDF: "):]
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestPreviewToggle(t *testing.T) {
	m, _ := newTestModel(t, quote.DemoForm())
	m, cmd := press(t, m, tea.KeyCtrlD)
	m = settle(t, m, cmd)

	assert.NotContains(t, m.View(), "Förhandsgranskning")
	m, _ = press(t, m, tea.KeyCtrlO)
	assert.Contains(t, m.View(), "Förhandsgranskning")
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = press(t, m, tea.KeyF1)
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "ta bort rad")

	m, _ = press(t, m, tea.KeyCtrlD)
	assert.False(t, m.showHelp)
	assert.False(t, m.State().Quote.Drafting)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	_, cmd := press(t, m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
