package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dockit/offert/internal/logging"
	"github.com/dockit/offert/internal/printview"
	"github.com/dockit/offert/internal/quote"
	"github.com/dockit/offert/internal/quoteapi"
	"github.com/dockit/offert/internal/session"
)

// Options configure New.
type Options struct {
	API session.API

	// Form is the initial form. Nil means quote.DefaultForm().
	Form *quote.Form

	// Printer exports and prints. Nil exports into the working directory
	// without printing.
	Printer *printview.Printer
	Company printview.Company

	// BaseURL is shown in the title bar.
	BaseURL string

	// Timeout bounds each API call. Zero means no extra bound beyond the
	// HTTP client's own.
	Timeout time.Duration

	// Now is used for the print date. Defaults to time.Now.
	Now func() time.Time
}

// Model is the quote form program.
type Model struct {
	api     session.API
	printer *printview.Printer
	company printview.Company
	baseURL string
	timeout time.Duration
	now     func() time.Time

	form  *quote.Form
	state *session.State

	name    textinput.Model
	email   textinput.Model
	summary textarea.Model
	rows    []lineRow
	lookup  textinput.Model
	focus   int

	printing    bool
	printStatus string
	printErr    string
	showPreview bool
	showHelp    bool

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	Width  int
	Height int
}

// New builds the model. Focus starts on the customer name.
func New(opts Options) Model {
	form := opts.Form
	if form == nil {
		form = quote.DefaultForm()
	}
	printer := opts.Printer
	if printer == nil {
		printer = &printview.Printer{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	m := Model{
		api:     opts.API,
		printer: printer,
		company: opts.Company,
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
		now:     now,
		form:    form,
		state:   session.New(),
		name:    newInput("Anna Andersson", 40, 120),
		email:   newInput("anna@example.se", 40, 254),
		summary: newSummary(),
		lookup:  newInput("Offertnummer", 20, 64),
		spinner: s,
		help:    help.New(),
		keys:    defaultKeyMap(),
	}
	m.name.SetValue(form.CustomerName())
	m.email.SetValue(form.CustomerEmail())
	m.summary.SetValue(form.JobSummary())
	m.rebuildRows()
	m.setFocus(0)
	return m
}

// State exposes the session state, mainly for tests.
func (m Model) State() *session.State { return m.state }

// Form exposes the edited form.
func (m Model) Form() *quote.Form { return m.form }

// Init probes the API health on start.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.state.BeginHealth() {
		cmds = append(cmds, healthCmd(m.api, m.timeout), m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update is the single reducer for keys and action results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case healthMsg:
		if msg.err != nil {
			logging.Warn("Health probe failed", zap.Error(msg.err))
		}
		m.state.FinishHealth(msg.status, msg.err)
		return m, nil

	case draftMsg:
		if msg.err != nil {
			logging.Warn("Draft failed", zap.String("type", errorType(msg.err)), zap.Error(msg.err))
		}
		m.state.FinishDraft(msg.result, msg.err)
		return m, nil

	case saveMsg:
		if msg.err != nil {
			logging.Warn("Save failed", zap.String("type", errorType(msg.err)), zap.Error(msg.err))
		} else {
			logging.Info("Quote saved", zap.String("id", string(msg.saved.ID)))
		}
		m.state.FinishSave(msg.saved, msg.err)
		return m, nil

	case lookupMsg:
		m.state.FinishLookup(msg.quote, msg.err)
		return m, nil

	case printMsg:
		m.printing = false
		m.printStatus, m.printErr = "", ""
		switch {
		case msg.err != nil:
			m.printErr = "Utskrift misslyckades: " + msg.err.Error()
		case msg.result.Printed:
			m.printStatus = "Skickad till skrivaren: " + msg.result.Path
		default:
			m.printStatus = "Sparad som PDF: " + msg.result.Path
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Next):
		cmd := m.setFocus(m.focus + 1)
		return m, cmd

	case key.Matches(msg, m.keys.Prev):
		cmd := m.setFocus(m.focus - 1)
		return m, cmd

	case key.Matches(msg, m.keys.Health):
		return m.startHealth()

	case key.Matches(msg, m.keys.Draft):
		return m.startDraft()

	case key.Matches(msg, m.keys.Save):
		return m.startSave()

	case key.Matches(msg, m.keys.Fetch):
		return m.startLookup()

	case key.Matches(msg, m.keys.ClearLookup):
		m.state.ClearLookup()
		return m, nil

	case key.Matches(msg, m.keys.Print):
		return m.startPrint()

	case key.Matches(msg, m.keys.Preview):
		m.showPreview = !m.showPreview
		return m, nil

	case key.Matches(msg, m.keys.AddLine):
		i := m.form.AddLine()
		m.rebuildRows()
		cmd := m.focusLine(i)
		return m, cmd

	case key.Matches(msg, m.keys.RemoveLine):
		return m.removeLine()

	case key.Matches(msg, m.keys.Toggle):
		if m.current().kind == fieldLookup && msg.String() == "enter" {
			return m.startLookup()
		}
		if next, ok := m.toggle(); ok {
			return next, nil
		}
	}

	return m.updateInput(msg)
}

func (m Model) busy() bool {
	return m.state.Busy() || m.printing
}

// withSpinner starts the spinner unless it is already running.
func (m Model) withSpinner(wasBusy bool, cmd tea.Cmd) tea.Cmd {
	if wasBusy {
		return cmd
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m Model) startHealth() (tea.Model, tea.Cmd) {
	wasBusy := m.busy()
	if !m.state.BeginHealth() {
		return m, nil
	}
	return m, m.withSpinner(wasBusy, healthCmd(m.api, m.timeout))
}

func (m Model) startDraft() (tea.Model, tea.Cmd) {
	wasBusy := m.busy()
	req, ok := m.state.BeginDraft(m.form)
	if !ok {
		return m, nil
	}
	logging.Debug("Draft requested", zap.Int("lines", len(req.Lines)))
	return m, m.withSpinner(wasBusy, draftCmd(m.api, req, m.timeout))
}

func (m Model) startSave() (tea.Model, tea.Cmd) {
	wasBusy := m.busy()
	req, ok := m.state.BeginSave(m.form)
	if !ok {
		return m, nil
	}
	logging.Debug("Save requested", zap.Int("lines", len(req.Lines)))
	return m, m.withSpinner(wasBusy, saveCmd(m.api, req, m.timeout))
}

func (m Model) startLookup() (tea.Model, tea.Cmd) {
	wasBusy := m.busy()
	id, ok := m.state.BeginLookup(m.lookup.Value())
	if !ok {
		return m, nil
	}
	return m, m.withSpinner(wasBusy, lookupCmd(m.api, id, m.timeout))
}

func (m Model) startPrint() (tea.Model, tea.Cmd) {
	if m.printing {
		return m, nil
	}
	doc := m.document()
	if doc == nil {
		return m, nil
	}
	wasBusy := m.busy()
	m.printing = true
	m.printStatus, m.printErr = "", ""
	return m, m.withSpinner(wasBusy, printCmd(m.printer, doc))
}

// removeLine removes the focused line, or the last line when focus is
// outside the table.
func (m Model) removeLine() (tea.Model, tea.Cmd) {
	if !m.form.CanRemoveLine() {
		return m, nil
	}
	c := m.current()
	idx := m.form.Len() - 1
	switch c.kind {
	case fieldLineKind, fieldLineDesc, fieldLineQty, fieldLinePrice:
		idx = c.line
	}
	m.form.RemoveLine(idx)
	m.rebuildRows()
	if idx >= m.form.Len() {
		idx = m.form.Len() - 1
	}
	cmd := m.focusLine(idx)
	return m, cmd
}

// document composes the current print subject, or nil.
func (m Model) document() *printview.Document {
	return printview.Compose(m.state, m.form, printview.Options{Company: m.company, Now: m.now})
}

func errorType(err error) string {
	var apiErr *quoteapi.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Type.String()
	}
	return "unknown"
}
