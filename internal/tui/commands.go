package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dockit/offert/internal/printview"
	"github.com/dockit/offert/internal/quote"
	"github.com/dockit/offert/internal/session"
)

type healthMsg struct {
	status string
	err    error
}

type draftMsg struct {
	result *quote.DraftResult
	err    error
}

type saveMsg struct {
	saved *quote.SavedQuote
	err   error
}

type lookupMsg struct {
	quote *quote.FetchedQuote
	err   error
}

type printMsg struct {
	result printview.PrintResult
	err    error
}

func withTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

func healthCmd(api session.API, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()
		status, err := api.Health(ctx)
		return healthMsg{status: status, err: err}
	}
}

func draftCmd(api session.API, req quote.DraftRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()
		result, err := api.Draft(ctx, req)
		return draftMsg{result: result, err: err}
	}
}

func saveCmd(api session.API, req quote.DraftRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()
		saved, err := api.Save(ctx, req)
		return saveMsg{saved: saved, err: err}
	}
}

func lookupCmd(api session.API, id string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()
		q, err := api.Fetch(ctx, id)
		return lookupMsg{quote: q, err: err}
	}
}

// printCmd has no timeout: the print command may wait on a dialog.
func printCmd(p *printview.Printer, doc *printview.Document) tea.Cmd {
	return func() tea.Msg {
		result, err := p.Print(context.Background(), doc)
		return printMsg{result: result, err: err}
	}
}
