// Package session holds the display state of one quote session and the
// reducer operations that change it.
//
// There are four independent slots: health, draft/save (shared result and
// error), and lookup. Every action is split in two: Begin* decides whether
// the action may start and prepares the request, Finish* folds the response
// back in. Between the two the action is "in flight" and its trigger is
// disabled. Different actions may be in flight at the same time; each only
// writes its own slot.
//
// State is not safe for concurrent use. The terminal form calls it from its
// update loop, the CLI from a single goroutine through Controller.
package session

import (
	"strings"

	"github.com/dockit/offert/internal/quote"
	"github.com/dockit/offert/internal/quoteapi"
)

// Messages shown in the error slots.
const (
	HealthUnknown       = "unknown"
	HealthFailed        = "failed to fetch /health"
	ErrDraftFailed      = "failed to compute quote"
	ErrSaveFailed       = "failed to save quote"
	ErrLookupFailed     = "failed to fetch quote"
	ErrIdentifierNeeded = "identifier required"
)

// HealthSlot is the last health probe result.
type HealthSlot struct {
	Status   string
	Checking bool
}

// QuoteSlot is shared by Draft and Save.
type QuoteSlot struct {
	Result   *quote.DraftResult
	SavedID  quote.ID
	Err      string
	Drafting bool
	Saving   bool
}

// LookupSlot belongs to the lookup flow only.
type LookupSlot struct {
	Quote    *quote.FetchedQuote
	Err      string
	Fetching bool
}

// State is the display state of a session.
type State struct {
	Health HealthSlot
	Quote  QuoteSlot
	Lookup LookupSlot
}

// New returns the initial state.
func New() *State {
	return &State{Health: HealthSlot{Status: HealthUnknown}}
}

// BeginHealth marks a health probe as started. It returns false if one is
// already running.
func (s *State) BeginHealth() bool {
	if s.Health.Checking {
		return false
	}
	s.Health.Checking = true
	return true
}

// FinishHealth records the probe outcome.
func (s *State) FinishHealth(status string, err error) {
	s.Health.Checking = false
	if err != nil {
		s.Health.Status = HealthFailed
		return
	}
	s.Health.Status = status
}

// BeginDraft validates the form and, if the draft may be sent, clears the
// previous result and returns the payload. On a validation failure the
// error slot is set and nothing is cleared.
func (s *State) BeginDraft(form *quote.Form) (quote.DraftRequest, bool) {
	if s.Quote.Drafting {
		return quote.DraftRequest{}, false
	}
	snap := form.Snapshot()
	if err := quote.Validate(snap); err != nil {
		s.Quote.Err = err.Error()
		return quote.DraftRequest{}, false
	}

	s.Quote.Err = ""
	s.Quote.Result = nil
	s.Quote.SavedID = ""
	s.Quote.Drafting = true
	return snap.Payload(), true
}

// FinishDraft folds a draft response into the quote slot.
func (s *State) FinishDraft(result *quote.DraftResult, err error) {
	s.Quote.Drafting = false
	if err != nil {
		s.Quote.Err = quoteapi.UserMessage(err, ErrDraftFailed)
		return
	}
	s.Quote.Result = result
}

// BeginSave is BeginDraft for saving. A displayed draft result is kept so it
// stays visible next to the saved id.
func (s *State) BeginSave(form *quote.Form) (quote.DraftRequest, bool) {
	if s.Quote.Saving {
		return quote.DraftRequest{}, false
	}
	snap := form.Snapshot()
	if err := quote.Validate(snap); err != nil {
		s.Quote.Err = err.Error()
		return quote.DraftRequest{}, false
	}

	s.Quote.Err = ""
	s.Quote.SavedID = ""
	s.Quote.Saving = true
	return snap.Payload(), true
}

// FinishSave stores the saved id. Without a displayed result, one is built
// from the save response.
func (s *State) FinishSave(saved *quote.SavedQuote, err error) {
	s.Quote.Saving = false
	if err != nil {
		s.Quote.Err = quoteapi.UserMessage(err, ErrSaveFailed)
		return
	}
	s.Quote.SavedID = saved.ID
	if s.Quote.Result == nil {
		s.Quote.Result = saved.AsResult()
	}
}

// BeginLookup clears the lookup slot and returns the trimmed identifier.
// An empty identifier sets the lookup error and never reaches the network.
func (s *State) BeginLookup(raw string) (string, bool) {
	if s.Lookup.Fetching {
		return "", false
	}
	s.Lookup.Err = ""
	s.Lookup.Quote = nil

	id := strings.TrimSpace(raw)
	if id == "" {
		s.Lookup.Err = ErrIdentifierNeeded
		return "", false
	}
	s.Lookup.Fetching = true
	return id, true
}

// FinishLookup stores the fetched quote or the lookup error.
func (s *State) FinishLookup(q *quote.FetchedQuote, err error) {
	s.Lookup.Fetching = false
	if err != nil {
		s.Lookup.Err = quoteapi.UserMessage(err, ErrLookupFailed)
		return
	}
	s.Lookup.Quote = q
}

// ClearLookup drops the fetched quote so the local draft becomes the print
// subject again.
func (s *State) ClearLookup() {
	if s.Lookup.Fetching {
		return
	}
	s.Lookup = LookupSlot{}
}

// Busy reports whether any action is in flight.
func (s *State) Busy() bool {
	return s.Health.Checking || s.Quote.Drafting || s.Quote.Saving || s.Lookup.Fetching
}
