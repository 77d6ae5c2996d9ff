package session

import (
	"context"
	"errors"

	"github.com/dockit/offert/internal/quote"
)

// API is the part of the quote API a session needs.
type API interface {
	Health(ctx context.Context) (string, error)
	Draft(ctx context.Context, req quote.DraftRequest) (*quote.DraftResult, error)
	Save(ctx context.Context, req quote.DraftRequest) (*quote.SavedQuote, error)
	Fetch(ctx context.Context, id string) (*quote.FetchedQuote, error)
}

// ErrNotStarted is returned when an action was refused, either because its
// input was invalid or because the same action is already running. The
// reason is in the relevant error slot.
var ErrNotStarted = errors.New("action not started")

// Controller runs session actions synchronously. The CLI uses it; the
// terminal form runs the same Begin/Finish steps asynchronously.
type Controller struct {
	State *State
	API   API
}

// NewController creates a controller with a fresh state.
func NewController(api API) *Controller {
	return &Controller{State: New(), API: api}
}

// CheckHealth probes the backend.
func (c *Controller) CheckHealth(ctx context.Context) (string, error) {
	if !c.State.BeginHealth() {
		return "", ErrNotStarted
	}
	status, err := c.API.Health(ctx)
	c.State.FinishHealth(status, err)
	return c.State.Health.Status, err
}

// Draft validates and prices the form.
func (c *Controller) Draft(ctx context.Context, form *quote.Form) (*quote.DraftResult, error) {
	busy := c.State.Quote.Drafting
	req, ok := c.State.BeginDraft(form)
	if !ok {
		return nil, refused(busy, c.State.Quote.Err)
	}
	result, err := c.API.Draft(ctx, req)
	c.State.FinishDraft(result, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Save validates and persists the form.
func (c *Controller) Save(ctx context.Context, form *quote.Form) (*quote.SavedQuote, error) {
	busy := c.State.Quote.Saving
	req, ok := c.State.BeginSave(form)
	if !ok {
		return nil, refused(busy, c.State.Quote.Err)
	}
	saved, err := c.API.Save(ctx, req)
	c.State.FinishSave(saved, err)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Lookup fetches a saved quote by identifier.
func (c *Controller) Lookup(ctx context.Context, rawID string) (*quote.FetchedQuote, error) {
	busy := c.State.Lookup.Fetching
	id, ok := c.State.BeginLookup(rawID)
	if !ok {
		return nil, refused(busy, c.State.Lookup.Err)
	}
	q, err := c.API.Fetch(ctx, id)
	c.State.FinishLookup(q, err)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func refused(busy bool, msg string) error {
	if busy || msg == "" {
		return ErrNotStarted
	}
	return &RefusedError{Message: msg}
}

// RefusedError carries the message of a client-side refusal, such as a
// validation failure.
type RefusedError struct {
	Message string
}

func (e *RefusedError) Error() string { return e.Message }

// Is makes errors.Is(err, ErrNotStarted) true for refusals.
func (e *RefusedError) Is(target error) bool { return target == ErrNotStarted }
