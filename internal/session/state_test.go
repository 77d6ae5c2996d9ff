package session

import (
	"errors"
	"testing"

	"github.com/dockit/offert/internal/quote"
	"github.com/dockit/offert/internal/quoteapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftResult(title string) *quote.DraftResult {
	return &quote.DraftResult{
		Title:          title,
		SubtotalSEK:    decimal.NewFromInt(6680),
		ROTDiscountSEK: decimal.NewFromInt(1536),
		TotalSEK:       decimal.NewFromInt(5144),
	}
}

func TestNewState(t *testing.T) {
	s := New()
	assert.Equal(t, HealthUnknown, s.Health.Status)
	assert.Nil(t, s.Quote.Result)
	assert.Nil(t, s.Lookup.Quote)
	assert.False(t, s.Busy())
}

func TestHealth(t *testing.T) {
	s := New()
	require.True(t, s.BeginHealth())
	assert.False(t, s.BeginHealth(), "second probe while one is running")

	s.FinishHealth(`{"message":"ok"}`, nil)
	assert.Equal(t, `{"message":"ok"}`, s.Health.Status)
	assert.False(t, s.Health.Checking)

	require.True(t, s.BeginHealth())
	s.FinishHealth("", errors.New("refused"))
	assert.Equal(t, HealthFailed, s.Health.Status)
}

func TestBeginDraftValidationFailure(t *testing.T) {
	s := New()
	s.Quote.Result = draftResult("old")
	s.Quote.SavedID = "4"

	form := quote.DemoForm()
	form.SetCustomerName(" ")

	_, ok := s.BeginDraft(form)
	assert.False(t, ok)
	assert.Equal(t, "customer name missing", s.Quote.Err)
	assert.False(t, s.Quote.Drafting)
	assert.NotNil(t, s.Quote.Result, "a rejected draft keeps the previous result")
	assert.Equal(t, quote.ID("4"), s.Quote.SavedID)
}

func TestDraftFlow(t *testing.T) {
	s := New()
	s.Quote.Err = "stale"
	s.Quote.Result = draftResult("old")
	s.Quote.SavedID = "4"

	req, ok := s.BeginDraft(quote.DemoForm())
	require.True(t, ok)
	assert.Equal(t, "Dockit El & Data AB", req.CustomerName)
	assert.Empty(t, s.Quote.Err)
	assert.Nil(t, s.Quote.Result)
	assert.Empty(t, s.Quote.SavedID)
	assert.True(t, s.Quote.Drafting)

	_, again := s.BeginDraft(quote.DemoForm())
	assert.False(t, again, "draft trigger is disabled while in flight")

	s.FinishDraft(draftResult("new"), nil)
	assert.False(t, s.Quote.Drafting)
	require.NotNil(t, s.Quote.Result)
	assert.Equal(t, "new", s.Quote.Result.Title)
}

func TestDraftErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server body", quoteapi.NewHTTPError(422, "qty must be positive"), "qty must be positive"},
		{"empty body", quoteapi.NewHTTPError(500, ""), ErrDraftFailed},
		{"network", quoteapi.NewNetworkError("POST failed", errors.New("reset")), ErrDraftFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			_, ok := s.BeginDraft(quote.DemoForm())
			require.True(t, ok)
			s.FinishDraft(nil, tt.err)
			assert.Equal(t, tt.want, s.Quote.Err)
			assert.False(t, s.Quote.Drafting)
			assert.Nil(t, s.Quote.Result)
		})
	}
}

func TestSaveWithoutDraft(t *testing.T) {
	s := New()
	_, ok := s.BeginSave(quote.DemoForm())
	require.True(t, ok)
	assert.True(t, s.Quote.Saving)

	s.FinishSave(&quote.SavedQuote{ID: "17", TotalSEK: decimal.NewFromInt(900)}, nil)
	assert.False(t, s.Quote.Saving)
	assert.Equal(t, quote.ID("17"), s.Quote.SavedID)
	require.NotNil(t, s.Quote.Result)
	assert.Equal(t, quote.PlaceholderTitle, s.Quote.Result.Title)
	assert.True(t, s.Quote.Result.SubtotalSEK.IsZero())
	assert.True(t, s.Quote.Result.ROTDiscountSEK.IsZero())
	assert.Equal(t, "900", s.Quote.Result.TotalSEK.String())
}

func TestSaveKeepsDisplayedDraft(t *testing.T) {
	s := New()
	_, ok := s.BeginDraft(quote.DemoForm())
	require.True(t, ok)
	s.FinishDraft(draftResult("Preliminär offert"), nil)

	_, ok = s.BeginSave(quote.DemoForm())
	require.True(t, ok)
	assert.NotNil(t, s.Quote.Result)

	s.FinishSave(&quote.SavedQuote{ID: "5", Title: "Offert #5"}, nil)
	assert.Equal(t, quote.ID("5"), s.Quote.SavedID)
	assert.Equal(t, "Preliminär offert", s.Quote.Result.Title)
}

func TestSaveError(t *testing.T) {
	s := New()
	_, ok := s.BeginSave(quote.DemoForm())
	require.True(t, ok)
	s.FinishSave(nil, quoteapi.NewHTTPError(500, ""))
	assert.Equal(t, ErrSaveFailed, s.Quote.Err)
	assert.Empty(t, s.Quote.SavedID)
	assert.Nil(t, s.Quote.Result)
}

func TestDraftAndSaveInFlightTogether(t *testing.T) {
	s := New()
	_, ok := s.BeginDraft(quote.DemoForm())
	require.True(t, ok)
	_, ok = s.BeginSave(quote.DemoForm())
	require.True(t, ok, "save is independent of an in-flight draft")

	s.FinishSave(&quote.SavedQuote{ID: "1"}, nil)
	assert.True(t, s.Quote.Drafting)
	s.FinishDraft(draftResult("late draft"), nil)
	assert.Equal(t, "late draft", s.Quote.Result.Title)
	assert.Equal(t, quote.ID("1"), s.Quote.SavedID)
}

func TestLookupEmptyIdentifier(t *testing.T) {
	s := New()
	id, ok := s.BeginLookup("   ")
	assert.False(t, ok)
	assert.Empty(t, id)
	assert.Equal(t, ErrIdentifierNeeded, s.Lookup.Err)
	assert.False(t, s.Lookup.Fetching)
}

func TestLookupFlow(t *testing.T) {
	s := New()
	s.Lookup.Quote = &quote.FetchedQuote{ID: "old"}
	s.Lookup.Err = "stale"

	id, ok := s.BeginLookup(" 42 ")
	require.True(t, ok)
	assert.Equal(t, "42", id)
	assert.Nil(t, s.Lookup.Quote)
	assert.Empty(t, s.Lookup.Err)

	_, again := s.BeginLookup("42")
	assert.False(t, again)

	s.FinishLookup(&quote.FetchedQuote{ID: "42"}, nil)
	require.NotNil(t, s.Lookup.Quote)
	assert.Equal(t, quote.ID("42"), s.Lookup.Quote.ID)

	s.ClearLookup()
	assert.Nil(t, s.Lookup.Quote)
}

// Slots never clobber each other.
func TestLookupAndQuoteSlotsAreIndependent(t *testing.T) {
	s := New()
	_, ok := s.BeginDraft(quote.DemoForm())
	require.True(t, ok)
	s.FinishDraft(draftResult("draft"), nil)

	_, ok = s.BeginLookup("99")
	require.True(t, ok)
	s.FinishLookup(nil, quoteapi.NewHTTPError(404, "Offerten hittades inte"))

	assert.Equal(t, "Offerten hittades inte", s.Lookup.Err)
	assert.Empty(t, s.Quote.Err)
	require.NotNil(t, s.Quote.Result)
	assert.Equal(t, "draft", s.Quote.Result.Title)

	form := quote.DemoForm()
	form.SetJobSummary("")
	_, ok = s.BeginDraft(form)
	require.False(t, ok)
	assert.Equal(t, "job summary missing", s.Quote.Err)
	assert.Equal(t, "Offerten hittades inte", s.Lookup.Err)

	s.FinishLookup(nil, quoteapi.NewNetworkError("GET failed", errors.New("reset")))
	assert.Equal(t, ErrLookupFailed, s.Lookup.Err)
	assert.Equal(t, "job summary missing", s.Quote.Err)
}

func TestBusy(t *testing.T) {
	s := New()
	require.True(t, s.BeginHealth())
	assert.True(t, s.Busy())
	s.FinishHealth("ok", nil)
	assert.False(t, s.Busy())
}
