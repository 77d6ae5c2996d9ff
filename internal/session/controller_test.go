package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dockit/offert/internal/quote"
	"github.com/dockit/offert/internal/quoteapi"
	"github.com/dockit/offert/internal/quoteapi/quoteapitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T) (*Controller, *quoteapitest.Server) {
	t.Helper()
	srv := quoteapitest.NewServer(t)
	return NewController(quoteapi.NewClient(srv.URL)), srv
}

func TestControllerHealth(t *testing.T) {
	c, _ := newController(t)
	status, err := c.CheckHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"message":"ok"}`, status)
}

func TestControllerDraftThenSave(t *testing.T) {
	c, _ := newController(t)
	ctx := context.Background()

	result, err := c.Draft(ctx, quote.DemoForm())
	require.NoError(t, err)
	assert.Equal(t, "5144", result.TotalSEK.String())

	saved, err := c.Save(ctx, quote.DemoForm())
	require.NoError(t, err)
	assert.Equal(t, quote.ID("1"), saved.ID)
	assert.Equal(t, quote.ID("1"), c.State.Quote.SavedID)
	assert.Same(t, result, c.State.Quote.Result)
}

func TestControllerValidationNeverCallsAPI(t *testing.T) {
	c, srv := newController(t)
	form := quote.DemoForm()
	form.UpdateLine(1, quote.LinePatch{Qty: quote.Ptr("0")})

	_, err := c.Draft(context.Background(), form)
	require.Error(t, err)
	assert.Equal(t, "line 2: quantity must be > 0", err.Error())
	assert.True(t, errors.Is(err, ErrNotStarted))
	assert.Empty(t, srv.Requests())
}

func TestControllerLookup(t *testing.T) {
	c, srv := newController(t)
	ctx := context.Background()
	id := srv.Seed(map[string]any{"title": "Offert #1", "total_sek": 1000})

	_, err := c.Lookup(ctx, "")
	require.Error(t, err)
	assert.Equal(t, ErrIdentifierNeeded, err.Error())
	assert.Empty(t, srv.Requests(), "empty identifier must not reach the API")

	q, err := c.Lookup(ctx, " "+id+" ")
	require.NoError(t, err)
	assert.Equal(t, "Offert #1", q.Title)

	_, err = c.Lookup(ctx, "nope")
	require.Error(t, err)
	assert.True(t, quoteapi.IsNotFoundError(err))
	assert.Contains(t, c.State.Lookup.Err, quoteapitest.NotFoundDetail)
}

func TestControllerServerError(t *testing.T) {
	c, srv := newController(t)
	srv.Fail(http.MethodPost, quoteapi.PathQuotes, http.StatusInternalServerError, "")

	_, err := c.Save(context.Background(), quote.DemoForm())
	require.Error(t, err)
	assert.Equal(t, ErrSaveFailed, c.State.Quote.Err)
	assert.False(t, c.State.Quote.Saving)
}
