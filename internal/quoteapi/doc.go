// Package quoteapi is the HTTP client for the Dockit quote API.
//
// The backend prices quotes (including ROT-avdrag) and stores them; this
// package only moves JSON back and forth:
//
//	GET  /health        status, shown verbatim
//	POST /quotes/draft  price a quote without saving it
//	POST /quotes        save a quote, returns its id
//	GET  /quotes/{id}   load a saved quote
//	GET  /quotes        list saved quotes (skip/limit paging)
//
// # Error Handling
//
// Every failure is an *APIError with an ErrorType. Callers that only need
// the one line shown to the user call UserMessage with an operation-specific
// fallback:
//
//	result, err := client.Draft(ctx, req)
//	if err != nil {
//	    msg := quoteapi.UserMessage(err, "failed to compute quote")
//	}
//
// The typed errors are still available for the CLI and for logs, e.g.
// IsNotFoundError to tell a missing quote from a server failure.
package quoteapi
