// Package quoteapitest provides an in-memory stand-in for the Dockit quote
// API, for tests.
//
// It prices drafts the way the backend does (line total = qty × unit price,
// ROT-avdrag 30% of work lines capped at 50 000 kr) and keeps saved quotes in
// memory. It is not an offline pricing engine; nothing outside tests uses it.
package quoteapitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dockit/offert/internal/quote"
	"github.com/shopspring/decimal"
)

var (
	rotRate = decimal.RequireFromString("0.30")
	rotCap  = decimal.NewFromInt(50000)
)

// NotFoundDetail is the body detail returned for unknown quote ids.
const NotFoundDetail = "Offerten hittades inte"

// Request is a request recorded by the server.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type failure struct {
	status int
	body   string
}

// Server is a fake Dockit backend.
type Server struct {
	*httptest.Server

	// APIKey, when set, is required on /quotes endpoints.
	APIKey string

	mu       sync.Mutex
	nextID   int
	quotes   map[string]map[string]any
	order    []string
	requests []Request
	failures map[string]failure
	delay    time.Duration
}

// NewServer starts a fake backend that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		nextID:   1,
		quotes:   make(map[string]map[string]any),
		failures: make(map[string]failure),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Fail makes every request to "METHOD /path" answer status with body.
// Path is matched exactly, without the query string.
func (s *Server) Fail(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, body: body}
}

// Delay holds every response for d.
func (s *Server) Delay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Requests returns the requests seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Seed stores a quote record as if it had been saved, and returns its id.
func (s *Server) Seed(record map[string]any) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.nextID
	s.nextID++
	rec := map[string]any{"id": n}
	for k, v := range record {
		rec[k] = v
	}
	id := strconv.Itoa(n)
	s.quotes[id] = rec
	s.order = append(s.order, id)
	return id
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	fail, failing := s.failures[r.Method+" "+r.URL.EscapedPath()]
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if failing {
		w.WriteHeader(fail.status)
		_, _ = io.WriteString(w, fail.body)
		return
	}

	path := r.URL.Path
	if strings.HasPrefix(path, "/quotes") && s.APIKey != "" && r.Header.Get("X-DOCKIT-API-KEY") != s.APIKey {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Invalid API key"})
		return
	}

	switch {
	case r.Method == http.MethodGet && path == "/health":
		writeJSON(w, http.StatusOK, map[string]any{"message": "ok"})
	case r.Method == http.MethodPost && path == "/quotes/draft":
		s.draft(w, body)
	case r.Method == http.MethodPost && path == "/quotes":
		s.save(w, body)
	case r.Method == http.MethodGet && path == "/quotes":
		s.list(w, r)
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/quotes/"):
		s.get(w, strings.TrimPrefix(path, "/quotes/"))
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not Found"})
	}
}

func (s *Server) draft(w http.ResponseWriter, body []byte) {
	var req quote.DraftRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Price(req))
}

func (s *Server) save(w http.ResponseWriter, body []byte) {
	var req quote.DraftRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": err.Error()})
		return
	}
	priced := Price(req)
	priced["customer_name"] = req.CustomerName

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	priced["id"] = id
	priced["title"] = fmt.Sprintf("Offert #%d", id)
	key := strconv.Itoa(id)
	s.quotes[key] = priced
	s.order = append(s.order, key)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, priced)
}

func (s *Server) get(w http.ResponseWriter, id string) {
	s.mu.Lock()
	rec, ok := s.quotes[id]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": NotFoundDetail})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 50
	}
	if limit < 1 || limit > 200 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": "limit must be between 1 and 200"})
		return
	}

	s.mu.Lock()
	out := make([]map[string]any, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.quotes[s.order[i]])
	}
	s.mu.Unlock()

	if skip > len(out) {
		skip = len(out)
	}
	out = out[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	writeJSON(w, http.StatusOK, out)
}

// Price computes the backend's response to a draft request.
func Price(req quote.DraftRequest) map[string]any {
	subtotal := decimal.Zero
	work := decimal.Zero
	lines := make([]map[string]any, 0, len(req.Lines))

	for _, l := range req.Lines {
		total := decimal.NewFromFloat(l.Qty).Mul(l.UnitPriceSEK).Round(2)
		subtotal = subtotal.Add(total)
		if l.Kind == quote.KindWork {
			work = work.Add(total)
		}
		line := map[string]any{
			"kind":           string(l.Kind),
			"description":    l.Description,
			"qty":            l.Qty,
			"unit_price_sek": l.UnitPriceSEK.InexactFloat64(),
			"line_total_sek": total.InexactFloat64(),
		}
		if l.Ref != "" {
			line["ref"] = l.Ref
		}
		lines = append(lines, line)
	}

	rot := decimal.Zero
	if req.ApplyROT {
		rot = decimal.Min(work.Mul(rotRate).Round(2), rotCap)
	}

	return map[string]any{
		"title":            strings.TrimSpace("Preliminär offert för " + req.CustomerName),
		"subtotal_sek":     subtotal.InexactFloat64(),
		"rot_discount_sek": rot.InexactFloat64(),
		"total_sek":        subtotal.Sub(rot).InexactFloat64(),
		"lines":            lines,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
