package quote

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// PlaceholderTitle is shown when a save response carries no title.
const PlaceholderTitle = "Sparad offert"

// ID is an opaque quote identifier. The API may send it as a number or a
// string.
type ID string

// UnmarshalJSON accepts JSON strings, numbers and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*id = ID(n.String())
	}
	return nil
}

func (id ID) String() string {
	return string(id)
}

// ResultLine is a priced line as returned by the API.
type ResultLine struct {
	Kind         LineKind            `json:"kind"`
	Ref          string              `json:"ref,omitempty"`
	Description  string              `json:"description"`
	Qty          decimal.Decimal     `json:"qty"`
	UnitPriceSEK decimal.Decimal     `json:"unit_price_sek"`
	LineTotalSEK decimal.NullDecimal `json:"line_total_sek"`
}

// DraftResult is the server-computed pricing of a quote.
type DraftResult struct {
	Title          string          `json:"title"`
	SubtotalSEK    decimal.Decimal `json:"subtotal_sek"`
	ROTDiscountSEK decimal.Decimal `json:"rot_discount_sek"`
	TotalSEK       decimal.Decimal `json:"total_sek"`
	Lines          []ResultLine    `json:"lines"`
}

// SavedQuote is the response to a save. Everything except ID is optional.
type SavedQuote struct {
	ID             ID
	Title          string
	SubtotalSEK    decimal.Decimal
	ROTDiscountSEK decimal.Decimal
	TotalSEK       decimal.Decimal
	Lines          []ResultLine
}

// UnmarshalJSON decodes leniently: malformed optional fields are skipped.
func (s *SavedQuote) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	*s = SavedQuote{}
	decodeField(fields, "id", &s.ID)
	decodeField(fields, "title", &s.Title)
	decodeField(fields, "subtotal_sek", &s.SubtotalSEK)
	decodeField(fields, "rot_discount_sek", &s.ROTDiscountSEK)
	decodeField(fields, "total_sek", &s.TotalSEK)
	s.Lines = decodeLines(fields)
	return nil
}

// AsResult builds a displayable result from a save response. Missing money
// is zero and a missing title becomes PlaceholderTitle.
func (s *SavedQuote) AsResult() *DraftResult {
	title := s.Title
	if strings.TrimSpace(title) == "" {
		title = PlaceholderTitle
	}
	return &DraftResult{
		Title:          title,
		SubtotalSEK:    s.SubtotalSEK,
		ROTDiscountSEK: s.ROTDiscountSEK,
		TotalSEK:       s.TotalSEK,
		Lines:          s.Lines,
	}
}

// FetchedQuote is a quote loaded by identifier. Only the fields below are
// interpreted; the full response is kept in Raw as opaque pass-through data.
type FetchedQuote struct {
	ID             ID
	Title          string
	CustomerName   string
	CustomerEmail  string
	JobSummary     string
	SubtotalSEK    decimal.Decimal
	ROTDiscountSEK decimal.Decimal
	TotalSEK       decimal.Decimal
	Lines          []ResultLine

	Raw json.RawMessage
}

// UnmarshalJSON never rejects a well-formed JSON document. Non-object
// bodies are kept in Raw with every interpreted field left empty.
func (q *FetchedQuote) UnmarshalJSON(data []byte) error {
	*q = FetchedQuote{Raw: append(json.RawMessage(nil), data...)}

	fields, err := objectFields(data)
	if err != nil {
		return nil
	}
	decodeField(fields, "id", &q.ID)
	decodeField(fields, "title", &q.Title)
	decodeField(fields, "customer_name", &q.CustomerName)
	decodeField(fields, "customer_email", &q.CustomerEmail)
	decodeField(fields, "job_summary", &q.JobSummary)
	decodeField(fields, "subtotal_sek", &q.SubtotalSEK)
	decodeField(fields, "rot_discount_sek", &q.ROTDiscountSEK)
	decodeField(fields, "total_sek", &q.TotalSEK)
	q.Lines = decodeLines(fields)
	return nil
}

// MarshalJSON writes the response exactly as it was received.
func (q FetchedQuote) MarshalJSON() ([]byte, error) {
	if len(q.Raw) == 0 {
		return []byte("null"), nil
	}
	return q.Raw, nil
}

// Attr returns a raw top-level field of the fetched record.
func (q *FetchedQuote) Attr(key string) (json.RawMessage, bool) {
	fields, err := objectFields(q.Raw)
	if err != nil {
		return nil, false
	}
	v, ok := fields[key]
	return v, ok
}

func objectFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func decodeField(fields map[string]json.RawMessage, key string, dst any) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

func decodeLines(fields map[string]json.RawMessage) []ResultLine {
	raw, ok := fields["lines"]
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	lines := make([]ResultLine, 0, len(items))
	for _, item := range items {
		f, err := objectFields(item)
		if err != nil {
			continue
		}
		var l ResultLine
		decodeField(f, "kind", &l.Kind)
		decodeField(f, "ref", &l.Ref)
		decodeField(f, "description", &l.Description)
		decodeField(f, "qty", &l.Qty)
		decodeField(f, "unit_price_sek", &l.UnitPriceSEK)
		decodeField(f, "line_total_sek", &l.LineTotalSEK)
		lines = append(lines, l)
	}
	return lines
}
