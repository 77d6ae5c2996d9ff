// Package printview turns the current session into a printable quote
// document and renders it as terminal text, PDF or spreadsheet.
package printview

import (
	"strings"
	"time"

	"github.com/dockit/offert/internal/quote"
	"github.com/dockit/offert/internal/session"
	"github.com/shopspring/decimal"
)

// DateLayout is the sv-SE short date (2024-05-01).
const DateLayout = "2006-01-02"

// Source tells which result a document was built from.
type Source int

const (
	SourceDraft Source = iota
	SourceFetched
)

func (s Source) String() string {
	if s == SourceFetched {
		return "fetched"
	}
	return "draft"
}

// Company is the letterhead printed on every document.
type Company struct {
	Name   string
	Footer string
}

// DefaultCompany is used when no company is configured.
var DefaultCompany = Company{
	Name:   "Dockit El & Data AB",
	Footer: "Offerten gäller i 30 dagar. ROT-avdrag förutsätter att kunden har utrymme för avdraget.",
}

// Line is one printed quote line.
type Line struct {
	Kind         quote.LineKind
	Description  string
	Qty          decimal.Decimal
	UnitPriceSEK decimal.Decimal
	LineTotalSEK decimal.NullDecimal
}

// Total returns the line total, computing it when the API sent none.
func (l Line) Total() decimal.Decimal {
	if l.LineTotalSEK.Valid {
		return l.LineTotalSEK.Decimal
	}
	return l.Qty.Mul(l.UnitPriceSEK)
}

// Document is the print model of a quote.
type Document struct {
	Source Source

	// Number is the quote identifier, empty for unsaved drafts.
	Number string
	Date   string
	Title  string

	CustomerName  string
	CustomerEmail string
	JobSummary    string
	ApplyROT      bool

	Lines          []Line
	SubtotalSEK    decimal.Decimal
	ROTDiscountSEK decimal.Decimal
	TotalSEK       decimal.Decimal

	Company Company
}

// Options control Compose.
type Options struct {
	Company Company
	// Now defaults to time.Now.
	Now func() time.Time
}

// Compose selects the print subject: a fetched quote if there is one,
// otherwise the draft result annotated with the saved id, otherwise nil
// (nothing to print).
//
// Customer details come from the form; a fetched quote's own customer name
// wins when present. Lines come from the subject. Only a draft subject
// without lines (a save response) borrows the form's lines; a fetched quote
// prints its own lines or none.
func Compose(st *session.State, form *quote.Form, opts Options) *Document {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	company := opts.Company
	if company.Name == "" {
		company.Name = DefaultCompany.Name
	}
	if company.Footer == "" {
		company.Footer = DefaultCompany.Footer
	}

	snap := form.Snapshot()
	doc := &Document{
		Date:          now().Format(DateLayout),
		CustomerName:  strings.TrimSpace(snap.CustomerName),
		CustomerEmail: strings.TrimSpace(snap.CustomerEmail),
		JobSummary:    strings.TrimSpace(snap.JobSummary),
		ApplyROT:      snap.ApplyROT,
		Company:       company,
	}

	var (
		lines        []quote.ResultLine
		formFallback bool
	)
	switch {
	case st.Lookup.Quote != nil:
		q := st.Lookup.Quote
		doc.Source = SourceFetched
		doc.Number = firstNonEmpty(q.ID.String(), st.Quote.SavedID.String())
		doc.Title = q.Title
		doc.SubtotalSEK = q.SubtotalSEK
		doc.ROTDiscountSEK = q.ROTDiscountSEK
		doc.TotalSEK = q.TotalSEK
		doc.ApplyROT = !q.ROTDiscountSEK.IsZero()
		if name := strings.TrimSpace(q.CustomerName); name != "" {
			doc.CustomerName = name
		}
		if email := strings.TrimSpace(q.CustomerEmail); email != "" {
			doc.CustomerEmail = email
		}
		if summary := strings.TrimSpace(q.JobSummary); summary != "" {
			doc.JobSummary = summary
		}
		lines = q.Lines
	case st.Quote.Result != nil:
		r := st.Quote.Result
		doc.Source = SourceDraft
		doc.Number = st.Quote.SavedID.String()
		doc.Title = r.Title
		doc.SubtotalSEK = r.SubtotalSEK
		doc.ROTDiscountSEK = r.ROTDiscountSEK
		doc.TotalSEK = r.TotalSEK
		lines = r.Lines
		formFallback = len(lines) == 0
	default:
		return nil
	}

	for _, l := range lines {
		doc.Lines = append(doc.Lines, Line{
			Kind:         l.Kind,
			Description:  l.Description,
			Qty:          l.Qty,
			UnitPriceSEK: l.UnitPriceSEK,
			LineTotalSEK: l.LineTotalSEK,
		})
	}
	if formFallback {
		for _, l := range snap.Payload().Lines {
			doc.Lines = append(doc.Lines, Line{
				Kind:         l.Kind,
				Description:  l.Description,
				Qty:          decimal.NewFromFloat(l.Qty),
				UnitPriceSEK: l.UnitPriceSEK,
			})
		}
	}

	return doc
}

// CanPrint reports whether Compose would return a document.
func CanPrint(st *session.State) bool {
	return st.Lookup.Quote != nil || st.Quote.Result != nil
}

// FileStem is the base file name for exports of doc.
func (d *Document) FileStem() string {
	if d.Number != "" {
		return "offert-" + sanitizeFileName(d.Number)
	}
	return "offert-utkast-" + d.Date
}

func sanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
