package quote

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation fields reported in ValidationError.Field.
const (
	FieldCustomerName  = "customer_name"
	FieldCustomerEmail = "customer_email"
	FieldJobSummary    = "job_summary"
	FieldLines         = "lines"
	FieldDescription   = "description"
	FieldKind          = "kind"
	FieldQty           = "qty"
	FieldUnitPrice     = "unit_price"
)

// ValidationError is the first rule a snapshot violates.
type ValidationError struct {
	Field   string
	Line    int // 1-based, 0 when the error is not about a line
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

func lineError(n int, field, defect string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Line:    n,
		Message: fmt.Sprintf("line %d: %s", n, defect),
	}
}

// Validate checks s and returns the first violated rule, or nil.
//
// Rules are checked in a fixed order and the first failure wins: customer
// name, email, job summary, line count, then each line in order (description,
// kind, quantity, unit price).
func Validate(s Snapshot) error {
	if strings.TrimSpace(s.CustomerName) == "" {
		return fieldError(FieldCustomerName, "customer name missing")
	}
	if strings.TrimSpace(s.CustomerEmail) == "" {
		return fieldError(FieldCustomerEmail, "email missing")
	}
	if strings.TrimSpace(s.JobSummary) == "" {
		return fieldError(FieldJobSummary, "job summary missing")
	}
	if len(s.Lines) == 0 {
		return fieldError(FieldLines, "at least one line required")
	}

	for i, l := range s.Lines {
		n := i + 1
		if strings.TrimSpace(l.Description) == "" {
			return lineError(n, FieldDescription, "description missing")
		}
		if !LineKind(strings.TrimSpace(string(l.Kind))).Valid() {
			return lineError(n, FieldKind, "invalid kind")
		}
		if qty, ok := parseQty(l.Qty); !ok || qty <= 0 {
			return lineError(n, FieldQty, "quantity must be > 0")
		}
		price, ok := parsePrice(l.UnitPrice)
		if !ok {
			return lineError(n, FieldUnitPrice, "unit price must be a number")
		}
		if price.IsNegative() {
			return lineError(n, FieldUnitPrice, "unit price cannot be negative")
		}
	}

	return nil
}

// parseQty reads a raw quantity. Empty input is zero.
func parseQty(raw string) (float64, bool) {
	s, ok := normalizeNumber(raw)
	if !ok {
		return 0, false
	}
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parsePrice reads a raw unit price. Empty input is zero.
func parsePrice(raw string) (decimal.Decimal, bool) {
	s, ok := normalizeNumber(raw)
	if !ok {
		return decimal.Zero, false
	}
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
