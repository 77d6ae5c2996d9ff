package quote

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DraftRequest is the body sent to both the draft and the save endpoints.
type DraftRequest struct {
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	JobSummary    string        `json:"job_summary"`
	ApplyROT      bool          `json:"apply_rot"`
	Lines         []PayloadLine `json:"lines"`
}

// PayloadLine is a serialized quote line.
type PayloadLine struct {
	Kind         LineKind
	Description  string
	Qty          float64
	UnitPriceSEK decimal.Decimal
	Ref          string
}

type payloadLineJSON struct {
	Kind         LineKind    `json:"kind"`
	Description  string      `json:"description"`
	Qty          json.Number `json:"qty"`
	UnitPriceSEK json.Number `json:"unit_price_sek"`
	Ref          string      `json:"ref,omitempty"`
}

// MarshalJSON writes qty and unit price as JSON numbers. decimal.Decimal
// would otherwise be quoted.
func (p PayloadLine) MarshalJSON() ([]byte, error) {
	return json.Marshal(payloadLineJSON{
		Kind:         p.Kind,
		Description:  p.Description,
		Qty:          json.Number(strconv.FormatFloat(p.Qty, 'f', -1, 64)),
		UnitPriceSEK: json.Number(p.UnitPriceSEK.String()),
		Ref:          p.Ref,
	})
}

// UnmarshalJSON accepts numbers or numeric strings for qty and unit price.
func (p *PayloadLine) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind         LineKind        `json:"kind"`
		Description  string          `json:"description"`
		Qty          json.Number     `json:"qty"`
		UnitPriceSEK decimal.Decimal `json:"unit_price_sek"`
		Ref          string          `json:"ref"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	qty, _ := parseQty(raw.Qty.String())
	*p = PayloadLine{
		Kind:         raw.Kind,
		Description:  raw.Description,
		Qty:          qty,
		UnitPriceSEK: raw.UnitPriceSEK,
		Ref:          raw.Ref,
	}
	return nil
}

// Payload serializes the snapshot. Strings are trimmed and numbers that do
// not parse become zero, whatever the raw values look like.
func (s Snapshot) Payload() DraftRequest {
	lines := make([]PayloadLine, 0, len(s.Lines))
	for _, l := range s.Lines {
		qty, ok := parseQty(l.Qty)
		if !ok {
			qty = 0
		}
		price, ok := parsePrice(l.UnitPrice)
		if !ok {
			price = decimal.Zero
		}
		lines = append(lines, PayloadLine{
			Kind:         LineKind(strings.TrimSpace(string(l.Kind))),
			Description:  strings.TrimSpace(l.Description),
			Qty:          qty,
			UnitPriceSEK: price,
			Ref:          strings.TrimSpace(l.Ref),
		})
	}

	return DraftRequest{
		CustomerName:  strings.TrimSpace(s.CustomerName),
		CustomerEmail: strings.TrimSpace(s.CustomerEmail),
		JobSummary:    strings.TrimSpace(s.JobSummary),
		ApplyROT:      s.ApplyROT,
		Lines:         lines,
	}
}
