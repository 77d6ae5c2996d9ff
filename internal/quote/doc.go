// Package quote holds the editable quote form and everything derived from it.
//
// The Form is the only writer of editable data. Everything else works on an
// immutable Snapshot: Validate checks it, Payload serializes it into the
// request body sent to the pricing API.
//
// # Raw values
//
// Line fields are kept as the raw text the user typed. Quantity and unit
// price are only interpreted when validating or serializing, so a half-typed
// value like "1," never blocks editing:
//
//	form := quote.DefaultForm()
//	form.UpdateLine(0, quote.LinePatch{Qty: quote.Ptr("8"), UnitPrice: quote.Ptr("640")})
//	if err := quote.Validate(form.Snapshot()); err != nil {
//	    return err
//	}
//	req := form.Snapshot().Payload()
//
// # Wire format
//
// Field names follow the Dockit API: money is sent and received in SEK with a
// _sek suffix (unit_price_sek, subtotal_sek, rot_discount_sek, total_sek).
package quote
