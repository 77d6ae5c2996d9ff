package printview

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var sv = message.NewPrinter(language.Swedish)

// Number formats d the Swedish way with at most two decimals: "6 680",
// "12,5".
func Number(d decimal.Decimal) string {
	return sv.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.MaxFractionDigits(2)))
}

// Money formats an SEK amount: "6 680 kr".
func Money(d decimal.Decimal) string {
	return Number(d) + " kr"
}

// Discount formats a deduction with a leading minus sign, "-1 536 kr", or
// "0 kr" when there is none.
func Discount(d decimal.Decimal) string {
	if d.IsZero() {
		return Money(d)
	}
	return "-" + Money(d.Abs())
}
