package printview

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// collapse drops the grouping spaces, which may be any of the Unicode space
// variants depending on CLDR data.
func collapse(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f':
			return -1
		}
		return r
	}, s)
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0kr"},
		{"640", "640kr"},
		{"6680", "6680kr"},
		{"12.5", "12,5kr"},
		{"1536.256", "1536,26kr"},
		{"1250000", "1250000kr"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, collapse(Money(decimal.RequireFromString(tt.in))))
		})
	}
}

func TestMoneySuffix(t *testing.T) {
	assert.True(t, strings.HasSuffix(Money(decimal.NewFromInt(6680)), " kr"))
}

func TestDiscount(t *testing.T) {
	assert.Equal(t, "0kr", collapse(Discount(decimal.Zero)))
	assert.Equal(t, "-1536kr", collapse(Discount(decimal.NewFromInt(1536))))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "8", Number(decimal.NewFromInt(8)))
	assert.Equal(t, "1,5", Number(decimal.RequireFromString("1.5")))
}
