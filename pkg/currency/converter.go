// Package currency converts monetary amounts between the currencies the bank
// deals in. Rates are quoted against a single reference currency (the LEI),
// so any pair is derived as a cross rate through the base.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the reference currency every rate in the table is quoted in.
const BaseCurrency = "LEI"

// ErrUnsupportedCurrency is returned when a currency code is absent from the
// rate table.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Converter converts amounts between supported currencies using a fixed
// table of base rates. The table is read-only after construction, so a single
// Converter is safe for concurrent use without synchronization.
type Converter struct {
	ratesToBase map[string]decimal.Decimal
}

// NewConverter returns a Converter loaded with the bank's reference rates:
// the value of one unit of each supported currency expressed in LEI.
func NewConverter() *Converter {
	return &Converter{
		ratesToBase: map[string]decimal.Decimal{
			"USD":        decimal.RequireFromString("17.50"),
			"EUR":        decimal.RequireFromString("19.00"),
			BaseCurrency: decimal.NewFromInt(1),
		},
	}
}

// Normalize uppercases and trims a currency code. All comparisons in the
// converter go through it, so lookups are case-insensitive.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsSupported reports whether the given code is present in the rate table.
func (c *Converter) IsSupported(code string) bool {
	_, ok := c.ratesToBase[Normalize(code)]
	return ok
}

// Convert converts amount from one currency to another. Amounts are rounded
// to 2 decimal places, half away from zero. Converting a currency to itself
// returns the amount unchanged, without rounding.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	fromUpper, toUpper := Normalize(from), Normalize(to)
	if fromUpper == toUpper {
		return amount, nil
	}
	rateFrom, ok := c.ratesToBase[fromUpper]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, from)
	}
	rateTo, ok := c.ratesToBase[toUpper]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, to)
	}
	// amount -> base -> target, with a single terminal rounding.
	return amount.Mul(rateFrom).DivRound(rateTo, 2), nil
}

// Rate returns the exchange rate for converting 1 unit of from into to,
// rounded to 4 decimal places. The identity pair has rate 1.
func (c *Converter) Rate(from, to string) (decimal.Decimal, error) {
	fromUpper, toUpper := Normalize(from), Normalize(to)
	if fromUpper == toUpper {
		return decimal.NewFromInt(1), nil
	}
	rateFrom, okFrom := c.ratesToBase[fromUpper]
	rateTo, okTo := c.ratesToBase[toUpper]
	if !okFrom || !okTo {
		return decimal.Zero, fmt.Errorf("%w: %s/%s", ErrUnsupportedCurrency, from, to)
	}
	return rateFrom.DivRound(rateTo, 4), nil
}

// Supported returns the list of supported currency codes.
func (c *Converter) Supported() []string {
	codes := make([]string, 0, len(c.ratesToBase))
	for code := range c.ratesToBase {
		codes = append(codes, code)
	}
	return codes
}
