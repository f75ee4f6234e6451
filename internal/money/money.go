// Package money centralizes the decimal arithmetic the pipeline relies
// on. Every amount in a Receipt is decimal with two fractional digits;
// nothing here uses binary floating point; DESIGN.md explains why the ±0.02 reconciliation tolerance would be meaningless
// against float rounding error.
package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is the canonical zero amount, rounded to two places.
var Zero = decimal.Zero

// Round2 rounds to two fractional digits using banker's-safe half-up
// rounding, matching how a cash register prints cents.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// priceToken matches the price lexical rule from spec §4.4: 1-5 digit
// groups of thousands separated by commas, exactly two fractional
// digits, with an optional leading currency symbol.
var priceToken = regexp.MustCompile(`^[$£€]?(\d{1,5}(?:,\d{3})*\.\d{2})$`)

// ParsePrice parses a single price token per the lexical rule in
// spec §4.4, tolerating but discarding a leading currency symbol and
// thousands-grouping commas. Returns false if the token is not a
// well-formed price.
func ParsePrice(tok string) (decimal.Decimal, bool) {
	tok = strings.TrimSpace(tok)
	m := priceToken.FindStringSubmatch(tok)
	if m == nil {
		return decimal.Zero, false
	}
	cleaned := strings.ReplaceAll(m[1], ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return Round2(d), true
}

// Mul builds a decimal from a quantity times a decimal unit price,
// rounded to two places — the canonical line-total computation.
func Mul(qty int, unitPrice decimal.Decimal) decimal.Decimal {
	return Round2(decimal.NewFromInt(int64(qty)).Mul(unitPrice))
}

// AbsDiff returns |a - b|.
func AbsDiff(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b).Abs()
}

// WithinTolerance reports whether |a-b| <= tol.
func WithinTolerance(a, b, tol decimal.Decimal) bool {
	return AbsDiff(a, b).LessThanOrEqual(tol)
}
