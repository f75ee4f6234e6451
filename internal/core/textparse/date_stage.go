package textparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/receipt-interpreter/internal/receipt"
)

// dateScanWindow bounds the date search to the header region of the
// transcript, the same "near the top" assumption the merchant resolver
// makes (spec §4.3).
const dateScanWindow = 30

var (
	reISODate    = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	reSlashDate  = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
	reDotDate    = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{2,4})\b`)
	reMonthFirst = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{4})\b`)
)

var monthIndex = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// DateStage extracts the receipt transaction date (spec §4.3).
type DateStage struct {
	// Locale biases MM/DD vs DD/MM disambiguation for ambiguous
	// slash-separated dates where both fields could be a valid month.
	Locale receipt.LocaleHint
}

func NewDateStage(locale receipt.LocaleHint) *DateStage {
	if locale == "" {
		locale = receipt.LocaleNone
	}
	return &DateStage{Locale: locale}
}

// Run returns an ISO-8601 "YYYY-MM-DD" date. When nothing in the header
// window parses as a plausible date, today is used and a date_fallback
// correction is recorded.
func (s *DateStage) Run(transcript string, today string) (date string, corrections []receipt.Correction) {
	lines := strings.Split(transcript, "\n")
	if len(lines) > dateScanWindow {
		lines = lines[:dateScanWindow]
	}
	window := strings.Join(lines, "\n")

	if d, ok := s.extract(window); ok {
		return d, nil
	}

	corrections = append(corrections, receipt.Correction{
		Kind:    receipt.CorrDateFallback,
		After:   today,
		Context: "date",
	})
	return today, corrections
}

func (s *DateStage) extract(window string) (string, bool) {
	if m := reISODate.FindStringSubmatch(window); m != nil {
		y, mo, d := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if valid(y, mo, d) {
			return iso(y, mo, d), true
		}
	}
	if m := reMonthFirst.FindStringSubmatch(window); m != nil {
		mo := monthIndex[strings.ToLower(m[1][:3])]
		d, y := atoi(m[2]), atoi(m[3])
		if valid(y, mo, d) {
			return iso(y, mo, d), true
		}
	}
	if m := reDotDate.FindStringSubmatch(window); m != nil {
		// Dot-separated dates outside the US are conventionally DD.MM.YYYY.
		d, mo, y := atoi(m[1]), atoi(m[2]), fullYear(atoi(m[3]))
		if valid(y, mo, d) {
			return iso(y, mo, d), true
		}
	}
	if m := reSlashDate.FindStringSubmatch(window); m != nil {
		a, b, y := atoi(m[1]), atoi(m[2]), fullYear(atoi(m[3]))
		mo, d, ok := s.disambiguate(a, b)
		if ok && valid(y, mo, d) {
			return iso(y, mo, d), true
		}
	}
	return "", false
}

// disambiguate resolves an ambiguous a/b slash date into (month, day).
// When one of the two fields can't possibly be a month (>12), the
// ordering is unambiguous regardless of locale hint.
func (s *DateStage) disambiguate(a, b int) (month, day int, ok bool) {
	aIsMonth := a >= 1 && a <= 12
	bIsMonth := b >= 1 && b <= 12
	switch {
	case aIsMonth && !bIsMonth:
		return a, b, true
	case !aIsMonth && bIsMonth:
		return b, a, true
	case aIsMonth && bIsMonth:
		if s.Locale == receipt.LocaleIntl {
			return b, a, true
		}
		// Default and "us" hint both read the first field as the month.
		return a, b, true
	default:
		return 0, 0, false
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func fullYear(y int) int {
	if y < 100 {
		if y < 70 {
			return 2000 + y
		}
		return 1900 + y
	}
	return y
}

func valid(y, mo, d int) bool {
	if y < 1990 || y > 2100 {
		return false
	}
	if mo < 1 || mo > 12 {
		return false
	}
	if d < 1 || d > 31 {
		return false
	}
	return true
}

func iso(y, mo, d int) string {
	return fmt.Sprintf("%04d-%02d-%02d", y, mo, d)
}
