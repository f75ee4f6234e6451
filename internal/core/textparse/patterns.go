package textparse

import "regexp"

// Shared lexical patterns used across stages. Grounded on the teacher's
// internal/ocr/confidence.go heuristics (reDate/reCurr/reAmount), carried
// forward here because the line-item and financial stages need the same
// "does this line look like it carries money" signal the OCR confidence
// heuristic used, just applied per-line instead of over a whole document.
var (
	rePriceToken = regexp.MustCompile(`[$£€]?\d{1,5}(?:,\d{3})*\.\d{2}`)
	reCurrency   = regexp.MustCompile(`(?i)\b(usd|eur|gbp|cad|aud|inr|jpy)\b|[$£€]`)
)

func hasAmountPattern(s string) bool { return rePriceToken.MatchString(s) }
