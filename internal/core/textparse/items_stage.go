package textparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/receipt-interpreter/internal/money"
	"github.com/joseph-ayodele/receipt-interpreter/internal/receipt"
)

// maxSingleItemPrice is the spec §4.4 clamp point past which a price is
// flagged as suspicious for a single line item.
var maxSingleItemPrice = decimal.NewFromInt(500)

// itemMathTolerance bounds Pattern A's |qty*unit_price - line_total|
// check. A flat ±0.02, matching the tolerance used for every other
// reconciliation identity in the spec, rather than a percentage of
// line_total: scaling by 5% of the total makes the check untriggerable
// for anything but penny items (5% of a $24 total is $1.20).
var itemMathTolerance = decimal.NewFromFloat(0.02)

// metaKeywords classifies a line as a skip line per spec §4.4 rule 2.
var metaKeywords = []string{
	"subtotal", "total", "tax", "gst", "pst", "hst", "qst", "vat",
	"amount", "balance", "change", "tender", "payment", "cash", "credit",
	"debit", "card", "receipt", "transaction", "invoice", "order",
	"discount", "coupon", "savings", "loyalty", "refund", "signature",
	"approved", "declined", "ref num", "cashier", "thank", "visit",
	"tip", "fee",
}

var reStopAnchor = regexp.MustCompile(`(?i)\b(total|grand total|amount due|balance)\b`)

var reWeightPrefix = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*(kg|lb|oz)\s*(net)?\s*@\s*\$?(\d+(?:\.\d+)?)\s*/\s*(kg|lb|oz)\b`)

// Pattern A: QTY NAME UNIT_PRICE LINE_TOTAL
var rePatternA = regexp.MustCompile(`(?i)^\s*(\d+)\s+(.+?)\s+` + priceGroup + `\s+` + priceGroup + `\s*$`)

// Pattern B: QTY x NAME PRICE / QTY × NAME PRICE
var rePatternB = regexp.MustCompile(`(?i)^\s*(\d+)\s*[x×]\s*(.+?)\s+` + priceGroup + `\s*$`)

// Pattern C: NAME .... PRICE (dot/dash leader)
var rePatternC = regexp.MustCompile(`(?i)^\s*(.+?)\s*[.\-]{2,}\s*` + priceGroup + `\s*$`)

// Pattern D: NAME PRICE
var rePatternD = regexp.MustCompile(`(?i)^\s*(.+?)\s+` + priceGroup + `\s*$`)

// Pattern E: two prices, no leading integer
var rePatternE = regexp.MustCompile(`(?i)^\s*(.+?)\s+` + priceGroup + `\s+` + priceGroup + `\s*$`)

const priceGroup = `([$£€]?\d{1,5}(?:,\d{3})*\.\d{2})`

var reLeadingInt = regexp.MustCompile(`^\s*\d+\s`)
var reOrphanDigits = regexp.MustCompile(`(\d{1,3})\s*$`)
var reFractionTail = regexp.MustCompile(`^\s*\.(\d{2})\b`)
var reGroupedTail = regexp.MustCompile(`^\s*,(\d{3})\.(\d{2})\b`)
var reLeadingGarbage = regexp.MustCompile(`^[^a-zA-Z0-9]\s*`)
var reTrailingPunct = regexp.MustCompile(`[.,;:\-\s]+$`)
var reMultiSpace = regexp.MustCompile(`\s+`)

// ItemsStage extracts line items from a (denoised) transcript per
// spec §4.4, returning the items, the corrections raised along the way
// and whether extraction stopped at a financial anchor.
type ItemsStage struct{}

func NewItemsStage() *ItemsStage { return &ItemsStage{} }

// stagedItem pairs an extracted LineItem with the stage-internal fact of
// whether its line_total came from an explicit, trusted Pattern-A value
// (spec §4.4) that ValidateStage must not overwrite by recomputing
// quantity*unit_price (spec §4.6's carve-out).
type stagedItem struct {
	receipt.LineItem
	TrustExplicitTotal bool
}

type itemsResult struct {
	Items        []stagedItem
	Corrections  []receipt.Correction
	StoppedEarly bool
}

// Run classifies each line of the transcript and applies the fusion and
// pattern-cascade rules, stopping item extraction once it crosses the
// first financial anchor. The reconciler scans the full transcript
// separately (spec §4.5), so this stage doesn't need to retain skipped
// lines for it.
func (s *ItemsStage) Run(transcript string, categorizer receipt.Categorizer, merchant string) itemsResult {
	lines := strings.Split(transcript, "\n")
	var res itemsResult

	stopped := false
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if isPureWeightLine(trimmed) {
			continue
		}
		if isMetaLine(trimmed) {
			if !stopped && reStopAnchor.MatchString(trimmed) && hasAmountPattern(trimmed) {
				stopped = true
			}
			continue
		}
		if stopped {
			continue
		}

		candidate := trimmed
		if m := reWeightPrefix.FindString(candidate); m != "" && m != candidate {
			candidate = strings.TrimSpace(strings.TrimPrefix(candidate, m))
			res.Corrections = append(res.Corrections, receipt.Correction{
				Kind:    receipt.CorrWeightPrefixStripped,
				Before:  trimmed,
				After:   candidate,
				Context: "item_line",
			})
		}

		// Multi-line price fusion: an orphan trailing digit run fused
		// with a fractional/grouped continuation on the next line.
		if i+1 < len(lines) {
			next := lines[i+1]
			if frag := reOrphanDigits.FindString(candidate); frag != "" {
				if m := reFractionTail.FindStringSubmatch(next); m != nil {
					candidate = strings.TrimSpace(reOrphanDigits.ReplaceAllString(candidate, "")) + " " + strings.TrimSpace(frag) + "." + m[1]
					i++
				} else if m := reGroupedTail.FindStringSubmatch(next); m != nil {
					candidate = strings.TrimSpace(reOrphanDigits.ReplaceAllString(candidate, "")) + " " + strings.TrimSpace(frag) + "," + m[1] + "." + m[2]
					i++
				}
			}
		}

		item, corr, ok := matchItem(candidate)
		if !ok {
			continue
		}

		name, nameOK := cleanName(item.name)
		if !nameOK {
			res.Corrections = append(res.Corrections, receipt.Correction{
				Kind:    receipt.CorrLineDiscardedNonItem,
				Before:  candidate,
				Context: "item_line",
			})
			continue
		}
		item.name = name

		if corr != nil {
			res.Corrections = append(res.Corrections, *corr)
		}

		if item.unitPrice.GreaterThan(maxSingleItemPrice) || item.lineTotal.GreaterThan(maxSingleItemPrice) {
			res.Corrections = append(res.Corrections, receipt.Correction{
				Kind:    receipt.CorrPriceSuspicious,
				Before:  item.lineTotal.String(),
				Context: "item_line:" + item.name,
			})
		}

		cat := receipt.CategoryOther
		if categorizer != nil {
			cat = categorizer.Categorize(item.name, merchant)
		}

		res.Items = append(res.Items, stagedItem{
			LineItem: receipt.LineItem{
				Name:      item.name,
				Quantity:  item.quantity,
				UnitPrice: money.Round2(item.unitPrice),
				LineTotal: money.Round2(item.lineTotal),
				Category:  cat,
			},
			TrustExplicitTotal: item.explicitTotal,
		})
	}
	res.StoppedEarly = stopped
	return res
}

func isMetaLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range metaKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isPureWeightLine(line string) bool {
	m := reWeightPrefix.FindString(line)
	return m != "" && strings.TrimSpace(m) == strings.TrimSpace(line)
}

type parsedItem struct {
	name      string
	quantity  int
	unitPrice decimal.Decimal
	lineTotal decimal.Decimal

	// explicitTotal marks a line_total trusted verbatim from the
	// transcript over a recomputed quantity*unit_price (Pattern A's
	// mismatch branch, spec §4.4).
	explicitTotal bool
}

// matchItem applies the pattern cascade in the order A, B, E, C, D,
// first match wins. E (two prices, no leading integer) is tried before
// C and D because D's lazy name group would otherwise absorb the first
// price of every E line.
func matchItem(line string) (parsedItem, *receipt.Correction, bool) {
	if m := rePatternA.FindStringSubmatch(line); m != nil {
		qty, _ := strconv.Atoi(m[1])
		if qty <= 0 {
			qty = 1
		}
		unit, ok1 := money.ParsePrice(m[3])
		total, ok2 := money.ParsePrice(m[4])
		if ok1 && ok2 {
			expected := money.Mul(qty, unit)
			if money.AbsDiff(expected, total).GreaterThan(itemMathTolerance) {
				corrected := total.Div(decimal.NewFromInt(int64(qty)))
				corr := &receipt.Correction{
					Kind:    receipt.CorrItemMathMismatch,
					Before:  expected.String(),
					After:   total.String(),
					Context: "item_line:" + strings.TrimSpace(m[2]),
				}
				return parsedItem{name: m[2], quantity: qty, unitPrice: corrected, lineTotal: total, explicitTotal: true}, corr, true
			}
			return parsedItem{name: m[2], quantity: qty, unitPrice: unit, lineTotal: total}, nil, true
		}
	}
	if m := rePatternB.FindStringSubmatch(line); m != nil {
		qty, _ := strconv.Atoi(m[1])
		if qty <= 0 {
			qty = 1
		}
		total, ok := money.ParsePrice(m[3])
		if ok {
			unit := total.Div(decimal.NewFromInt(int64(qty)))
			return parsedItem{name: m[2], quantity: qty, unitPrice: unit, lineTotal: total}, nil, true
		}
	}
	if !reLeadingInt.MatchString(line) {
		if m := rePatternE.FindStringSubmatch(line); m != nil {
			unit, ok1 := money.ParsePrice(m[2])
			total, ok2 := money.ParsePrice(m[3])
			if ok1 && ok2 {
				return parsedItem{name: m[1], quantity: 1, unitPrice: unit, lineTotal: total}, nil, true
			}
		}
	}
	if m := rePatternC.FindStringSubmatch(line); m != nil {
		p, ok := money.ParsePrice(m[2])
		if ok {
			return parsedItem{name: m[1], quantity: 1, unitPrice: p, lineTotal: p}, nil, true
		}
	}
	if m := rePatternD.FindStringSubmatch(line); m != nil {
		p, ok := money.ParsePrice(m[2])
		if ok {
			return parsedItem{name: m[1], quantity: 1, unitPrice: p, lineTotal: p}, nil, true
		}
	}
	return parsedItem{}, nil, false
}

// cleanName trims, collapses whitespace, strips trailing punctuation and
// leading single-character garbage per spec §4.4.
func cleanName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	name = reMultiSpace.ReplaceAllString(name, " ")
	name = reTrailingPunct.ReplaceAllString(name, "")
	name = reLeadingGarbage.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	return name, true
}
