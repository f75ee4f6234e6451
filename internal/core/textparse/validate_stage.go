package textparse

import (
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/receipt-interpreter/internal/money"
	"github.com/joseph-ayodele/receipt-interpreter/internal/receipt"
)

var (
	maxQuantity    = 1000
	cappedQuantity = 100
	minUnitPrice   = decimal.NewFromFloat(0.01)
	maxSanePrice   = decimal.NewFromInt(5000)
)

// ValidateStage is the per-item pass (spec §4.6) that the pipeline runs
// before reconciliation: it clamps quantities and unit prices into sane
// bounds and recomputes line totals, recording a Correction for every
// adjustment except the silent zeroing of sub-cent prices. It does not
// recheck the record-level invariants.
type ValidateStage struct{}

func NewValidateStage() *ValidateStage { return &ValidateStage{} }

// Run mutates a copy of items in place and returns the cleaned items
// plus any corrections raised. An item whose TrustExplicitTotal is set
// (Pattern A's mismatch branch, spec §4.4) keeps its transcript-sourced
// line_total rather than having it recomputed from quantity*unit_price,
// per spec §4.6's carve-out.
func (s *ValidateStage) Run(items []stagedItem) ([]receipt.LineItem, []receipt.Correction) {
	var corrections []receipt.Correction
	out := make([]receipt.LineItem, len(items))
	for i, it := range items {
		out[i] = it.LineItem
	}

	for i := range out {
		item := &out[i]
		preferExplicitTotal := items[i].TrustExplicitTotal

		switch {
		case item.Quantity <= 0:
			corrections = append(corrections, receipt.Correction{
				Kind:    receipt.CorrQuantityNonNumeric,
				Before:  item.Quantity,
				After:   1,
				Context: "item:" + item.Name,
			})
			item.Quantity = 1
		case item.Quantity > maxQuantity:
			corrections = append(corrections, receipt.Correction{
				Kind:    receipt.CorrQuantityCapped,
				Before:  item.Quantity,
				After:   cappedQuantity,
				Context: "item:" + item.Name,
			})
			item.Quantity = cappedQuantity
		}

		switch {
		case item.UnitPrice.LessThan(decimal.Zero):
			corrections = append(corrections, receipt.Correction{
				Kind:    receipt.CorrNegativePriceZeroed,
				Before:  item.UnitPrice.String(),
				After:   "0",
				Context: "item:" + item.Name,
			})
			item.UnitPrice = decimal.Zero
		case item.UnitPrice.LessThan(minUnitPrice):
			item.UnitPrice = decimal.Zero
		case item.UnitPrice.GreaterThan(maxSanePrice):
			corrections = append(corrections, receipt.Correction{
				Kind:    receipt.CorrPriceSuspicious,
				Before:  item.UnitPrice.String(),
				Context: "item:" + item.Name,
			})
			preferExplicitTotal = true
		}

		if !preferExplicitTotal {
			item.LineTotal = money.Mul(item.Quantity, item.UnitPrice)
		}
	}

	return out, corrections
}
