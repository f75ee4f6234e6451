package textparse

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/receipt-interpreter/internal/receipt"
)

func staged(item receipt.LineItem) stagedItem {
	return stagedItem{LineItem: item}
}

func TestValidateStage_CapsQuantityAndZeroesNegativePrice(t *testing.T) {
	stage := NewValidateStage()
	items := []stagedItem{
		staged(receipt.LineItem{Name: "Item", Quantity: 9999, UnitPrice: dec("-2.50"), LineTotal: dec("-24997.50")}),
	}
	out, corrections := stage.Run(items)
	if assert.Len(t, out, 1) {
		assert.Equal(t, 100, out[0].Quantity)
		assert.True(t, out[0].UnitPrice.Equal(decimal.Zero))
		assert.True(t, out[0].LineTotal.Equal(decimal.Zero))
	}

	var kinds []receipt.CorrectionKind
	for _, c := range corrections {
		kinds = append(kinds, c.Kind)
	}
	assert.Contains(t, kinds, receipt.CorrQuantityCapped)
	assert.Contains(t, kinds, receipt.CorrNegativePriceZeroed)
}

func TestValidateStage_NonPositiveQuantityBecomesOne(t *testing.T) {
	stage := NewValidateStage()
	items := []stagedItem{staged(receipt.LineItem{Name: "Item", Quantity: 0, UnitPrice: dec("3.00")})}
	out, corrections := stage.Run(items)
	assert.Equal(t, 1, out[0].Quantity)
	assert.True(t, out[0].LineTotal.Equal(dec("3.00")))
	if assert.Len(t, corrections, 1) {
		assert.Equal(t, receipt.CorrQuantityNonNumeric, corrections[0].Kind)
	}
}

func TestValidateStage_SubCentPriceZeroedSilently(t *testing.T) {
	stage := NewValidateStage()
	items := []stagedItem{staged(receipt.LineItem{Name: "Item", Quantity: 1, UnitPrice: dec("0.005")})}
	out, corrections := stage.Run(items)
	assert.True(t, out[0].UnitPrice.Equal(decimal.Zero))
	assert.Empty(t, corrections)
}

func TestValidateStage_SuspiciousHighPriceNotClampedButLineTotalPreserved(t *testing.T) {
	stage := NewValidateStage()
	items := []stagedItem{staged(receipt.LineItem{Name: "Laptop", Quantity: 1, UnitPrice: dec("6000.00"), LineTotal: dec("6000.00")})}
	out, corrections := stage.Run(items)
	assert.True(t, out[0].UnitPrice.Equal(dec("6000.00")))
	assert.True(t, out[0].LineTotal.Equal(dec("6000.00")))
	if assert.Len(t, corrections, 1) {
		assert.Equal(t, receipt.CorrPriceSuspicious, corrections[0].Kind)
	}
}

func TestValidateStage_RecomputesLineTotal(t *testing.T) {
	stage := NewValidateStage()
	items := []stagedItem{staged(receipt.LineItem{Name: "Item", Quantity: 3, UnitPrice: dec("2.00"), LineTotal: dec("99.00")})}
	out, _ := stage.Run(items)
	assert.True(t, out[0].LineTotal.Equal(dec("6.00")))
}

// Pattern A's mismatch branch (spec §4.4) trusts the transcript's
// line_total; ValidateStage must not overwrite it by recomputing
// quantity*unit_price (spec §4.6's carve-out).
func TestValidateStage_TrustedExplicitTotalSkipsRecompute(t *testing.T) {
	stage := NewValidateStage()
	items := []stagedItem{
		{
			LineItem:           receipt.LineItem{Name: "Burger", Quantity: 4, UnitPrice: dec("6.00"), LineTotal: dec("23.99")},
			TrustExplicitTotal: true,
		},
	}
	out, corrections := stage.Run(items)
	assert.True(t, out[0].LineTotal.Equal(dec("23.99")), "trusted line_total must survive validation")
	assert.Empty(t, corrections)
}
