package textparse

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/receipt-interpreter/internal/categorize"
	"github.com/joseph-ayodele/receipt-interpreter/internal/receipt"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestItemsStage_PatternA_ExactMath(t *testing.T) {
	stage := NewItemsStage()
	res := stage.Run("4 Cheese Burger 5.99 23.96\n", categorize.Default{}, "")
	if assert.Len(t, res.Items, 1) {
		item := res.Items[0]
		assert.Equal(t, "Cheese Burger", item.Name)
		assert.Equal(t, 4, item.Quantity)
		assert.True(t, item.UnitPrice.Equal(dec("5.99")))
		assert.True(t, item.LineTotal.Equal(dec("23.96")))
	}
	assert.Empty(t, res.Corrections)
}

// Mismatched line math (spec §8 scenario 3): the explicit line_total is
// trusted and unit_price is recomputed to close the arithmetic.
func TestItemsStage_PatternA_MismatchRecomputesUnitPrice(t *testing.T) {
	stage := NewItemsStage()
	res := stage.Run("4 Burger 5.99 23.99\n", categorize.Default{}, "")
	if assert.Len(t, res.Items, 1) {
		item := res.Items[0]
		assert.Equal(t, "Burger", item.Name)
		assert.Equal(t, 4, item.Quantity)
		assert.True(t, item.UnitPrice.Equal(dec("6.00")), "got %s", item.UnitPrice)
		assert.True(t, item.LineTotal.Equal(dec("23.99")))
		assert.True(t, item.TrustExplicitTotal)
	}
	if assert.Len(t, res.Corrections, 1) {
		assert.Equal(t, receipt.CorrItemMathMismatch, res.Corrections[0].Kind)
	}
}

func TestItemsStage_PatternD_SingleItem(t *testing.T) {
	stage := NewItemsStage()
	res := stage.Run("Milk 3.99\n", categorize.Default{}, "")
	if assert.Len(t, res.Items, 1) {
		item := res.Items[0]
		assert.Equal(t, "Milk", item.Name)
		assert.Equal(t, 1, item.Quantity)
		assert.True(t, item.UnitPrice.Equal(dec("3.99")))
	}
}

func TestItemsStage_WeightPrefixStripped(t *testing.T) {
	stage := NewItemsStage()
	res := stage.Run("0.778kg NET @ $5.99/kg BANANA CAVENDISH $1.32\n", categorize.Default{}, "")
	if assert.Len(t, res.Items, 1) {
		assert.Equal(t, "BANANA CAVENDISH", res.Items[0].Name)
		assert.True(t, res.Items[0].UnitPrice.Equal(dec("1.32")))
	}
	if assert.Len(t, res.Corrections, 1) {
		assert.Equal(t, receipt.CorrWeightPrefixStripped, res.Corrections[0].Kind)
	}
}

func TestItemsStage_StopsAtGrandTotalAnchor(t *testing.T) {
	stage := NewItemsStage()
	res := stage.Run("Milk 3.99\nTotal 3.99\nBread 2.49\n", categorize.Default{}, "")
	assert.Len(t, res.Items, 1)
	assert.True(t, res.StoppedEarly)
}

func TestItemsStage_SkipsMetaLines(t *testing.T) {
	stage := NewItemsStage()
	res := stage.Run("Milk 3.99\nSubtotal 3.99\nTax 0.28\n", categorize.Default{}, "")
	assert.Len(t, res.Items, 1)
}

func TestItemsStage_MultiLinePriceFusion(t *testing.T) {
	stage := NewItemsStage()
	res := stage.Run("Extended Warranty Plan 10\n.99\n", categorize.Default{}, "")
	if assert.Len(t, res.Items, 1) {
		assert.True(t, res.Items[0].UnitPrice.Equal(dec("10.99")))
	}
}

func TestItemsStage_CommaGroupedPrice(t *testing.T) {
	stage := NewItemsStage()
	res := stage.Run("Diamond Ring 1,234.56\n", categorize.Default{}, "")
	if assert.Len(t, res.Items, 1) {
		assert.True(t, res.Items[0].LineTotal.Equal(dec("1234.56")))
	}
	if assert.Len(t, res.Corrections, 1) {
		assert.Equal(t, receipt.CorrPriceSuspicious, res.Corrections[0].Kind)
	}
}

func TestItemsStage_DiscardsGarbageAfterCleaning(t *testing.T) {
	stage := NewItemsStage()
	res := stage.Run("* 5.00\n", categorize.Default{}, "")
	assert.Empty(t, res.Items)
	if assert.Len(t, res.Corrections, 1) {
		assert.Equal(t, receipt.CorrLineDiscardedNonItem, res.Corrections[0].Kind)
	}
}
