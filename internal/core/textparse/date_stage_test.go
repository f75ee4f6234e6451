package textparse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/receipt-interpreter/internal/receipt"
)

func TestDateStage_ISODate(t *testing.T) {
	stage := NewDateStage(receipt.LocaleNone)
	date, corrections := stage.Run("Store Name\n2024-03-07\nMilk 3.99\n", "2099-01-01")
	assert.Equal(t, "2024-03-07", date)
	assert.Empty(t, corrections)
}

func TestDateStage_SlashDate_USDefaultsMonthFirst(t *testing.T) {
	stage := NewDateStage(receipt.LocaleNone)
	date, _ := stage.Run("Store Name\n03/07/2024\n", "2099-01-01")
	assert.Equal(t, "2024-03-07", date)
}

func TestDateStage_SlashDate_ImpossibleMonthFallsBackToDayFirst(t *testing.T) {
	stage := NewDateStage(receipt.LocaleNone)
	date, _ := stage.Run("Store Name\n31/01/2024\n", "2099-01-01")
	assert.Equal(t, "2024-01-31", date)
}

func TestDateStage_SlashDate_LocaleIntlPrefersDayFirst(t *testing.T) {
	stage := NewDateStage(receipt.LocaleIntl)
	date, _ := stage.Run("Store Name\n03/07/2024\n", "2099-01-01")
	assert.Equal(t, "2024-07-03", date)
}

func TestDateStage_MonthName(t *testing.T) {
	stage := NewDateStage(receipt.LocaleNone)
	date, _ := stage.Run("Store Name\nMar 7, 2024\n", "2099-01-01")
	assert.Equal(t, "2024-03-07", date)
}

func TestDateStage_NoDateFallsBackToToday(t *testing.T) {
	stage := NewDateStage(receipt.LocaleNone)
	date, corrections := stage.Run("Store Name\nMilk 3.99\n", "2099-01-01")
	assert.Equal(t, "2099-01-01", date)
	if assert.Len(t, corrections, 1) {
		assert.Equal(t, receipt.CorrDateFallback, corrections[0].Kind)
	}
}
