package textparse

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/receipt-interpreter/internal/categorize"
	"github.com/joseph-ayodele/receipt-interpreter/internal/money"
	"github.com/joseph-ayodele/receipt-interpreter/internal/receipt"
	"github.com/joseph-ayodele/receipt-interpreter/internal/receipt/merchant"
)

// Pipeline runs the five-stage interpretation process described in
// spec §4 end to end: Denoise -> MerchantResolve -> DateExtract ->
// ItemExtract -> Validate -> Reconcile. Validate runs on the extracted
// items before reconciliation, so the reconciler sums the clamped,
// recomputed line totals. Every stage is a pure function
// of its inputs, so a Pipeline value carries no mutable state beyond
// the stage configuration and is safe to reuse across calls from
// multiple goroutines (spec §5).
type Pipeline struct {
	Merchant   *MerchantStage
	Date       *DateStage
	Items      *ItemsStage
	Reconcile  *ReconcileStage
	Validate   *ValidateStage
	Categorize receipt.Categorizer
}

// NewPipeline wires the default stage set. table may be nil to use the
// built-in merchant table; categorizer may be nil to use the default
// keyword categorizer.
func NewPipeline(table *merchant.Table, minMerchantConfidence float64, locale receipt.LocaleHint, categorizer receipt.Categorizer) *Pipeline {
	if categorizer == nil {
		categorizer = categorize.Default{}
	}
	return &Pipeline{
		Merchant:   NewMerchantStage(table, minMerchantConfidence),
		Date:       NewDateStage(locale),
		Items:      NewItemsStage(),
		Reconcile:  NewReconcileStage(),
		Validate:   NewValidateStage(),
		Categorize: categorizer,
	}
}

// Run executes the full pipeline against a raw transcript. today is the
// caller-supplied fallback date (spec §4.3); it never fails — per the
// spec's state machine there is no Failed state, anomalies degrade into
// corrections instead of errors.
func (p *Pipeline) Run(transcript string, today string) receipt.Receipt {
	denoised := Denoise(transcript)

	merchantName, merchantConfidence, merchantCorr := p.Merchant.Run(denoised)
	date, dateCorr := p.Date.Run(denoised, today)

	itemsRes := p.Items.Run(denoised, p.Categorize, merchantName)
	validatedItems, validateCorr := p.Validate.Run(itemsRes.Items)

	itemsSum := decimal.Zero
	for _, it := range validatedItems {
		itemsSum = itemsSum.Add(it.LineTotal)
	}

	reconcileLines := strings.Split(denoised, "\n")
	recon := p.Reconcile.Run(reconcileLines, itemsSum)

	out := receipt.Receipt{
		Merchant:           merchantName,
		MerchantConfidence: merchantConfidence,
		Date:               date,
		Items:              validatedItems,
		Subtotal:           money.Round2(orZero(recon.Subtotal)),
		DiscountTotal:      money.Round2(recon.DiscountTotal),
		TaxTotal:           money.Round2(orZero(recon.TaxTotal)),
		ShippingTotal:      money.Round2(orZero(recon.ShippingTotal)),
		TipTotal:           money.Zero,
		GrandTotal:         money.Round2(orZero(recon.GrandTotal)),
		PaymentMethod:      detectPaymentMethod(denoised),
		OCRParsed:          true,
	}

	out.Corrections = append(out.Corrections, merchantCorr...)
	out.Corrections = append(out.Corrections, dateCorr...)
	out.Corrections = append(out.Corrections, itemsRes.Corrections...)
	out.Corrections = append(out.Corrections, validateCorr...)
	out.Corrections = append(out.Corrections, recon.Corrections...)

	return out
}

var paymentKeywords = []struct {
	method   receipt.PaymentMethod
	keywords []string
}{
	{receipt.PaymentCredit, []string{"credit", "visa", "mastercard", "amex", "discover"}},
	{receipt.PaymentDebit, []string{"debit"}},
	{receipt.PaymentCash, []string{"cash tender", "cash paid", "paid cash"}},
}

func detectPaymentMethod(transcript string) receipt.PaymentMethod {
	lower := strings.ToLower(transcript)
	for _, pk := range paymentKeywords {
		for _, kw := range pk.keywords {
			if strings.Contains(lower, kw) {
				return pk.method
			}
		}
	}
	if strings.Contains(lower, "cash") {
		return receipt.PaymentCash
	}
	return receipt.PaymentUnknown
}
