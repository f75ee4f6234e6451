// Package receipt defines the closed schema produced by the text
// interpretation pipeline: Receipt, LineItem and the Correction audit
// trail. The schema is deliberately closed (no open key-value bags) so
// that the invariants it must satisfy can be checked mechanically.
package receipt

import (
	"github.com/shopspring/decimal"
)

// PaymentMethod is the small enum a Receipt's tender resolves to.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCredit  PaymentMethod = "credit"
	PaymentDebit   PaymentMethod = "debit"
	PaymentUnknown PaymentMethod = "unknown"
)

// Category is the small enum an item's categorizer must return.
type Category string

const (
	CategoryGroceries  Category = "groceries"
	CategoryRestaurant Category = "restaurant"
	CategoryPharmacy   Category = "pharmacy"
	CategoryRetail     Category = "retail"
	CategoryOther      Category = "other"
)

// CorrectionKind enumerates the complete correction taxonomy (spec §7).
type CorrectionKind string

const (
	CorrMerchantLowConfidence  CorrectionKind = "merchant_low_confidence"
	CorrDateFallback           CorrectionKind = "date_fallback"
	CorrItemMathMismatch       CorrectionKind = "item_math_mismatch"
	CorrWeightPrefixStripped   CorrectionKind = "weight_prefix_stripped"
	CorrNegativePriceZeroed    CorrectionKind = "negative_price_zeroed"
	CorrPriceSuspicious        CorrectionKind = "price_suspicious"
	CorrQuantityNonNumeric     CorrectionKind = "quantity_non_numeric"
	CorrQuantityCapped         CorrectionKind = "quantity_capped"
	CorrSubtotalRecomputed     CorrectionKind = "subtotal_recomputed"
	CorrTotalRecomputed        CorrectionKind = "total_recomputed"
	CorrTaxEstimated           CorrectionKind = "tax_estimated"
	CorrTaxSuspicious          CorrectionKind = "tax_suspicious"
	CorrDiscountSignFixed      CorrectionKind = "discount_sign_fixed"
	CorrLineDiscardedNonItem   CorrectionKind = "line_discarded_non_item"
)

// Correction is a typed record of one automatic fix. Before/After carry
// whatever scalar the fix operated on (a string, an int, a decimal) —
// callers that want to render them uniformly should format with fmt.Sprint.
type Correction struct {
	Kind    CorrectionKind `json:"kind"`
	Before  any            `json:"before,omitempty"`
	After   any            `json:"after,omitempty"`
	Context string         `json:"context,omitempty"`
}

// LineItem is one reconciled row of the receipt.
type LineItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Category  Category        `json:"category"`
}

// Receipt is the pipeline's single output type. It is immutable once
// returned and carries no identity of its own — persistence, if any,
// is the caller's concern.
type Receipt struct {
	Merchant           string          `json:"merchant"`
	MerchantConfidence float64         `json:"merchant_confidence"`
	Date               string          `json:"date"` // YYYY-MM-DD
	Items              []LineItem      `json:"items"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	DiscountTotal      decimal.Decimal `json:"discount_total"`
	TaxTotal           decimal.Decimal `json:"tax_total"`
	ShippingTotal      decimal.Decimal `json:"shipping_total"`
	TipTotal           decimal.Decimal `json:"tip_total"`
	GrandTotal         decimal.Decimal `json:"grand_total"`
	PaymentMethod      PaymentMethod   `json:"payment_method"`
	Corrections        []Correction    `json:"corrections"`
	OCRParsed          bool            `json:"ocr_parsed"`
}

// Categorizer is the narrow interface the pipeline consults to assign a
// LineItem's Category. Implementations must always return one of the
// five category tags; Default in internal/categorize is the
// stock implementation.
type Categorizer interface {
	Categorize(name, merchant string) Category
}

// LocaleHint biases the date extractor's MM/DD vs DD/MM disambiguation.
type LocaleHint string

const (
	LocaleUS   LocaleHint = "us"
	LocaleIntl LocaleHint = "intl"
	LocaleNone LocaleHint = "none"
)
