package textparse

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/joseph-ayodele/receipt-interpreter/internal/receipt"
	"github.com/joseph-ayodele/receipt-interpreter/internal/receipt/merchant"
)

// titleCaser normalizes merchant names pulled from caller-supplied YAML
// override tables, which may arrive in any case (all-lower config
// files). It is never applied to the built-in table: cases.Title
// lowercases every non-initial letter of a word, which would corrupt
// names like "IKEA", "KFC", "CVS Pharmacy" and "McDonald's" that the
// default table already spells canonically.
var titleCaser = cases.Title(language.AmericanEnglish)

// defaultLowConfidenceThreshold is the spec §4.2 cutoff below which a
// merchant_low_confidence correction is recorded, used when the caller
// passes a zero or negative threshold to NewMerchantStage.
const defaultLowConfidenceThreshold = 0.5

// MerchantStage resolves the merchant name and confidence from the
// (already denoised) transcript.
type MerchantStage struct {
	Table     *merchant.Table
	Threshold float64

	// titleCase is set only when Table came from a caller-supplied
	// override rather than merchant.DefaultTable().
	titleCase bool
}

// NewMerchantStage builds a stage around a table; a nil table falls back
// to merchant.DefaultTable() and a zero threshold falls back to
// defaultLowConfidenceThreshold. A caller-supplied table has its
// resolved names title-cased; the built-in table does not.
func NewMerchantStage(table *merchant.Table, threshold float64) *MerchantStage {
	titleCase := table != nil
	if table == nil {
		table = merchant.DefaultTable()
	}
	if threshold <= 0 {
		threshold = defaultLowConfidenceThreshold
	}
	return &MerchantStage{Table: table, Threshold: threshold, titleCase: titleCase}
}

// Run resolves the merchant and emits a merchant_low_confidence
// correction when the match weight is below threshold (including the
// no-match "Unknown Store" / 0.0 case).
func (s *MerchantStage) Run(transcript string) (name string, confidence float64, corrections []receipt.Correction) {
	name, confidence = s.Table.Resolve(transcript)
	if s.titleCase {
		name = titleCaser.String(name)
	}
	if confidence < s.Threshold {
		corrections = append(corrections, receipt.Correction{
			Kind:    receipt.CorrMerchantLowConfidence,
			Before:  name,
			After:   confidence,
			Context: "merchant",
		})
	}
	return name, confidence, corrections
}
