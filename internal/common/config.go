package common

import (
	"os"
	"strconv"
)

// Config holds the CLI-layer configuration. The pipeline core itself
// takes everything it needs as explicit Run arguments (spec §6); this
// struct translates environment variables into those arguments, the
// same role internal/common.Config plays for the teacher's daemons.
// cmd/receiptparse does not call LoadConfig; it reads its own flags.
type Config struct {
	// MerchantTablePath optionally overrides the default merchant table
	// with a YAML file of (pattern, name, weight) rows.
	MerchantTablePath string
	// LocaleHint biases MM/DD vs DD/MM disambiguation: "us", "intl", "none".
	LocaleHint string
	// MinMerchantConfidence below which a merchant_low_confidence
	// correction fires (spec default 0.5).
	MinMerchantConfidence float64
}

// LoadConfig loads configuration from environment variables, the same
// getEnv-with-default idiom the teacher's daemons use.
func LoadConfig() *Config {
	return &Config{
		MerchantTablePath:     getEnv("RECEIPT_MERCHANT_TABLE", ""),
		LocaleHint:            getEnv("RECEIPT_LOCALE_HINT", "none"),
		MinMerchantConfidence: getEnvAsFloat64("RECEIPT_MIN_MERCHANT_CONFIDENCE", 0.5),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
