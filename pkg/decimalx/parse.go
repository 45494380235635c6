package decimalx

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseField parses a provider string field, name is only used in the error.
func ParseField(name, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("field %s is empty", name)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("field %s: %w", name, err)
	}
	return d, nil
}

// ParseFieldOrZero treats an absent field as zero, a malformed one is still an error.
func ParseFieldOrZero(name, s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return ParseField(name, s)
}
