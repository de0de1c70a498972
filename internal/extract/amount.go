package extract

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount converts a localized amount string ("1,234.50",
// "1,23,456.28") into an exact decimal. Zero and negative amounts are
// rejected: a transaction notification always concerns a positive sum.
func parseAmount(raw string) (decimal.Decimal, *Error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.Zero, failf(ReasonUnparsableAmount, "empty amount")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, failf(ReasonUnparsableAmount, "cannot parse %q", raw)
	}
	if !amount.IsPositive() {
		return decimal.Zero, failf(ReasonUnparsableAmount, "amount %s is not positive", amount)
	}
	return amount, nil
}
