// Package money converts between operator-entered decimal amounts and the
// integer minor units every financial record stores.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ToCents parses a decimal dollar amount ("12500.00", "1,250.5") into cents
// exactly. Fractions of a cent are rejected rather than rounded: a budget has
// to be expressible in whole minor units.
func ToCents(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	clean = strings.TrimPrefix(clean, "$")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("unreadable amount %q", s)
	}

	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has sub-cent precision", s)
	}

	return cents.IntPart(), nil
}

// FormatCents renders minor units as a plain decimal string ("375000" cents
// -> "3750.00").
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
