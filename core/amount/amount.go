// Package amount converts between decimal XLM strings and integer stroops,
// the smallest unit of the native asset (1 XLM = 10,000,000 stroops).
package amount

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/stellar-blinks/blink-server-go/errors"
)

// StroopsPerXLM is the number of smallest units in one whole XLM.
const StroopsPerXLM = 10_000_000

var stroopScale = decimal.New(StroopsPerXLM, 0)

// ToStroops parses a decimal XLM amount and returns the integer stroop
// value, truncating toward zero. It fails with INVALID_AMOUNT when the
// input is not a positive decimal number, is below one stroop, or does not
// fit in an int64.
func ToStroops(xlm string) (int64, error) {
	d, err := decimal.NewFromString(xlm)
	if err != nil {
		return 0, errors.New(errors.INVALID_AMOUNT, "amount must be a decimal number", err)
	}
	if !d.IsPositive() {
		return 0, errors.New(errors.INVALID_AMOUNT, "amount must be greater than 0", nil)
	}

	stroops := d.Mul(stroopScale).Truncate(0)
	if stroops.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, errors.New(errors.INVALID_AMOUNT, "amount is too large", nil)
	}

	v := stroops.IntPart()
	if v <= 0 {
		// Positive but smaller than one stroop, e.g. "0.00000001".
		return 0, errors.New(errors.INVALID_AMOUNT, "amount is below one stroop (0.0000001 XLM)", nil)
	}
	return v, nil
}

// FromStroops renders a stroop count as a decimal XLM string for display
// and for the txnbuild operation amount. Trailing zeros are trimmed, so
// 15000000 renders as "1.5".
func FromStroops(stroops int64) string {
	return decimal.New(stroops, -7).String()
}
