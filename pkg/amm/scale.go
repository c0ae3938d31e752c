/*
Helpers for moving between human-readable token quantities and the native
scaled integers the engine computes with. Conversions go through LegacyDec
string parsing, never through floats, so display plumbing cannot perturb
settlement values.
*/

package amm

import (
	"fmt"

	"cosmossdk.io/math"
)

const maxDecimals = 18

// ScaleToNative converts a human-readable decimal amount string into the
// token's native scaled integer, rounding down.
func ScaleToNative(amount string, decimals uint8) (math.Int, error) {
	if decimals > maxDecimals {
		return math.ZeroInt(), fmt.Errorf("%w: %d decimals exceeds maximum %d", ErrInvalidAmount, decimals, maxDecimals)
	}
	dec, err := math.LegacyNewDecFromStr(amount)
	if err != nil {
		return math.ZeroInt(), fmt.Errorf("%w: %q is not a decimal amount", ErrInvalidAmount, amount)
	}
	if dec.IsNegative() {
		return math.ZeroInt(), fmt.Errorf("%w: %q is negative", ErrInvalidAmount, amount)
	}
	factor := math.LegacyNewDec(10).Power(uint64(decimals))
	return dec.MulTruncate(factor).TruncateInt(), nil
}

// ScaleFromNative converts a native scaled integer into a human-readable
// decimal value.
func ScaleFromNative(amount math.Int, decimals uint8) (math.LegacyDec, error) {
	if decimals > maxDecimals {
		return math.LegacyZeroDec(), fmt.Errorf("%w: %d decimals exceeds maximum %d", ErrInvalidAmount, decimals, maxDecimals)
	}
	if amount.IsNil() {
		return math.LegacyZeroDec(), fmt.Errorf("%w: amount is nil", ErrInvalidAmount)
	}
	factor := math.LegacyNewDec(10).Power(uint64(decimals))
	return math.LegacyNewDecFromInt(amount).QuoTruncate(factor), nil
}
