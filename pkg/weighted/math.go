/*

Shared fixed-point primitives for the weighted-pool calculators. Everything
runs on cosmossdk.io/math LegacyDec (18 decimal places) with the rounding
direction chosen per operation: amounts a user receives truncate down, amounts
a user owes round up. Fractional powers go through osmomath.Pow, the same
approximation the weighted-pool chains run on-chain, so chained results cannot
drift from settlement through an intermediate float.

*/

package weighted

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/Zen-Maxi/balancer-sdk/pkg/amm"
)

var (
	oneDec = math.LegacyOneDec()
	twoDec = math.LegacyNewDec(2)
)

// pow computes base^exp for positive base. osmomath's power series converges
// only for base < 2, so larger bases are evaluated through their reciprocal.
// The calculators only ever raise balance ratios, which keeps the reciprocal
// well inside LegacyDec precision.
func pow(base, exp math.LegacyDec) (math.LegacyDec, error) {
	if !base.IsPositive() {
		return math.LegacyDec{}, fmt.Errorf("%w: power base %s", amm.ErrInsufficientLiquidity, base)
	}
	if exp.IsZero() {
		return oneDec, nil
	}
	if base.GTE(twoDec) {
		inv := oneDec.Quo(base)
		if inv.IsZero() {
			return math.LegacyDec{}, fmt.Errorf("%w: power base %s out of range", amm.ErrInsufficientLiquidity, base)
		}
		return oneDec.Quo(osmomath.Pow(inv, exp)), nil
	}
	return osmomath.Pow(base, exp), nil
}

// feeRatio is the fraction of a single-sided amount that survives the swap
// fee: only the non-proportional (1 - weight) portion of the amount is an
// implicit swap, so that is the only portion the fee applies to.
func feeRatio(normalizedWeight, swapFee math.LegacyDec) math.LegacyDec {
	return oneDec.Sub(oneDec.Sub(normalizedWeight).Mul(swapFee))
}

// validateSlippage rejects tolerances outside [0, 1).
func validateSlippage(slippage math.LegacyDec) error {
	if slippage.IsNil() || slippage.IsNegative() || slippage.GTE(oneDec) {
		return fmt.Errorf("%w: slippage tolerance must be in [0, 1)", amm.ErrInvalidAmount)
	}
	return nil
}

// applySlippageFloor returns amount scaled by (1 - slippage), truncated down.
func applySlippageFloor(amount math.Int, slippage math.LegacyDec) math.Int {
	return math.LegacyNewDecFromInt(amount).MulTruncate(oneDec.Sub(slippage)).TruncateInt()
}

// applySlippageCeil returns amount scaled by (1 + slippage), rounded up.
func applySlippageCeil(amount math.Int, slippage math.LegacyDec) math.Int {
	return math.LegacyNewDecFromInt(amount).Mul(oneDec.Add(slippage)).Ceil().TruncateInt()
}
