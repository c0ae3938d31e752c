package weighted

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/Zen-Maxi/balancer-sdk/pkg/amm"
)

// Join estimates exact-in deposits for constant-weighted pools.
//
// Settlement follows the Balancer V2 weighted math: a deposit that is not
// proportional to current balances is treated partly as an implicit swap, and
// the swap fee applies to each token's excess over the weighted-average
// growth ratio. Price impact is computed by an independent spot-price method
// (see Liquidity.AmountsToShares) so a defect in one cannot silently corrupt
// the other.
type Join struct {
	liquidity Liquidity
}

var _ amm.Joiner = Join{}

// Join computes the liquidity-token output for the deposit and applies the
// slippage tolerance to produce the minimum-out guard.
func (c Join) Join(pool amm.PoolState, amountsIn amm.AmountVector, slippage math.LegacyDec) (amm.JoinResult, error) {
	if err := pool.Validate(); err != nil {
		return amm.JoinResult{}, err
	}
	if err := amountsIn.Validate(pool); err != nil {
		return amm.JoinResult{}, err
	}
	if err := validateSlippage(slippage); err != nil {
		return amm.JoinResult{}, err
	}

	// A zero deposit mints nothing and moves nothing.
	if amountsIn.IsZero() {
		return amm.JoinResult{
			SharesOut:    math.ZeroInt(),
			MinSharesOut: math.ZeroInt(),
			PriceImpact:  math.LegacyZeroDec(),
		}, nil
	}

	supply := pool.VirtualShares()
	if supply.IsZero() {
		return amm.JoinResult{}, fmt.Errorf("%w: pool %s has no outstanding shares", amm.ErrInsufficientLiquidity, pool.ID)
	}

	var (
		sharesDec math.LegacyDec
		err       error
	)
	if amountsIn.NonZeroCount() == 1 {
		sharesDec, err = c.singleTokenShares(pool, supply, amountsIn)
	} else {
		sharesDec, err = c.multiTokenShares(pool, supply, amountsIn)
	}
	if err != nil {
		return amm.JoinResult{}, err
	}

	impact := math.LegacyZeroDec()
	zeroImpactShares, err := c.liquidity.AmountsToShares(pool, amountsIn)
	if err != nil {
		return amm.JoinResult{}, err
	}
	if zeroImpactShares.IsPositive() {
		impact = oneDec.Sub(sharesDec.QuoTruncate(math.LegacyNewDecFromInt(zeroImpactShares)))
	}

	shares := sharesDec.TruncateInt()
	return amm.JoinResult{
		SharesOut:    shares,
		MinSharesOut: applySlippageFloor(shares, slippage),
		PriceImpact:  impact,
	}, nil
}

// singleTokenShares is the closed-form special case: with one deposit token
// the invariant ratio collapses to (1 + amountAfterFee/balance)^weight, so the
// full product is never recomputed. The fee applies only to the (1 - weight)
// non-proportional portion of the deposit.
func (Join) singleTokenShares(pool amm.PoolState, supply math.Int, amountsIn amm.AmountVector) (math.LegacyDec, error) {
	idx := -1
	for i, a := range amountsIn {
		if !a.IsZero() {
			idx = i
			break
		}
	}
	tok := pool.Tokens[idx]
	if tok.Balance.IsZero() {
		return math.LegacyDec{}, fmt.Errorf("%w: token %s (index %d)", amm.ErrDivisionByZero, tok.Address, idx)
	}

	inAfterFee := math.LegacyNewDecFromInt(amountsIn[idx]).Mul(feeRatio(tok.Weight, pool.SwapFee))
	balanceRatio := oneDec.Add(inAfterFee.QuoTruncate(math.LegacyNewDecFromInt(tok.Balance)))
	invariantRatio, err := pow(balanceRatio, tok.Weight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if invariantRatio.LTE(oneDec) {
		return math.LegacyZeroDec(), nil
	}
	return math.LegacyNewDecFromInt(supply).MulTruncate(invariantRatio.Sub(oneDec)), nil
}

// multiTokenShares handles the general exact-in deposit.
func (Join) multiTokenShares(pool amm.PoolState, supply math.Int, amountsIn amm.AmountVector) (math.LegacyDec, error) {
	// Per-token growth ratios. Any live token with a zero balance makes the
	// ratio undefined, which can only mean a corrupt snapshot.
	ratios := make([]math.LegacyDec, pool.NumTokens())
	proportional := true
	first := math.LegacyDec{}
	for i, t := range pool.Tokens {
		if t.PreMinted {
			continue
		}
		if t.Balance.IsZero() {
			return math.LegacyDec{}, fmt.Errorf("%w: token %s (index %d)", amm.ErrDivisionByZero, t.Address, i)
		}
		ratios[i] = math.LegacyNewDecFromInt(amountsIn[i]).QuoTruncate(math.LegacyNewDecFromInt(t.Balance))
		if first.IsNil() {
			first = ratios[i]
		} else if !ratios[i].Equal(first) {
			proportional = false
		}
	}

	// An exactly proportional deposit grows the invariant by the common
	// ratio, pays no fee, and needs no power approximation.
	if proportional {
		return math.LegacyNewDecFromInt(supply).MulTruncate(first), nil
	}

	// Weighted-average growth ratio including the deposit, before fees.
	// Tokens growing faster than this average are the implicit swap side and
	// pay the fee on their excess.
	invariantRatioWithFees := math.LegacyZeroDec()
	for i, t := range pool.Tokens {
		if t.PreMinted {
			continue
		}
		invariantRatioWithFees = invariantRatioWithFees.Add(oneDec.Add(ratios[i]).MulTruncate(t.Weight))
	}

	invariantRatio := oneDec
	for i, t := range pool.Tokens {
		if t.PreMinted {
			continue
		}
		balance := math.LegacyNewDecFromInt(t.Balance)
		amount := math.LegacyNewDecFromInt(amountsIn[i])

		inAfterFee := amount
		if oneDec.Add(ratios[i]).GT(invariantRatioWithFees) {
			nonTaxable := math.LegacyZeroDec()
			if invariantRatioWithFees.GT(oneDec) {
				nonTaxable = balance.MulTruncate(invariantRatioWithFees.Sub(oneDec))
			}
			taxable := amount.Sub(nonTaxable)
			if taxable.IsNegative() {
				taxable = math.LegacyZeroDec()
			}
			inAfterFee = nonTaxable.Add(taxable.MulTruncate(oneDec.Sub(pool.SwapFee)))
		}

		term, err := pow(balance.Add(inAfterFee).QuoTruncate(balance), t.Weight)
		if err != nil {
			return math.LegacyDec{}, err
		}
		invariantRatio = invariantRatio.MulTruncate(term)
	}

	if !invariantRatio.IsPositive() {
		return math.LegacyDec{}, fmt.Errorf("%w: pool %s", amm.ErrInsufficientLiquidity, pool.ID)
	}
	if invariantRatio.LTE(oneDec) {
		return math.LegacyZeroDec(), nil
	}
	return math.LegacyNewDecFromInt(supply).MulTruncate(invariantRatio.Sub(oneDec)), nil
}
