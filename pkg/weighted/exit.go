package weighted

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/Zen-Maxi/balancer-sdk/pkg/amm"
)

// Exit estimates withdrawals for constant-weighted pools, mirroring Join: a
// perfectly proportional exit pays no fee, a single-token exit pays the fee
// on its non-proportional (1 - weight) portion, and an exact-out exit rounds
// the required share burn up so the pool is never underpaid.
type Exit struct {
	liquidity Liquidity
}

var _ amm.Exiter = Exit{}

// Exit computes the token outputs for burning sharesIn. An empty tokenOut
// selects the proportional exit; otherwise the whole withdrawal is routed to
// the named token through the inverse power formula.
func (c Exit) Exit(pool amm.PoolState, sharesIn math.Int, tokenOut string, slippage math.LegacyDec) (amm.ExitResult, error) {
	if err := pool.Validate(); err != nil {
		return amm.ExitResult{}, err
	}
	if err := validateSlippage(slippage); err != nil {
		return amm.ExitResult{}, err
	}
	if sharesIn.IsNil() || sharesIn.IsNegative() {
		return amm.ExitResult{}, fmt.Errorf("%w: share amount", amm.ErrInvalidAmount)
	}
	if sharesIn.IsZero() {
		return zeroExitResult(pool), nil
	}

	supply := pool.VirtualShares()
	if supply.IsZero() {
		return amm.ExitResult{}, fmt.Errorf("%w: pool %s has no outstanding shares", amm.ErrDivisionByZero, pool.ID)
	}
	if sharesIn.GT(supply) {
		return amm.ExitResult{}, fmt.Errorf("%w: share burn %s exceeds outstanding supply %s", amm.ErrExceedsBalance, sharesIn, supply)
	}

	var (
		amountsOut amm.AmountVector
		err        error
	)
	if tokenOut == "" {
		amountsOut, err = c.liquidity.SharesToAmounts(pool, sharesIn)
	} else {
		amountsOut, err = c.singleTokenAmounts(pool, supply, sharesIn, tokenOut)
	}
	if err != nil {
		return amm.ExitResult{}, err
	}

	impact, err := c.exitImpact(pool, sharesIn, amountsOut)
	if err != nil {
		return amm.ExitResult{}, err
	}

	minOut := amm.NewAmountVector(pool.NumTokens())
	for i, a := range amountsOut {
		minOut[i] = applySlippageFloor(a, slippage)
	}
	return amm.ExitResult{
		SharesIn:      sharesIn,
		MaxSharesIn:   math.ZeroInt(),
		AmountsOut:    amountsOut,
		MinAmountsOut: minOut,
		PriceImpact:   impact,
	}, nil
}

// ExitExactOut computes the share burn required to withdraw the exact target
// amounts, Balancer V2 style: tokens withdrawn faster than the weighted
// average shrinkage pay the fee on their excess, and the final burn rounds up.
func (c Exit) ExitExactOut(pool amm.PoolState, amountsOut amm.AmountVector, slippage math.LegacyDec) (amm.ExitResult, error) {
	if err := pool.Validate(); err != nil {
		return amm.ExitResult{}, err
	}
	if err := amountsOut.Validate(pool); err != nil {
		return amm.ExitResult{}, err
	}
	if err := validateSlippage(slippage); err != nil {
		return amm.ExitResult{}, err
	}
	if amountsOut.IsZero() {
		return zeroExitResult(pool), nil
	}

	supply := pool.VirtualShares()
	if supply.IsZero() {
		return amm.ExitResult{}, fmt.Errorf("%w: pool %s has no outstanding shares", amm.ErrDivisionByZero, pool.ID)
	}

	// Per-token shrinkage ratios, before fees.
	ratios := make([]math.LegacyDec, pool.NumTokens())
	for i, t := range pool.Tokens {
		if t.PreMinted {
			continue
		}
		if t.Balance.IsZero() {
			return amm.ExitResult{}, fmt.Errorf("%w: token %s (index %d)", amm.ErrDivisionByZero, t.Address, i)
		}
		if amountsOut[i].GT(t.Balance) {
			return amm.ExitResult{}, fmt.Errorf("%w: token %s (index %d) output %s exceeds balance %s",
				amm.ErrExceedsBalance, t.Address, i, amountsOut[i], t.Balance)
		}
		ratios[i] = math.LegacyNewDecFromInt(t.Balance.Sub(amountsOut[i])).
			QuoTruncate(math.LegacyNewDecFromInt(t.Balance))
	}

	invariantRatioNoFees := math.LegacyZeroDec()
	for i, t := range pool.Tokens {
		if t.PreMinted {
			continue
		}
		invariantRatioNoFees = invariantRatioNoFees.Add(ratios[i].MulTruncate(t.Weight))
	}

	invariantRatio := oneDec
	for i, t := range pool.Tokens {
		if t.PreMinted {
			continue
		}
		balance := math.LegacyNewDecFromInt(t.Balance)
		amount := math.LegacyNewDecFromInt(amountsOut[i])

		// Tokens shrinking faster than the weighted average are being
		// implicitly swapped out; grossing the taxable part up by 1/(1-fee)
		// charges the fee to the exiting user.
		outWithFee := amount
		if ratios[i].LT(invariantRatioNoFees) {
			nonTaxable := balance.MulTruncate(oneDec.Sub(invariantRatioNoFees))
			taxable := amount.Sub(nonTaxable)
			if taxable.IsNegative() {
				taxable = math.LegacyZeroDec()
			}
			outWithFee = nonTaxable.Add(taxable.QuoRoundUp(oneDec.Sub(pool.SwapFee)))
		}

		newBalance := balance.Sub(outWithFee)
		if !newBalance.IsPositive() {
			return amm.ExitResult{}, fmt.Errorf("%w: token %s (index %d) drained by fee-adjusted output",
				amm.ErrInsufficientLiquidity, t.Address, i)
		}
		term, err := pow(newBalance.QuoTruncate(balance), t.Weight)
		if err != nil {
			return amm.ExitResult{}, err
		}
		invariantRatio = invariantRatio.MulTruncate(term)
	}

	sharesIn := math.LegacyNewDecFromInt(supply).Mul(oneDec.Sub(invariantRatio)).Ceil().TruncateInt()
	if sharesIn.GT(supply) {
		return amm.ExitResult{}, fmt.Errorf("%w: required burn %s exceeds outstanding supply %s",
			amm.ErrInsufficientLiquidity, sharesIn, supply)
	}

	impact, err := c.exitImpact(pool, sharesIn, amountsOut)
	if err != nil {
		return amm.ExitResult{}, err
	}

	out := make(amm.AmountVector, len(amountsOut))
	copy(out, amountsOut)
	return amm.ExitResult{
		SharesIn:      sharesIn,
		MaxSharesIn:   applySlippageCeil(sharesIn, slippage),
		AmountsOut:    out,
		MinAmountsOut: amm.NewAmountVector(pool.NumTokens()),
		PriceImpact:   impact,
	}, nil
}

// singleTokenAmounts routes the whole withdrawal to one token via the inverse
// closed form: balance * (1 - ((supply-sharesIn)/supply)^(1/weight)), with the
// fee charged on the non-proportional (1 - weight) portion.
func (Exit) singleTokenAmounts(pool amm.PoolState, supply, sharesIn math.Int, tokenOut string) (amm.AmountVector, error) {
	idx, ok := pool.IndexOf(tokenOut)
	if !ok {
		return nil, fmt.Errorf("%w: %s", amm.ErrInvalidToken, tokenOut)
	}
	tok := pool.Tokens[idx]
	if tok.PreMinted {
		return nil, fmt.Errorf("%w: %s is a pre-minted pool token", amm.ErrInvalidToken, tokenOut)
	}
	if tok.Balance.IsZero() {
		return nil, fmt.Errorf("%w: token %s (index %d)", amm.ErrDivisionByZero, tok.Address, idx)
	}

	// Rounding the supply ratio up makes the remaining-balance ratio err
	// high, which makes the user's output err low.
	invariantRatio := math.LegacyNewDecFromInt(supply.Sub(sharesIn)).
		QuoRoundUp(math.LegacyNewDecFromInt(supply))

	balanceRatio := math.LegacyZeroDec()
	if invariantRatio.IsPositive() {
		var err error
		balanceRatio, err = pow(invariantRatio, oneDec.QuoTruncate(tok.Weight))
		if err != nil {
			return nil, err
		}
	}

	amountNoFee := math.LegacyNewDecFromInt(tok.Balance).MulTruncate(oneDec.Sub(balanceRatio))
	taxable := amountNoFee.MulTruncate(oneDec.Sub(tok.Weight))
	nonTaxable := amountNoFee.Sub(taxable)
	amountOut := nonTaxable.Add(taxable.MulTruncate(oneDec.Sub(pool.SwapFee))).TruncateInt()
	if amountOut.GT(tok.Balance) {
		return nil, fmt.Errorf("%w: token %s (index %d) output %s exceeds balance %s",
			amm.ErrExceedsBalance, tok.Address, idx, amountOut, tok.Balance)
	}

	out := amm.NewAmountVector(pool.NumTokens())
	out[idx] = amountOut
	return out, nil
}

// exitImpact reports sharesIn / zeroImpactShares(amountsOut) - 1: the share
// premium paid over the zero-price-impact valuation of the withdrawn basket.
func (c Exit) exitImpact(pool amm.PoolState, sharesIn math.Int, amountsOut amm.AmountVector) (math.LegacyDec, error) {
	zeroImpactShares, err := c.liquidity.AmountsToShares(pool, amountsOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if !zeroImpactShares.IsPositive() {
		return math.LegacyZeroDec(), nil
	}
	return math.LegacyNewDecFromInt(sharesIn).
		QuoTruncate(math.LegacyNewDecFromInt(zeroImpactShares)).
		Sub(oneDec), nil
}

func zeroExitResult(pool amm.PoolState) amm.ExitResult {
	return amm.ExitResult{
		SharesIn:      math.ZeroInt(),
		MaxSharesIn:   math.ZeroInt(),
		AmountsOut:    amm.NewAmountVector(pool.NumTokens()),
		MinAmountsOut: amm.NewAmountVector(pool.NumTokens()),
		PriceImpact:   math.LegacyZeroDec(),
	}
}
