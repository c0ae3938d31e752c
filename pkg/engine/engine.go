/*

Pool-type dispatch for the math engine. Each pool category owns one concrete
calculator per capability; the mapping from PoolType to its calculator set is
a fixed table resolved once at construction, so request paths carry no
dynamic dispatch decisions and callers never branch on pool category.

*/

package engine

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/Zen-Maxi/balancer-sdk/pkg/amm"
	"github.com/Zen-Maxi/balancer-sdk/pkg/weighted"
)

// CalculatorSet bundles the four capabilities a pool category provides.
type CalculatorSet struct {
	SpotPrice amm.SpotPricer
	Liquidity amm.LiquidityCalculator
	Join      amm.Joiner
	Exit      amm.Exiter
}

// calculators maps each supported pool type to its calculator set. Adding a
// pool family is a new table row, nothing else.
var calculators = map[amm.PoolType]CalculatorSet{
	amm.PoolTypeWeighted: {
		SpotPrice: weighted.SpotPrice{},
		Liquidity: weighted.Liquidity{},
		Join:      weighted.Join{},
		Exit:      weighted.Exit{},
	},
}

// ForType resolves the calculator set for a pool type.
func ForType(t amm.PoolType) (CalculatorSet, error) {
	set, ok := calculators[t]
	if !ok {
		return CalculatorSet{}, fmt.Errorf("%w: %s", amm.ErrUnsupportedPoolType, t)
	}
	return set, nil
}

// Engine is the uniform entry point over every pool category. It holds no
// state beyond the dispatch table, performs no I/O and never mutates a
// snapshot, so a single value is safe for concurrent use across pools.
type Engine struct{}

// New returns an engine over the built-in calculator table.
func New() Engine {
	return Engine{}
}

// ComputeSpotPrice returns the marginal price of tokenIn denominated in
// tokenOut at the snapshot's balances.
func (Engine) ComputeSpotPrice(pool amm.PoolState, tokenIn, tokenOut string) (math.LegacyDec, error) {
	set, err := ForType(pool.Type)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return set.SpotPrice.SpotPrice(pool, tokenIn, tokenOut)
}

// ComputeLiquidityValue returns the pool's weight-invariant equivalent
// balance.
func (Engine) ComputeLiquidityValue(pool amm.PoolState) (math.LegacyDec, error) {
	set, err := ForType(pool.Type)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return set.Liquidity.PoolValue(pool)
}

// LiquidityToAmounts converts a liquidity-token amount to its pro-rata basket.
func (Engine) LiquidityToAmounts(pool amm.PoolState, shares math.Int) (amm.AmountVector, error) {
	set, err := ForType(pool.Type)
	if err != nil {
		return nil, err
	}
	return set.Liquidity.SharesToAmounts(pool, shares)
}

// AmountsToLiquidity values a basket in liquidity-token units at zero price
// impact.
func (Engine) AmountsToLiquidity(pool amm.PoolState, amounts amm.AmountVector) (math.Int, error) {
	set, err := ForType(pool.Type)
	if err != nil {
		return math.Int{}, err
	}
	return set.Liquidity.AmountsToShares(pool, amounts)
}

// ComputeJoin estimates an exact-in deposit.
func (Engine) ComputeJoin(pool amm.PoolState, amountsIn amm.AmountVector, slippage math.LegacyDec) (amm.JoinResult, error) {
	set, err := ForType(pool.Type)
	if err != nil {
		return amm.JoinResult{}, err
	}
	return set.Join.Join(pool, amountsIn, slippage)
}

// ComputeExit estimates burning sharesIn, proportionally when tokenOut is
// empty or routed entirely to tokenOut otherwise.
func (Engine) ComputeExit(pool amm.PoolState, sharesIn math.Int, tokenOut string, slippage math.LegacyDec) (amm.ExitResult, error) {
	set, err := ForType(pool.Type)
	if err != nil {
		return amm.ExitResult{}, err
	}
	return set.Exit.Exit(pool, sharesIn, tokenOut, slippage)
}

// ComputeExitExactOut estimates the share burn required for exact target
// outputs.
func (Engine) ComputeExitExactOut(pool amm.PoolState, amountsOut amm.AmountVector, slippage math.LegacyDec) (amm.ExitResult, error) {
	set, err := ForType(pool.Type)
	if err != nil {
		return amm.ExitResult{}, err
	}
	return set.Exit.ExitExactOut(pool, amountsOut, slippage)
}
