package amm

import "cosmossdk.io/math"

// The four calculator capabilities. A pool category provides one concrete
// implementation of each; callers hold the interfaces and never branch on the
// pool type. Every method is a pure function of the snapshot: no I/O, no
// mutation, safe to call concurrently.

// SpotPricer derives marginal exchange rates from balances and weights.
type SpotPricer interface {
	// SpotPrice returns the marginal price of tokenIn denominated in
	// tokenOut, rounded down so the engine never reports a rate more
	// favorable than the chain would settle.
	SpotPrice(pool PoolState, tokenIn, tokenOut string) (math.LegacyDec, error)
}

// LiquidityCalculator converts between liquidity-token share and underlying
// token value.
type LiquidityCalculator interface {
	// PoolValue returns the pool's weight-invariant equivalent balance, the
	// normalized sum of balance/weight across live tokens.
	PoolValue(pool PoolState) (math.LegacyDec, error)

	// SharesToAmounts converts a liquidity-token amount into its pro-rata
	// basket of underlying tokens, each entry rounded down.
	SharesToAmounts(pool PoolState, shares math.Int) (AmountVector, error)

	// AmountsToShares is the inverse valuation: the liquidity-token amount a
	// basket is worth at current balances, assuming zero price impact.
	AmountsToShares(pool PoolState, amounts AmountVector) (math.Int, error)
}

// Joiner estimates deposits.
type Joiner interface {
	// Join computes the liquidity-token output for an exact-in deposit
	// (single-token or multi-token) and its spot-price-based price impact.
	Join(pool PoolState, amountsIn AmountVector, slippage math.LegacyDec) (JoinResult, error)
}

// Exiter estimates withdrawals.
type Exiter interface {
	// Exit computes the token output for burning sharesIn. With tokenOut
	// empty the exit is proportional across all live tokens; otherwise the
	// whole withdrawal is routed to the named token.
	Exit(pool PoolState, sharesIn math.Int, tokenOut string, slippage math.LegacyDec) (ExitResult, error)

	// ExitExactOut computes the liquidity-token burn required to withdraw the
	// exact target amounts, rounded up so the pool is never underpaid.
	ExitExactOut(pool PoolState, amountsOut AmountVector, slippage math.LegacyDec) (ExitResult, error)
}
