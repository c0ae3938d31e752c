package weighted

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/Zen-Maxi/balancer-sdk/pkg/amm"
)

// Liquidity converts between liquidity-token share and underlying token
// value for constant-weighted pools.
type Liquidity struct{}

var _ amm.LiquidityCalculator = Liquidity{}

// PoolValue returns the pool's weight-invariant equivalent balance: the value
// of the whole pool measured in each token's own units is balance/weight, and
// averaging those per-token valuations yields a single figure that does not
// move when weights are shifted without trades.
func (Liquidity) PoolValue(pool amm.PoolState) (math.LegacyDec, error) {
	if err := pool.Validate(); err != nil {
		return math.LegacyDec{}, err
	}
	sum := math.LegacyZeroDec()
	live := 0
	for _, t := range pool.Tokens {
		if t.PreMinted {
			continue
		}
		sum = sum.Add(math.LegacyNewDecFromInt(t.Balance).QuoTruncate(t.Weight))
		live++
	}
	return sum.QuoTruncate(math.LegacyNewDec(int64(live))), nil
}

// SharesToAmounts converts a liquidity-token amount into its pro-rata basket
// of underlying tokens. Every entry truncates down: the user never receives
// more than the exact pro-rata value.
func (Liquidity) SharesToAmounts(pool amm.PoolState, shares math.Int) (amm.AmountVector, error) {
	if err := pool.Validate(); err != nil {
		return nil, err
	}
	if shares.IsNil() || shares.IsNegative() {
		return nil, fmt.Errorf("%w: share amount", amm.ErrInvalidAmount)
	}
	supply := pool.VirtualShares()
	if supply.IsZero() {
		return nil, fmt.Errorf("%w: pool %s has no outstanding shares", amm.ErrDivisionByZero, pool.ID)
	}
	if shares.GT(supply) {
		return nil, fmt.Errorf("%w: share amount %s exceeds outstanding supply %s", amm.ErrExceedsBalance, shares, supply)
	}

	ratio := math.LegacyNewDecFromInt(shares).QuoTruncate(math.LegacyNewDecFromInt(supply))
	out := amm.NewAmountVector(pool.NumTokens())
	for i, t := range pool.Tokens {
		if t.PreMinted {
			continue
		}
		out[i] = ratio.MulInt(t.Balance).TruncateInt()
	}
	return out, nil
}

// AmountsToShares is the inverse valuation: the liquidity-token amount a
// basket would be worth if it could be deposited with zero price impact,
// amount_i * weight_i * supply / balance_i summed over the basket. Joins and
// exits use this figure as the price-impact denominator, deliberately keeping
// valuation decoupled from the invariant-based settlement math.
func (Liquidity) AmountsToShares(pool amm.PoolState, amounts amm.AmountVector) (math.Int, error) {
	if err := pool.Validate(); err != nil {
		return math.Int{}, err
	}
	if err := amounts.Validate(pool); err != nil {
		return math.Int{}, err
	}
	supply := pool.VirtualShares()
	if amounts.IsZero() {
		return math.ZeroInt(), nil
	}
	if supply.IsZero() {
		return math.Int{}, fmt.Errorf("%w: pool %s has no outstanding shares", amm.ErrDivisionByZero, pool.ID)
	}

	total := math.LegacyZeroDec()
	for i, t := range pool.Tokens {
		if t.PreMinted || amounts[i].IsZero() {
			continue
		}
		if t.Balance.IsZero() {
			return math.Int{}, fmt.Errorf("%w: token %s (index %d)", amm.ErrDivisionByZero, t.Address, i)
		}
		term := math.LegacyNewDecFromInt(amounts[i]).
			Mul(t.Weight).
			MulInt(supply).
			QuoTruncate(math.LegacyNewDecFromInt(t.Balance))
		total = total.Add(term)
	}
	return total.TruncateInt(), nil
}
