package weighted

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/Zen-Maxi/balancer-sdk/pkg/amm"
)

// SpotPrice derives marginal exchange rates for constant-weighted pools.
type SpotPrice struct{}

var _ amm.SpotPricer = SpotPrice{}

// SpotPrice returns the marginal price of tokenIn denominated in tokenOut:
// (balanceOut/weightOut) / (balanceIn/weightIn), with every division
// truncated so the reported rate is never more favorable than the on-chain
// one.
func (SpotPrice) SpotPrice(pool amm.PoolState, tokenIn, tokenOut string) (math.LegacyDec, error) {
	if err := pool.Validate(); err != nil {
		return math.LegacyDec{}, err
	}
	i, ok := pool.IndexOf(tokenIn)
	if !ok {
		return math.LegacyDec{}, fmt.Errorf("%w: %s", amm.ErrInvalidToken, tokenIn)
	}
	j, ok := pool.IndexOf(tokenOut)
	if !ok {
		return math.LegacyDec{}, fmt.Errorf("%w: %s", amm.ErrInvalidToken, tokenOut)
	}
	in, out := pool.Tokens[i], pool.Tokens[j]
	if in.PreMinted || out.PreMinted {
		return math.LegacyDec{}, fmt.Errorf("%w: pre-minted pool token has no spot price", amm.ErrInvalidToken)
	}

	denominator := math.LegacyNewDecFromInt(in.Balance).QuoTruncate(in.Weight)
	if denominator.IsZero() {
		return math.LegacyDec{}, fmt.Errorf("%w: token %s (index %d)", amm.ErrDivisionByZero, in.Address, i)
	}
	numerator := math.LegacyNewDecFromInt(out.Balance).QuoTruncate(out.Weight)
	return numerator.QuoTruncate(denominator), nil
}
