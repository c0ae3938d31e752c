package weighted

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/Zen-Maxi/balancer-sdk/pkg/amm"
)

func TestJoinProportional(t *testing.T) {
	pool := fiftyFiftyPool("0")

	result, err := Join{}.Join(pool, amm.AmountVector{math.NewInt(10), math.NewInt(10)}, math.LegacyZeroDec())
	require.NoError(t, err)

	// a 1% proportional deposit mints exactly 1% of the supply.
	require.Equal(t, math.NewInt(20), result.SharesOut)
	require.Equal(t, math.NewInt(20), result.MinSharesOut)
	require.True(t, result.PriceImpact.IsZero())
}

func TestJoinProportionalPaysNoFee(t *testing.T) {
	// The fee only applies to the implicit-swap portion, which a proportional
	// deposit does not have.
	pool := fiftyFiftyPool("0.01")

	result, err := Join{}.Join(pool, amm.AmountVector{math.NewInt(10), math.NewInt(10)}, math.LegacyZeroDec())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(20), result.SharesOut)
}

func TestJoinSingleToken(t *testing.T) {
	pool := fiftyFiftyPool("0")

	result, err := Join{}.Join(pool, amm.AmountVector{math.NewInt(10), math.ZeroInt()}, math.LegacyZeroDec())
	require.NoError(t, err)

	// exact value: 2000 * ((1 + 10/1000)^0.5 - 1) = 9.9751..., truncated.
	require.Equal(t, math.NewInt(9), result.SharesOut)

	// the implicit swap shows up as positive impact, well under the 1%
	// deposit size.
	require.True(t, result.PriceImpact.IsPositive())
	require.True(t, result.PriceImpact.LT(dec("0.01")))
}

func TestJoinSingleTokenFeeReducesShares(t *testing.T) {
	pool := fiftyFiftyPool("0")
	noFee, err := Join{}.Join(pool, amm.AmountVector{math.NewInt(1000), math.ZeroInt()}, math.LegacyZeroDec())
	require.NoError(t, err)

	pool = fiftyFiftyPool("0.01")
	withFee, err := Join{}.Join(pool, amm.AmountVector{math.NewInt(1000), math.ZeroInt()}, math.LegacyZeroDec())
	require.NoError(t, err)

	require.True(t, withFee.SharesOut.LT(noFee.SharesOut))
	require.True(t, withFee.PriceImpact.GT(noFee.PriceImpact))
}

func TestJoinLopsidedBetweenSingleAndProportional(t *testing.T) {
	// A lopsided deposit is worth less than its zero-impact valuation but
	// more than nothing; impact stays strictly between zero and the
	// single-token case for the same total value.
	pool := fiftyFiftyPool("0")

	lopsided, err := Join{}.Join(pool, amm.AmountVector{math.NewInt(15), math.NewInt(5)}, math.LegacyZeroDec())
	require.NoError(t, err)

	require.True(t, lopsided.PriceImpact.IsPositive())

	single, err := Join{}.Join(pool, amm.AmountVector{math.NewInt(20), math.ZeroInt()}, math.LegacyZeroDec())
	require.NoError(t, err)
	require.True(t, lopsided.PriceImpact.LT(single.PriceImpact))
	require.True(t, lopsided.SharesOut.GTE(single.SharesOut))
}

func TestJoinZeroDeposit(t *testing.T) {
	pool := fiftyFiftyPool("0")

	result, err := Join{}.Join(pool, amm.NewAmountVector(2), math.LegacyZeroDec())
	require.NoError(t, err)
	require.True(t, result.SharesOut.IsZero())
	require.True(t, result.MinSharesOut.IsZero())
	require.True(t, result.PriceImpact.IsZero())
}

func TestJoinSlippageFloor(t *testing.T) {
	pool := fiftyFiftyPool("0")

	result, err := Join{}.Join(pool, amm.AmountVector{math.NewInt(100), math.NewInt(100)}, dec("0.01"))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(200), result.SharesOut)
	require.Equal(t, math.NewInt(198), result.MinSharesOut)
}

func TestJoinEmptyPool(t *testing.T) {
	pool := fiftyFiftyPool("0")
	pool.TotalShares = math.ZeroInt()

	_, err := Join{}.Join(pool, amm.AmountVector{math.NewInt(10), math.NewInt(10)}, math.LegacyZeroDec())
	require.ErrorIs(t, err, amm.ErrInsufficientLiquidity)
}

func TestJoinMismatchedVector(t *testing.T) {
	pool := fiftyFiftyPool("0")

	_, err := Join{}.Join(pool, amm.AmountVector{math.NewInt(10)}, math.LegacyZeroDec())
	require.ErrorIs(t, err, amm.ErrMismatchedLength)
}

func TestJoinInvalidSlippage(t *testing.T) {
	pool := fiftyFiftyPool("0")

	_, err := Join{}.Join(pool, amm.AmountVector{math.NewInt(10), math.NewInt(10)}, dec("1"))
	require.ErrorIs(t, err, amm.ErrInvalidAmount)
}

func TestJoinSingleTokenMonotonic(t *testing.T) {
	// Increasing a deposit amount never decreases the minted shares, fee or
	// no fee.
	pool := fiftyFiftyPool("0.01")

	prev := math.ZeroInt()
	for amount := int64(0); amount <= 400; amount += 7 {
		result, err := Join{}.Join(pool, amm.AmountVector{math.NewInt(amount), math.ZeroInt()}, math.LegacyZeroDec())
		require.NoError(t, err)
		require.True(t, result.SharesOut.GTE(prev), "deposit %d minted %s, below %s for a smaller deposit", amount, result.SharesOut, prev)
		prev = result.SharesOut
	}
}

func TestJoinMultiTokenMonotonic(t *testing.T) {
	// Raising one leg of a fixed basket never decreases the output either.
	pool := fiftyFiftyPool("0.01")

	prev := math.ZeroInt()
	for amount := int64(0); amount <= 400; amount += 25 {
		result, err := Join{}.Join(pool, amm.AmountVector{math.NewInt(amount), math.NewInt(50)}, math.LegacyZeroDec())
		require.NoError(t, err)
		require.True(t, result.SharesOut.GTE(prev), "deposit [%d,50] minted %s, below %s for a smaller deposit", amount, result.SharesOut, prev)
		prev = result.SharesOut
	}
}

func TestJoinNeverBeatsZeroImpactValuation(t *testing.T) {
	// Minted shares can never exceed the zero-price-impact valuation of the
	// deposit, whatever its shape.
	pool := fiftyFiftyPool("0")
	deposits := []amm.AmountVector{
		{math.NewInt(10), math.NewInt(10)},
		{math.NewInt(500), math.ZeroInt()},
		{math.ZeroInt(), math.NewInt(500)},
		{math.NewInt(900), math.NewInt(100)},
		{math.NewInt(1), math.NewInt(999)},
	}

	for _, amountsIn := range deposits {
		result, err := Join{}.Join(pool, amountsIn, math.LegacyZeroDec())
		require.NoError(t, err)

		zeroImpact, err := Liquidity{}.AmountsToShares(pool, amountsIn)
		require.NoError(t, err)
		require.True(t, result.SharesOut.LTE(zeroImpact), "deposit %v minted %s over valuation %s", amountsIn, result.SharesOut, zeroImpact)
		require.False(t, result.PriceImpact.IsNegative(), "deposit %v has negative impact %s", amountsIn, result.PriceImpact)
	}
}
