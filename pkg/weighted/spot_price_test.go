package weighted

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/Zen-Maxi/balancer-sdk/pkg/amm"
)

func TestSpotPriceBalancedPool(t *testing.T) {
	pool := fiftyFiftyPool("0")

	price, err := SpotPrice{}.SpotPrice(pool, wethAddress, daiAddress)
	require.NoError(t, err)
	require.True(t, price.Equal(math.LegacyOneDec()))
}

func TestSpotPriceEightyTwenty(t *testing.T) {
	// value-per-unit of the pool in token terms: balance/weight on each leg.
	pool := amm.PoolState{
		ID:   "eighty-twenty",
		Type: amm.PoolTypeWeighted,
		Tokens: []amm.PoolToken{
			{Address: wethAddress, Decimals: 18, Balance: math.NewInt(100), Weight: dec("0.8")},
			{Address: daiAddress, Decimals: 18, Balance: math.NewInt(3000), Weight: dec("0.2")},
		},
		TotalShares: math.NewInt(1000),
		SwapFee:     math.LegacyZeroDec(),
	}

	// (3000/0.2) / (100/0.8) = 15000 / 125 = 120.
	price, err := SpotPrice{}.SpotPrice(pool, wethAddress, daiAddress)
	require.NoError(t, err)
	require.True(t, price.Equal(math.LegacyNewDec(120)))

	// The reverse direction is the reciprocal.
	reverse, err := SpotPrice{}.SpotPrice(pool, daiAddress, wethAddress)
	require.NoError(t, err)
	requireDecNear(t, dec("0.008333333333333333"), reverse, dec("0.000000000000000001"))
}

func TestSpotPriceUnknownToken(t *testing.T) {
	pool := fiftyFiftyPool("0")

	_, err := SpotPrice{}.SpotPrice(pool, "0x0000000000000000000000000000000000000000", daiAddress)
	require.ErrorIs(t, err, amm.ErrInvalidToken)

	_, err = SpotPrice{}.SpotPrice(pool, wethAddress, "0x0000000000000000000000000000000000000000")
	require.ErrorIs(t, err, amm.ErrInvalidToken)
}

func TestSpotPricePreMintedToken(t *testing.T) {
	pool := fiftyFiftyPool("0")
	pool.Tokens = append(pool.Tokens, amm.PoolToken{
		Address:   bptAddress,
		Decimals:  18,
		Balance:   math.NewInt(500),
		PreMinted: true,
	})

	_, err := SpotPrice{}.SpotPrice(pool, bptAddress, daiAddress)
	require.ErrorIs(t, err, amm.ErrInvalidToken)
}

func TestSpotPriceZeroBalanceIn(t *testing.T) {
	pool := fiftyFiftyPool("0")
	pool.Tokens[0].Balance = math.ZeroInt()

	_, err := SpotPrice{}.SpotPrice(pool, wethAddress, daiAddress)
	require.ErrorIs(t, err, amm.ErrDivisionByZero)
}
