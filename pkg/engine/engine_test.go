package engine

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/Zen-Maxi/balancer-sdk/pkg/amm"
)

const (
	wethAddress = "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"
	daiAddress  = "0x6b175474e89094c44da98b954eedeac495271d0f"
)

func weightedPool() amm.PoolState {
	return amm.PoolState{
		ID:   "testpool",
		Type: amm.PoolTypeWeighted,
		Tokens: []amm.PoolToken{
			{Address: wethAddress, Decimals: 18, Balance: math.NewInt(1000), Weight: math.LegacyNewDecWithPrec(5, 1)},
			{Address: daiAddress, Decimals: 18, Balance: math.NewInt(1000), Weight: math.LegacyNewDecWithPrec(5, 1)},
		},
		TotalShares: math.NewInt(2000),
		SwapFee:     math.LegacyZeroDec(),
	}
}

func TestForType(t *testing.T) {
	set, err := ForType(amm.PoolTypeWeighted)
	require.NoError(t, err)
	require.NotNil(t, set.SpotPrice)
	require.NotNil(t, set.Liquidity)
	require.NotNil(t, set.Join)
	require.NotNil(t, set.Exit)

	_, err = ForType(amm.PoolType(99))
	require.ErrorIs(t, err, amm.ErrUnsupportedPoolType)
}

func TestEngineDispatch(t *testing.T) {
	eng := New()
	pool := weightedPool()

	price, err := eng.ComputeSpotPrice(pool, wethAddress, daiAddress)
	require.NoError(t, err)
	require.True(t, price.Equal(math.LegacyOneDec()))

	value, err := eng.ComputeLiquidityValue(pool)
	require.NoError(t, err)
	require.True(t, value.Equal(math.LegacyNewDec(2000)))

	amounts, err := eng.LiquidityToAmounts(pool, math.NewInt(20))
	require.NoError(t, err)
	require.Equal(t, amm.AmountVector{math.NewInt(10), math.NewInt(10)}, amounts)

	shares, err := eng.AmountsToLiquidity(pool, amounts)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(20), shares)

	join, err := eng.ComputeJoin(pool, amounts, math.LegacyZeroDec())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(20), join.SharesOut)

	exit, err := eng.ComputeExit(pool, math.NewInt(20), "", math.LegacyZeroDec())
	require.NoError(t, err)
	require.Equal(t, amounts, exit.AmountsOut)

	exactOut, err := eng.ComputeExitExactOut(pool, amounts, math.LegacyZeroDec())
	require.NoError(t, err)
	require.True(t, exactOut.SharesIn.GTE(math.NewInt(20)))
}

func TestEngineRejectsUnknownPoolType(t *testing.T) {
	eng := New()
	pool := weightedPool()
	pool.Type = amm.PoolType(99)

	_, err := eng.ComputeSpotPrice(pool, wethAddress, daiAddress)
	require.ErrorIs(t, err, amm.ErrUnsupportedPoolType)

	_, err = eng.ComputeJoin(pool, amm.NewAmountVector(2), math.LegacyZeroDec())
	require.ErrorIs(t, err, amm.ErrUnsupportedPoolType)

	_, err = eng.ComputeExit(pool, math.NewInt(1), "", math.LegacyZeroDec())
	require.ErrorIs(t, err, amm.ErrUnsupportedPoolType)
}
