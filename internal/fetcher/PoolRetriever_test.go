package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/Zen-Maxi/balancer-sdk/pkg/amm"
)

const (
	testVaultAddress = "0xBA12222222228d8Ba445958a75a0704d566BF2C8"
	testPoolID       = "0x5c6ee304399dbdb9c8ef030ab642b10820db8f56000200000000000000000014"
)

var (
	testPoolAddress = common.HexToAddress("0x5c6ee304399dbdb9c8ef030ab642b10820db8f56")
	testTokenA      = common.HexToAddress("0xba100000625a3754423978a60c9317c58a424e3d")
	testTokenB      = common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
)

// fakeCaller serves canned ABI responses keyed by target address and selector.
type fakeCaller struct {
	weights []*big.Int
}

func (f *fakeCaller) BlockNumber(ctx context.Context) (uint64, error) {
	return 17_000_000, nil
}

func (f *fakeCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if blockNumber == nil || blockNumber.Uint64() != 17_000_000 {
		return nil, fmt.Errorf("call not pinned to the expected block")
	}
	sel := msg.Data[:4]
	switch {
	case bytes.Equal(sel, selGetPoolTokens):
		var resp []byte
		resp = append(resp, word(big.NewInt(96))...)
		resp = append(resp, word(big.NewInt(192))...)
		resp = append(resp, word(big.NewInt(16_999_990))...)
		resp = append(resp, word(big.NewInt(2))...)
		resp = append(resp, addressWord(testTokenA)...)
		resp = append(resp, addressWord(testTokenB)...)
		resp = append(resp, word(big.NewInt(2))...)
		resp = append(resp, word(big.NewInt(40_000_000))...)
		resp = append(resp, word(big.NewInt(10_000_000))...)
		return resp, nil
	case bytes.Equal(sel, selGetNormalizedWeights):
		var resp []byte
		resp = append(resp, word(big.NewInt(32))...)
		resp = append(resp, word(big.NewInt(int64(len(f.weights))))...)
		for _, w := range f.weights {
			resp = append(resp, word(w)...)
		}
		return resp, nil
	case bytes.Equal(sel, selGetSwapFee):
		return word(new(big.Int).SetUint64(10_000_000_000_000_000)), nil // 0.01
	case bytes.Equal(sel, selTotalSupply):
		return word(big.NewInt(25_000_000)), nil
	case bytes.Equal(sel, selDecimals):
		return word(big.NewInt(18)), nil
	default:
		return nil, fmt.Errorf("unexpected call %x to %s", sel, msg.To.Hex())
	}
}

func eightyTwentyWeights() []*big.Int {
	return []*big.Int{
		new(big.Int).SetUint64(800_000_000_000_000_000),
		new(big.Int).SetUint64(200_000_000_000_000_000),
	}
}

func TestGetPool(t *testing.T) {
	retriever, err := NewPoolRetriever(&fakeCaller{weights: eightyTwentyWeights()}, testVaultAddress)
	require.NoError(t, err)

	pool, err := retriever.GetPool(context.Background(), testPoolID)
	require.NoError(t, err)

	require.Equal(t, testPoolID, pool.ID)
	require.Equal(t, amm.PoolTypeWeighted, pool.Type)
	require.Equal(t, sdkmath.NewInt(25_000_000), pool.TotalShares)
	require.True(t, pool.SwapFee.Equal(sdkmath.LegacyNewDecWithPrec(1, 2)))

	require.Len(t, pool.Tokens, 2)
	require.Equal(t, "0xba100000625a3754423978a60c9317c58a424e3d", pool.Tokens[0].Address)
	require.Equal(t, sdkmath.NewInt(40_000_000), pool.Tokens[0].Balance)
	require.True(t, pool.Tokens[0].Weight.Equal(sdkmath.LegacyNewDecWithPrec(8, 1)))
	require.Equal(t, uint8(18), pool.Tokens[0].Decimals)
	require.False(t, pool.Tokens[0].PreMinted)

	require.Equal(t, sdkmath.NewInt(10_000_000), pool.Tokens[1].Balance)
	require.True(t, pool.Tokens[1].Weight.Equal(sdkmath.LegacyNewDecWithPrec(2, 1)))
}

func TestGetPoolRejectsBadID(t *testing.T) {
	retriever, err := NewPoolRetriever(&fakeCaller{weights: eightyTwentyWeights()}, testVaultAddress)
	require.NoError(t, err)

	_, err = retriever.GetPool(context.Background(), "not-hex")
	require.ErrorIs(t, err, ErrInvalidPoolID)

	_, err = retriever.GetPool(context.Background(), "0xdeadbeef")
	require.ErrorIs(t, err, ErrInvalidPoolID)
}

func TestGetPoolWeightCountMismatch(t *testing.T) {
	caller := &fakeCaller{weights: []*big.Int{new(big.Int).SetUint64(1_000_000_000_000_000_000)}}
	retriever, err := NewPoolRetriever(caller, testVaultAddress)
	require.NoError(t, err)

	_, err = retriever.GetPool(context.Background(), testPoolID)
	require.ErrorIs(t, err, ErrInvalidPoolData)
}

func TestNewPoolRetrieverValidation(t *testing.T) {
	_, err := NewPoolRetriever(nil, testVaultAddress)
	require.Error(t, err)

	_, err = NewPoolRetriever(&fakeCaller{}, "not an address")
	require.Error(t, err)
}
