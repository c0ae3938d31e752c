package fetcher

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Zen-Maxi/balancer-sdk/internal/logger"
	"github.com/Zen-Maxi/balancer-sdk/pkg/amm"
)

var poolLogger = logger.GetForComponent("pool_retriever")
var ErrInvalidPoolID = errors.New("invalid pool ID")
var ErrInvalidPoolData = errors.New("invalid pool data")

// Weights and the swap fee come back from the pool contract as 1e18-scaled
// integers.
const chainDecimals = 18

var (
	selGetPoolTokens        = selector("getPoolTokens(bytes32)")
	selGetNormalizedWeights = selector("getNormalizedWeights()")
	selGetSwapFee           = selector("getSwapFeePercentage()")
	selTotalSupply          = selector("totalSupply()")
	selDecimals             = selector("decimals()")
)

// contractCaller is the subset of ethclient.Client the retriever needs.
type contractCaller interface {
	BlockNumber(ctx context.Context) (uint64, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// PoolRetriever reads weighted pool snapshots from the Balancer Vault over
// JSON-RPC. All reads for one snapshot are pinned to a single block so
// balances, weights, fee and supply are mutually consistent.
type PoolRetriever struct {
	client contractCaller
	vault  common.Address
}

// NewPoolRetriever constructs a retriever reading through the given client
// against the given Vault address.
func NewPoolRetriever(client contractCaller, vaultAddress string) (*PoolRetriever, error) {
	if client == nil {
		return nil, errors.New("contract caller cannot be nil")
	}
	if !common.IsHexAddress(vaultAddress) {
		return nil, fmt.Errorf("invalid vault address: %s", vaultAddress)
	}
	return &PoolRetriever{
		client: client,
		vault:  common.HexToAddress(vaultAddress),
	}, nil
}

// GetPool fetches the full state of the weighted pool identified by the
// 32-byte hex pool ID. The pool contract address is the leading 20 bytes of
// the ID, per the Vault's pool ID layout.
func (r *PoolRetriever) GetPool(ctx context.Context, poolID string) (amm.PoolState, error) {
	id, err := parsePoolID(poolID)
	if err != nil {
		return amm.PoolState{}, err
	}
	poolAddress := common.BytesToAddress(id[:20])

	blockNumber, err := r.client.BlockNumber(ctx)
	if err != nil {
		return amm.PoolState{}, fmt.Errorf("block number query failed: %w", err)
	}
	block := new(big.Int).SetUint64(blockNumber)

	poolLogger.Debug().
		Str("poolID", poolID).
		Str("poolAddress", poolAddress.Hex()).
		Uint64("block", blockNumber).
		Msg("Fetching pool state")

	tokens, balances, err := r.getPoolTokens(ctx, id, block)
	if err != nil {
		return amm.PoolState{}, err
	}
	if len(tokens) != len(balances) {
		return amm.PoolState{}, fmt.Errorf("%w: %d tokens but %d balances", ErrInvalidPoolData, len(tokens), len(balances))
	}

	weights, err := r.getNormalizedWeights(ctx, poolAddress, block)
	if err != nil {
		return amm.PoolState{}, err
	}

	swapFee, err := r.callUint(ctx, poolAddress, packCall(selGetSwapFee), block, "getSwapFeePercentage")
	if err != nil {
		return amm.PoolState{}, err
	}

	totalSupply, err := r.callUint(ctx, poolAddress, packCall(selTotalSupply), block, "totalSupply")
	if err != nil {
		return amm.PoolState{}, err
	}

	pool := amm.PoolState{
		ID:          strings.ToLower(poolID),
		Type:        amm.PoolTypeWeighted,
		TotalShares: sdkmath.NewIntFromBigInt(totalSupply),
		SwapFee:     sdkmath.LegacyNewDecFromBigIntWithPrec(swapFee, chainDecimals),
	}

	// Pools with pre-minted liquidity tokens register their own token in the
	// Vault; the weight list covers only the real assets.
	liveIdx := 0
	for i, token := range tokens {
		preMinted := token == poolAddress

		weight := sdkmath.LegacyZeroDec()
		if !preMinted {
			if liveIdx >= len(weights) {
				return amm.PoolState{}, fmt.Errorf("%w: %d weights for %d live tokens", ErrInvalidPoolData, len(weights), liveIdx+1)
			}
			weight = sdkmath.LegacyNewDecFromBigIntWithPrec(weights[liveIdx], chainDecimals)
			liveIdx++
		}

		decimals, err := r.callUint(ctx, token, packCall(selDecimals), block, "decimals")
		if err != nil {
			return amm.PoolState{}, err
		}
		if !decimals.IsUint64() || decimals.Uint64() > 255 {
			return amm.PoolState{}, fmt.Errorf("%w: token %s reports decimals %s", ErrInvalidPoolData, token.Hex(), decimals)
		}

		pool.Tokens = append(pool.Tokens, amm.PoolToken{
			Address:   strings.ToLower(token.Hex()),
			Decimals:  uint8(decimals.Uint64()),
			Balance:   sdkmath.NewIntFromBigInt(balances[i]),
			Weight:    weight,
			PreMinted: preMinted,
		})
	}
	if liveIdx != len(weights) {
		return amm.PoolState{}, fmt.Errorf("%w: %d weights for %d live tokens", ErrInvalidPoolData, len(weights), liveIdx)
	}

	if err := pool.Validate(); err != nil {
		poolLogger.Error().Err(err).Str("poolID", poolID).Msg("Fetched pool failed validation")
		return amm.PoolState{}, fmt.Errorf("%w: %w", ErrInvalidPoolData, err)
	}

	poolLogger.Info().
		Str("poolID", poolID).
		Int("tokens", pool.NumTokens()).
		Str("swapFee", pool.SwapFee.String()).
		Uint64("block", blockNumber).
		Msg("Fetched pool state")

	return pool, nil
}

// getPoolTokens queries the Vault for the pool's registered tokens and their
// current balances.
func (r *PoolRetriever) getPoolTokens(ctx context.Context, poolID [32]byte, block *big.Int) ([]common.Address, []*big.Int, error) {
	data := packCall(selGetPoolTokens, poolID)
	resp, err := r.call(ctx, r.vault, data, block, "getPoolTokens")
	if err != nil {
		return nil, nil, err
	}
	// Response layout: (address[] tokens, uint256[] balances, uint256 lastChangeBlock).
	tokens, err := decodeAddressArray(resp, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding getPoolTokens tokens: %w", err)
	}
	balances, err := decodeUintArray(resp, 1)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding getPoolTokens balances: %w", err)
	}
	return tokens, balances, nil
}

// getNormalizedWeights queries the pool contract for its weight vector.
func (r *PoolRetriever) getNormalizedWeights(ctx context.Context, pool common.Address, block *big.Int) ([]*big.Int, error) {
	resp, err := r.call(ctx, pool, packCall(selGetNormalizedWeights), block, "getNormalizedWeights")
	if err != nil {
		return nil, err
	}
	weights, err := decodeUintArray(resp, 0)
	if err != nil {
		return nil, fmt.Errorf("decoding getNormalizedWeights: %w", err)
	}
	return weights, nil
}

func (r *PoolRetriever) call(ctx context.Context, to common.Address, data []byte, block *big.Int, name string) ([]byte, error) {
	resp, err := r.client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, block)
	if err != nil {
		poolLogger.Error().Err(err).Str("call", name).Str("to", to.Hex()).Msg("Contract call failed")
		return nil, fmt.Errorf("%s call failed: %w", name, err)
	}
	return resp, nil
}

func (r *PoolRetriever) callUint(ctx context.Context, to common.Address, data []byte, block *big.Int, name string) (*big.Int, error) {
	resp, err := r.call(ctx, to, data, block, name)
	if err != nil {
		return nil, err
	}
	value, err := decodeUint(resp, 0)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return value, nil
}

// parsePoolID decodes a 32-byte hex pool ID, with or without 0x prefix.
func parsePoolID(poolID string) ([32]byte, error) {
	var id [32]byte
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(poolID), "0x"))
	if err != nil {
		return id, fmt.Errorf("%w: %s", ErrInvalidPoolID, poolID)
	}
	if len(raw) != 32 {
		return id, fmt.Errorf("%w: expected 32 bytes, got %d", ErrInvalidPoolID, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}
