/*

Immutable pool snapshot types shared by every calculator. A PoolState is
constructed fresh per call from caller-supplied chain data; nothing in this
package mutates it, so snapshots are safe to share across goroutines.

*/

package amm

import (
	"fmt"

	"cosmossdk.io/math"
)

// PoolType tags the pool category a snapshot belongs to. Calculator sets are
// resolved from this tag at construction time, so callers never branch on it.
type PoolType uint8

const (
	// PoolTypeWeighted is the constant-weighted (Balancer style) pool family.
	PoolTypeWeighted PoolType = iota
)

func (t PoolType) String() string {
	switch t {
	case PoolTypeWeighted:
		return "weighted"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// weightSumTolerance bounds how far the normalized weights may drift from one
// before the snapshot is rejected. On-chain weights are 1e18-scaled integers
// summing to exactly 1e18, so anything beyond dust is corrupt data.
var weightSumTolerance = math.LegacyNewDecWithPrec(1, 10)

// PoolToken is one ordered member of a pool. Balance is in the token's native
// scaled units (10^Decimals per whole token), Weight is the normalized
// fixed-point weight.
type PoolToken struct {
	Address  string         `json:"address"`
	Decimals uint8          `json:"decimals"`
	Balance  math.Int       `json:"balance"`
	Weight   math.LegacyDec `json:"weight"`

	// PreMinted marks pool-owned liquidity tokens held inside the token list
	// (phantom/pre-minted BPT). Such entries keep their index in the vector
	// space but are excluded from the math, and the engine works with the
	// virtual supply instead of the raw total.
	PreMinted bool `json:"pre_minted,omitempty"`
}

// PoolState is a point-in-time snapshot of a pool. Token order is the
// canonical index space for every AmountVector and must be stable across a
// single computation.
type PoolState struct {
	ID          string         `json:"id"`
	Type        PoolType       `json:"type"`
	Tokens      []PoolToken    `json:"tokens"`
	TotalShares math.Int       `json:"total_shares"`
	SwapFee     math.LegacyDec `json:"swap_fee"`
}

// NumTokens returns the size of the pool's index space, pre-minted entries
// included.
func (p PoolState) NumTokens() int {
	return len(p.Tokens)
}

// IndexOf returns the position of the token with the given address.
func (p PoolState) IndexOf(address string) (int, bool) {
	for i, t := range p.Tokens {
		if t.Address == address {
			return i, true
		}
	}
	return 0, false
}

// VirtualShares is the share supply the math operates on: the raw total minus
// any pre-minted balance parked inside the pool itself.
func (p PoolState) VirtualShares() math.Int {
	shares := p.TotalShares
	for _, t := range p.Tokens {
		if t.PreMinted {
			shares = shares.Sub(t.Balance)
		}
	}
	return shares
}

// Validate checks the snapshot invariants: at least two live tokens, positive
// weights summing to one within fixed-point tolerance, non-negative balances,
// a fee fraction in [0, 1) and a non-negative share supply.
func (p PoolState) Validate() error {
	live := 0
	weightSum := math.LegacyZeroDec()
	for i, t := range p.Tokens {
		if t.Balance.IsNil() || t.Balance.IsNegative() {
			return fmt.Errorf("%w: token %s (index %d) has negative balance", ErrInvalidPoolState, t.Address, i)
		}
		if t.PreMinted {
			continue
		}
		if t.Weight.IsNil() || !t.Weight.IsPositive() {
			return fmt.Errorf("%w: token %s (index %d) has non-positive weight", ErrInvalidPoolState, t.Address, i)
		}
		weightSum = weightSum.Add(t.Weight)
		live++
	}
	if live < 2 {
		return fmt.Errorf("%w: pool %s has %d live tokens, need at least 2", ErrInvalidPoolState, p.ID, live)
	}
	if weightSum.Sub(math.LegacyOneDec()).Abs().GT(weightSumTolerance) {
		return fmt.Errorf("%w: pool %s weights sum to %s, not 1", ErrInvalidPoolState, p.ID, weightSum)
	}
	if p.SwapFee.IsNil() || p.SwapFee.IsNegative() || p.SwapFee.GTE(math.LegacyOneDec()) {
		return fmt.Errorf("%w: pool %s swap fee %s outside [0, 1)", ErrInvalidPoolState, p.ID, p.SwapFee)
	}
	if p.TotalShares.IsNil() || p.TotalShares.IsNegative() {
		return fmt.Errorf("%w: pool %s has negative total shares", ErrInvalidPoolState, p.ID)
	}
	if p.VirtualShares().IsNegative() {
		return fmt.Errorf("%w: pool %s pre-minted balance exceeds total shares", ErrInvalidPoolState, p.ID)
	}
	return nil
}

// AmountVector is an ordered sequence of amounts positionally aligned with a
// pool's token order. Unspecified entries are zero, never absent.
type AmountVector []math.Int

// NewAmountVector returns a zero-filled vector for a pool with n tokens.
func NewAmountVector(n int) AmountVector {
	v := make(AmountVector, n)
	for i := range v {
		v[i] = math.ZeroInt()
	}
	return v
}

// Validate checks the vector against a pool's index space: exact length,
// non-negative entries, and zero at pre-minted indexes.
func (v AmountVector) Validate(pool PoolState) error {
	if len(v) != pool.NumTokens() {
		return fmt.Errorf("%w: got %d amounts for %d tokens", ErrMismatchedLength, len(v), pool.NumTokens())
	}
	for i, a := range v {
		if a.IsNil() || a.IsNegative() {
			return fmt.Errorf("%w: index %d", ErrInvalidAmount, i)
		}
		if pool.Tokens[i].PreMinted && !a.IsZero() {
			return fmt.Errorf("%w: index %d is a pre-minted pool token", ErrInvalidAmount, i)
		}
	}
	return nil
}

// IsZero reports whether every entry is zero.
func (v AmountVector) IsZero() bool {
	for _, a := range v {
		if !a.IsZero() {
			return false
		}
	}
	return true
}

// NonZeroCount returns how many entries are strictly positive.
func (v AmountVector) NonZeroCount() int {
	n := 0
	for _, a := range v {
		if !a.IsZero() {
			n++
		}
	}
	return n
}

// JoinResult is the outcome of a deposit estimation.
type JoinResult struct {
	// SharesOut is the liquidity-token amount the pool would mint.
	SharesOut math.Int `json:"shares_out"`
	// MinSharesOut is SharesOut with the slippage tolerance applied, suitable
	// for a minimum-out transaction guard.
	MinSharesOut math.Int `json:"min_shares_out"`
	// PriceImpact is the signed fraction of deposited value lost to the
	// implicit swap, measured against spot prices.
	PriceImpact math.LegacyDec `json:"price_impact"`
}

// ExitResult is the outcome of a withdrawal estimation.
type ExitResult struct {
	// SharesIn is the liquidity-token amount burned.
	SharesIn math.Int `json:"shares_in"`
	// MaxSharesIn is the slippage-padded burn bound; only set for exact-out
	// exits, zero otherwise.
	MaxSharesIn math.Int `json:"max_shares_in"`
	// AmountsOut are the token outputs, aligned with the pool's token order.
	AmountsOut AmountVector `json:"amounts_out"`
	// MinAmountsOut are AmountsOut with the slippage tolerance applied;
	// zero-valued for exact-out exits where the amounts are fixed.
	MinAmountsOut AmountVector `json:"min_amounts_out"`
	// PriceImpact is the signed price-impact fraction in the exit direction.
	PriceImpact math.LegacyDec `json:"price_impact"`
}
