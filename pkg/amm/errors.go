package amm

import "errors"

// Error definitions for zero-tolerance error handling. Every failure mode of
// the math engine maps to exactly one of these sentinels; callers wrap them
// with token/index context via fmt.Errorf and %w.
var (
	// ErrInvalidToken is returned when a token address is not a member of the pool.
	ErrInvalidToken = errors.New("token is not a member of the pool")

	// ErrMismatchedLength is returned when an amount vector length does not
	// equal the pool's token count.
	ErrMismatchedLength = errors.New("amount vector length does not match pool token count")

	// ErrDivisionByZero signals a zero balance where division is required.
	// A live pool can never reach this state, so it means the caller supplied
	// a corrupt or stale snapshot. It is not recoverable by retrying.
	ErrDivisionByZero = errors.New("zero balance where division is required")

	// ErrInsufficientLiquidity is returned when a computation would drive the
	// pool invariant to a non-positive value.
	ErrInsufficientLiquidity = errors.New("pool invariant would become non-positive")

	// ErrExceedsBalance is returned when a requested output exceeds the
	// token's pool balance or a share burn exceeds the outstanding supply.
	ErrExceedsBalance = errors.New("requested amount exceeds pool balance")

	// ErrInvalidAmount is returned for nil or negative input amounts.
	ErrInvalidAmount = errors.New("amount must be a non-negative integer")

	// ErrInvalidPoolState is returned when a pool snapshot fails validation
	// (weights not summing to one, negative balances, bad fee).
	ErrInvalidPoolState = errors.New("pool state is invalid")

	// ErrUnsupportedPoolType is returned when no calculator set is registered
	// for the pool's type.
	ErrUnsupportedPoolType = errors.New("unsupported pool type")
)
