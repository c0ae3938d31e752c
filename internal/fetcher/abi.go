package fetcher

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Minimal ABI encoding for the handful of read-only Vault and pool calls this
// package issues. Every value involved is a static word or a dynamic array of
// words, so full ABI machinery is unnecessary.

var ErrShortResponse = errors.New("contract response too short")

const wordSize = 32

// selector returns the 4-byte function selector for a canonical signature.
func selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

// packCall builds calldata from a selector and a sequence of 32-byte words.
func packCall(sel []byte, words ...[wordSize]byte) []byte {
	data := make([]byte, 0, len(sel)+len(words)*wordSize)
	data = append(data, sel...)
	for _, w := range words {
		data = append(data, w[:]...)
	}
	return data
}

// wordAt returns the i-th 32-byte word of an ABI response.
func wordAt(data []byte, i int) ([]byte, error) {
	start := i * wordSize
	if len(data) < start+wordSize {
		return nil, ErrShortResponse
	}
	return data[start : start+wordSize], nil
}

// decodeUint decodes the i-th word of a response as an unsigned integer.
func decodeUint(data []byte, i int) (*big.Int, error) {
	w, err := wordAt(data, i)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(w), nil
}

// arrayAt locates the dynamic array whose head pointer sits in the i-th word
// and returns its length and the index of its first element word.
func arrayAt(data []byte, i int) (length int, first int, err error) {
	offsetWord, err := decodeUint(data, i)
	if err != nil {
		return 0, 0, err
	}
	if !offsetWord.IsInt64() || offsetWord.Int64()%wordSize != 0 {
		return 0, 0, ErrShortResponse
	}
	lengthIdx := int(offsetWord.Int64() / wordSize)
	lengthWord, err := decodeUint(data, lengthIdx)
	if err != nil {
		return 0, 0, err
	}
	if !lengthWord.IsInt64() {
		return 0, 0, ErrShortResponse
	}
	length = int(lengthWord.Int64())
	first = lengthIdx + 1
	// The claimed length must fit inside the response; anything larger is a
	// corrupt payload, not a reason to allocate.
	if length < 0 || length > (len(data)-first*wordSize)/wordSize {
		return 0, 0, ErrShortResponse
	}
	return length, first, nil
}

// decodeAddressArray decodes a dynamic address[] whose head pointer sits in
// the i-th word of the response.
func decodeAddressArray(data []byte, i int) ([]common.Address, error) {
	length, first, err := arrayAt(data, i)
	if err != nil {
		return nil, err
	}
	out := make([]common.Address, length)
	for j := 0; j < length; j++ {
		w, err := wordAt(data, first+j)
		if err != nil {
			return nil, err
		}
		out[j] = common.BytesToAddress(w)
	}
	return out, nil
}

// decodeUintArray decodes a dynamic uint256[] whose head pointer sits in the
// i-th word of the response.
func decodeUintArray(data []byte, i int) ([]*big.Int, error) {
	length, first, err := arrayAt(data, i)
	if err != nil {
		return nil, err
	}
	out := make([]*big.Int, length)
	for j := 0; j < length; j++ {
		w, err := wordAt(data, first+j)
		if err != nil {
			return nil, err
		}
		out[j] = new(big.Int).SetBytes(w)
	}
	return out, nil
}
