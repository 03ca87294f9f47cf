// Package codec converts between byte strings and the big integers the rest
// of the generator operates on.
package codec

import (
	"math/big"

	"github.com/pkg/errors"
)

// ErrParse is returned by Denumbify when its input is not a decimal string.
var ErrParse = errors.New("codec: not a decimal string")

// Numbify interprets b as a big-endian unsigned integer. An empty slice
// yields zero.
func Numbify(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// Denumbify parses decimal as a base-10 integer and returns its minimal
// big-endian byte representation. Denumbify(Numbify(b).String()) reproduces
// b exactly whenever b had no leading zero byte.
func Denumbify(decimal string) ([]byte, error) {
	n, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		return nil, errors.Wrapf(ErrParse, "%q", decimal)
	}
	return n.Bytes(), nil
}
