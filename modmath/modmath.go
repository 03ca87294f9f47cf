// Package modmath implements the modular arithmetic kernel everything else
// in this repository is built on: modular exponentiation and modular
// inverse, both as explicit textbook algorithms rather than as thin
// wrappers over math/big's own Exp/ModInverse.
package modmath

import (
	"math/big"

	"github.com/pkg/errors"
)

// ErrNotInvertible is returned by ModInv when gcd(a, m) != 1.
var ErrNotInvertible = errors.New("modmath: not invertible")

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// PowMod returns base^exp mod mod using right-to-left square-and-multiply.
// mod must be >= 1; PowMod panics otherwise, matching the spec's treatment
// of mod as a contract violation rather than a propagated error. Neither
// base nor exp nor mod is mutated.
func PowMod(base, exp, mod *big.Int) *big.Int {
	if mod.Sign() < 1 {
		panic("modmath: PowMod requires mod >= 1")
	}
	if mod.Cmp(one) == 0 {
		return big.NewInt(0)
	}

	acc := big.NewInt(1)
	s := new(big.Int).Mod(base, mod)
	e := new(big.Int).Set(exp)

	for e.Sign() > 0 {
		if e.Bit(0) == 1 {
			acc.Mod(acc.Mul(acc, s), mod)
		}
		e.Rsh(e, 1)
		s.Mod(s.Mul(s, s), mod)
	}
	return acc
}

// ModInv returns the unique x in [0, m) with a*x ≡ 1 (mod m), using the
// iterative extended Euclidean substitution described by the spec, or
// ErrNotInvertible if gcd(a, m) != 1.
func ModInv(a, m *big.Int) (*big.Int, error) {
	if m.Cmp(one) == 0 {
		return big.NewInt(0), nil
	}

	aCur := new(big.Int).Mod(a, m)
	mCur := new(big.Int).Set(m)
	inv := big.NewInt(1)
	x0 := big.NewInt(0)

	q, r := new(big.Int), new(big.Int)
	for aCur.Cmp(one) > 0 {
		if mCur.Sign() == 0 {
			return nil, ErrNotInvertible
		}
		q.DivMod(aCur, mCur, r)

		inv.Sub(inv, new(big.Int).Mul(q, x0))

		aCur, mCur = mCur, r
		inv, x0 = x0, inv
		r = new(big.Int)
	}

	if aCur.Cmp(one) != 0 {
		return nil, ErrNotInvertible
	}

	for inv.Sign() < 0 {
		inv.Add(inv, m)
	}
	return inv, nil
}
