// Package rsagen assembles the layers below it (entropy, codec, modmath,
// primality, search) into textbook RSA key generation and raw
// encrypt/decrypt, the external surface described by the spec's §6.
package rsagen

import (
	"context"
	"math/big"

	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"

	"github.com/amberforge/rsagen/codec"
	"github.com/amberforge/rsagen/modmath"
	"github.com/amberforge/rsagen/primality"
	"github.com/amberforge/rsagen/search"
)

var log = logging.Logger("rsagen")

// PublicExponent is the fixed RSA public exponent, 65537.
const PublicExponent = 65537

// ErrAlloc is reserved for the spec's AllocError (big-integer allocation
// failure). math/big has no allocation-failure return path of its own (an
// out-of-memory condition surfaces as a runtime panic, not an error value),
// so this sentinel exists for API completeness and is never returned by this
// package.
var ErrAlloc = errors.New("rsagen: allocation failed")

// Key is an assembled RSA keypair: both primes, the modulus, the totient,
// and the public/private exponents. It is built atomically by GenerateKey
// and is immutable thereafter.
type Key struct {
	P, Q *big.Int
	N    *big.Int
	Phi  *big.Int
	E    *big.Int
	D    *big.Int
}

// GenerateKey produces a new RSA keypair per spec §4.7: two independent
// probable primes from search.FindPrime, rejecting equal primes and
// non-invertible public exponents by retrying.
func GenerateKey(ctx context.Context) (*Key, error) {
	e := big.NewInt(PublicExponent)

	for attempt := 1; ; attempt++ {
		p, err := search.FindPrime(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "rsagen: find p")
		}
		q, err := search.FindPrime(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "rsagen: find q")
		}
		if p.Cmp(q) == 0 {
			log.Debugf("rsagen: attempt %d drew equal primes, retrying", attempt)
			continue
		}

		n := new(big.Int).Mul(p, q)
		phi := new(big.Int).Mul(
			new(big.Int).Sub(p, big.NewInt(1)),
			new(big.Int).Sub(q, big.NewInt(1)),
		)

		d, err := modmath.ModInv(e, phi)
		if err != nil {
			log.Debugf("rsagen: attempt %d: e not invertible mod phi, retrying", attempt)
			continue
		}

		return &Key{P: p, Q: q, N: n, Phi: phi, E: e, D: d}, nil
	}
}

// Encrypt returns m^e mod n. Behavior is undefined (per spec §4.7) unless
// 0 <= m < n.
func (k *Key) Encrypt(m *big.Int) *big.Int {
	return modmath.PowMod(m, k.E, k.N)
}

// Decrypt returns c^d mod n.
func (k *Key) Decrypt(c *big.Int) *big.Int {
	return modmath.PowMod(c, k.D, k.N)
}

// EncryptBytes encodes plaintext as an integer (codec.Numbify) and encrypts
// it, returning the ciphertext's decimal string representation.
func (k *Key) EncryptBytes(plaintext []byte) string {
	return k.Encrypt(codec.Numbify(plaintext)).String()
}

// DecryptBytes parses ciphertext as a decimal big integer, decrypts it, and
// returns the recovered plaintext bytes.
func (k *Key) DecryptBytes(ciphertext string) ([]byte, error) {
	n, ok := new(big.Int).SetString(ciphertext, 10)
	if !ok {
		return nil, errors.Wrapf(codec.ErrParse, "%q", ciphertext)
	}
	return k.Decrypt(n).Bytes(), nil
}

// IsProbablePrime re-exports primality.IsProbablePrime so callers never need
// to import the internal layering directly.
func IsProbablePrime(n *big.Int, rounds int) bool {
	return primality.IsProbablePrime(n, rounds)
}

// PowMod re-exports modmath.PowMod.
func PowMod(base, exp, mod *big.Int) *big.Int {
	return modmath.PowMod(base, exp, mod)
}

// ModInv re-exports modmath.ModInv.
func ModInv(a, m *big.Int) (*big.Int, error) {
	return modmath.ModInv(a, m)
}

// Numbify re-exports codec.Numbify.
func Numbify(b []byte) *big.Int {
	return codec.Numbify(b)
}

// Denumbify re-exports codec.Denumbify.
func Denumbify(decimal string) ([]byte, error) {
	return codec.Denumbify(decimal)
}
