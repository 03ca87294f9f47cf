// Package entropy provides the fixed-width random byte blocks the rest of
// the generator draws its candidates and witnesses from.
package entropy

import (
	"io"
	"math/big"
	"sync"

	"github.com/pkg/errors"
)

// KeyBytes is the canonical candidate width: 128 bytes (~1024 bits) yields an
// RSA modulus of roughly twice that width once two candidates are multiplied.
const KeyBytes = 128

// ErrEntropy wraps any I/O or OS-status failure encountered while reading
// from the platform random source.
var ErrEntropy = errors.New("entropy: OS random source failed")

// Source is a cryptographically suitable random byte source. It opens its
// underlying OS handle lazily on first use and holds it for the lifetime of
// the Source. search.FindPrime holds one Source for its whole call, and each
// primality worker holds its own for witness sampling; no Source is shared
// across find-prime invocations.
type Source struct {
	mu  sync.Mutex
	src io.Reader
}

// New returns an unopened Source. The underlying handle is acquired on the
// first call to Read.
func New() *Source {
	return &Source{}
}

// Read fills b with len(b) random bytes, opening the platform source on
// first use. It satisfies io.Reader.
func (s *Source) Read(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.src == nil {
		src, err := openPlatformSource()
		if err != nil {
			return 0, errors.Wrapf(ErrEntropy, "open platform source: %v", err)
		}
		s.src = src
	}

	n, err := io.ReadFull(s.src, b)
	if err != nil {
		return n, errors.Wrapf(ErrEntropy, "read %d bytes: %v", len(b), err)
	}
	return n, nil
}

// ReadBlock returns n freshly drawn random bytes.
func (s *Source) ReadBlock(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := s.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Close releases the underlying OS handle, if one was opened. A Source must
// not be reused after Close.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var one = big.NewInt(1)

// RandomInRange draws a value uniformly from [0, max) using rejection
// sampling against the bit length of max-1, the same approach as
// mmussomele-crypto/rand.Int: draw ceil(bitlen/8) bytes, clear any bits
// above the bit length, and retry if the result still isn't below max.
func (s *Source) RandomInRange(max *big.Int) (*big.Int, error) {
	n := new(big.Int).Sub(max, one).BitLen()
	buf := make([]byte, (n+7)/8)

	candidate := new(big.Int)
	for {
		if _, err := s.Read(buf); err != nil {
			return nil, err
		}
		candidate.SetBytes(buf)

		for i := n; i < candidate.BitLen(); i++ {
			candidate.SetBit(candidate, i, 0)
		}

		if candidate.Cmp(max) < 0 {
			return candidate, nil
		}
	}
}
