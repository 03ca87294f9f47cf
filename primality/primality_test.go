package primality

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sieve returns all primes below limit via a sieve of Eratosthenes, independent of
// the production sieve in this package, to cross-check IsProbablePrime
// against ground truth.
func sieve(limit int) map[int]bool {
	composite := make([]bool, limit)
	primes := make(map[int]bool)
	for n := 2; n < limit; n++ {
		if composite[n] {
			continue
		}
		primes[n] = true
		for m := n * n; m < limit; m += n {
			composite[m] = true
		}
	}
	return primes
}

func TestIsProbablePrime_SweepBelow5000(t *testing.T) {
	primes := sieve(5000)
	for n := 0; n < 5000; n++ {
		got := IsProbablePrime(big.NewInt(int64(n)), 40)
		if primes[n] {
			assert.Truef(t, got, "expected %d to be reported prime", n)
		} else if n >= 6 {
			assert.Falsef(t, got, "expected composite %d to be reported composite", n)
		}
	}
}

func TestIsProbablePrime_TrivialCases(t *testing.T) {
	assert.False(t, IsProbablePrime(big.NewInt(0), 40))
	assert.False(t, IsProbablePrime(big.NewInt(1), 40))
	assert.True(t, IsProbablePrime(big.NewInt(2), 40))
	assert.True(t, IsProbablePrime(big.NewInt(3), 40))
	assert.False(t, IsProbablePrime(big.NewInt(4), 40))
	assert.True(t, IsProbablePrime(big.NewInt(5), 40))
}

func TestIsProbablePrime_CarmichaelAndPseudoprime(t *testing.T) {
	assert.False(t, IsProbablePrime(big.NewInt(561), 40))
	assert.False(t, IsProbablePrime(big.NewInt(41041), 40))
}

func TestIsProbablePrime_SmallKnownValues(t *testing.T) {
	assert.True(t, IsProbablePrime(big.NewInt(23), 40))
	assert.False(t, IsProbablePrime(big.NewInt(420), 40))
}

func TestIsProbablePrime_LargeKnownPrime(t *testing.T) {
	n, ok := new(big.Int).SetString(
		"190924658555315858151119591629547667189398663156457464802722656138791473781208916582860638604319810040699438425180594060124689945423307189481337028373",
		10,
	)
	if !assert.True(t, ok) {
		return
	}
	assert.True(t, IsProbablePrime(n, 40))
}
