package rsagen

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey_EncryptDecryptRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	key, err := GenerateKey(ctx)
	require.NoError(t, err)

	m := Numbify([]byte("HELLO WORLD"))
	require.True(t, m.Cmp(key.N) < 0, "message must be smaller than modulus")

	c := key.Encrypt(m)
	recovered := key.Decrypt(c)
	assert.Equal(t, m, recovered)

	plain, err := Denumbify(recovered.String())
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", string(plain))
}

func TestGenerateKey_EncryptBytesDecryptBytesRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	key, err := GenerateKey(ctx)
	require.NoError(t, err)

	ciphertext := key.EncryptBytes([]byte("HELLO WORLD"))
	plain, err := key.DecryptBytes(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", string(plain))
}

func TestGenerateKey_DistinctPrimesAndValidExponent(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	key, err := GenerateKey(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, 0, key.P.Cmp(key.Q))
	assert.Equal(t, big.NewInt(PublicExponent), key.E)

	product := new(big.Int).Mod(new(big.Int).Mul(key.E, key.D), key.Phi)
	assert.Equal(t, big.NewInt(1), product)
}

func TestPowMod_Facade(t *testing.T) {
	got := PowMod(big.NewInt(1555123), big.NewInt(1441), big.NewInt(15))
	assert.Equal(t, big.NewInt(13), got)
}

func TestModInv_Facade(t *testing.T) {
	got, err := ModInv(big.NewInt(38), big.NewInt(97))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(23), got)
}

func TestIsProbablePrime_Facade(t *testing.T) {
	assert.True(t, IsProbablePrime(big.NewInt(23), 40))
	assert.False(t, IsProbablePrime(big.NewInt(420), 40))
}
