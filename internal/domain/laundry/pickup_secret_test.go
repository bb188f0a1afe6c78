package laundry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePickupSecret(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		secret, err := GeneratePickupSecret()
		require.NoError(t, err)
		assert.Len(t, secret, PickupSecretLength)
		assert.Regexp(t, `^[0-9]{6}$`, secret)
		seen[secret] = true
	}
	// 20 draws from a million values colliding down to 1 would mean a
	// broken generator, not bad luck
	assert.Greater(t, len(seen), 1)
}

func TestHashPickupSecret_RoundTrip(t *testing.T) {
	secret, err := GeneratePickupSecret()
	require.NoError(t, err)

	hash, err := HashPickupSecret(secret)
	require.NoError(t, err)

	assert.NotEqual(t, secret, hash)
	assert.NotContains(t, hash, secret)
	assert.True(t, VerifyPickupSecret(hash, secret))
	assert.False(t, VerifyPickupSecret(hash, "000000"))
}

func TestHashPickupSecret_PreservesLeadingZeros(t *testing.T) {
	hash, err := HashPickupSecret("001234")
	require.NoError(t, err)

	assert.True(t, VerifyPickupSecret(hash, "001234"))
	assert.False(t, VerifyPickupSecret(hash, "1234"))
}

func TestHashPickupSecret_RejectsBadFormat(t *testing.T) {
	for _, bad := range []string{"", "12345", "1234567", "12345a", "abcdef"} {
		_, err := HashPickupSecret(bad)
		assert.Error(t, err, bad)
	}
}

func TestHashPickupSecret_Salted(t *testing.T) {
	h1, err := HashPickupSecret("123456")
	require.NoError(t, err)
	h2, err := HashPickupSecret("123456")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "same secret must hash differently each time")
}

func TestVerifyPickupSecret_EmptyInputs(t *testing.T) {
	hash, err := HashPickupSecret("123456")
	require.NoError(t, err)

	assert.False(t, VerifyPickupSecret("", "123456"))
	assert.False(t, VerifyPickupSecret(hash, ""))
	assert.False(t, VerifyPickupSecret("", ""))
}
