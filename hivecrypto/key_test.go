package hivecrypto

import (
	"testing"

	"github.com/Factom-Asset-Tokens/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A known good 0x80 WIF test vector.
const testWIF = "5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ"

func TestParsePrivateKey(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	key, err := ParsePrivateKey(testWIF)
	require.NoError(err)
	assert.Equal(testWIF, key.WIF())

	pub := key.Public()
	assert.Len(pub.SerializeCompressed(), 33)
}

func TestParsePrivateKeyInvalid(t *testing.T) {
	assert := assert.New(t)

	for name, wif := range map[string]string{
		"empty":        "",
		"not base58":   "0OIl",
		"garbage":      "notawif",
		"bad checksum": testWIF[:len(testWIF)-1] + "K",
		"short payload": base58.CheckEncode(
			[]byte{1, 2, 3}, 0x80),
		"bad version": base58.CheckEncode(
			make([]byte, 32), 0x00),
		"zero key": base58.CheckEncode(
			make([]byte, 32), 0x80),
	} {
		_, err := ParsePrivateKey(wif)
		assert.ErrorIs(err, ErrInvalidKey, name)
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	key, err := ParsePrivateKey(testWIF)
	require.NoError(err)

	encoded := key.Public().String()
	assert.Equal(PublicKeyPrefix, encoded[:3])

	decoded, err := ParsePublicKey(encoded)
	require.NoError(err)
	assert.Equal(key.Public().SerializeCompressed(),
		decoded.SerializeCompressed())
	assert.Equal(encoded, decoded.String())
}

func TestParsePublicKeyInvalid(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	key, err := ParsePrivateKey(testWIF)
	require.NoError(err)
	encoded := key.Public().String()

	for name, s := range map[string]string{
		"empty":        "",
		"prefix only":  "STM",
		"truncated":    encoded[:len(encoded)-4],
		"bad checksum": encoded[:len(encoded)-1] + "1",
	} {
		_, err := ParsePublicKey(s)
		assert.ErrorIs(err, ErrInvalidKey, name)
	}
}
