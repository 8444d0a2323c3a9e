package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundtrip(t *testing.T) {
	c := NewCipher("test-encryption-key")

	plaintexts := []string{
		"a",
		"hello world",
		"exactly sixteen!",                      // one full block
		"a value longer than a single AES block with spaces",
		`{"api_key":"sk-123","phone":"+6281234567890"}`,
	}

	for _, plaintext := range plaintexts {
		encrypted, err := c.Encrypt(plaintext)
		require.NoError(t, err)
		require.NotEqual(t, plaintext, encrypted)

		decrypted, err := c.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestEncryptEmptyPassthrough(t *testing.T) {
	c := NewCipher("test-encryption-key")

	encrypted, err := c.Encrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", encrypted)

	decrypted, err := c.Decrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", decrypted)
}

func TestEncryptFreshIVPerCall(t *testing.T) {
	c := NewCipher("test-encryption-key")

	first, err := c.Encrypt("same plaintext")
	require.NoError(t, err)
	second, err := c.Encrypt("same plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecryptInvalidFormat(t *testing.T) {
	c := NewCipher("test-encryption-key")

	cases := []string{
		"no-separator",
		"zz:abcd",                             // IV not hex
		"00112233445566778899aabbccddeeff:zz", // ciphertext not hex
		"0011:00112233445566778899aabbccddeeff", // IV too short
		"00112233445566778899aabbccddeeff:",     // empty ciphertext
		"00112233445566778899aabbccddeeff:0011", // ciphertext not block-aligned
	}

	for _, in := range cases {
		_, err := c.Decrypt(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestPadKey(t *testing.T) {
	short := padKey("abc")
	require.Len(t, short, 32)
	assert.Equal(t, "abc"+strings.Repeat("0", 29), string(short))

	long := padKey(strings.Repeat("x", 40))
	require.Len(t, long, 32)
	assert.Equal(t, strings.Repeat("x", 32), string(long))
}

func TestLongKeyTruncatesToSamePrefix(t *testing.T) {
	full := NewCipher(strings.Repeat("k", 40))
	prefix := NewCipher(strings.Repeat("k", 32))

	encrypted, err := full.Encrypt("shared secret")
	require.NoError(t, err)

	decrypted, err := prefix.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "shared secret", decrypted)
}
