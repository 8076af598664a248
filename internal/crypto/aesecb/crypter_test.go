package aesecb

import (
	"crypto/aes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecodeHex(t *testing.T, value string) []byte {
	decoded, err := hex.DecodeString(value)
	require.NoError(t, err)
	return decoded
}

// FIPS-197 appendix C.3 known answer, followed by a full padding block.
func TestDecrypt_KnownBlock(t *testing.T) {
	key := mustDecodeHex(t, "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	plaintext := mustDecodeHex(t, "00112233445566778899aabbccddeeff")

	ciphertext, err := Crypter{}.Encrypt(key, plaintext)
	require.NoError(t, err)
	require.Len(t, ciphertext, 32)
	assert.Equal(t, "8ea2b7ca516745bfeafc49904b496089", hex.EncodeToString(ciphertext[:16]))

	decrypted, err := Crypter{}.Decrypt(key, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptDecrypt_PartialBlock(t *testing.T) {
	key := make([]byte, 32)
	plaintext := []byte("replay chunk payload")
	ciphertext, err := Crypter{}.Encrypt(key, plaintext)
	require.NoError(t, err)
	assert.Len(t, ciphertext, 32)

	decrypted, err := Crypter{}.Decrypt(key, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestDecrypt_BadKeyLength(t *testing.T) {
	_, err := Crypter{}.Decrypt(make([]byte, 7), make([]byte, 16))
	assert.Error(t, err)
}

func TestDecrypt_BadCiphertextLength(t *testing.T) {
	_, err := Crypter{}.Decrypt(make([]byte, 32), make([]byte, 15))
	assert.IsType(t, InvalidCiphertextLengthError{}, err)
}

func TestDecrypt_BadPadding(t *testing.T) {
	key := make([]byte, 16)
	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	// a zero block ends with a zero padding byte
	ciphertext := make([]byte, aes.BlockSize)
	block.Encrypt(ciphertext, make([]byte, aes.BlockSize))
	_, err = Crypter{}.Decrypt(key, ciphertext)
	assert.IsType(t, InvalidPaddingError{}, err)
}
