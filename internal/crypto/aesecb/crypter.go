// Package aesecb implements AES in electronic codebook mode with PKCS#7 padding,
// the scheme the engine uses for encrypted replay chunks.
package aesecb

import (
	"bytes"
	"crypto/aes"
	"fmt"

	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

type InvalidCiphertextLengthError struct {
	error
}

func newInvalidCiphertextLengthError(length int) InvalidCiphertextLengthError {
	return InvalidCiphertextLengthError{
		errors.Errorf("ciphertext length %v is not a positive multiple of the block size %v", length, aes.BlockSize)}
}

func (err InvalidCiphertextLengthError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

type InvalidPaddingError struct {
	error
}

func newInvalidPaddingError(padding byte) InvalidPaddingError {
	return InvalidPaddingError{errors.Errorf("invalid PKCS#7 padding byte: %v", padding)}
}

func (err InvalidPaddingError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// Crypter is stateless, the key comes with every call.
type Crypter struct{}

func (crypter Crypter) Name() string {
	return "AES-ECB"
}

func (crypter Crypter) Decrypt(key []byte, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AES cipher")
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, newInvalidCiphertextLengthError(len(ciphertext))
	}
	plaintext := make([]byte, len(ciphertext))
	for offset := 0; offset < len(ciphertext); offset += aes.BlockSize {
		block.Decrypt(plaintext[offset:offset+aes.BlockSize], ciphertext[offset:offset+aes.BlockSize])
	}
	return unpad(plaintext)
}

func (crypter Crypter) Encrypt(key []byte, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AES cipher")
	}
	padded := pad(plaintext)
	ciphertext := make([]byte, len(padded))
	for offset := 0; offset < len(padded); offset += aes.BlockSize {
		block.Encrypt(ciphertext[offset:offset+aes.BlockSize], padded[offset:offset+aes.BlockSize])
	}
	return ciphertext, nil
}

func pad(data []byte) []byte {
	padding := aes.BlockSize - len(data)%aes.BlockSize
	return append(append([]byte(nil), data...), bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func unpad(data []byte) ([]byte, error) {
	padding := data[len(data)-1]
	if padding == 0 || int(padding) > aes.BlockSize {
		return nil, newInvalidPaddingError(padding)
	}
	for _, value := range data[len(data)-int(padding):] {
		if value != padding {
			return nil, newInvalidPaddingError(value)
		}
	}
	return data[:len(data)-int(padding)], nil
}
