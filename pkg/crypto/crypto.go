// Package crypto encrypts tenant-held third-party API secrets with
// AES-256-CBC. The wire format is "ivhex:cipherhex" with a fresh random IV
// per call. There is no authentication tag; ciphertexts from the previous
// system must stay decryptable, so the format cannot change here.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const keySize = 32

// Cipher wraps the credential encryption key.
type Cipher struct {
	key []byte
}

// NewCipher builds a Cipher from the configured key string. Keys shorter
// than 32 bytes are zero-padded and longer keys are truncated, matching
// the previous system's key handling.
func NewCipher(key string) *Cipher {
	return &Cipher{key: padKey(key)}
}

func padKey(key string) []byte {
	if len(key) >= keySize {
		return []byte(key[:keySize])
	}
	return []byte(key + strings.Repeat("0", keySize-len(key)))
}

// Encrypt encrypts plaintext and returns "ivhex:cipherhex". The empty
// string passes through unchanged.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. The empty string passes through unchanged.
func (c *Cipher) Decrypt(encrypted string) (string, error) {
	if encrypted == "" {
		return "", nil
	}

	ivHex, cipherHex, found := strings.Cut(encrypted, ":")
	if !found {
		return "", errors.New("invalid encrypted value format")
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", fmt.Errorf("invalid IV: %w", err)
	}
	if len(iv) != aes.BlockSize {
		return "", errors.New("invalid IV length")
	}

	ciphertext, err := hex.DecodeString(cipherHex)
	if err != nil {
		return "", fmt.Errorf("invalid ciphertext: %w", err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", errors.New("invalid ciphertext length")
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	plaintext, err = pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padding)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padding)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded data length")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padding], nil
}
