// Package crypto protects chat message plaintext before it crosses the
// persistence boundary. Each conversation owns one symmetric key, generated
// lazily by the first participant to open the chat and reused for every
// message thereafter.
//
// Messages are sealed with AES-256-GCM using a fresh 16-byte random nonce
// per message, stored base64-encoded next to the ciphertext as "iv". The
// scheme this replaces was a repeating-key XOR stream that generated an IV
// but never mixed it into the transform; moving to an authenticated cipher
// is a deliberate hardening that keeps the external contract intact:
// {ciphertext, iv} in and out, deterministic round trip, same key lifecycle.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	// KeySize is the decoded length of a conversation key.
	KeySize = 32
	// IVSize is the decoded length of a per-message nonce.
	IVSize = 16
)

// DecryptFallback is returned in place of plaintext whenever decryption
// fails. One corrupt message must not break an entire conversation render,
// so callers get this placeholder instead of an error.
const DecryptFallback = "[Message unavailable]"

var (
	ErrKeyGeneration = errors.New("failed to generate chat key")
	ErrEncryption    = errors.New("failed to encrypt message")
)

// EncryptedPayload mirrors what is persisted for a single message body.
type EncryptedPayload struct {
	EncryptedText string `json:"encryptedText"`
	IV            string `json:"iv"`
}

// GenerateChatKey produces a new base64-encoded 256-bit conversation key.
// The caller is responsible for persisting it on the conversation document.
func GenerateChatKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// EncryptMessage seals plaintext under the conversation key with a fresh
// random nonce. The nonce is returned base64-encoded as IV and must be
// stored alongside the ciphertext.
func EncryptMessage(plaintext, keyBase64 string) (EncryptedPayload, error) {
	key, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		return EncryptedPayload{}, fmt.Errorf("%w: bad key encoding: %v", ErrEncryption, err)
	}

	aead, err := newAEAD(key)
	if err != nil {
		return EncryptedPayload{}, fmt.Errorf("%w: %v", ErrEncryption, err)
	}

	iv := make([]byte, IVSize)
	if _, err := rand.Read(iv); err != nil {
		return EncryptedPayload{}, fmt.Errorf("%w: %v", ErrEncryption, err)
	}

	ciphertext := aead.Seal(nil, iv, []byte(plaintext), nil)

	return EncryptedPayload{
		EncryptedText: base64.StdEncoding.EncodeToString(ciphertext),
		IV:            base64.StdEncoding.EncodeToString(iv),
	}, nil
}

// DecryptMessage reverses EncryptMessage. It never returns an error: any
// failure (malformed base64, wrong key, truncated ciphertext, tampered
// auth tag) yields DecryptFallback.
func DecryptMessage(encryptedText, iv, keyBase64 string) string {
	key, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		return DecryptFallback
	}

	nonce, err := base64.StdEncoding.DecodeString(iv)
	if err != nil || len(nonce) != IVSize {
		return DecryptFallback
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encryptedText)
	if err != nil {
		return DecryptFallback
	}

	aead, err := newAEAD(key)
	if err != nil {
		return DecryptFallback
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return DecryptFallback
	}

	return string(plaintext)
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, IVSize)
}
