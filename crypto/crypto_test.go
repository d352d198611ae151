package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateChatKey_Is32Bytes(t *testing.T) {
	encoded, err := GenerateChatKey()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Len(t, raw, KeySize)
}

func TestGenerateChatKey_Unique(t *testing.T) {
	k1, err := GenerateChatKey()
	require.NoError(t, err)
	k2, err := GenerateChatKey()
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key, err := GenerateChatKey()
	require.NoError(t, err)

	plaintexts := []string{
		"",
		"hey, seen Oldboy?",
		"emoji 🎬 and unicode — fine too",
		"a much longer message that spans more than one AES block so the cipher has to chain properly across block boundaries",
	}

	for _, p := range plaintexts {
		payload, err := EncryptMessage(p, key)
		require.NoError(t, err)

		got := DecryptMessage(payload.EncryptedText, payload.IV, key)
		assert.Equal(t, p, got)
	}
}

func TestEncryptMessage_FreshIVPerCall(t *testing.T) {
	key, err := GenerateChatKey()
	require.NoError(t, err)

	p1, err := EncryptMessage("same plaintext", key)
	require.NoError(t, err)
	p2, err := EncryptMessage("same plaintext", key)
	require.NoError(t, err)

	assert.NotEqual(t, p1.IV, p2.IV)
	// Under AES-GCM the nonce participates in the keystream, so the
	// ciphertext differs per call too. The legacy XOR scheme produced
	// identical ciphertext here; that asymmetry is intentionally gone.
	assert.NotEqual(t, p1.EncryptedText, p2.EncryptedText)
}

func TestEncryptMessage_IVDecodesTo16Bytes(t *testing.T) {
	key, err := GenerateChatKey()
	require.NoError(t, err)

	payload, err := EncryptMessage("hello", key)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(payload.IV)
	require.NoError(t, err)
	assert.Len(t, raw, IVSize)
}

func TestEncryptMessage_BadKeyEncoding(t *testing.T) {
	_, err := EncryptMessage("hello", "%%% not base64 %%%")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncryption)
}

func TestEncryptMessage_WrongKeyLength(t *testing.T) {
	shortKey := base64.StdEncoding.EncodeToString([]byte("too short"))
	_, err := EncryptMessage("hello", shortKey)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncryption)
}

func TestDecryptMessage_NeverThrows(t *testing.T) {
	key, err := GenerateChatKey()
	require.NoError(t, err)
	otherKey, err := GenerateChatKey()
	require.NoError(t, err)

	payload, err := EncryptMessage("secret", key)
	require.NoError(t, err)

	cases := map[string]struct {
		encryptedText string
		iv            string
		key           string
	}{
		"wrong key":         {payload.EncryptedText, payload.IV, otherKey},
		"malformed cipher":  {"%%%", payload.IV, key},
		"malformed iv":      {payload.EncryptedText, "%%%", key},
		"short iv":          {payload.EncryptedText, base64.StdEncoding.EncodeToString([]byte("short")), key},
		"malformed key":     {payload.EncryptedText, payload.IV, "%%%"},
		"empty everything":  {"", "", ""},
		"truncated cipher":  {payload.EncryptedText[:4], payload.IV, key},
		"swapped arguments": {payload.IV, payload.EncryptedText, key},
	}

	for name, tc := range cases {
		got := DecryptMessage(tc.encryptedText, tc.iv, tc.key)
		assert.Equal(t, DecryptFallback, got, name)
	}
}

func TestDecryptMessage_TamperedCiphertext(t *testing.T) {
	key, err := GenerateChatKey()
	require.NoError(t, err)

	payload, err := EncryptMessage("integrity matters", key)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(payload.EncryptedText)
	require.NoError(t, err)
	raw[0] ^= 0xFF
	tampered := base64.StdEncoding.EncodeToString(raw)

	assert.Equal(t, DecryptFallback, DecryptMessage(tampered, payload.IV, key))
}
