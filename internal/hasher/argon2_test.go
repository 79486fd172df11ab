package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/aksara-server/internal/config"
)

var testParams = config.KDF{Time: 1, MemKiB: 1024, Par: 1}

func TestArgon2_HashAndVerify(t *testing.T) {
	h := NewArgon2(testParams)

	encoded, err := h.Hash("p1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.NotContains(t, encoded, "p1")

	ok, err := h.Verify("p1", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2_HashUsesRandomSalt(t *testing.T) {
	h := NewArgon2(testParams)

	first, err := h.Hash("same")
	require.NoError(t, err)
	second, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgon2_VerifyUsesStoredParams(t *testing.T) {
	old := NewArgon2(config.KDF{Time: 2, MemKiB: 2048, Par: 1})
	encoded, err := old.Hash("secret")
	require.NoError(t, err)

	ok, err := NewArgon2(testParams).Verify("secret", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2_VerifyMalformed(t *testing.T) {
	h := NewArgon2(testParams)

	tests := []struct {
		name    string
		encoded string
	}{
		{name: "plaintext", encoded: "p1"},
		{name: "empty", encoded: ""},
		{name: "other algorithm", encoded: "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5"},
		{name: "bad version", encoded: "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$a2V5"},
		{name: "bad params", encoded: "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5"},
		{name: "zero time", encoded: "$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$a2V5"},
		{name: "bad salt", encoded: "$argon2id$v=19$m=1024,t=1,p=1$!!$a2V5"},
		{name: "empty key", encoded: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify("p1", tt.encoded)
			require.ErrorIs(t, err, ErrMalformedHash)
			assert.False(t, ok)
		})
	}
}
