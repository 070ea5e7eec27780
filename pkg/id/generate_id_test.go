package id

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID32_IsValidAndDecodesTo16Bytes(t *testing.T) {
	for i := 0; i < 50; i++ {
		got := NewID32()
		require.True(t, Valid(got), got)
		b, err := hex.DecodeString(got)
		require.NoError(t, err)
		assert.Len(t, b, 16)
	}
}

func TestNewID32_DoesNotRepeat(t *testing.T) {
	const n = 500
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		v := NewID32()
		_, dup := seen[v]
		require.False(t, dup, "id repeated after %d draws: %q", i, v)
		seen[v] = struct{}{}
	}
}

func TestValid_RejectsForeignShapes(t *testing.T) {
	for _, s := range []string{
		"",
		"deadbeef",
		"ABCDEF0123456789ABCDEF0123456789",     // uppercase
		"65f1c0a2b3d4e5f6a7b8c9d0",             // 24-char document id
		"0123456789abcdef0123456789abcdeg",     // non-hex
		"0123456789abcdef0123456789abcdef0",    // 33 chars
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88", // uuid
		" 0123456789abcdef0123456789abcdef",
	} {
		assert.False(t, Valid(s), s)
	}
}
