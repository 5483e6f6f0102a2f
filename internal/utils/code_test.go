package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		require.Regexp(t, `^[0-9]{6}$`, code)
		seen[code] = struct{}{}
	}

	require.Greater(t, len(seen), 1, "codes should not all collide")
}
