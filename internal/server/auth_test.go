package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashJoinToken(t *testing.T) {
	hash, err := HashJoinToken("open sesame")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "open sesame", hash)

	_, err = HashJoinToken("")
	assert.Error(t, err)
}

func TestVerifyJoinToken(t *testing.T) {
	hash, err := HashJoinToken("open sesame")
	require.NoError(t, err)

	assert.True(t, verifyJoinToken(hash, "open sesame"))
	assert.False(t, verifyJoinToken(hash, "wrong"))
	assert.False(t, verifyJoinToken(hash, ""))

	// Empty hash disables authentication.
	assert.True(t, verifyJoinToken("", "anything"))
	assert.True(t, verifyJoinToken("", ""))
}
