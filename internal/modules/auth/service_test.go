package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMatchEnvPasswordPlaintext(t *testing.T) {
	assert.True(t, matchEnvPassword("hunter2", "hunter2"))
	assert.False(t, matchEnvPassword("hunter2", "hunter3"))
	assert.False(t, matchEnvPassword("", "anything"))
}

func TestMatchEnvPasswordBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, matchEnvPassword(string(hash), "hunter2"))
	assert.False(t, matchEnvPassword(string(hash), "wrong"))

	// A hash-shaped configured value is never compared as plaintext.
	assert.False(t, matchEnvPassword(string(hash), string(hash)))
}
