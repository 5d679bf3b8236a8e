// Package server is the websocket gateway: it accepts player connections,
// pushes per-player game-view snapshots and pending resolution steps, and
// feeds answers and resolve requests back into the effect engine.
package server

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashJoinToken produces the bcrypt hash stored in server.join_token_hash.
func HashJoinToken(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("token must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}
	return string(hash), nil
}

// verifyJoinToken checks a presented token against the configured hash. An
// empty hash disables authentication.
func verifyJoinToken(hash, token string) bool {
	if hash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
