package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// unusablePrefix marks hashes that no password can match.
const unusablePrefix = "!"

func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	if hash == "" || strings.HasPrefix(hash, unusablePrefix) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// UnusablePassword returns a random hash placeholder for accounts that
// sign in through a social provider only.
func UnusablePassword() string {
	b := make([]byte, 20)
	_, _ = rand.Read(b)
	return unusablePrefix + hex.EncodeToString(b)
}
