package pkg

import (
	cryptoRand "crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strings"
)

// RandDigits returns a fixed-width numeric string; leading zeros allowed.
func RandDigits(n int) (string, error) {
	var b strings.Builder
	for i := 0; i < n; i++ {
		x, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + x.Int64()))
	}
	return b.String(), nil
}

var (
	aliasAdjectives = []string{"Silent", "Curious", "Hidden", "Lost", "Brave", "Witty", "Calm"}
	aliasNouns      = []string{"Fox", "Crow", "Leaf", "Wolf", "Tiger", "Owl", "River"}
)

func pick(words []string) (string, error) {
	x, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return "", err
	}
	return words[x.Int64()], nil
}

// RandAlias builds the per-content display name, e.g. "SilentFox372".
// Independent of the author: the same user's items get unrelated aliases.
func RandAlias() (string, error) {
	adj, err := pick(aliasAdjectives)
	if err != nil {
		return "", err
	}
	noun, err := pick(aliasNouns)
	if err != nil {
		return "", err
	}
	digits, err := RandDigits(3)
	if err != nil {
		return "", err
	}
	return adj + noun + digits, nil
}

const usernameCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandUsername generates the internal handle, e.g. "user_k29dm4a1".
func RandUsername() (string, error) {
	var b strings.Builder
	b.WriteString("user_")
	for i := 0; i < 8; i++ {
		x, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(int64(len(usernameCharset))))
		if err != nil {
			return "", err
		}
		b.WriteByte(usernameCharset[x.Int64()])
	}
	return b.String(), nil
}

// NormalizeEmail trims and lower-cases before hashing so the digest is
// stable across client quirks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashEmail is the one-way digest used as the identity key.
func HashEmail(email string) string {
	sum := sha256.Sum256([]byte(NormalizeEmail(email)))
	return hex.EncodeToString(sum[:])
}
