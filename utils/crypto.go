package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// HashCredential is the citizen credential digest: deterministic, one-way,
// fixed-length hex. Registration stores it on the pending request and
// approval copies it onto the citizen row unchanged.
func HashCredential(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

func CheckCredential(plaintext, digest string) bool {
	return HashCredential(plaintext) == digest
}

// Admin credentials use bcrypt; admin accounts are provisioned, not
// self-registered, so the digest contract above does not apply to them.
func HashAdminPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckAdminPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
