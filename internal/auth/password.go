package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor.
const PasswordCost = 10

// HashPassword returns the bcrypt hash of plain.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches hash.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

var dummyHash = sync.OnceValue(func() string {
	hash, _ := bcrypt.GenerateFromPassword([]byte("anylist-dummy-password"), PasswordCost)
	return string(hash)
})

// VerifyNothing burns the same time as a failed VerifyPassword. Login calls
// it when the email is unknown.
func VerifyNothing(plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash()), []byte(plain))
}
