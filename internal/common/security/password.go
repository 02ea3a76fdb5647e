package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// placeholderHash is compared against when no user matched a login, so a miss
// costs about as much as a wrong password.
var placeholderHash, _ = bcrypt.GenerateFromPassword([]byte("cublex-placeholder-password"), bcrypt.DefaultCost)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BurnPasswordCheck performs a comparison whose result is discarded.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(placeholderHash, []byte(password))
}
