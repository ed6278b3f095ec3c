package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed    = errors.New("password hashing failed")
	ErrComparisonFailed = errors.New("password comparison failed")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrInvalidHash      = errors.New("value is not a bcrypt hash")
)

const DefaultCost = bcrypt.DefaultCost

// HashPassword produces the value expected in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidPassword
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}

	return string(hashedBytes), nil
}

func ComparePassword(hashedPassword, password string) error {
	if hashedPassword == "" || password == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrComparisonFailed
		}
		return err
	}

	return nil
}

// CheckHash rejects configured values that are not bcrypt hashes, such as a
// plaintext password pasted into the environment by mistake.
func CheckHash(hashedPassword string) error {
	if _, err := bcrypt.Cost([]byte(hashedPassword)); err != nil {
		return ErrInvalidHash
	}
	return nil
}
