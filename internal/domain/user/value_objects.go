package user

import (
	"errors"
	"net/mail"
	"strings"
)

// bcrypt ignores anything past 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidRole     = errors.New("invalid role")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

// Email is a console login address. Logins are case-insensitive, so the
// value is kept lower-cased.
type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndex(s, "@"):], ".") {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string  { return e.value }
func (e Email) String() string { return e.value }

func (e Email) Equal(other Email) bool { return e.value == other.value }

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	switch {
	case len(s) < MinPasswordLength:
		return Password{}, ErrPasswordTooWeak
	case len(s) > MaxPasswordLength:
		return Password{}, ErrPasswordTooLong
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}
