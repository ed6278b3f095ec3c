package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Account is a studio console login. Accounts are provisioned through
// configuration, so the id is derived from the email and stays stable
// across restarts.
type Account struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	role         Role
}

func NewAccount(email Email, passwordHash string, role Role) (*Account, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, ErrInvalidCredentials
	}
	return &Account{
		id:           AccountID(email),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
	}, nil
}

func AccountID(email Email) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email.Value()))
}

func (a *Account) ID() uuid.UUID        { return a.id }
func (a *Account) Email() Email         { return a.email }
func (a *Account) PasswordHash() string { return a.passwordHash }
func (a *Account) Role() Role           { return a.role }

type Credentials struct {
	email    Email
	password Password
}

func NewCredentials(emailStr, passwordStr string) (Credentials, error) {
	email, err := NewEmail(emailStr)
	if err != nil {
		return Credentials{}, err
	}

	password, err := NewPassword(passwordStr)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		email:    email,
		password: password,
	}, nil
}

func (c Credentials) Email() Email {
	return c.email
}

func (c Credentials) Password() Password {
	return c.password
}
