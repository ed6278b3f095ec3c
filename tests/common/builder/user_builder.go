//go:build unit || e2e

package builder

import (
	"testing"

	"lashdiary/internal/domain/user"
	reqdto "lashdiary/internal/handler/dto/request"
	"lashdiary/internal/pkg/password"
	"lashdiary/internal/usecase/queries"

	"github.com/stretchr/testify/require"
)

type UserBuilder struct {
	Email    string
	Password string
	Role     user.Role
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Email:    "owner@lashdiary.test",
		Password: "password123",
		Role:     user.RoleAdmin,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain(t *testing.T) *user.Account {
	t.Helper()
	email, err := user.NewEmail(u.Email)
	require.NoError(t, err)
	hash, err := password.HashPassword(u.Password)
	require.NoError(t, err)
	account, err := user.NewAccount(email, hash, u.Role)
	require.NoError(t, err)
	return account
}

func (u *UserBuilder) BuildView() *queries.AuthorizedUserView {
	email, _ := user.NewEmail(u.Email)
	return &queries.AuthorizedUserView{
		ID:    user.AccountID(email),
		Email: email.Value(),
		Role:  u.Role.String(),
	}
}

func (u *UserBuilder) BuildLoginRequest() reqdto.LoginRequest {
	return reqdto.LoginRequest{Email: u.Email, Password: u.Password}
}

// Fluent builder methods
func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role user.Role) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithPassword(pass string) *UserBuilder {
	u.Password = pass
	return u
}
