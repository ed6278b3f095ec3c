//go:build unit

package user_test

import (
	"strings"
	"testing"

	"lashdiary/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		email, err := user.NewEmail("studio@lashdiary.test")
		require.NoError(t, err)

		acc, err := user.NewAccount(email, "$2a$10$hash", user.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, acc.Role())
		assert.Equal(t, "studio@lashdiary.test", acc.Email().Value())
	})

	t.Run("IDはメールから決定的に導出", func(t *testing.T) {
		a, _ := user.NewEmail("Studio@LashDiary.test")
		b, _ := user.NewEmail("studio@lashdiary.test")
		assert.Equal(t, user.AccountID(a), user.AccountID(b))
		assert.True(t, a.Equal(b))
		assert.Equal(t, "studio@lashdiary.test", a.Value())
	})

	t.Run("ロール検証", func(t *testing.T) {
		email, _ := user.NewEmail("studio@lashdiary.test")
		_, err := user.NewAccount(email, "$2a$10$hash", user.Role("owner"))
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("ハッシュなしNG", func(t *testing.T) {
		email, _ := user.NewEmail("studio@lashdiary.test")
		_, err := user.NewAccount(email, " ", user.RoleStaff)
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}

func TestNewCredentials(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
		errIs    error
	}{
		{name: "valid", email: "studio@lashdiary.test", password: "correct-horse"},
		{name: "bad email", email: "studio", password: "correct-horse", errIs: user.ErrInvalidEmail},
		{name: "short password", email: "studio@lashdiary.test", password: "short", errIs: user.ErrPasswordTooWeak},
		{name: "long password", email: "studio@lashdiary.test", password: strings.Repeat("x", 73), errIs: user.ErrPasswordTooLong},
		{name: "display name form", email: "Studio <studio@lashdiary.test>", password: "correct-horse", errIs: user.ErrInvalidEmail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := user.NewCredentials(tc.email, tc.password)
			if tc.errIs == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		role, min user.Role
		want      bool
	}{
		{role: user.RoleAdmin, min: user.RoleStaff, want: true},
		{role: user.RoleAdmin, min: user.RoleAdmin, want: true},
		{role: user.RoleStaff, min: user.RoleStaff, want: true},
		{role: user.RoleStaff, min: user.RoleAdmin, want: false},
		{role: user.Role("owner"), min: user.RoleStaff, want: false},
		{role: user.RoleAdmin, min: user.Role("owner"), want: false},
	}
	for _, tc := range cases {
		t.Run(string(tc.role)+">="+string(tc.min), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.role.AtLeast(tc.min))
		})
	}
}
