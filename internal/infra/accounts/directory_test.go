//go:build unit

package accounts_test

import (
	"context"
	"testing"

	"lashdiary/internal/domain/user"
	"lashdiary/internal/infra"
	"lashdiary/internal/infra/accounts"
	"lashdiary/internal/pkg/config"
	"lashdiary/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory(t *testing.T) {
	hash, err := password.HashPassword("studio-pass-123")
	require.NoError(t, err)

	t.Run("管理者とスタッフのアカウントを解決できる", func(t *testing.T) {
		d, err := accounts.NewDirectory(config.AdminConfig{
			Email:             "Owner@LashDiary.test",
			PasswordHash:      hash,
			StaffEmail:        "staff@lashdiary.test",
			StaffPasswordHash: hash,
		})
		require.NoError(t, err)

		email, err := user.NewEmail("owner@lashdiary.test")
		require.NoError(t, err)
		owner, err := d.FindByEmail(context.Background(), email)
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, owner.Role())

		byID, err := d.FindByID(context.Background(), owner.ID())
		require.NoError(t, err)
		assert.Same(t, owner, byID)

		staffEmail, err := user.NewEmail("staff@lashdiary.test")
		require.NoError(t, err)
		staff, err := d.FindByEmail(context.Background(), staffEmail)
		require.NoError(t, err)
		assert.Equal(t, user.RoleStaff, staff.Role())
	})

	t.Run("未知のアカウントはNOT_FOUND", func(t *testing.T) {
		d, err := accounts.NewDirectory(config.AdminConfig{Email: "owner@lashdiary.test", PasswordHash: hash})
		require.NoError(t, err)

		email, err := user.NewEmail("someone@lashdiary.test")
		require.NoError(t, err)
		_, err = d.FindByEmail(context.Background(), email)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("平文のパスワードは設定エラー", func(t *testing.T) {
		_, err := accounts.NewDirectory(config.AdminConfig{Email: "owner@lashdiary.test", PasswordHash: "hunter22"})
		assert.ErrorIs(t, err, password.ErrInvalidHash)
	})

	t.Run("同じメールアドレスの重複は設定エラー", func(t *testing.T) {
		_, err := accounts.NewDirectory(config.AdminConfig{
			Email:             "owner@lashdiary.test",
			PasswordHash:      hash,
			StaffEmail:        "OWNER@lashdiary.test",
			StaffPasswordHash: hash,
		})
		assert.Error(t, err)
	})
}
