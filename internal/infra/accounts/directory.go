// Package accounts serves the studio console accounts provisioned through
// configuration.
package accounts

import (
	"context"
	"fmt"
	"strings"

	"lashdiary/internal/domain/user"
	"lashdiary/internal/infra"
	"lashdiary/internal/pkg/config"
	"lashdiary/internal/pkg/password"

	"github.com/google/uuid"
)

type Directory struct {
	byID map[uuid.UUID]*user.Account
}

func NewDirectory(cfg config.AdminConfig) (*Directory, error) {
	d := &Directory{byID: make(map[uuid.UUID]*user.Account)}
	if err := d.add(cfg.Email, cfg.PasswordHash, user.RoleAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.StaffEmail) != "" {
		if err := d.add(cfg.StaffEmail, cfg.StaffPasswordHash, user.RoleStaff); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Directory) add(email, hash string, role user.Role) error {
	e, err := user.NewEmail(email)
	if err != nil {
		return fmt.Errorf("%s account email: %w", role, err)
	}
	if err := password.CheckHash(hash); err != nil {
		return fmt.Errorf("%s account password hash: %w", role, err)
	}
	account, err := user.NewAccount(e, hash, role)
	if err != nil {
		return err
	}
	if _, dup := d.byID[account.ID()]; dup {
		return fmt.Errorf("duplicate console account %s", e.Value())
	}
	d.byID[account.ID()] = account
	return nil
}

func (d *Directory) FindByEmail(_ context.Context, email user.Email) (*user.Account, error) {
	if a, ok := d.byID[user.AccountID(email)]; ok {
		return a, nil
	}
	return nil, infra.NewRepoErr(infra.KindNotFound, "account not found")
}

func (d *Directory) FindByID(_ context.Context, id uuid.UUID) (*user.Account, error) {
	if a, ok := d.byID[id]; ok {
		return a, nil
	}
	return nil, infra.NewRepoErr(infra.KindNotFound, "account not found")
}
