package usecase

import (
	"context"

	"lashdiary/internal/domain/user"
	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/pkg/jwt"
	"lashdiary/internal/usecase/queries"

	"github.com/google/uuid"
)

var ErrAccountRevoked = errs.New("account no longer exists or changed role")

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, user.Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
	accounts   queries.UserReadStore
}

func NewTokenValidator(jwtService *jwt.Service, accounts queries.UserReadStore) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
		accounts:   accounts,
	}
}

// ValidateToken also checks the account against the directory, so removing
// an account from configuration revokes its tokens on restart.
func (t *tokenValidatorImpl) ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", err
	}

	account, err := t.accounts.FindByID(ctx, claims.UserID)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrAccountRevoked)
	}
	if account.Role() != role {
		return uuid.Nil, "", ErrAccountRevoked
	}

	return claims.UserID, role, nil
}
