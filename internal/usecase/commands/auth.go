package commands

import (
	"context"
	"log/slog"

	"lashdiary/internal/domain/user"
	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/pkg/jwt"
	"lashdiary/internal/pkg/password"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	Role        user.Role
	AccessToken string
}

// AccountDirectory resolves console accounts by email.
type AccountDirectory interface {
	FindByEmail(ctx context.Context, email user.Email) (*user.Account, error)
}

type AuthCommands interface {
	Login(ctx context.Context, email, pass string) (*LoginResult, error)
}

type authCommandsImpl struct {
	accounts   AccountDirectory
	jwtService *jwt.Service
	logger     *slog.Logger
}

func NewAuthCommands(accounts AccountDirectory, jwtService *jwt.Service, logger *slog.Logger) AuthCommands {
	return &authCommandsImpl{
		accounts:   accounts,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	credentials, err := user.NewCredentials(email, pass)
	if err != nil {
		// Same error as a mismatch to prevent account enumeration
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	account, err := a.accounts.FindByEmail(ctx, credentials.Email())
	if err != nil || account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := password.ComparePassword(account.PasswordHash(), credentials.Password().Value()); err != nil {
		a.logger.Warn("console login rejected", "account_id", account.ID())
		return nil, ErrInvalidCredentials
	}

	accessToken, err := a.jwtService.GenerateToken(account.ID(), account.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      account.ID(),
		Role:        account.Role(),
		AccessToken: accessToken,
	}, nil
}
