//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"lashdiary/internal/domain/user"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/config"
	"lashdiary/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Duration, clock.NewRealClock())
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken signs a token whose expiry is already in the past.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	past := clock.NewMockClock(time.Now().Add(-2 * h.cfg.Duration))
	service := jwt.NewService(h.cfg.Secret, h.cfg.Duration, past)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
