//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"storefront-checkout/internal/domain/user"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper signs tokens with the service's own secret so tests skip the account service.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Duration)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CustomerToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return h.GenerateToken(t, userID, user.RoleViewer)
}

func (h *JWTHelper) StaffToken(t *testing.T) string {
	t.Helper()
	return h.GenerateToken(t, uuid.New(), user.RoleOperator)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	// Expired well past the validator's clock skew allowance.
	service := jwt.NewService(h.cfg.Secret, -time.Hour)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
