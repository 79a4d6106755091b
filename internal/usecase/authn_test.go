//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"storefront-checkout/internal/domain/user"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/pkg/jwt"
	"storefront-checkout/internal/usecase"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthenticator_Authenticate(t *testing.T) {
	const secret = "checkout-secret"
	tokens := jwt.NewService(secret, time.Hour)
	authn := usecase.NewAuthenticator(tokens)
	userID := uuid.New()

	valid, err := tokens.GenerateToken(userID, user.RoleOperator)
	require.NoError(t, err)

	future := gojwt.NewNumericDate(time.Now().Add(time.Hour))

	testCases := []struct {
		name     string
		token    string
		expected usecase.Principal
		wantErr  bool
	}{
		{name: "success: staff token", token: valid, expected: usecase.Principal{UserID: userID, Role: user.RoleOperator}},
		{name: "error: garbage", token: "not-a-jwt", wantErr: true},
		{
			name: "error: subject is not a uuid",
			token: signed(t, secret, jwt.Claims{
				Role:             "viewer",
				RegisteredClaims: gojwt.RegisteredClaims{Subject: "alice", ExpiresAt: future},
			}),
			wantErr: true,
		},
		{
			name: "error: unknown role",
			token: signed(t, secret, jwt.Claims{
				Role:             "owner",
				RegisteredClaims: gojwt.RegisteredClaims{Subject: userID.String(), ExpiresAt: future},
			}),
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := authn.Authenticate(tc.token)

			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errs.Is(err, usecase.ErrUnauthenticated))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
