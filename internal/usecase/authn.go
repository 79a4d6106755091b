package usecase

import (
	"storefront-checkout/internal/domain/user"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/pkg/jwt"

	"github.com/google/uuid"
)

// ErrUnauthenticated marks every reason a bearer token is turned away.
var ErrUnauthenticated = errs.New("caller is not authenticated")

// Principal is the caller behind a request. Tokens are issued elsewhere, so
// the user row is never looked up here.
type Principal struct {
	UserID uuid.UUID
	Role   user.Role
}

type Authenticator interface {
	Authenticate(bearer string) (Principal, error)
}

type jwtAuthenticator struct {
	tokens *jwt.Service
}

func NewAuthenticator(tokens *jwt.Service) Authenticator {
	return &jwtAuthenticator{tokens: tokens}
}

func (a *jwtAuthenticator) Authenticate(bearer string) (Principal, error) {
	claims, err := a.tokens.ValidateToken(bearer)
	if err != nil {
		return Principal{}, errs.Mark(errs.Wrap(err, "token rejected"), ErrUnauthenticated)
	}

	userID, err := claims.UserID()
	if err != nil {
		return Principal{}, errs.Mark(errs.Wrap(err, "token subject is not a user id"), ErrUnauthenticated)
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Principal{}, errs.Mark(errs.Wrapf(err, "token role %q", claims.Role), ErrUnauthenticated)
	}

	return Principal{UserID: userID, Role: role}, nil
}
