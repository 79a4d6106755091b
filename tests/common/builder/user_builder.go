//go:build unit || e2e

package builder

import (
	"time"

	"storefront-checkout/internal/domain/user"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserBuilder struct {
	ID     uuid.UUID
	Name   string
	Email  string
	Role   user.Role
	Points int64
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:     uuid.New(),
		Name:   "Test Customer",
		Email:  "customer@example.com",
		Role:   user.RoleViewer,
		Points: 0,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) BuildInfra() sqlc.Users {
	now := time.Now()
	return sqlc.Users{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Points:    u.Points,
		CreatedAt: pgtype.Timestamptz{Time: now, Valid: true},
		UpdatedAt: pgtype.Timestamptz{Time: now, Valid: true},
	}
}

// Fluent builder methods
func (u *UserBuilder) WithPoints(points int64) *UserBuilder {
	u.Points = points
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) AsOperator() *UserBuilder {
	u.Role = user.RoleOperator
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Role = user.RoleAdmin
	return u
}
