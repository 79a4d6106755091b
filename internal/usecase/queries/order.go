package queries

import (
	"context"
	"math"

	"storefront-checkout/internal/domain/user"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/readmodel"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

var (
	ErrOrderNotFound = errs.New("order not found")
	ErrOrderAccess   = errs.New("order belongs to another user")
)

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.OrderRM, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*readmodel.OrderListRM, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole user.Role) (*readmodel.OrderRM, error)
	// GetByIDSystem skips the ownership check; used after a command already authorised the caller.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*readmodel.OrderRM, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*readmodel.OrderListRM, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole user.Role) (*readmodel.OrderRM, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	// staff may look at any order; customers only at their own
	if view.UserID != actorID && !actorRole.AtLeast(user.RoleOperator) {
		return nil, ErrOrderAccess
	}
	return view, nil
}

func (q *orderQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*readmodel.OrderRM, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrOrderNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *orderQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*readmodel.OrderListRM, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	if offset > math.MaxInt32 {
		offset = math.MaxInt32
	}

	// #nosec G115 -- both values are clamped above
	return q.store.ListByUser(ctx, userID, int32(limit), int32(offset))
}
