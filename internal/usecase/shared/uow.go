package shared

import (
	"context"
	"time"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/domain/promotion"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Orders() OrderRepository
	Products() ProductRepository
	Carts() CartRepository
	Promotions() PromotionRepository
	Points() PointsRepository
	Idempotency() IdempotencyRepository
	Jobs() JobRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

type CommandReads interface {
	// CartForCheckout locks the cart row for the rest of the transaction and
	// returns its lines joined to current product state. A missing cart yields no lines.
	CartForCheckout(ctx context.Context, userID uuid.UUID) ([]order.CartLine, error)
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	PromotionForRedemption(ctx context.Context, code promotion.Code, userID uuid.UUID, now time.Time) (*promotion.Promotion, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, o *order.Order) error
	// TransitionStatus applies change only while the stored status still equals from.
	TransitionStatus(ctx context.Context, tx sqlc.DBTX, orderID uuid.UUID, from order.Status, change order.StatusChange) (bool, error)
}

type ProductRepository interface {
	// DecrementStock reserves quantity units and reports false when stock is short.
	DecrementStock(ctx context.Context, tx sqlc.DBTX, productID uuid.UUID, quantity int32) (bool, error)
	RestoreStock(ctx context.Context, tx sqlc.DBTX, productID uuid.UUID, quantity int32) error
}

type CartRepository interface {
	AddItem(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID, line cart.Line) error
	RemoveItem(ctx context.Context, tx sqlc.DBTX, userID, productID uuid.UUID) (bool, error)
	Delete(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID) error
}

type PromotionRepository interface {
	// Consume deletes a single-use promotion and reports false if another redemption won.
	Consume(ctx context.Context, tx sqlc.DBTX, promotionID uuid.UUID) (bool, error)
}

type PointsRepository interface {
	Deduct(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID, points int64) (bool, error)
	Refund(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID, points int64) error
}

type IdempotencyRepository interface {
	// Claim inserts the key, or takes over an expired one. False means a live key exists.
	Claim(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, now, expiresAt time.Time) (bool, error)
	Complete(ctx context.Context, tx sqlc.DBTX, key, userID, orderID uuid.UUID) error
}

type JobRepository interface {
	Schedule(ctx context.Context, tx sqlc.DBTX, kind string, payload []byte, runAt time.Time) (uuid.UUID, error)
	ClaimDue(ctx context.Context, tx sqlc.DBTX, now, leaseCutoff time.Time, limit int32) ([]ScheduledJob, error)
	Complete(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, at time.Time) error
	Reschedule(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, runAt time.Time, lastErr string, at time.Time) error
	Fail(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, lastErr string, at time.Time) error
}

// JobHandler runs one kind of scheduled job. Handlers must tolerate redelivery.
type JobHandler interface {
	Kind() string
	Handle(ctx context.Context, payload []byte) error
}
