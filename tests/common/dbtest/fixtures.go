//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both the pool and a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestUser(t *testing.T, db DBLike, email string, points int64) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, name, email, points) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		userID, strings.Split(email, "@")[0], email, points)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestProduct(t *testing.T, db DBLike, name, price string, stock int32) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO products (id, name, price, stock_quantity) VALUES ($1, $2, $3, $4)",
		productID, name, decimal.RequireFromString(price), stock)
	require.NoError(t, err)

	return productID
}

// AddCartItem seeds a cart line directly, skipping the API's quantity merge.
func AddCartItem(t *testing.T, db DBLike, userID, productID uuid.UUID, quantity int32) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, "INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING", userID)
	require.NoError(t, err)
	_, err = db.Exec(ctx,
		"INSERT INTO cart_items (user_id, product_id, quantity) VALUES ($1, $2, $3)",
		userID, productID, quantity)
	require.NoError(t, err)
}

type PromotionSeed struct {
	Code          string
	Type          string
	Value         string
	MinOrderValue *string
	OwnerID       *uuid.UUID
	ExpiresAt     time.Time
}

func CreateTestPromotion(t *testing.T, db DBLike, p PromotionSeed) uuid.UUID {
	t.Helper()

	if p.Type == "" {
		p.Type = "fixed"
	}
	if p.ExpiresAt.IsZero() {
		p.ExpiresAt = time.Now().Add(24 * time.Hour)
	}

	var minimum *decimal.Decimal
	if p.MinOrderValue != nil {
		m := decimal.RequireFromString(*p.MinOrderValue)
		minimum = &m
	}

	promoID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO promotions (id, code, discount_type, discount_value, min_order_value, user_id, expires_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		promoID, p.Code, p.Type, decimal.RequireFromString(p.Value), minimum, p.OwnerID, p.ExpiresAt)
	require.NoError(t, err)

	return promoID
}

func Stock(t *testing.T, db DBLike, productID uuid.UUID) int32 {
	t.Helper()
	var stock int32
	err := db.QueryRow(context.Background(), "SELECT stock_quantity FROM products WHERE id = $1", productID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

func Points(t *testing.T, db DBLike, userID uuid.UUID) int64 {
	t.Helper()
	var points int64
	err := db.QueryRow(context.Background(), "SELECT points FROM users WHERE id = $1", userID).Scan(&points)
	require.NoError(t, err)
	return points
}

func Count(t *testing.T, db DBLike, table, where string, args ...any) int {
	t.Helper()
	var n int
	query := "SELECT count(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	err := db.QueryRow(context.Background(), query, args...).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations', 'atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
