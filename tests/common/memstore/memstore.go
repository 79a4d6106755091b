//go:build unit || e2e

// Package memstore is an in-memory UnitOfWork for use case tests. Writes are
// conditional in the same way as the Postgres repositories, and a failing
// Within leaves the state exactly as it was before the call.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/domain/promotion"
	"storefront-checkout/internal/infra"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"
	"storefront-checkout/internal/usecase/queries"
	"storefront-checkout/internal/usecase/readmodel"
	"storefront-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Operation names accepted by FailNext.
const (
	OpOrderCreate         = "orders.create"
	OpOrderTransition     = "orders.transition"
	OpDecrementStock      = "products.decrement"
	OpRestoreStock        = "products.restore"
	OpCartDelete          = "carts.delete"
	OpPromotionConsume    = "promotions.consume"
	OpPointsDeduct        = "points.deduct"
	OpPointsRefund        = "points.refund"
	OpIdempotencyComplete = "idempotency.complete"
	OpJobSchedule         = "jobs.schedule"
)

const maxLineQuantity = 999

type CartItem struct {
	ProductID uuid.UUID
	Quantity  int32
}

type idempotencyID struct {
	key    uuid.UUID
	userID uuid.UUID
}

type jobRow struct {
	job      shared.ScheduledJob
	lockedAt *time.Time
	seq      int
}

type state struct {
	products    map[uuid.UUID]shared.ProductSnapshot
	carts       map[uuid.UUID][]CartItem
	promotions  map[uuid.UUID]*promotion.Promotion
	points      map[uuid.UUID]int64
	orders      map[uuid.UUID]*order.Order
	idempotency map[idempotencyID]shared.IdempotencyRecord
	jobs        map[uuid.UUID]jobRow
	jobSeq      int
}

func newState() *state {
	return &state{
		products:    map[uuid.UUID]shared.ProductSnapshot{},
		carts:       map[uuid.UUID][]CartItem{},
		promotions:  map[uuid.UUID]*promotion.Promotion{},
		points:      map[uuid.UUID]int64{},
		orders:      map[uuid.UUID]*order.Order{},
		idempotency: map[idempotencyID]shared.IdempotencyRecord{},
		jobs:        map[uuid.UUID]jobRow{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.carts {
		c.carts[k] = append([]CartItem(nil), v...)
	}
	for k, v := range s.promotions {
		c.promotions[k] = v
	}
	for k, v := range s.points {
		c.points[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = cloneOrder(v)
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	for k, v := range s.jobs {
		c.jobs[k] = v
	}
	c.jobSeq = s.jobSeq
	return c
}

func cloneOrder(o *order.Order) *order.Order {
	return order.Reconstruct(
		o.ID(), o.UserID(), o.Number(), o.Status(),
		append([]order.LineItem(nil), o.Items()...),
		o.Subtotal(), o.Total(), o.Discount(),
		o.PaymentMethod(), o.Shipping(), o.Note(),
		append([]order.StatusChange(nil), o.History()...),
		o.CreatedAt(), o.UpdatedAt(),
	)
}

// Store serializes transactions with a single mutex, which is enough to
// observe the outcome of racing requests without a database.
type Store struct {
	mu       sync.Mutex
	st       *state
	failures map[string]error
	commits  int
}

func New() *Store {
	return &Store{
		st:       newState(),
		failures: map[string]error{},
	}
}

var (
	_ shared.UnitOfWork      = (*Store)(nil)
	_ queries.OrderReadStore = (*Store)(nil)
	_ queries.CartReadStore  = (*Store)(nil)
)

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.st.clone()
	if err := fn(ctx, &memTx{s: s}); err != nil {
		s.st = backup
		return err
	}
	s.commits++
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return &reader{s: s, lock: true}
}

// FailNext makes the next call of op return err. The failure fires once.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) injected(op string) error {
	err, ok := s.failures[op]
	if !ok {
		return nil
	}
	delete(s.failures, op)
	return infra.WrapRepoErr("injected failure", err)
}

// Commits counts transactions that returned without error.
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// -----------------------------------------------------------------------------
// Seeding and inspection
// -----------------------------------------------------------------------------

func (s *Store) AddProduct(name, price string, stock int32) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.st.products[id] = shared.ProductSnapshot{
		ID:            id,
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	}
	return id
}

func (s *Store) DeleteProduct(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.st.products, id)
}

func (s *Store) SetStock(id uuid.UUID, stock int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.st.products[id]
	p.StockQuantity = stock
	s.st.products[id] = p
}

func (s *Store) SetPrice(id uuid.UUID, price string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.st.products[id]
	p.Price = decimal.RequireFromString(price)
	s.st.products[id] = p
}

func (s *Store) Stock(id uuid.UUID) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.products[id].StockQuantity
}

func (s *Store) SetCart(userID uuid.UUID, items ...CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.carts[userID] = append([]CartItem(nil), items...)
}

// Cart returns nil when the user has no cart row at all.
func (s *Store) Cart(userID uuid.UUID) []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.st.carts[userID]
	if !ok {
		return nil
	}
	return append([]CartItem{}, items...)
}

func (s *Store) HasCart(userID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.st.carts[userID]
	return ok
}

func (s *Store) AddPromotion(p *promotion.Promotion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.promotions[p.ID()] = p
}

func (s *Store) HasPromotion(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.st.promotions[id]
	return ok
}

func (s *Store) SetPoints(userID uuid.UUID, points int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.points[userID] = points
}

func (s *Store) Points(userID uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.points[userID]
}

func (s *Store) PutOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.orders[o.ID()] = cloneOrder(o)
}

// Order returns a copy; mutating it does not touch the store.
func (s *Store) Order(id uuid.UUID) (*order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.st.orders[id]
	if !ok {
		return nil, false
	}
	return cloneOrder(o), true
}

func (s *Store) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.orders)
}

// Jobs lists every scheduled job in scheduling order.
func (s *Store) Jobs() []shared.ScheduledJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]jobRow, 0, len(s.st.jobs))
	for _, r := range s.st.jobs {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	jobs := make([]shared.ScheduledJob, len(rows))
	for i, r := range rows {
		jobs[i] = r.job
	}
	return jobs
}

func (s *Store) Idempotency(key, userID uuid.UUID) (shared.IdempotencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.st.idempotency[idempotencyID{key: key, userID: userID}]
	return rec, ok
}

// -----------------------------------------------------------------------------
// Read stores
// -----------------------------------------------------------------------------

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*readmodel.OrderRM, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.st.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return orderView(o), nil
}

func (s *Store) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int32) ([]*readmodel.OrderListRM, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var mine []*order.Order
	for _, o := range s.st.orders {
		if o.UserID() == userID {
			mine = append(mine, o)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].CreatedAt().After(mine[j].CreatedAt()) })

	result := make([]*readmodel.OrderListRM, 0, len(mine))
	for i := int(offset); i < len(mine) && len(result) < int(limit); i++ {
		o := mine[i]
		var quantity int32
		for _, item := range o.Items() {
			quantity += item.Quantity()
		}
		result = append(result, &readmodel.OrderListRM{
			ID:            o.ID(),
			OrderNumber:   o.Number().String(),
			Status:        o.Status().String(),
			TotalAmount:   o.Total(),
			Discount:      o.Discount().Amount(),
			ItemCount:     int32(len(o.Items())),
			TotalQuantity: quantity,
			CreatedAt:     o.CreatedAt(),
		})
	}
	return result, nil
}

func (s *Store) FindByUser(_ context.Context, userID uuid.UUID) (*readmodel.CartRM, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.st.carts[userID]
	view := &readmodel.CartRM{
		UserID:   userID,
		Lines:    make([]readmodel.CartLineRM, 0, len(items)),
		Subtotal: decimal.Zero,
	}
	for _, item := range items {
		line := readmodel.CartLineRM{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     decimal.Zero,
			LineTotal: decimal.Zero,
		}
		if p, ok := s.st.products[item.ProductID]; ok {
			line.Name = p.Name
			line.Price = p.Price
			line.StockQuantity = p.StockQuantity
			line.LineTotal = order.RoundMoney(p.Price.Mul(decimal.NewFromInt32(item.Quantity)))
			line.Available = true
			view.Subtotal = view.Subtotal.Add(line.LineTotal)
		}
		view.ItemCount += item.Quantity
		view.Lines = append(view.Lines, line)
	}
	return view, nil
}

func orderView(o *order.Order) *readmodel.OrderRM {
	items := make([]readmodel.OrderItemRM, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = readmodel.OrderItemRM{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Price:     item.UnitPrice(),
			Quantity:  item.Quantity(),
			Total:     item.Total(),
		}
	}
	history := make([]readmodel.StatusHistoryRM, len(o.History()))
	for i, h := range o.History() {
		history[i] = readmodel.StatusHistoryRM{Status: h.Status.String(), Timestamp: h.ChangedAt, Note: h.Note}
	}

	d := o.Discount()
	var source *string
	if src := d.Source(); src != nil {
		v := src.String()
		source = &v
	}
	shipping := o.Shipping()

	return &readmodel.OrderRM{
		ID:             o.ID(),
		UserID:         o.UserID(),
		OrderNumber:    o.Number().String(),
		Status:         o.Status().String(),
		Subtotal:       o.Subtotal(),
		TotalAmount:    o.Total(),
		Discount:       d.Amount(),
		DiscountCode:   d.Code(),
		DiscountSource: source,
		PointsUsed:     d.PointsUsed(),
		Items:          items,
		ShippingInfo: readmodel.ShippingInfoRM{
			Name:    shipping.Name(),
			Phone:   shipping.Phone(),
			Address: shipping.Address(),
			City:    shipping.City(),
			Country: shipping.Country(),
		},
		PaymentMethod: o.PaymentMethod().String(),
		Note:          o.Note().Value(),
		StatusHistory: history,
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}

// -----------------------------------------------------------------------------
// Transaction
// -----------------------------------------------------------------------------

// memTx runs with Store.mu already held by Within.
type memTx struct {
	s *Store
}

func (t *memTx) Orders() shared.OrderRepository            { return orderRepo{t.s} }
func (t *memTx) Products() shared.ProductRepository        { return productRepo{t.s} }
func (t *memTx) Carts() shared.CartRepository              { return cartRepo{t.s} }
func (t *memTx) Promotions() shared.PromotionRepository    { return promotionRepo{t.s} }
func (t *memTx) Points() shared.PointsRepository           { return pointsRepo{t.s} }
func (t *memTx) Idempotency() shared.IdempotencyRepository { return idempotencyRepo{t.s} }
func (t *memTx) Jobs() shared.JobRepository                { return jobRepo{t.s} }
func (t *memTx) Reads() shared.CommandReads                { return &reader{s: t.s} }
func (t *memTx) DB() sqlc.DBTX                             { return nil }

type reader struct {
	s    *Store
	lock bool
}

func (r *reader) guard() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *reader) CartForCheckout(_ context.Context, userID uuid.UUID) ([]order.CartLine, error) {
	defer r.guard()()
	items := r.s.st.carts[userID]
	lines := make([]order.CartLine, 0, len(items))
	for _, item := range items {
		line := order.CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
		if p, ok := r.s.st.products[item.ProductID]; ok {
			line.Product = &order.ProductSnapshot{Name: p.Name, UnitPrice: p.Price, StockQuantity: p.StockQuantity}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (r *reader) ProductByID(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	defer r.guard()()
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return &p, nil
}

func (r *reader) PromotionForRedemption(_ context.Context, code promotion.Code, userID uuid.UUID, now time.Time) (*promotion.Promotion, error) {
	defer r.guard()()
	var best *promotion.Promotion
	for _, p := range r.s.st.promotions {
		if p.Code() != code || !p.ExpiresAt().After(now) {
			continue
		}
		if owner := p.OwnerID(); owner != nil && *owner != userID {
			continue
		}
		if best == nil || betterMatch(p, best) {
			best = p
		}
	}
	if best == nil {
		return nil, infra.WrapRepoErr("promotion not found", nil, infra.KindNotFound)
	}
	return best, nil
}

// user-scoped codes first, then the oldest
func betterMatch(p, than *promotion.Promotion) bool {
	if p.IsGlobal() != than.IsGlobal() {
		return !p.IsGlobal()
	}
	return p.CreatedAt().Before(than.CreatedAt())
}

func (r *reader) OrderByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	defer r.guard()()
	o, ok := r.s.st.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return cloneOrder(o), nil
}

func (r *reader) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	defer r.guard()()
	rec, ok := r.s.st.idempotency[idempotencyID{key: key, userID: userID}]
	if !ok {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return &rec, nil
}

type orderRepo struct{ s *Store }

func (r orderRepo) Create(_ context.Context, _ sqlc.DBTX, o *order.Order) error {
	if err := r.s.injected(OpOrderCreate); err != nil {
		return err
	}
	if _, exists := r.s.st.orders[o.ID()]; exists {
		return infra.WrapRepoErr("order already exists", nil, infra.KindDuplicateKey)
	}
	r.s.st.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r orderRepo) TransitionStatus(_ context.Context, _ sqlc.DBTX, orderID uuid.UUID, from order.Status, change order.StatusChange) (bool, error) {
	if err := r.s.injected(OpOrderTransition); err != nil {
		return false, err
	}
	o, ok := r.s.st.orders[orderID]
	if !ok || o.Status() != from {
		return false, nil
	}
	r.s.st.orders[orderID] = order.Reconstruct(
		o.ID(), o.UserID(), o.Number(), change.Status,
		append([]order.LineItem(nil), o.Items()...),
		o.Subtotal(), o.Total(), o.Discount(),
		o.PaymentMethod(), o.Shipping(), o.Note(),
		append(append([]order.StatusChange(nil), o.History()...), change),
		o.CreatedAt(), change.ChangedAt,
	)
	return true, nil
}

type productRepo struct{ s *Store }

func (r productRepo) DecrementStock(_ context.Context, _ sqlc.DBTX, productID uuid.UUID, quantity int32) (bool, error) {
	if err := r.s.injected(OpDecrementStock); err != nil {
		return false, err
	}
	p, ok := r.s.st.products[productID]
	if !ok || p.StockQuantity < quantity {
		return false, nil
	}
	p.StockQuantity -= quantity
	r.s.st.products[productID] = p
	return true, nil
}

func (r productRepo) RestoreStock(_ context.Context, _ sqlc.DBTX, productID uuid.UUID, quantity int32) error {
	if err := r.s.injected(OpRestoreStock); err != nil {
		return err
	}
	if p, ok := r.s.st.products[productID]; ok {
		p.StockQuantity += quantity
		r.s.st.products[productID] = p
	}
	return nil
}

type cartRepo struct{ s *Store }

func (r cartRepo) AddItem(_ context.Context, _ sqlc.DBTX, userID uuid.UUID, line cart.Line) error {
	items := r.s.st.carts[userID]
	for i, item := range items {
		if item.ProductID != line.ProductID() {
			continue
		}
		merged := item.Quantity + line.Quantity().Int32()
		if merged > maxLineQuantity {
			return infra.WrapRepoErr("cart line quantity out of range", nil, infra.KindConflict)
		}
		items[i].Quantity = merged
		return nil
	}
	r.s.st.carts[userID] = append(items, CartItem{ProductID: line.ProductID(), Quantity: line.Quantity().Int32()})
	return nil
}

func (r cartRepo) RemoveItem(_ context.Context, _ sqlc.DBTX, userID, productID uuid.UUID) (bool, error) {
	items := r.s.st.carts[userID]
	for i, item := range items {
		if item.ProductID == productID {
			r.s.st.carts[userID] = append(items[:i:i], items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r cartRepo) Delete(_ context.Context, _ sqlc.DBTX, userID uuid.UUID) error {
	if err := r.s.injected(OpCartDelete); err != nil {
		return err
	}
	delete(r.s.st.carts, userID)
	return nil
}

type promotionRepo struct{ s *Store }

func (r promotionRepo) Consume(_ context.Context, _ sqlc.DBTX, promotionID uuid.UUID) (bool, error) {
	if err := r.s.injected(OpPromotionConsume); err != nil {
		return false, err
	}
	if _, ok := r.s.st.promotions[promotionID]; !ok {
		return false, nil
	}
	delete(r.s.st.promotions, promotionID)
	return true, nil
}

type pointsRepo struct{ s *Store }

func (r pointsRepo) Deduct(_ context.Context, _ sqlc.DBTX, userID uuid.UUID, points int64) (bool, error) {
	if err := r.s.injected(OpPointsDeduct); err != nil {
		return false, err
	}
	balance, ok := r.s.st.points[userID]
	if !ok || balance < points {
		return false, nil
	}
	r.s.st.points[userID] = balance - points
	return true, nil
}

func (r pointsRepo) Refund(_ context.Context, _ sqlc.DBTX, userID uuid.UUID, points int64) error {
	if err := r.s.injected(OpPointsRefund); err != nil {
		return err
	}
	if _, ok := r.s.st.points[userID]; !ok {
		return infra.WrapRepoErr("user not found for points refund", nil, infra.KindNotFound)
	}
	r.s.st.points[userID] += points
	return nil
}

type idempotencyRepo struct{ s *Store }

func (r idempotencyRepo) Claim(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, now, expiresAt time.Time) (bool, error) {
	id := idempotencyID{key: key, userID: userID}
	if rec, ok := r.s.st.idempotency[id]; ok && rec.ExpiresAt.After(now) {
		return false, nil
	}
	r.s.st.idempotency[id] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) Complete(_ context.Context, _ sqlc.DBTX, key, userID, orderID uuid.UUID) error {
	if err := r.s.injected(OpIdempotencyComplete); err != nil {
		return err
	}
	id := idempotencyID{key: key, userID: userID}
	if rec, ok := r.s.st.idempotency[id]; ok {
		rec.ResultOrderID = &orderID
		r.s.st.idempotency[id] = rec
	}
	return nil
}

type jobRepo struct{ s *Store }

func (r jobRepo) Schedule(_ context.Context, _ sqlc.DBTX, kind string, payload []byte, runAt time.Time) (uuid.UUID, error) {
	if err := r.s.injected(OpJobSchedule); err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	r.s.st.jobSeq++
	r.s.st.jobs[id] = jobRow{
		job: shared.ScheduledJob{
			ID:      id,
			Kind:    kind,
			Payload: append([]byte(nil), payload...),
			RunAt:   runAt,
			Status:  shared.JobQueued,
		},
		seq: r.s.st.jobSeq,
	}
	return id, nil
}

func (r jobRepo) ClaimDue(_ context.Context, _ sqlc.DBTX, now, leaseCutoff time.Time, limit int32) ([]shared.ScheduledJob, error) {
	var due []jobRow
	for _, row := range r.s.st.jobs {
		queued := row.job.Status == shared.JobQueued && !row.job.RunAt.After(now)
		stale := row.job.Status == shared.JobRunning && row.lockedAt != nil && !row.lockedAt.After(leaseCutoff)
		if queued || stale {
			due = append(due, row)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].job.RunAt.Equal(due[j].job.RunAt) {
			return due[i].job.RunAt.Before(due[j].job.RunAt)
		}
		return due[i].seq < due[j].seq
	})
	if len(due) > int(limit) {
		due = due[:limit]
	}

	claimed := make([]shared.ScheduledJob, 0, len(due))
	for _, row := range due {
		lockedAt := now
		row.job.Status = shared.JobRunning
		row.job.Attempts++
		row.lockedAt = &lockedAt
		r.s.st.jobs[row.job.ID] = row
		claimed = append(claimed, row.job)
	}
	return claimed, nil
}

func (r jobRepo) Complete(_ context.Context, _ sqlc.DBTX, id uuid.UUID, _ time.Time) error {
	return r.update(id, func(row *jobRow) {
		row.job.Status = shared.JobDone
		row.lockedAt = nil
	})
}

func (r jobRepo) Reschedule(_ context.Context, _ sqlc.DBTX, id uuid.UUID, runAt time.Time, lastErr string, _ time.Time) error {
	return r.update(id, func(row *jobRow) {
		row.job.Status = shared.JobQueued
		row.job.RunAt = runAt
		row.job.LastError = &lastErr
		row.lockedAt = nil
	})
}

func (r jobRepo) Fail(_ context.Context, _ sqlc.DBTX, id uuid.UUID, lastErr string, _ time.Time) error {
	return r.update(id, func(row *jobRow) {
		row.job.Status = shared.JobFailed
		row.job.LastError = &lastErr
		row.lockedAt = nil
	})
}

func (r jobRepo) update(id uuid.UUID, fn func(row *jobRow)) error {
	row, ok := r.s.st.jobs[id]
	if !ok {
		return infra.WrapRepoErr("scheduled job not found", nil, infra.KindNotFound)
	}
	fn(&row)
	r.s.st.jobs[id] = row
	return nil
}
