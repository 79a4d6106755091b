package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductSnapshot struct {
	ID            uuid.UUID
	Name          string
	Price         decimal.Decimal
	StockQuantity int32
}

type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Endpoint      string
	RequestHash   string
	ResultOrderID *uuid.UUID
	ExpiresAt     time.Time
}

type JobStatus string

const (
	JobQueued  JobStatus = "queued"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

type ScheduledJob struct {
	ID        uuid.UUID
	Kind      string
	Payload   []byte
	RunAt     time.Time
	Status    JobStatus
	Attempts  int32
	LastError *string
}
