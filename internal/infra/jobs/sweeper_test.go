//go:build unit

package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront-checkout/internal/infra/jobs"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/usecase/shared"
	"storefront-checkout/tests/common/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sweepStart = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type recordingHandler struct {
	kind  string
	fails int
	calls [][]byte
}

func (h *recordingHandler) Kind() string { return h.kind }

func (h *recordingHandler) Handle(_ context.Context, payload []byte) error {
	h.calls = append(h.calls, payload)
	if len(h.calls) <= h.fails {
		return errors.New("downstream unavailable")
	}
	return nil
}

func schedulerConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		PollInterval: time.Second,
		BatchSize:    10,
		MaxAttempts:  3,
		LeaseTimeout: time.Minute,
		RetryBackoff: 10 * time.Second,
	}
}

func schedule(t *testing.T, store *memstore.Store, kind string, runAt time.Time) {
	t.Helper()
	err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Jobs().Schedule(ctx, tx.DB(), kind, []byte(`{"order_id":"x"}`), runAt)
		return err
	})
	require.NoError(t, err)
}

func newSweeper(store *memstore.Store, clk clock.Clock, handlers ...shared.JobHandler) *jobs.Sweeper {
	return jobs.NewSweeper(store, handlers, clk, schedulerConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSweeper_RunOnce(t *testing.T) {
	t.Run("success: only due jobs run", func(t *testing.T) {
		store := memstore.New()
		clk := clock.NewMockClock(sweepStart)
		handler := &recordingHandler{kind: "order.auto_confirm"}
		schedule(t, store, handler.kind, sweepStart.Add(-time.Second))
		schedule(t, store, handler.kind, sweepStart.Add(time.Minute))

		n, err := newSweeper(store, clk, handler).RunOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Len(t, handler.calls, 1)
		all := store.Jobs()
		assert.Equal(t, shared.JobDone, all[0].Status)
		assert.Equal(t, shared.JobQueued, all[1].Status)
	})

	t.Run("success: failed job is retried with backoff", func(t *testing.T) {
		store := memstore.New()
		clk := clock.NewMockClock(sweepStart)
		handler := &recordingHandler{kind: "order.auto_confirm", fails: 1}
		schedule(t, store, handler.kind, sweepStart)
		sweeper := newSweeper(store, clk, handler)

		_, err := sweeper.RunOnce(context.Background())
		require.NoError(t, err)

		job := store.Jobs()[0]
		assert.Equal(t, shared.JobQueued, job.Status)
		assert.Equal(t, int32(1), job.Attempts)
		assert.Equal(t, sweepStart.Add(10*time.Second), job.RunAt)
		require.NotNil(t, job.LastError)
		assert.Equal(t, "downstream unavailable", *job.LastError)

		n, err := sweeper.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n, "backoff has not elapsed yet")

		clk.Add(10 * time.Second)
		n, err = sweeper.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, shared.JobDone, store.Jobs()[0].Status)
		assert.Len(t, handler.calls, 2)
	})

	t.Run("error: job fails for good after max attempts", func(t *testing.T) {
		store := memstore.New()
		clk := clock.NewMockClock(sweepStart)
		handler := &recordingHandler{kind: "order.auto_confirm", fails: 100}
		schedule(t, store, handler.kind, sweepStart)
		sweeper := newSweeper(store, clk, handler)

		for i := 0; i < 5; i++ {
			_, err := sweeper.RunOnce(context.Background())
			require.NoError(t, err)
			clk.Add(time.Minute)
		}

		job := store.Jobs()[0]
		assert.Equal(t, shared.JobFailed, job.Status)
		assert.Equal(t, int32(3), job.Attempts)
		assert.Len(t, handler.calls, 3)
	})

	t.Run("error: unknown kind fails immediately", func(t *testing.T) {
		store := memstore.New()
		clk := clock.NewMockClock(sweepStart)
		schedule(t, store, "inventory.reindex", sweepStart)

		n, err := newSweeper(store, clk).RunOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		job := store.Jobs()[0]
		assert.Equal(t, shared.JobFailed, job.Status)
		require.NotNil(t, job.LastError)
		assert.Contains(t, *job.LastError, "inventory.reindex")
	})

	t.Run("success: batch size bounds one sweep", func(t *testing.T) {
		store := memstore.New()
		clk := clock.NewMockClock(sweepStart)
		handler := &recordingHandler{kind: "order.auto_confirm"}
		for i := 0; i < 12; i++ {
			schedule(t, store, handler.kind, sweepStart.Add(-time.Duration(i)*time.Second))
		}
		sweeper := newSweeper(store, clk, handler)

		first, err := sweeper.RunOnce(context.Background())
		require.NoError(t, err)
		second, err := sweeper.RunOnce(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 10, first)
		assert.Equal(t, 2, second)
	})
}

func TestSweeper_RunStopsWithContext(t *testing.T) {
	store := memstore.New()
	clk := clock.NewMockClock(sweepStart)
	handler := &recordingHandler{kind: "order.auto_confirm"}
	schedule(t, store, handler.kind, sweepStart)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		newSweeper(store, clk, handler).Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return store.Jobs()[0].Status == shared.JobDone
	}, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
