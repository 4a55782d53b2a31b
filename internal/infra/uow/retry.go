package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"medoffice-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
	pgErrCodeLockNotAvailable     = "55P03"
)

var errMaxRetriesExceeded = errs.New("transaction failed after max retries")

// retryPolicy re-runs a whole transaction when Postgres aborted it for
// reasons unrelated to the booking itself. Slot conflicts are never retried.
type retryPolicy struct {
	maxRetries int
	base       time.Duration
	max        time.Duration
}

var defaultRetryPolicy = retryPolicy{
	maxRetries: 3,
	base:       100 * time.Millisecond,
	max:        time.Second,
}

func (p retryPolicy) run(ctx context.Context, op func(attempt int) error) error {
	for attempt := 1; ; attempt++ {
		err := op(attempt)
		if err == nil || !isRetryableError(err) {
			return err
		}
		if attempt > p.maxRetries {
			slog.Error("transaction failed after max retries", "attempts", attempt, "error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		wait := p.backoff(attempt)
		slog.Warn("retrying transaction",
			"attempt", attempt,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// backoff doubles from base per attempt, capped at max, plus up to 20% jitter
// so two colliding checkouts do not retry in lockstep.
func (p retryPolicy) backoff(attempt int) time.Duration {
	wait := min(p.base<<(attempt-1), p.max)
	if jitter := int64(wait / 5); jitter > 0 {
		wait += time.Duration(rand.Int64N(jitter))
	}
	return wait
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected, pgErrCodeLockNotAvailable:
		return true
	default:
		return false
	}
}
