package transfer

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vmunteanu/mdbank/pkg/domain"
	"github.com/vmunteanu/mdbank/pkg/repository"
)

type retryBackoff func(ctx context.Context) error

func fixedBackoff(d time.Duration) retryBackoff {
	return func(ctx context.Context) error {
		select {
		case <-time.After(d):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// withRetry runs op inside a serializable unit of work, retrying the whole
// operation up to the configured attempt budget when it fails on a conflict
// that a rerun can resolve. After the last attempt the error is returned to
// the caller unmodified.
func (s *Service) withRetry(ctx context.Context, op func(uow repository.UnitOfWork) error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = s.uow.Do(ctx, op)
		if err == nil || !isRetryable(err) {
			return err
		}
		if attempt >= s.maxAttempts {
			return err
		}
		s.logger.Warn("transfer attempt failed on a transient conflict, retrying",
			"attempt", attempt, "error", err)
		if s.backoff != nil {
			if berr := s.backoff(ctx); berr != nil {
				return err
			}
		}
	}
}

// Postgres error codes that identify a conflict worth rerunning: the
// transaction-rollback class raised under serializable isolation and
// connection-level failures.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgConnectionClass      = "08"
)

// isRetryable enumerates exactly the failures the retry controller absorbs:
// a lost optimistic version check, a serialization or deadlock rollback, and
// transient connection errors. Business failures are never retried.
func isRetryable(err error) bool {
	if errors.Is(err, domain.ErrConcurrencyConflict) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected {
			return true
		}
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == pgConnectionClass {
			return true
		}
	}
	return false
}
