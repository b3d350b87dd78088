package scheduling

import (
	"context"
	"errors"
	"time"

	"medibook/config"
	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	ledgerRepo "medibook/database/repository/ledger"
	"medibook/utils"

	"go.uber.org/zap"
)

func bookingWindowDays() int {
	days := config.AppConfig.BookingWindowDays
	if days <= 0 {
		days = 7
	}
	return days
}

func retryAttempts() int {
	n := config.AppConfig.StoreRetryAttempts
	if n <= 0 {
		n = 3
	}
	return n
}

// withRetry runs fn, retrying only transient store failures with a bounded
// backoff. Domain outcomes (slot taken, not found, and the rest of the
// taxonomy) are never retried: a conflicting booking must surface to the
// patient, not silently pick again. Exhausted retries surface as
// StoreUnavailable.
func (s *DefaultSchedulingService) withRetry(ctx context.Context, op string, fn func() error) error {
	attempts := retryAttempts()
	backoff := 100 * time.Millisecond

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil || !transient(err) {
			return err
		}
		utils.GetLogger().Warn("transient store failure",
			zap.String("op", op), zap.Int("attempt", attempt), zap.Error(err))
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return NewSchedulingError(CodeStoreUnavailable, "store operation aborted: "+ctx.Err().Error())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return NewSchedulingError(CodeStoreUnavailable, "store unavailable after retries: "+err.Error())
}

// transient reports whether err looks like infrastructure failure rather
// than a domain outcome.
func transient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *SchedulingError
	if errors.As(err, &se) {
		return false
	}
	for _, sentinel := range []error{
		doctorRepo.ErrNotFound,
		appointmentRepo.ErrNotFound,
		appointmentRepo.ErrNoMatch,
		ledgerRepo.ErrDoctorNotFound,
		ledgerRepo.ErrDoctorUnavailable,
		ledgerRepo.ErrSlotTaken,
		ledgerRepo.ErrNoMatch,
	} {
		if errors.Is(err, sentinel) {
			return false
		}
	}
	return true
}
