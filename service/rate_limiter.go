package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"review-explorer/apperrors"
	"review-explorer/metrics"
	"review-explorer/models"
)

const quotaDateLayout = "2006-01-02"

// QuotaStore persists quota records. Implemented by dao.ClientStateDAO.
// UpdateQuotaRecord must be atomic across every process sharing the store.
type QuotaStore interface {
	GetQuotaRecord(ctx context.Context, clientID string) (*models.QuotaRecord, error)
	SetQuotaRecord(ctx context.Context, clientID string, record models.QuotaRecord) error
	UpdateQuotaRecord(ctx context.Context, clientID string, fn func(record *models.QuotaRecord) (models.QuotaRecord, error)) error
}

// RateLimiter enforces the daily cap on place details requests.
type RateLimiter struct {
	mu    sync.Mutex
	store QuotaStore
	limit int
	now   func() time.Time
}

// NewRateLimiter constructs a RateLimiter with the given daily limit.
func NewRateLimiter(store QuotaStore, limit int) *RateLimiter {
	return NewRateLimiterWithClock(store, limit, time.Now)
}

// NewRateLimiterWithClock constructs a RateLimiter with a custom clock.
func NewRateLimiterWithClock(store QuotaStore, limit int, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		store: store,
		limit: limit,
		now:   now,
	}
}

// Limit returns the daily limit.
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

// CheckQuota reports whether another details request is allowed today.
// A record from an earlier day is reset to zero.
func (rl *RateLimiter) CheckQuota(ctx context.Context, clientID string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.checkLocked(ctx, clientID)
}

// ConsumeQuota counts one details request against today's quota.
func (rl *RateLimiter) ConsumeQuota(ctx context.Context, clientID string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.consumeLocked(ctx, clientID)
}

// Acquire checks and consumes in one atomic store update. It returns an
// error wrapping apperrors.ErrQuotaExceeded when today's quota is used up.
func (rl *RateLimiter) Acquire(ctx context.Context, clientID string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	err := rl.store.UpdateQuotaRecord(ctx, clientID, func(record *models.QuotaRecord) (models.QuotaRecord, error) {
		next := rl.rollover(record)
		if next.Count >= rl.limit {
			return next, apperrors.QuotaExceeded(rl.limit)
		}
		next.Count++
		return next, nil
	})
	if errors.Is(err, apperrors.ErrQuotaExceeded) {
		metrics.QuotaRejectedTotal.Inc()
	}
	return err
}

// Remaining returns how many details requests are left today.
func (rl *RateLimiter) Remaining(ctx context.Context, clientID string) (int, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	record, err := rl.todayRecord(ctx, clientID)
	if err != nil {
		return 0, err
	}
	return max(0, rl.limit-record.Count), nil
}

func (rl *RateLimiter) checkLocked(ctx context.Context, clientID string) (bool, error) {
	record, err := rl.store.GetQuotaRecord(ctx, clientID)
	if err != nil {
		return false, err
	}

	today := rl.today()
	if record == nil || record.Date != today {
		if err := rl.store.SetQuotaRecord(ctx, clientID, models.QuotaRecord{Date: today, Count: 0}); err != nil {
			return false, err
		}
		return true, nil
	}
	return record.Count < rl.limit, nil
}

func (rl *RateLimiter) consumeLocked(ctx context.Context, clientID string) error {
	return rl.store.UpdateQuotaRecord(ctx, clientID, func(record *models.QuotaRecord) (models.QuotaRecord, error) {
		next := rl.rollover(record)
		next.Count++
		return next, nil
	})
}

// todayRecord returns the stored record, rolled over to today if it is older.
func (rl *RateLimiter) todayRecord(ctx context.Context, clientID string) (models.QuotaRecord, error) {
	record, err := rl.store.GetQuotaRecord(ctx, clientID)
	if err != nil {
		return models.QuotaRecord{}, err
	}
	return rl.rollover(record), nil
}

func (rl *RateLimiter) rollover(record *models.QuotaRecord) models.QuotaRecord {
	today := rl.today()
	if record == nil || record.Date != today {
		return models.QuotaRecord{Date: today, Count: 0}
	}
	return *record
}

func (rl *RateLimiter) today() string {
	return rl.now().UTC().Format(quotaDateLayout)
}
