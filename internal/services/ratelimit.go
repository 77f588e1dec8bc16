package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"linkconnect/internal/models"
)

// RateLimiter holds the admin-managed limiter configuration behind an atomic
// pointer. The middleware reads the current snapshot per request; updates
// swap the snapshot and persist synchronously, so there is no ambient
// mutable global and no torn read.
type RateLimiter struct {
	current atomic.Pointer[models.RateLimitSettings]
	store   RateLimitStore
	log     zerolog.Logger
}

func NewRateLimiter(store RateLimitStore, windowMs int64, max int, log zerolog.Logger) *RateLimiter {
	r := &RateLimiter{store: store, log: log}
	r.current.Store(&models.RateLimitSettings{WindowMs: windowMs, Max: max, UpdatedAt: time.Now().UTC()})
	return r
}

// Init loads the persisted configuration, keeping the constructor defaults
// when none has been saved.
func (r *RateLimiter) Init(ctx context.Context) error {
	saved, err := r.store.Load(ctx)
	if err != nil {
		return err
	}
	if saved != nil {
		r.current.Store(saved)
		r.log.Info().Int64("window_ms", saved.WindowMs).Int("max", saved.Max).
			Msg("rate limiter initialized from store")
	}
	return nil
}

func (r *RateLimiter) Config() models.RateLimitSettings {
	return *r.current.Load()
}

// Update applies the present fields, swaps the active snapshot and persists
// the result before returning.
func (r *RateLimiter) Update(ctx context.Context, windowMs *int64, max *int, updatedBy bson.ObjectID) (models.RateLimitSettings, error) {
	cur := r.Config()
	next := models.RateLimitSettings{
		WindowMs:  cur.WindowMs,
		Max:       cur.Max,
		UpdatedBy: &updatedBy,
		UpdatedAt: time.Now().UTC(),
	}
	if windowMs != nil {
		if *windowMs < 1000 {
			return cur, NewValidation("windowMs must be at least 1000")
		}
		next.WindowMs = *windowMs
	}
	if max != nil {
		if *max < 1 {
			return cur, NewValidation("max must be at least 1")
		}
		next.Max = *max
	}

	if err := r.store.Save(ctx, next); err != nil {
		return cur, err
	}
	r.current.Store(&next)
	return next, nil
}
