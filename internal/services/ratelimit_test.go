package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"linkconnect/internal/models"
)

func TestRateLimiterInit(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when nothing persisted", func(t *testing.T) {
		rl := NewRateLimiter(&memRateLimitStore{}, 60000, 50, zerolog.Nop())
		if err := rl.Init(ctx); err != nil {
			t.Fatal(err)
		}
		cfg := rl.Config()
		if cfg.WindowMs != 60000 || cfg.Max != 50 {
			t.Errorf("config = %+v, want constructor defaults", cfg)
		}
	})

	t.Run("persisted settings win", func(t *testing.T) {
		store := &memRateLimitStore{saved: &models.RateLimitSettings{WindowMs: 5000, Max: 7}}
		rl := NewRateLimiter(store, 60000, 50, zerolog.Nop())
		if err := rl.Init(ctx); err != nil {
			t.Fatal(err)
		}
		cfg := rl.Config()
		if cfg.WindowMs != 5000 || cfg.Max != 7 {
			t.Errorf("config = %+v, want persisted values", cfg)
		}
	})
}

func TestRateLimiterUpdate(t *testing.T) {
	ctx := context.Background()
	admin := bson.NewObjectID()

	int64p := func(v int64) *int64 { return &v }
	intp := func(v int) *int { return &v }

	t.Run("partial update keeps the other field", func(t *testing.T) {
		store := &memRateLimitStore{}
		rl := NewRateLimiter(store, 60000, 50, zerolog.Nop())

		cfg, err := rl.Update(ctx, nil, intp(10), admin)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if cfg.WindowMs != 60000 || cfg.Max != 10 {
			t.Errorf("config = %+v, want window kept, max updated", cfg)
		}
		if store.saved == nil || store.saved.Max != 10 {
			t.Errorf("settings not persisted: %+v", store.saved)
		}
		if got := rl.Config(); got.Max != 10 {
			t.Errorf("snapshot not swapped: %+v", got)
		}
	})

	t.Run("window below a second rejected", func(t *testing.T) {
		rl := NewRateLimiter(&memRateLimitStore{}, 60000, 50, zerolog.Nop())
		_, err := rl.Update(ctx, int64p(500), nil, admin)
		assertStatus(t, err, 400)
		if got := rl.Config(); got.WindowMs != 60000 {
			t.Errorf("rejected update still mutated the snapshot: %+v", got)
		}
	})

	t.Run("zero max rejected", func(t *testing.T) {
		rl := NewRateLimiter(&memRateLimitStore{}, 60000, 50, zerolog.Nop())
		_, err := rl.Update(ctx, nil, intp(0), admin)
		assertStatus(t, err, 400)
	})

	t.Run("persist failure leaves the snapshot untouched", func(t *testing.T) {
		store := &memRateLimitStore{saveErr: errors.New("mongo down")}
		rl := NewRateLimiter(store, 60000, 50, zerolog.Nop())

		_, err := rl.Update(ctx, int64p(30000), intp(5), admin)
		if err == nil {
			t.Fatal("expected persist error to surface")
		}
		if got := rl.Config(); got.WindowMs != 60000 || got.Max != 50 {
			t.Errorf("snapshot changed despite failed persist: %+v", got)
		}
	})

	t.Run("audit fields stamped", func(t *testing.T) {
		store := &memRateLimitStore{}
		rl := NewRateLimiter(store, 60000, 50, zerolog.Nop())
		before := time.Now().UTC()

		cfg, err := rl.Update(ctx, int64p(30000), nil, admin)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.UpdatedBy == nil || *cfg.UpdatedBy != admin {
			t.Errorf("updatedBy = %v, want %v", cfg.UpdatedBy, admin)
		}
		if cfg.UpdatedAt.Before(before) {
			t.Errorf("updatedAt = %v, want >= %v", cfg.UpdatedAt, before)
		}
	})
}
