// Package reaper hard-deletes soft-deleted records once their grace period
// has passed.
package reaper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/wayfare/internal/clock"
)

const DefaultTTL = 300 * time.Second

// Entry is a record marked for deletion at MarkedAt. ObjectKey names an
// attached stored object, if any.
type Entry struct {
	ID        string
	ObjectKey string
	MarkedAt  time.Time
}

//go:generate mockgen -source=reaper.go -destination=source_mock.go -package=reaper
type Source interface {
	// ListExpired returns entries marked strictly before cutoff.
	ListExpired(ctx context.Context, cutoff time.Time) ([]Entry, error)
	// Delete removes the entry if it is still marked. It reports whether a
	// row was removed, so concurrent runs count each entry once.
	Delete(ctx context.Context, id string) (bool, error)
}

type ObjectStore interface {
	DeleteObject(ctx context.Context, key string) error
}

type Reaper struct {
	source  Source
	objects ObjectStore
	ttl     time.Duration
	clock   clock.Clock
	log     *slog.Logger
}

// New builds a Reaper. objects may be nil when entries carry no stored data.
func New(source Source, objects ObjectStore, ttl time.Duration, clk clock.Clock, logger *slog.Logger) *Reaper {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Reaper{source: source, objects: objects, ttl: ttl, clock: clk, log: logger}
}

// Run deletes every entry older than the TTL and returns how many rows it
// removed. Object deletion is best effort; the row goes regardless.
func (r *Reaper) Run(ctx context.Context) (int, error) {
	cutoff := r.clock.Now().Add(-r.ttl)

	entries, err := r.source.ListExpired(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("listing expired entries: %w", err)
	}

	deleted := 0

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}

		if r.objects != nil && e.ObjectKey != "" {
			if err := r.objects.DeleteObject(ctx, e.ObjectKey); err != nil {
				r.log.Warn("object delete failed", "id", e.ID, "key", e.ObjectKey, "error", err)
			}
		}

		ok, err := r.source.Delete(ctx, e.ID)
		if err != nil {
			r.log.Error("row delete failed", "id", e.ID, "error", err)
			continue
		}

		if ok {
			deleted++
		}
	}

	if deleted > 0 {
		r.log.Info("reaped expired entries", "deleted", deleted, "candidates", len(entries))
	}

	return deleted, nil
}
