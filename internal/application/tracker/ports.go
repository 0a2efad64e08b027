package tracker

import (
	"context"
	"time"

	"github.com/grabticket/bot/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// RecordStore is the durable append-only log of ticket records.
type RecordStore interface {
	EnsureHeader(ctx context.Context) error
	Append(ctx context.Context, rec domain.Record) error
	ReadAll(ctx context.Context) ([]domain.Record, error)
	DeleteLast(ctx context.Context, userID string) (domain.DeletedRecord, error)
}

// SnapshotCache shortcuts repeated full reads of the store. May be absent.
type SnapshotCache interface {
	Get(ctx context.Context) ([]domain.Record, bool, error)
	Set(ctx context.Context, records []domain.Record, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
