// Package tracker is the application layer between the chat commands and the
// record store. It owns snapshot caching and degradation policy; all actual
// number crunching lives in internal/stats.
package tracker

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/grabticket/bot/internal/domain"
)

type Service struct {
	store RecordStore
	cache SnapshotCache // nil = read through to the store every time
	clock Clock

	snapshotTTL time.Duration
}

func New(store RecordStore, clock Clock, cache SnapshotCache, snapshotTTL time.Duration) *Service {
	if snapshotTTL == 0 {
		snapshotTTL = 10 * time.Second
	}
	return &Service{
		store:       store,
		cache:       cache,
		clock:       clock,
		snapshotTTL: snapshotTTL,
	}
}

// Identity is the resolved reporter of a command.
type Identity struct {
	UserID   string
	UserName string
}

// snapshot returns the current record list. A failed store read degrades to
// an empty snapshot with the error in the logs; stats callers then see
// "no data" rather than a fault.
func (s *Service) snapshot(ctx context.Context) []domain.Record {
	if s.cache != nil {
		records, ok, err := s.cache.Get(ctx)
		if err != nil {
			zlog.Warn().Err(err).Msg("snapshot cache read failed")
		} else if ok {
			return records
		}
	}

	records, err := s.store.ReadAll(ctx)
	if err != nil {
		zlog.Error().Err(err).Msg("record read failed, serving empty snapshot")
		return nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, records, s.snapshotTTL); err != nil {
			zlog.Warn().Err(err).Msg("snapshot cache write failed")
		}
	}
	return records
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		zlog.Warn().Err(err).Msg("snapshot cache invalidation failed")
	}
}
