package tracker

import (
	"context"

	"github.com/grabticket/bot/internal/domain"
	"github.com/grabticket/bot/internal/stats"
)

// EventSummary pairs an event name with its aggregate view, for the
// event-list command.
type EventSummary struct {
	Name   string
	Report *stats.EventReport
}

// EventDetail adds the per-participant breakdown for a single event.
type EventDetail struct {
	Name         string
	Report       *stats.EventReport
	Participants []stats.UserTotals
}

// UserStats returns one user's aggregated view, or not-found.
func (s *Service) UserStats(ctx context.Context, userID string) (*stats.UserReport, error) {
	report, ok := stats.UserStats(s.snapshot(ctx), userID)
	if !ok {
		return nil, domain.ErrNotFound("no records for user")
	}
	return report, nil
}

// AllUserStats returns every user's totals plus the aggregate, or not-found
// when the log is empty.
func (s *Service) AllUserStats(ctx context.Context) ([]stats.UserTotals, stats.OverallTotals, error) {
	users := stats.AllUsers(s.snapshot(ctx))
	if len(users) == 0 {
		return nil, stats.OverallTotals{}, domain.ErrNotFound("no records yet")
	}
	return users, stats.Overall(users), nil
}

// Leaderboard ranks users by the requested key.
func (s *Service) Leaderboard(ctx context.Context, rawKey string) ([]stats.UserTotals, stats.SortKey, error) {
	key, ok := stats.ParseSortKey(rawKey)
	if !ok {
		return nil, key, domain.ErrValidation("sort key must be rate, tickets or success")
	}
	ranked := stats.Leaderboard(s.snapshot(ctx), key)
	if len(ranked) == 0 {
		return nil, key, domain.ErrNotFound("no records yet")
	}
	return ranked, key, nil
}

// Events lists every known event with its aggregate view, first-seen order.
func (s *Service) Events(ctx context.Context) ([]EventSummary, error) {
	records := s.snapshot(ctx)
	names := stats.Events(records)
	if len(names) == 0 {
		return nil, domain.ErrNotFound("no events yet")
	}

	summaries := make([]EventSummary, 0, len(names))
	for _, name := range names {
		if report, ok := stats.EventStats(records, name); ok {
			summaries = append(summaries, EventSummary{Name: name, Report: report})
		}
	}
	return summaries, nil
}

// EventNames lists distinct event names, for autocomplete.
func (s *Service) EventNames(ctx context.Context) []string {
	return stats.Events(s.snapshot(ctx))
}

// EventDetail returns one event's aggregate plus participant breakdown.
func (s *Service) EventDetail(ctx context.Context, eventName string) (*EventDetail, error) {
	records := s.snapshot(ctx)
	report, ok := stats.EventStats(records, eventName)
	if !ok {
		return nil, domain.ErrNotFound("no records for event")
	}
	return &EventDetail{
		Name:         eventName,
		Report:       report,
		Participants: stats.EventParticipants(records, eventName),
	}, nil
}
