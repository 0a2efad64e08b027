package tracker

import (
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/grabticket/bot/internal/domain"
	"github.com/grabticket/bot/internal/stats"
)

// ReportResult carries the appended record together with the fresh user and
// event views shown in the confirmation message.
type ReportResult struct {
	Record domain.Record
	User   *stats.UserReport
	Event  *stats.EventReport
}

// ReportSuccess appends a success record and returns the updated stats.
func (s *Service) ReportSuccess(ctx context.Context, id Identity, eventName string, tickets int, eventDate, note string) (*ReportResult, error) {
	if tickets < 1 || tickets > 100 {
		return nil, domain.ErrValidation("ticket count must be between 1 and 100")
	}
	rec, err := domain.NewRecord(id.UserID, id.UserName, eventName, domain.ResultSuccess, tickets, eventDate, note)
	if err != nil {
		return nil, err
	}
	return s.report(ctx, rec)
}

// ReportFailure appends a failure record (zero tickets) and returns the
// updated stats.
func (s *Service) ReportFailure(ctx context.Context, id Identity, eventName, eventDate, note string) (*ReportResult, error) {
	rec, err := domain.NewRecord(id.UserID, id.UserName, eventName, domain.ResultFailure, 0, eventDate, note)
	if err != nil {
		return nil, err
	}
	return s.report(ctx, rec)
}

func (s *Service) report(ctx context.Context, rec domain.Record) (*ReportResult, error) {
	if err := s.store.Append(ctx, rec); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	zlog.Info().
		Str("user_id", rec.UserID).
		Str("event", rec.EventName).
		Str("result", string(rec.Result)).
		Int("tickets", rec.TicketCount).
		Msg("record appended")

	records := s.snapshot(ctx)
	res := &ReportResult{Record: rec}
	res.User, _ = stats.UserStats(records, rec.UserID)
	res.Event, _ = stats.EventStats(records, rec.EventName)
	return res, nil
}

// DeleteLast removes the caller's most recent record.
func (s *Service) DeleteLast(ctx context.Context, id Identity) (domain.DeletedRecord, error) {
	deleted, err := s.store.DeleteLast(ctx, id.UserID)
	if err != nil {
		return domain.DeletedRecord{}, err
	}
	s.invalidate(ctx)

	zlog.Info().
		Str("user_id", id.UserID).
		Str("event", deleted.EventName).
		Msg("last record deleted")
	return deleted, nil
}
