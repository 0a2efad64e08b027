package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grabticket/bot/internal/domain"
	"github.com/grabticket/bot/internal/stats"
)

// --- Fakes ---

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

// memStore keeps records in a slice; deleted rows become zero-value holes so
// positions behave like the sheet's cleared rows.
type memStore struct {
	rows      []domain.Record
	readErr   error
	appendErr error
}

func (m *memStore) EnsureHeader(ctx context.Context) error { return nil }

func (m *memStore) Append(ctx context.Context, rec domain.Record) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.rows = append(m.rows, rec)
	return nil
}

func (m *memStore) ReadAll(ctx context.Context) ([]domain.Record, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	var out []domain.Record
	for _, r := range m.rows {
		if r.UserID != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) DeleteLast(ctx context.Context, userID string) (domain.DeletedRecord, error) {
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID != userID {
			continue
		}
		rec := m.rows[i]
		m.rows[i] = domain.Record{}
		return domain.DeletedRecord{
			EventName:   rec.EventName,
			Result:      rec.Result,
			TicketCount: rec.TicketCount,
		}, nil
	}
	return domain.DeletedRecord{}, domain.ErrNotFound("no records for user")
}

type countingCache struct {
	records     []domain.Record
	present     bool
	sets        int
	invalidates int
}

func (c *countingCache) Get(ctx context.Context) ([]domain.Record, bool, error) {
	return c.records, c.present, nil
}

func (c *countingCache) Set(ctx context.Context, records []domain.Record, ttl time.Duration) error {
	c.records = records
	c.present = true
	c.sets++
	return nil
}

func (c *countingCache) Invalidate(ctx context.Context) error {
	c.records = nil
	c.present = false
	c.invalidates++
	return nil
}

func newService(store *memStore) *Service {
	return New(store, fakeClock{t: time.Date(2025, 12, 25, 20, 0, 0, 0, time.UTC)}, nil, 0)
}

var alice = Identity{UserID: "u1", UserName: "Alice"}
var bob = Identity{UserID: "u2", UserName: "Bob"}

// --- Tests ---

func TestReportSuccess(t *testing.T) {
	ctx := context.Background()

	t.Run("should_append_and_return_fresh_stats", func(t *testing.T) {
		store := &memStore{}
		svc := newService(store)

		res, err := svc.ReportSuccess(ctx, alice, "E1", 2, "", "")
		require.NoError(t, err)
		require.NotNil(t, res.User)
		require.NotNil(t, res.Event)
		assert.Equal(t, 1, res.User.Success)
		assert.Equal(t, 2, res.User.TotalTickets)
		assert.Equal(t, 1, res.Event.Participants)
	})

	t.Run("should_reject_out_of_range_tickets", func(t *testing.T) {
		svc := newService(&memStore{})
		for _, n := range []int{0, -1, 101} {
			_, err := svc.ReportSuccess(ctx, alice, "E1", n, "", "")
			assert.True(t, domain.HasCode(err, domain.CodeValidation))
		}
	})

	t.Run("should_surface_store_write_failure", func(t *testing.T) {
		store := &memStore{appendErr: domain.ErrStoreUnavailable("append failed", errors.New("boom"))}
		svc := newService(store)

		_, err := svc.ReportSuccess(ctx, alice, "E1", 1, "", "")
		assert.True(t, domain.HasCode(err, domain.CodeStoreUnavailable))
	})
}

func TestReportFailure(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := newService(store)

	_, err := svc.ReportSuccess(ctx, alice, "E1", 2, "", "")
	require.NoError(t, err)
	res, err := svc.ReportFailure(ctx, alice, "E1", "", "bots everywhere")
	require.NoError(t, err)

	assert.Equal(t, 1, res.User.Success)
	assert.Equal(t, 1, res.User.Fail)
	assert.Equal(t, 2, res.User.Total)
	assert.Equal(t, 50.0, res.User.Rate)
	assert.Equal(t, 2, res.User.TotalTickets)
	assert.Equal(t, 0, res.Record.TicketCount)
}

func TestUserStats(t *testing.T) {
	ctx := context.Background()

	t.Run("not_found_for_unknown_user", func(t *testing.T) {
		svc := newService(&memStore{})
		_, err := svc.UserStats(ctx, "nobody")
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))
	})

	t.Run("degraded_read_reports_not_found_instead_of_failing", func(t *testing.T) {
		store := &memStore{readErr: domain.ErrStoreUnavailable("read failed", errors.New("boom"))}
		svc := newService(store)
		_, err := svc.UserStats(ctx, "u1")
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))
	})
}

func TestDeleteLast(t *testing.T) {
	ctx := context.Background()

	t.Run("not_found_on_empty_store", func(t *testing.T) {
		svc := newService(&memStore{})
		_, err := svc.DeleteLast(ctx, alice)
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))
	})

	t.Run("removes_only_the_highest_positioned_record", func(t *testing.T) {
		store := &memStore{}
		svc := newService(store)

		_, err := svc.ReportSuccess(ctx, alice, "E1", 2, "", "")
		require.NoError(t, err)
		_, err = svc.ReportSuccess(ctx, bob, "E1", 5, "", "")
		require.NoError(t, err)
		_, err = svc.ReportFailure(ctx, alice, "E2", "", "")
		require.NoError(t, err)

		deleted, err := svc.DeleteLast(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, "E2", deleted.EventName)
		assert.Equal(t, domain.ResultFailure, deleted.Result)

		report, err := svc.UserStats(ctx, alice.UserID)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Total)
		assert.Equal(t, "E1", report.Records[0].EventName)

		// Bob's record is untouched.
		other, err := svc.UserStats(ctx, bob.UserID)
		require.NoError(t, err)
		assert.Equal(t, 1, other.Total)
	})
}

func TestLeaderboardAndEvents(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := newService(store)

	_, err := svc.ReportSuccess(ctx, alice, "E1", 3, "", "")
	require.NoError(t, err)
	_, err = svc.ReportSuccess(ctx, bob, "E1", 5, "", "")
	require.NoError(t, err)
	_, err = svc.ReportFailure(ctx, alice, "E2", "", "")
	require.NoError(t, err)

	t.Run("leaderboard_by_tickets", func(t *testing.T) {
		ranked, key, err := svc.Leaderboard(ctx, "tickets")
		require.NoError(t, err)
		assert.Equal(t, stats.ByTickets, key)
		require.Len(t, ranked, 2)
		assert.Equal(t, "u2", ranked[0].UserID)
	})

	t.Run("leaderboard_rejects_unknown_key", func(t *testing.T) {
		_, _, err := svc.Leaderboard(ctx, "fame")
		assert.True(t, domain.HasCode(err, domain.CodeValidation))
	})

	t.Run("events_first_seen_order", func(t *testing.T) {
		summaries, err := svc.Events(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, "E1", summaries[0].Name)
		assert.Equal(t, 2, summaries[0].Report.Participants)
		assert.Equal(t, "E2", summaries[1].Name)
	})

	t.Run("event_detail_participants_sorted_by_tickets", func(t *testing.T) {
		detail, err := svc.EventDetail(ctx, "E1")
		require.NoError(t, err)
		require.Len(t, detail.Participants, 2)
		assert.Equal(t, "u2", detail.Participants[0].UserID)
	})

	t.Run("event_detail_not_found", func(t *testing.T) {
		_, err := svc.EventDetail(ctx, "E9")
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))
	})

	t.Run("all_user_stats_overall_totals", func(t *testing.T) {
		users, overall, err := svc.AllUserStats(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, 2, overall.Success)
		assert.Equal(t, 1, overall.Fail)
		assert.Equal(t, 8, overall.Tickets)
	})
}

func TestSnapshotCaching(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	cache := &countingCache{}
	svc := New(store, fakeClock{t: time.Now()}, cache, time.Minute)

	_, err := svc.ReportSuccess(ctx, alice, "E1", 1, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidates, "append must invalidate the snapshot")
	assert.Equal(t, 1, cache.sets, "fresh stats read should repopulate the cache")

	// Next read is served from the cache, not the store.
	store.readErr = errors.New("store down")
	report, err := svc.UserStats(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Total)

	_, err = svc.DeleteLast(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.invalidates, "delete must invalidate the snapshot")
}
