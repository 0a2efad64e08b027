package stats

import (
	"sort"

	"github.com/grabticket/bot/internal/domain"
)

// SortKey selects the primary leaderboard ordering.
type SortKey string

const (
	ByRate    SortKey = "rate"
	ByTickets SortKey = "tickets"
	BySuccess SortKey = "success"
)

// ParseSortKey maps a raw option value to a sort key, defaulting to rate.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case ByRate, ByTickets, BySuccess:
		return SortKey(s), true
	case "":
		return ByRate, true
	}
	return ByRate, false
}

// Leaderboard ranks users with at least one record, descending by the chosen
// key. Tie-breaks: tickets and success fall back to rate, rate falls back to
// total attempts. The sort is stable, so fully tied users keep their
// first-seen order.
func Leaderboard(records []domain.Record, key SortKey) []UserTotals {
	users := groupByUser(records)

	ranked := users[:0:0]
	for _, u := range users {
		if u.Total > 0 {
			ranked = append(ranked, u)
		}
	}

	switch key {
	case ByTickets:
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Tickets != ranked[j].Tickets {
				return ranked[i].Tickets > ranked[j].Tickets
			}
			return ranked[i].Rate > ranked[j].Rate
		})
	case BySuccess:
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Success != ranked[j].Success {
				return ranked[i].Success > ranked[j].Success
			}
			return ranked[i].Rate > ranked[j].Rate
		})
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Rate != ranked[j].Rate {
				return ranked[i].Rate > ranked[j].Rate
			}
			return ranked[i].Total > ranked[j].Total
		})
	}
	return ranked
}

// EventParticipants breaks one event down per participant, sorted by tickets
// then rate, both descending and stable.
func EventParticipants(records []domain.Record, eventName string) []UserTotals {
	var filtered []domain.Record
	for _, rec := range records {
		if rec.EventName == eventName {
			filtered = append(filtered, rec)
		}
	}
	users := groupByUser(filtered)
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].Tickets != users[j].Tickets {
			return users[i].Tickets > users[j].Tickets
		}
		return users[i].Rate > users[j].Rate
	})
	return users
}
