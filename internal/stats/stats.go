// Package stats computes derived statistics from a snapshot of ticket
// records. Every function is pure: same input list, same output, no shared
// state, so concurrent callers need no coordination.
package stats

import "github.com/grabticket/bot/internal/domain"

// EventTally is the per-event slice of a user's report.
type EventTally struct {
	EventName string
	Success   int
	Fail      int
	Tickets   int
}

// UserReport aggregates all records of one user.
type UserReport struct {
	Success      int
	Fail         int
	Total        int
	Rate         float64
	TotalTickets int
	Breakdown    []EventTally    // first-seen event order
	Records      []domain.Record // the user's records in append order
}

// EventReport aggregates all records of one event.
type EventReport struct {
	Success      int
	Fail         int
	Total        int
	Rate         float64
	TotalTickets int
	Participants int             // distinct reporting users
	Records      []domain.Record // the event's records in append order
}

// UserTotals is one user's row in cross-user views (all-users, leaderboard,
// event participants).
type UserTotals struct {
	UserID  string
	Name    string
	Success int
	Fail    int
	Total   int
	Tickets int
	Rate    float64
}

// OverallTotals sums every user's counters for the all-users view.
type OverallTotals struct {
	Success int
	Fail    int
	Total   int
	Tickets int
	Rate    float64
}

// rate guards the zero-total case so an empty group reads as 0%, not NaN.
func rate(success, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(success) / float64(total) * 100
}

// UserStats filters records to one user and aggregates them. The second
// return is false when the user has no records at all.
func UserStats(records []domain.Record, userID string) (*UserReport, bool) {
	var (
		report UserReport
		index  = map[string]int{}
	)

	for _, rec := range records {
		if rec.UserID != userID {
			continue
		}
		report.Records = append(report.Records, rec)

		i, ok := index[rec.EventName]
		if !ok {
			i = len(report.Breakdown)
			index[rec.EventName] = i
			report.Breakdown = append(report.Breakdown, EventTally{EventName: rec.EventName})
		}

		if rec.Result == domain.ResultSuccess {
			report.Success++
			report.TotalTickets += rec.TicketCount
			report.Breakdown[i].Success++
			report.Breakdown[i].Tickets += rec.TicketCount
		} else {
			report.Fail++
			report.Breakdown[i].Fail++
		}
	}

	if len(report.Records) == 0 {
		return nil, false
	}
	report.Total = report.Success + report.Fail
	report.Rate = rate(report.Success, report.Total)
	return &report, true
}

// EventStats filters records to one event and aggregates them, counting
// distinct participants. The second return is false for an unknown event.
func EventStats(records []domain.Record, eventName string) (*EventReport, bool) {
	var (
		report EventReport
		seen   = map[string]struct{}{}
	)

	for _, rec := range records {
		if rec.EventName != eventName {
			continue
		}
		report.Records = append(report.Records, rec)
		seen[rec.UserID] = struct{}{}

		if rec.Result == domain.ResultSuccess {
			report.Success++
			report.TotalTickets += rec.TicketCount
		} else {
			report.Fail++
		}
	}

	if len(report.Records) == 0 {
		return nil, false
	}
	report.Total = report.Success + report.Fail
	report.Rate = rate(report.Success, report.Total)
	report.Participants = len(seen)
	return &report, true
}

// Events lists distinct event names in first-occurrence order. Records with
// an empty event name are skipped.
func Events(records []domain.Record) []string {
	var (
		names []string
		seen  = map[string]struct{}{}
	)
	for _, rec := range records {
		if rec.EventName == "" {
			continue
		}
		if _, ok := seen[rec.EventName]; ok {
			continue
		}
		seen[rec.EventName] = struct{}{}
		names = append(names, rec.EventName)
	}
	return names
}

// AllUsers groups every record by user in first-seen-user order. The display
// name is overwritten on each record, so the newest row's name wins.
func AllUsers(records []domain.Record) []UserTotals {
	return groupByUser(records)
}

// Overall sums per-user totals into the aggregate view.
func Overall(users []UserTotals) OverallTotals {
	var o OverallTotals
	for _, u := range users {
		o.Success += u.Success
		o.Fail += u.Fail
		o.Tickets += u.Tickets
	}
	o.Total = o.Success + o.Fail
	o.Rate = rate(o.Success, o.Total)
	return o
}

func groupByUser(records []domain.Record) []UserTotals {
	var (
		users []UserTotals
		index = map[string]int{}
	)
	for _, rec := range records {
		i, ok := index[rec.UserID]
		if !ok {
			i = len(users)
			index[rec.UserID] = i
			users = append(users, UserTotals{UserID: rec.UserID})
		}
		users[i].Name = rec.UserName

		if rec.Result == domain.ResultSuccess {
			users[i].Success++
			users[i].Tickets += rec.TicketCount
		} else {
			users[i].Fail++
		}
	}
	for i := range users {
		users[i].Total = users[i].Success + users[i].Fail
		users[i].Rate = rate(users[i].Success, users[i].Total)
	}
	return users
}
