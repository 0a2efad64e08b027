package domain

import "strings"

// Record is one logged ticket-attempt outcome for one user and one event.
// Records are immutable once appended; the only mutation the store supports
// is clearing a user's most recent row.
type Record struct {
	Timestamp   string // locale-formatted creation time, informational only
	UserID      string
	UserName    string // display name at recording time, may vary per record
	EventName   string
	Result      Result
	TicketCount int
	EventDate   string
	Note        string
}

// DeletedRecord summarizes what a delete-last operation removed.
type DeletedRecord struct {
	EventName   string
	Result      Result
	TicketCount int
}

// NewRecord validates and normalizes one report. The timestamp is filled in
// by the store at append time. Failures always carry a zero ticket count.
func NewRecord(userID, userName, eventName string, result Result, ticketCount int, eventDate, note string) (Record, error) {
	userID = strings.TrimSpace(userID)
	eventName = strings.TrimSpace(eventName)

	if userID == "" {
		return Record{}, ErrValidation("user id is required")
	}
	if eventName == "" {
		return Record{}, ErrValidation("event name is required")
	}
	if !result.Valid() {
		return Record{}, ErrValidation("result must be success or failure")
	}
	if ticketCount < 0 {
		ticketCount = 0
	}
	if result == ResultFailure {
		ticketCount = 0
	}

	return Record{
		UserID:      userID,
		UserName:    strings.TrimSpace(userName),
		EventName:   eventName,
		Result:      result,
		TicketCount: ticketCount,
		EventDate:   strings.TrimSpace(eventDate),
		Note:        strings.TrimSpace(note),
	}, nil
}
