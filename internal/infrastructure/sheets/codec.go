package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grabticket/bot/internal/domain"
)

// Column layout, fixed: timestamp, user id, user name, event, result,
// ticket count, event date, note. The result column stores the original
// 成功/失敗 literals so existing spreadsheets stay readable.
const (
	colTimestamp = iota
	colUserID
	colUserName
	colEventName
	colResult
	colTickets
	colEventDate
	colNote
	colCount
)

const (
	literalSuccess = "成功"
	literalFailure = "失敗"
)

func headerRow() []interface{} {
	return []interface{}{"時間", "用戶ID", "用戶名稱", "活動", "結果", "張數", "活動日期", "備註"}
}

func encodeResult(r domain.Result) string {
	if r == domain.ResultSuccess {
		return literalSuccess
	}
	return literalFailure
}

// decodeResult mirrors the sheet convention: anything that is not the
// success literal counts as a failure.
func decodeResult(s string) domain.Result {
	if s == literalSuccess {
		return domain.ResultSuccess
	}
	return domain.ResultFailure
}

func encodeRow(rec domain.Record) []interface{} {
	return []interface{}{
		rec.Timestamp,
		rec.UserID,
		rec.UserName,
		rec.EventName,
		encodeResult(rec.Result),
		strconv.Itoa(rec.TicketCount),
		rec.EventDate,
		rec.Note,
	}
}

// decodeRow turns one sheet row back into a record. Rows blanked by a
// delete (or otherwise missing a user id) are reported as not-ok.
func decodeRow(row []interface{}) (domain.Record, bool) {
	userID := cell(row, colUserID)
	if userID == "" {
		return domain.Record{}, false
	}
	result := decodeResult(cell(row, colResult))
	tickets := parseTickets(cell(row, colTickets))
	if result == domain.ResultFailure {
		tickets = 0
	}
	return domain.Record{
		Timestamp:   cell(row, colTimestamp),
		UserID:      userID,
		UserName:    cell(row, colUserName),
		EventName:   cell(row, colEventName),
		Result:      result,
		TicketCount: tickets,
		EventDate:   cell(row, colEventDate),
		Note:        cell(row, colNote),
	}, true
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// parseTickets tolerates malformed cells the same way the sheet always has:
// anything unparseable is zero.
func parseTickets(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// lastRowFor scans raw rows from the end and returns the 1-based sheet row
// of the user's most recent record. Blanked rows still occupy a slot, so the
// index math stays valid after deletes.
func lastRowFor(rows [][]interface{}, userID string) (int, domain.Record, bool) {
	for i := len(rows) - 1; i >= 0; i-- {
		if cell(rows[i], colUserID) != userID {
			continue
		}
		rec, ok := decodeRow(rows[i])
		if !ok {
			continue
		}
		// +2: data starts at sheet row 2 and i is zero-based.
		return i + 2, rec, true
	}
	return 0, domain.Record{}, false
}
