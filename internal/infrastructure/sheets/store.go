// Package sheets persists ticket records to a Google Sheets worksheet. The
// sheet is the single source of truth: one header row followed by one row
// per record in append order. Delete clears a row in place so positions of
// later rows never shift.
package sheets

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/grabticket/bot/internal/domain"
)

type Clock interface{ Now() time.Time }

type Config struct {
	SpreadsheetID       string
	SheetName           string
	ServiceAccountEmail string
	PrivateKey          string
}

type Store struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	clock         Clock
	loc           *time.Location
}

func New(ctx context.Context, cfg Config, clock Clock) (*Store, error) {
	conf := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, domain.ErrStoreUnavailable("sheets client init failed", err)
	}

	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		loc = time.UTC
	}

	return &Store{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		clock:         clock,
		loc:           loc,
	}, nil
}

func (s *Store) headerRange() string { return fmt.Sprintf("%s!A1:H1", s.sheetName) }
func (s *Store) dataRange() string   { return fmt.Sprintf("%s!A2:H", s.sheetName) }
func (s *Store) rowRange(row int) string {
	return fmt.Sprintf("%s!A%d:H%d", s.sheetName, row, row)
}

// EnsureHeader writes the label row if the sheet does not have one yet.
// Safe to call on every startup.
func (s *Store) EnsureHeader(ctx context.Context) error {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.headerRange()).Context(ctx).Do()
	if err != nil {
		return domain.ErrStoreUnavailable("header read failed", err)
	}
	if len(resp.Values) > 0 {
		return nil
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{headerRow()}}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, s.headerRange(), vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return domain.ErrStoreUnavailable("header write failed", err)
	}
	return nil
}

// Append adds one record at the end of the sheet, stamping it with the
// locale-formatted wall clock time.
func (s *Store) Append(ctx context.Context, rec domain.Record) error {
	rec.Timestamp = s.clock.Now().In(s.loc).Format("2006/01/02 15:04:05")

	vr := &sheets.ValueRange{Values: [][]interface{}{encodeRow(rec)}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.dataRange(), vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return domain.ErrStoreUnavailable("record append failed", err)
	}
	return nil
}

// ReadAll returns every record in append order, skipping the header and any
// rows blanked by a previous delete.
func (s *Store) ReadAll(ctx context.Context) ([]domain.Record, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.dataRange()).Context(ctx).Do()
	if err != nil {
		return nil, domain.ErrStoreUnavailable("record read failed", err)
	}

	var records []domain.Record
	for _, row := range resp.Values {
		if rec, ok := decodeRow(row); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// DeleteLast removes the given user's most recent record by clearing its row
// in place, and reports what was removed. Rows below it keep their position.
func (s *Store) DeleteLast(ctx context.Context, userID string) (domain.DeletedRecord, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.dataRange()).Context(ctx).Do()
	if err != nil {
		return domain.DeletedRecord{}, domain.ErrStoreUnavailable("record read failed", err)
	}

	row, rec, ok := lastRowFor(resp.Values, userID)
	if !ok {
		return domain.DeletedRecord{}, domain.ErrNotFound("no records for user")
	}

	_, err = s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, s.rowRange(row), &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return domain.DeletedRecord{}, domain.ErrStoreUnavailable("record clear failed", err)
	}

	return domain.DeletedRecord{
		EventName:   rec.EventName,
		Result:      rec.Result,
		TicketCount: rec.TicketCount,
	}, nil
}
