package sink

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ginzalimited/orderdesk/internal/order"
)

// Sink accepts one assembled order for delivery to the system of
// record. A nil error acknowledges local dispatch only.
type Sink interface {
	Dispatch(ctx context.Context, o order.Order) error
}

// SheetsSink appends flattened order rows to a Google Sheet, one tab
// per branch.
type SheetsSink struct {
	svc           *sheets.Service
	spreadsheetID string
}

func NewSheetsSink(ctx context.Context, credentialsFile, spreadsheetID string) (*SheetsSink, error) {
	svc, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsSink{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (s *SheetsSink) Dispatch(ctx context.Context, o order.Order) error {
	rows := Rows(o)
	if len(rows) == 0 {
		return fmt.Errorf("order %s has no items to dispatch", o.ID)
	}

	rng := fmt.Sprintf("%s!A1", o.Branch)
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, rng, &sheets.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append order %s to sheet: %w", o.ID, err)
	}

	log.Info().Str("order_id", o.ID).Str("branch", o.Branch).Int("rows", len(rows)).Msg("sink: order rows appended")
	return nil
}
