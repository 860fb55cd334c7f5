// Package sheets exports the day's reservation list to a Google
// spreadsheet shared with the catering supplier.
package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/partyops/jumpkitchen/internal/config"
	"github.com/partyops/jumpkitchen/internal/domain/models"
)

const dateFormat = "2006-01-02"

// Exporter appends reservation rows to the configured spreadsheet range.
type Exporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	writeRange    string
	logger        *zap.Logger
	now           func() time.Time
}

// NewExporter builds a Google Sheets backed exporter instance.
func NewExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &Exporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		writeRange:    cfg.WriteRange,
		logger:        logger,
		now:           time.Now,
	}, nil
}

// ExportSchedule appends one row per reservation of the venue's document.
func (e *Exporter) ExportSchedule(ctx context.Context, venue string, doc models.ScheduleDocument) error {
	if len(doc.Reservations) == 0 {
		e.logger.Debug("nothing to export", zap.String("venue", venue))
		return nil
	}

	rows := make([][]interface{}, 0, len(doc.Reservations))
	day := e.now().UTC().Format(dateFormat)
	for _, r := range doc.Reservations {
		rows = append(rows, reservationRow(day, venue, r))
	}

	payload := &sheetsapi.ValueRange{Values: rows}
	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, e.writeRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append schedule rows for venue %s: %w", venue, err)
	}

	e.logger.Info("schedule exported",
		zap.String("venue", venue),
		zap.Int("reservations", len(doc.Reservations)))
	return nil
}

func reservationRow(day, venue string, r models.Reservation) []interface{} {
	return []interface{}{
		day,
		venue,
		r.StartTime,
		r.MealTime,
		r.ChildName,
		r.ChildCount,
		string(r.Package),
		string(r.CakeType),
		r.Pizzas,
		r.SnackCount,
		r.DrinkCount,
		r.PartyBagCount,
	}
}
