package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/inmilk/internal/config"
	"github.com/mamadbah2/inmilk/internal/domain/models"
)

// RowWriter appends one row to a sheet range.
type RowWriter interface {
	WriteRow(ctx context.Context, sheetRange string, values []interface{}) error
}

// GoogleSheetRepository archives simulations as spreadsheet rows using the official Google Sheets API.
type GoogleSheetRepository struct {
	writer     RowWriter
	sheetRange string
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	writer := &apiWriter{service: service, spreadsheetID: cfg.SpreadsheetID, logger: logger}
	return NewRepository(writer, cfg.Range), nil
}

// NewRepository wires a repository over any RowWriter.
func NewRepository(writer RowWriter, sheetRange string) *GoogleSheetRepository {
	return &GoogleSheetRepository{writer: writer, sheetRange: sheetRange}
}

// SaveSimulation appends the simulation as one row: id, timestamp, renderer,
// the eleven inputs, then the fifteen results. Undefined results are left blank.
func (r *GoogleSheetRepository) SaveSimulation(ctx context.Context, record models.SimulationRecord) error {
	if err := r.writer.WriteRow(ctx, r.sheetRange, simulationRow(record)); err != nil {
		return fmt.Errorf("append simulation %s: %w", record.ID, err)
	}
	return nil
}

func simulationRow(record models.SimulationRecord) []interface{} {
	in := record.Inputs
	res := record.Results

	return []interface{}{
		record.ID,
		record.CreatedAt.UTC().Format(time.RFC3339),
		record.Renderer,
		in.StandardFeedCost,
		in.DryMatterIntake,
		in.FeedIntake,
		in.CowCount,
		in.IntakeIncrease,
		in.AdditiveFeedCost,
		in.DryMatterCost,
		in.CurrentMilkYield,
		in.FatPremium,
		in.MilkYieldIncrease,
		in.MilkPrice,
		res.TotalCostStandard,
		res.TotalCostAdditive,
		optionalCell(res.CurrentEfficiency),
		res.NewMilkYield,
		optionalCell(res.NewEfficiency),
		res.MilkRevenue,
		res.FatRevenue,
		res.TotalRevenue,
		res.ExtraInvestment,
		res.ExtraDryMatterCost,
		res.NetProfit,
		res.BatchGain,
		optionalCell(res.BreakevenCombined),
		optionalCell(res.BreakevenMilkOnly),
		optionalCell(res.ROI),
	}
}

func optionalCell(o models.Optional) interface{} {
	if !o.Valid {
		return ""
	}
	return o.Value
}

type apiWriter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// WriteRow appends the provided values to the supplied sheet range.
func (w *apiWriter) WriteRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := w.service.Spreadsheets.Values.Append(w.spreadsheetID, sheetRange, payload).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	w.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}
