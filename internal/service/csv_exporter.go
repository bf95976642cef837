package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/switchpay/switchpay-go/internal/domain"
	"github.com/switchpay/switchpay-go/pkg/logger"
)

// DefaultExportFilename is the download name of the CSV artifact.
const DefaultExportFilename = "transactions.csv"

var csvHeader = []string{"id", "amount", "currency", "country", "psp", "status", "latency_ms", "created_at"}

// CSVExporter serializes the snapshot to a UTF-8 CSV document: one header row
// followed by one row per transaction, extended column shape. A missing
// latency renders as an empty field, not an omitted column.
type CSVExporter struct {
	logger *logger.Logger
}

func NewCSVExporter(log *logger.Logger) *CSVExporter {
	return &CSVExporter{logger: log}
}

func (e *CSVExporter) Export(w io.Writer, transactions []domain.Transaction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, tx := range transactions {
		latency := ""
		if tx.LatencyMs != nil {
			latency = strconv.Itoa(*tx.LatencyMs)
		}

		createdAt := ""
		if !tx.CreatedAt.IsZero() {
			createdAt = tx.CreatedAt.Format(time.RFC3339)
		}

		record := []string{
			tx.ID,
			tx.Amount.String(),
			string(tx.Currency),
			tx.Country,
			tx.PSP,
			string(tx.Status),
			latency,
			createdAt,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportFile writes the document to path, the client-side equivalent of the
// browser download.
func (e *CSVExporter) ExportFile(ctx context.Context, path string, transactions []domain.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	if err := e.Export(f, transactions); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}

	e.logger.Info(ctx, "CSV export written",
		"path", path,
		"rows", len(transactions),
	)

	return nil
}
