package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"nameresolver/catalog"
)

// CSVOptions параметры импорта CSV.
type CSVOptions struct {
	// Delimiter разделитель полей, по умолчанию запятая
	Delimiter rune
	// Encoding кодировка файла: "utf-8" (по умолчанию) или "windows-1251".
	// Выгрузки из 1С обычно приходят в windows-1251.
	Encoding string
}

// ImportCSV загружает эталоны из CSV-файла в каталог. Первая строка —
// заголовки, сопоставление колонок то же, что у Excel-импорта.
func ImportCSV(ctx context.Context, store *catalog.Store, filePath, entityType string, opts CSVOptions) (*ImportStats, error) {
	logger := slog.Default().With("component", "csv_importer")

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	switch strings.ToLower(opts.Encoding) {
	case "", "utf-8", "utf8":
		// как есть
	case "windows-1251", "cp1251":
		src = transform.NewReader(f, charmap.Windows1251.NewDecoder())
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", opts.Encoding)
	}

	reader := csv.NewReader(src)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	fields := mapHeader(header)
	if _, ok := fields["name"]; !ok {
		return nil, fmt.Errorf("header has no name column, got: %v", header)
	}

	stats := &ImportStats{BatchID: uuid.New().String()}

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Warn("failed to read CSV row", "line", line, "error", err)
			stats.Total++
			stats.Skipped++
			continue
		}

		stats.Total++
		rec := rowToRecord(row, fields)
		if rec.name == "" {
			stats.Skipped++
			continue
		}
		if rec.id == "" {
			rec.id = uuid.New().String()
		}

		if err := store.Upsert(ctx, rec.id, rec.name, rec.tin, entityType, rec.payload()); err != nil {
			logger.Warn("failed to import row", "line", line, "error", err)
			stats.Skipped++
			continue
		}
		stats.Imported++
	}

	logger.Info("csv import finished",
		"batch_id", stats.BatchID, "file", filePath,
		"imported", stats.Imported, "skipped", stats.Skipped)
	return stats, nil
}
