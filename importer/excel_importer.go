package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"nameresolver/catalog"
)

// ImportStats итоги одного импорта каталога.
type ImportStats struct {
	BatchID  string `json:"batch_id"`
	Total    int    `json:"total"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// columnAliases сопоставление заголовков колонок полям эталона. Реестры
// приходят и с русскими, и с английскими заголовками.
var columnAliases = map[string]string{
	"название":     "name",
	"наименование": "name",
	"name":         "name",
	"company":      "name",
	"инн":          "tin",
	"tin":          "tin",
	"tax_id":       "tin",
	"адрес":        "address",
	"address":      "address",
	"email":        "email",
	"почта":        "email",
	"id":           "id",
	"код":          "id",
}

// ImportExcel загружает эталоны из Excel-файла (первый лист, первая строка —
// заголовки) и записывает их в каталог. Нормализация выполняется в каталоге
// при записи. Строки без названия пропускаются, а не проваливают импорт.
func ImportExcel(ctx context.Context, store *catalog.Store, filePath, entityType string) (*ImportStats, error) {
	logger := slog.Default().With("component", "excel_importer")

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("file is too short, expected header row and at least one data row")
	}

	fields := mapHeader(rows[0])
	if _, ok := fields["name"]; !ok {
		return nil, fmt.Errorf("header has no name column, got: %v", rows[0])
	}

	stats := &ImportStats{
		BatchID: uuid.New().String(),
		Total:   len(rows) - 1,
	}

	for i, row := range rows[1:] {
		rec := rowToRecord(row, fields)
		if rec.name == "" {
			stats.Skipped++
			continue
		}
		if rec.id == "" {
			rec.id = uuid.New().String()
		}

		if err := store.Upsert(ctx, rec.id, rec.name, rec.tin, entityType, rec.payload()); err != nil {
			logger.Warn("failed to import row", "row", i+2, "error", err)
			stats.Skipped++
			continue
		}
		stats.Imported++
	}

	logger.Info("excel import finished",
		"batch_id", stats.BatchID, "file", filePath,
		"imported", stats.Imported, "skipped", stats.Skipped)
	return stats, nil
}

// record промежуточная строка импорта.
type record struct {
	id      string
	name    string
	tin     string
	address string
	email   string
}

// payload собирает непрозрачные для ядра поля.
func (r record) payload() map[string]interface{} {
	p := make(map[string]interface{})
	if r.address != "" {
		p["address"] = r.address
	}
	if r.email != "" {
		p["email"] = r.email
	}
	return p
}

// mapHeader строит отображение "поле -> индекс колонки" по строке заголовков.
func mapHeader(header []string) map[string]int {
	fields := make(map[string]int)
	for i, h := range header {
		key := strings.TrimSpace(strings.ToLower(h))
		if field, ok := columnAliases[key]; ok {
			if _, exists := fields[field]; !exists {
				fields[field] = i
			}
		}
	}
	return fields
}

// rowToRecord извлекает известные поля из строки данных.
func rowToRecord(row []string, fields map[string]int) record {
	get := func(field string) string {
		idx, ok := fields[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	return record{
		id:      get("id"),
		name:    get("name"),
		tin:     get("tin"),
		address: get("address"),
		email:   get("email"),
	}
}
