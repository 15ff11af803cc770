package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"nameresolver/catalog"
	"nameresolver/importer"
)

func main() {
	var (
		filePath   = flag.String("file", "", "Path to Excel (.xlsx) or CSV file with catalog records")
		dbPath     = flag.String("db", "./data/catalog.db", "Path to catalog database")
		entityType = flag.String("type", "counterparty", "Entity type: counterparty or product")
		encoding   = flag.String("encoding", "utf-8", "CSV encoding: utf-8 or windows-1251")
		delimiter  = flag.String("delimiter", ";", "CSV field delimiter")
	)
	flag.Parse()

	if *filePath == "" {
		fmt.Println("Usage: import_candidates -file <path> [-db <database_path>] [-type counterparty|product] [-encoding utf-8|windows-1251] [-delimiter ;]")
		os.Exit(1)
	}

	if _, err := os.Stat(*filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Fatalf("File not found: %s", *filePath)
		}
		log.Fatalf("Error checking file %s: %v", *filePath, err)
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	store, err := catalog.NewStore(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	var stats *importer.ImportStats
	switch strings.ToLower(filepath.Ext(*filePath)) {
	case ".xlsx", ".xlsm":
		stats, err = importer.ImportExcel(ctx, store, *filePath, *entityType)
	case ".csv":
		if len(*delimiter) != 1 {
			log.Fatalf("Delimiter must be a single character, got %q", *delimiter)
		}
		opts := importer.CSVOptions{
			Delimiter: rune((*delimiter)[0]),
			Encoding:  *encoding,
		}
		stats, err = importer.ImportCSV(ctx, store, *filePath, *entityType, opts)
	default:
		log.Fatalf("Unsupported file extension: %s (expected .xlsx or .csv)", filepath.Ext(*filePath))
	}
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Импорт завершен. Партия: %s", stats.BatchID)
	log.Printf("Всего строк: %d, импортировано: %d, пропущено: %d", stats.Total, stats.Imported, stats.Skipped)

	count, err := store.Count(ctx, *entityType)
	if err == nil {
		log.Printf("Активных эталонов типа %s в каталоге: %d", *entityType, count)
	}
}
