package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore хранилище записей аудита в SQLite. Таблица только пополняется;
// обновлений и удалений нет.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore открывает (и при необходимости создает) базу аудита.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	store := &SQLiteStore{conn: conn}
	if err := store.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return store, nil
}

// migrate создает схему таблицы аудита.
func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS audit_events (
		id              TEXT PRIMARY KEY,
		created_at      TEXT NOT NULL,
		subject_ref     TEXT NOT NULL,
		request_id      TEXT,
		resolved        INTEGER NOT NULL,
		confidence      REAL NOT NULL,
		threshold_band  TEXT NOT NULL,
		decision_path   TEXT NOT NULL,
		candidate_count INTEGER NOT NULL,
		tie_detected    INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_audit_events_subject ON audit_events(subject_ref);
	CREATE INDEX IF NOT EXISTS idx_audit_events_created ON audit_events(created_at);
	`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate audit schema: %w", err)
	}
	return nil
}

// Append добавляет запись аудита.
func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO audit_events
		(id, created_at, subject_ref, request_id, resolved, confidence,
		 threshold_band, decision_path, candidate_count, tie_detected)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Timestamp.UTC().Format(time.RFC3339Nano),
		rec.SubjectRef,
		rec.RequestID,
		boolToInt(rec.Resolved),
		rec.Confidence,
		string(rec.ThresholdBand),
		string(rec.DecisionPath),
		rec.CandidateCount,
		boolToInt(rec.TieDetected),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit record %s: %w", rec.ID, err)
	}
	return nil
}

// ListBySubject возвращает все записи по субъекту в порядке добавления —
// историю попытки разрешения и позднейших подтверждений.
func (s *SQLiteStore) ListBySubject(ctx context.Context, subjectRef string) ([]Record, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, created_at, subject_ref, request_id, resolved, confidence,
		       threshold_band, decision_path, candidate_count, tie_detected
		FROM audit_events
		WHERE subject_ref = ?
		ORDER BY created_at ASC`, subjectRef)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var createdAt string
		var resolved, tie int
		var band, path string
		if err := rows.Scan(&rec.ID, &createdAt, &rec.SubjectRef, &rec.RequestID,
			&resolved, &rec.Confidence, &band, &path,
			&rec.CandidateCount, &tie); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339Nano, createdAt)
		rec.Resolved = resolved != 0
		rec.TieDetected = tie != 0
		rec.ThresholdBand = ThresholdBand(band)
		rec.DecisionPath = DecisionPath(path)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close закрывает соединение с базой.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
