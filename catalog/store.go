package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"nameresolver/normalization"
	"nameresolver/resolution"
)

// ErrNotFound эталон не найден.
var ErrNotFound = errors.New("candidate not found")

// Store каталог эталонных записей в SQLite. Нормализованные название и
// идентификатор вычисляются один раз при записи и хранятся как ключи
// сравнения; мягко удаленные записи из выборок исключаются.
type Store struct {
	conn     *sql.DB
	descNorm *normalization.DescriptionNormalizer
}

// NewStore открывает (и при необходимости создает) базу каталога.
func NewStore(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	store := &Store{
		conn:     conn,
		descNorm: normalization.NewDescriptionNormalizer(),
	}
	if err := store.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return store, nil
}

// migrate создает схему каталога.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS candidates (
		id              TEXT PRIMARY KEY,
		display_name    TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		normalized_tin  TEXT,
		entity_type     TEXT NOT NULL,
		payload         TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL,
		deleted_at      TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_candidates_norm_name ON candidates(entity_type, normalized_name);
	CREATE INDEX IF NOT EXISTS idx_candidates_norm_tin ON candidates(normalized_tin);
	`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return nil
}

// Upsert добавляет или обновляет эталон. Нормализованные формы
// пересчитываются из DisplayName и сырого идентификатора здесь — все точки
// записи каталога проходят через одни и те же правила нормализации.
// Название нормализуется профилем типа сущности: товары — правилами
// описаний, которыми движок нормализует запросы к каталогу товаров,
// контрагенты — правилами названий.
func (s *Store) Upsert(ctx context.Context, id, displayName, rawTIN, entityType string, payload map[string]interface{}) error {
	if id == "" || displayName == "" || entityType == "" {
		return fmt.Errorf("id, display_name and entity_type are required")
	}

	normName := normalization.NormalizeName(displayName)
	if entityType == resolution.EntityTypeProduct {
		normName = s.descNorm.Normalize(displayName)
	}

	payloadJSON := "{}"
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload for %s: %w", id, err)
		}
		payloadJSON = string(data)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO candidates
		(id, display_name, normalized_name, normalized_tin, entity_type, payload, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)
		ON CONFLICT(id) DO UPDATE SET
			display_name    = excluded.display_name,
			normalized_name = excluded.normalized_name,
			normalized_tin  = excluded.normalized_tin,
			entity_type     = excluded.entity_type,
			payload         = excluded.payload,
			updated_at      = excluded.updated_at,
			deleted_at      = NULL`,
		id,
		displayName,
		normName,
		normalization.NormalizeIdentifier(rawTIN),
		entityType,
		payloadJSON,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert candidate %s: %w", id, err)
	}
	return nil
}

// ActiveCandidates возвращает все активные (не удаленные) эталоны указанного
// типа. Результат — независимый срез, пригодный как снимок для Resolve.
func (s *Store) ActiveCandidates(ctx context.Context, entityType string) ([]resolution.Candidate, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, display_name, normalized_name, normalized_tin, entity_type, payload
		FROM candidates
		WHERE entity_type = ? AND deleted_at IS NULL
		ORDER BY id ASC`, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []resolution.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// FindByIdentifier ищет активный эталон по нормализованному идентификатору
// (ИНН/TIN). Точное совпадение, отдельный путь от нечеткого поиска по
// названию.
func (s *Store) FindByIdentifier(ctx context.Context, rawTIN string) (*resolution.Candidate, error) {
	normTIN := normalization.NormalizeIdentifier(rawTIN)
	if normTIN == "" {
		return nil, fmt.Errorf("identifier is empty")
	}

	row := s.conn.QueryRowContext(ctx, `
		SELECT id, display_name, normalized_name, normalized_tin, entity_type, payload
		FROM candidates
		WHERE normalized_tin = ? AND deleted_at IS NULL
		LIMIT 1`, normTIN)

	c, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Get возвращает активный эталон по ID.
func (s *Store) Get(ctx context.Context, id string) (*resolution.Candidate, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT id, display_name, normalized_name, normalized_tin, entity_type, payload
		FROM candidates
		WHERE id = ? AND deleted_at IS NULL`, id)

	c, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SoftDelete помечает эталон удаленным. Запись остается для истории, но в
// наборы кандидатов больше не попадает.
func (s *Store) SoftDelete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `
		UPDATE candidates SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete candidate %s: %w", id, err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count возвращает число активных эталонов типа.
func (s *Store) Count(ctx context.Context, entityType string) (int, error) {
	var n int
	err := s.conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM candidates WHERE entity_type = ? AND deleted_at IS NULL`,
		entityType).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return n, nil
}

// Close закрывает соединение с базой.
func (s *Store) Close() error {
	return s.conn.Close()
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCandidate(row rowScanner) (resolution.Candidate, error) {
	var c resolution.Candidate
	var tin sql.NullString
	var payloadJSON sql.NullString

	if err := row.Scan(&c.ID, &c.DisplayName, &c.NormalizedName, &tin, &c.EntityType, &payloadJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, err
		}
		return c, fmt.Errorf("failed to scan candidate: %w", err)
	}

	c.NormalizedTIN = tin.String
	if payloadJSON.Valid && payloadJSON.String != "" {
		if err := json.Unmarshal([]byte(payloadJSON.String), &c.Payload); err != nil {
			return c, fmt.Errorf("failed to unmarshal payload for %s: %w", c.ID, err)
		}
	}
	return c, nil
}
