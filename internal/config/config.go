package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"nameresolver/normalization/algorithms"
	"nameresolver/resolution"
)

// Config конфигурация сервиса разрешения.
type Config struct {
	// Сервер
	Port string `json:"port"`

	// Базы данных
	CatalogDatabasePath string `json:"catalog_database_path"`
	AuditDatabasePath   string `json:"audit_database_path"`

	// Пороги разрешения
	Thresholds resolution.ThresholdConfig `json:"thresholds"`

	// Веса композитного профиля описаний
	Weights *algorithms.SimilarityWeights `json:"weights"`

	// Стоп-слова: путь к JSON файлу со списком; пусто — список по умолчанию
	StopWordsPath string `json:"stop_words_path"`

	// Язык стеммера для диагностических метрик
	StemmerLanguage string `json:"stemmer_language"`

	// Снимки каталога
	SnapshotTTL time.Duration `json:"snapshot_ttl"`

	// Аудит
	AuditBufferSize int `json:"audit_buffer_size"`

	// Ограничение частоты запросов
	RateLimitRPS   float64 `json:"rate_limit_rps"`
	RateLimitBurst int     `json:"rate_limit_burst"`
}

// configJSON промежуточная структура для полей, которые в JSON удобнее
// держать строками.
type configJSON struct {
	Config
	SnapshotTTL string `json:"snapshot_ttl"`
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Port:                "8080",
		CatalogDatabasePath: "./data/catalog.db",
		AuditDatabasePath:   "./data/audit.db",
		Thresholds:          resolution.DefaultThresholdConfig(),
		Weights:             algorithms.DefaultSimilarityWeights(),
		StemmerLanguage:     "russian",
		SnapshotTTL:         5 * time.Minute,
		AuditBufferSize:     1024,
		RateLimitRPS:        50,
		RateLimitBurst:      100,
	}
}

// LoadConfig загружает конфигурацию: значения по умолчанию, затем JSON файл
// (если путь не пустой), затем переменные окружения. Последний источник
// побеждает.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		var cj configJSON
		cj.Config = *cfg
		if err := json.Unmarshal(data, &cj); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		*cfg = cj.Config
		if cj.SnapshotTTL != "" {
			ttl, err := time.ParseDuration(cj.SnapshotTTL)
			if err != nil {
				return nil, fmt.Errorf("invalid snapshot_ttl %q: %w", cj.SnapshotTTL, err)
			}
			cfg.SnapshotTTL = ttl
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv накладывает переменные окружения поверх конфигурации.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("CATALOG_DB_PATH"); v != "" {
		cfg.CatalogDatabasePath = v
	}
	if v := os.Getenv("AUDIT_DB_PATH"); v != "" {
		cfg.AuditDatabasePath = v
	}
	if v := os.Getenv("STOP_WORDS_PATH"); v != "" {
		cfg.StopWordsPath = v
	}
	if v := os.Getenv("CONFIRM_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Thresholds.ConfirmThreshold = f
		}
	}
	if v := os.Getenv("AUTO_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Thresholds.AutoThreshold = f
		}
	}
	if v := os.Getenv("TIE_PROXIMITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Thresholds.TieProximity = f
		}
	}
	if v := os.Getenv("MAX_CANDIDATES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Thresholds.MaxCandidates = n
		}
	}
	if v := os.Getenv("SNAPSHOT_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.SnapshotTTL = ttl
		}
	}
	if v := os.Getenv("AUDIT_BUFFER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AuditBufferSize = n
		}
	}
}

// Validate проверяет согласованность конфигурации.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.CatalogDatabasePath == "" {
		return fmt.Errorf("catalog_database_path is required")
	}
	if c.AuditDatabasePath == "" {
		return fmt.Errorf("audit_database_path is required")
	}
	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("invalid thresholds: %w", err)
	}
	if err := algorithms.ValidateWeights(c.Weights); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}
	if c.AuditBufferSize <= 0 {
		return fmt.Errorf("audit_buffer_size must be positive, got %d", c.AuditBufferSize)
	}
	return nil
}

// StopWords загружает настроенный список стоп-слов или список по умолчанию.
func (c *Config) StopWords() (*algorithms.StopWordSet, error) {
	if c.StopWordsPath == "" {
		return algorithms.NewDefaultStopWordSet(), nil
	}
	return algorithms.LoadStopWordSet(c.StopWordsPath)
}
