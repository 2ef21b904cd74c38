package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"goalTracker/internal/logger"
	repo "goalTracker/internal/repository"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, dbPath string) (*Storage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("создание каталога БД: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		logger.Error("Repository: Не удалось открыть SQLite", err)
		return nil, fmt.Errorf("открытие sqlite: %w", err)
	}
	// один писатель: sqlite не любит параллельные транзакции на запись
	db.SetMaxOpenConns(1)

	s := &Storage{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Repository: Успешное открытие SQLite", zap.String("path", dbPath))
	return s, nil
}

func (s *Storage) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv_store (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		logger.Error("Repository: Не удалось создать таблицу kv_store", err)
		return fmt.Errorf("создание таблицы kv_store: %w", err)
	}
	return nil
}

func (s *Storage) Close() error {
	logger.Info("Repository: Закрытие SQLite")
	return s.db.Close()
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось прочитать ключ", err, zap.String("key", key))
		return nil, fmt.Errorf("чтение ключа %s: %w", key, err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return []byte(value), nil
}

// SetMany пишет все записи в одной транзакции
func (s *Storage) SetMany(ctx context.Context, entries ...repo.Entry) error {
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("начало транзакции: %w", err)
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO kv_store (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;
`
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, stmt, e.Key, string(e.Value)); err != nil {
			logger.Error("Repository: Не удалось записать ключ", err, zap.String("key", e.Key))
			return fmt.Errorf("запись ключа %s: %w", e.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Repository: Не удалось зафиксировать транзакцию", err)
		return fmt.Errorf("фиксация транзакции: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}
