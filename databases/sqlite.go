package databases

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/advocate-tools/legal-case-manager/config"
	"github.com/advocate-tools/legal-case-manager/models"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	k TEXT PRIMARY KEY,
	v TEXT NOT NULL
);`

type sqliteStore struct {
	db       *sqlx.DB
	maxBytes int64
}

// NewSQLiteStore opens (creating if needed) the sqlite-backed key-value store
// at the configured path
func NewSQLiteStore(conf *config.Config) (Store, error) {
	db, err := sqlx.Connect("sqlite3", conf.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", conf.StorePath, err)
	}
	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init store schema: %w", err)
	}
	return &sqliteStore{db: db, maxBytes: conf.MaxValueBytes}, nil
}

func (s *sqliteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT v FROM kv WHERE k = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *sqliteStore) Set(ctx context.Context, key, value string) error {
	if s.maxBytes > 0 && int64(len(value)) > s.maxBytes {
		return fmt.Errorf("%w: %d bytes for key %s", models.ErrQuotaExceeded, len(value), key)
	}
	_, err := s.db.ExecContext(ctx, "INSERT OR REPLACE INTO kv (k, v) VALUES (?, ?)", key, value)
	return err
}

func (s *sqliteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE k = ?", key)
	return err
}
