// internal/infra/database/postgres_document_store.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const schemaDocuments = `CREATE TABLE IF NOT EXISTS documents (
    key        TEXT PRIMARY KEY,
    body       JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresDocumentStore keeps each collection as one JSONB row keyed by name.
type PostgresDocumentStore struct {
	db *sql.DB
}

func NewPostgresDocumentStore(db *sql.DB) *PostgresDocumentStore {
	return &PostgresDocumentStore{db: db}
}

// EnsureSchema creates the documents table if it does not exist yet.
func (s *PostgresDocumentStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaDocuments); err != nil {
		return fmt.Errorf("error creating documents table: %w", err)
	}
	return nil
}

func (s *PostgresDocumentStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT body FROM documents WHERE key = $1`
	var body []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading document %q: %w", key, err)
	}
	return body, nil
}

// Set replaces the whole document. No version check is made, the last writer wins.
func (s *PostgresDocumentStore) Set(ctx context.Context, key string, body []byte) error {
	query := `INSERT INTO documents (key, body, updated_at)
               VALUES ($1, $2::jsonb, NOW())
               ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()`
	// lib/pq sends []byte as bytea, so the JSON goes over as text.
	if _, err := s.db.ExecContext(ctx, query, key, string(body)); err != nil {
		return fmt.Errorf("error writing document %q: %w", key, err)
	}
	return nil
}
