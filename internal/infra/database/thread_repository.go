package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

// ThreadRepository guarda UMA linha por negócio, com o array de e-mails em
// JSONB. A migração conta linhas (threads), não e-mails individuais.
type ThreadRepository struct {
	DB *sql.DB
}

func NewThreadRepository(db *sql.DB) *ThreadRepository {
	return &ThreadRepository{DB: db}
}

func (r *ThreadRepository) All(ctx context.Context, ownerID string) (map[string]entity.EmailThread, error) {
	query := `SELECT business_id, emails FROM email_threads WHERE owner_id = $1`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar threads: %w", err)
	}
	defer rows.Close()

	threads := make(map[string]entity.EmailThread)
	for rows.Next() {
		var businessID string
		var raw []byte
		if err := rows.Scan(&businessID, &raw); err != nil {
			return nil, err
		}

		var thread entity.EmailThread
		if err := json.Unmarshal(raw, &thread); err != nil {
			return nil, fmt.Errorf("thread corrompida para %s: %w", businessID, err)
		}
		threads[businessID] = thread
	}
	return threads, rows.Err()
}

func (r *ThreadRepository) Save(ctx context.Context, ownerID, businessID string, thread entity.EmailThread) error {
	raw, err := json.Marshal(thread)
	if err != nil {
		return fmt.Errorf("falha ao serializar thread: %w", err)
	}

	query := `
		INSERT INTO email_threads (owner_id, business_id, emails, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (owner_id, business_id)
		DO UPDATE SET emails = EXCLUDED.emails, updated_at = NOW()
	`

	if _, err := r.DB.ExecContext(ctx, query, ownerID, businessID, raw); err != nil {
		return fmt.Errorf("falha no upsert de thread: %w", err)
	}
	return nil
}
