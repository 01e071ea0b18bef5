package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

// UnmatchedRepository guarda e-mails que nenhuma heurística resolveu.
// Registro completo, para o rematch conseguir reprocessar depois.
type UnmatchedRepository struct {
	DB *sql.DB
}

func NewUnmatchedRepository(db *sql.DB) *UnmatchedRepository {
	return &UnmatchedRepository{DB: db}
}

// SaveUnmatched é idempotente por (owner_id, id): redelivery do webhook
// não duplica.
func (r *UnmatchedRepository) SaveUnmatched(ctx context.Context, ownerID string, rec entity.EmailRecord) error {
	query := `
		INSERT INTO unmatched_emails (owner_id, id, from_addr, to_addr, subject, body_text, body_html, received_at, direction)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (owner_id, id) DO NOTHING
	`

	_, err := r.DB.ExecContext(ctx, query,
		ownerID,
		rec.ID,
		rec.From,
		rec.To,
		rec.Subject,
		rec.Text,
		rec.HTML,
		rec.Timestamp,
		string(rec.Direction),
	)
	if err != nil {
		return fmt.Errorf("falha ao guardar e-mail sem match: %w", err)
	}
	return nil
}

func (r *UnmatchedRepository) ListUnmatched(ctx context.Context, ownerID string) ([]entity.EmailRecord, error) {
	query := `
		SELECT id, from_addr, to_addr, subject, body_text, body_html, received_at, direction
		FROM unmatched_emails
		WHERE owner_id = $1
		ORDER BY received_at
	`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar e-mails sem match: %w", err)
	}
	defer rows.Close()

	var records []entity.EmailRecord
	for rows.Next() {
		var rec entity.EmailRecord
		var direction string
		err := rows.Scan(&rec.ID, &rec.From, &rec.To, &rec.Subject, &rec.Text, &rec.HTML, &rec.Timestamp, &direction)
		if err != nil {
			return nil, err
		}
		rec.Direction = entity.EmailDirection(direction)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *UnmatchedRepository) DeleteUnmatched(ctx context.Context, ownerID, emailID string) error {
	query := `DELETE FROM unmatched_emails WHERE owner_id = $1 AND id = $2`

	if _, err := r.DB.ExecContext(ctx, query, ownerID, emailID); err != nil {
		return fmt.Errorf("falha ao remover e-mail sem match: %w", err)
	}
	return nil
}
