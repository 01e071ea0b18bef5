package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

type StarredRepository struct {
	DB *sql.DB
}

func NewStarredRepository(db *sql.DB) *StarredRepository {
	return &StarredRepository{DB: db}
}

func (r *StarredRepository) All(ctx context.Context, ownerID string, kind entity.StarKind) ([]string, error) {
	query := `SELECT business_id FROM starred WHERE owner_id = $1 AND kind = $2 ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctx, query, ownerID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("falha ao listar favoritos: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Toggle é o caminho da UI: remove se existe, insere se não. Devolve o
// estado final (true = favoritado).
func (r *StarredRepository) Toggle(ctx context.Context, ownerID, businessID string, kind entity.StarKind) (bool, error) {
	del := `DELETE FROM starred WHERE owner_id = $1 AND business_id = $2 AND kind = $3`

	res, err := r.DB.ExecContext(ctx, del, ownerID, businessID, string(kind))
	if err != nil {
		return false, fmt.Errorf("falha no toggle de favorito: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return false, nil
	}

	// Não existia: insere. ON CONFLICT cobre corrida entre o DELETE e cá.
	ins := `
		INSERT INTO starred (owner_id, business_id, kind, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (owner_id, business_id, kind) DO NOTHING
	`
	if _, err := r.DB.ExecContext(ctx, ins, ownerID, businessID, string(kind)); err != nil {
		return false, fmt.Errorf("falha ao favoritar: %w", err)
	}
	return true, nil
}

// Set é a forma idempotente, usada pela migração: garante a presença sem
// nunca flipar. Rodar duas vezes dá no mesmo.
func (r *StarredRepository) Set(ctx context.Context, ownerID, businessID string, kind entity.StarKind) error {
	query := `
		INSERT INTO starred (owner_id, business_id, kind, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (owner_id, business_id, kind) DO NOTHING
	`

	_, err := r.DB.ExecContext(ctx, query, ownerID, businessID, string(kind))
	if err != nil {
		return fmt.Errorf("falha ao gravar favorito: %w", err)
	}
	return nil
}
