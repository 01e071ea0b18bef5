package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

type StageRepository struct {
	DB *sql.DB
}

func NewStageRepository(db *sql.DB) *StageRepository {
	return &StageRepository{DB: db}
}

// All devolve só o que está gravado. Negócio ausente do mapa é StageNew
// por convenção (default implícito resolvido em entity.StageOf).
func (r *StageRepository) All(ctx context.Context, ownerID string) (map[string]entity.Stage, error) {
	query := `SELECT business_id, stage FROM stage_assignments WHERE owner_id = $1`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar estágios: %w", err)
	}
	defer rows.Close()

	assignments := make(map[string]entity.Stage)
	for rows.Next() {
		var businessID, stage string
		if err := rows.Scan(&businessID, &stage); err != nil {
			return nil, err
		}
		assignments[businessID] = entity.Stage(stage)
	}
	return assignments, rows.Err()
}

// Upsert em um statement só: o "update se existe, insert se não" exigido
// pela escrita pós-migração, sem read-then-write.
func (r *StageRepository) Upsert(ctx context.Context, ownerID, businessID string, stage entity.Stage) error {
	query := `
		INSERT INTO stage_assignments (owner_id, business_id, stage, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (owner_id, business_id)
		DO UPDATE SET stage = EXCLUDED.stage, updated_at = NOW()
	`

	_, err := r.DB.ExecContext(ctx, query, ownerID, businessID, string(stage))
	if err != nil {
		return fmt.Errorf("falha no upsert de estágio: %w", err)
	}
	return nil
}
