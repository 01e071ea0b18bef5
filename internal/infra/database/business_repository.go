package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/xavierca1/ligue-outreach/internal/entity"
)

type BusinessRepository struct {
	DB *sql.DB
}

func NewBusinessRepository(db *sql.DB) *BusinessRepository {
	return &BusinessRepository{DB: db}
}

func (r *BusinessRepository) List(ctx context.Context, ownerID string) ([]entity.Business, error) {
	query := `
		SELECT id, name, rating, review_count, address, city, website, emails, starred, source, created_at, updated_at
		FROM businesses
		WHERE owner_id = $1
		ORDER BY name
	`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar negócios: %w", err)
	}
	defer rows.Close()

	var items []entity.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

func (r *BusinessRepository) FindByID(ctx context.Context, ownerID, id string) (*entity.Business, error) {
	query := `
		SELECT id, name, rating, review_count, address, city, website, emails, starred, source, created_at, updated_at
		FROM businesses
		WHERE owner_id = $1 AND id = $2
	`
	return scanBusiness(r.DB.QueryRowContext(ctx, query, ownerID, id))
}

// UpsertMany grava um lote de import (planilha ou dataset estático).
// Conflito por (owner_id, id) atualiza os campos vindos da fonte e preserva
// o starred, que só muda por ação do usuário.
func (r *BusinessRepository) UpsertMany(ctx context.Context, ownerID string, items []entity.Business) error {
	query := `
		INSERT INTO businesses (owner_id, id, name, rating, review_count, address, city, website, emails, starred, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (owner_id, id)
		DO UPDATE SET
			name = EXCLUDED.name,
			rating = EXCLUDED.rating,
			review_count = EXCLUDED.review_count,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			website = EXCLUDED.website,
			emails = EXCLUDED.emails,
			updated_at = NOW()
	`

	for _, b := range items {
		_, err := r.DB.ExecContext(ctx, query,
			ownerID,
			b.ID,
			b.Name,
			b.Rating,
			b.ReviewCount,
			b.Address,
			b.City,
			b.Website,
			pq.StringArray(b.Emails),
			b.Starred,
			string(b.Source),
		)
		if err != nil {
			return fmt.Errorf("falha ao gravar negócio %s: %w", b.ID, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBusiness(row rowScanner) (*entity.Business, error) {
	var b entity.Business
	var emails pq.StringArray
	var source string

	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Rating,
		&b.ReviewCount,
		&b.Address,
		&b.City,
		&b.Website,
		&emails,
		&b.Starred,
		&source,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Emails = []string(emails)
	b.Source = entity.SourceKind(source)
	return &b, nil
}
