package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxBusinessEmails = 3

// SourceKind separa negócios vindos do diretório estático dos que vieram
// de busca externa (lookup).
type SourceKind string

const (
	SourceDirectory SourceKind = "directory"
	SourceExternal  SourceKind = "external"
)

type Business struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Rating      float64    `json:"rating"` // 0 a 5
	ReviewCount int        `json:"review_count"`
	Address     string     `json:"address,omitempty"`
	City        string     `json:"city,omitempty"`
	Website     string     `json:"website,omitempty"`
	Emails      []string   `json:"emails,omitempty"`
	Starred     bool       `json:"starred"`
	Source      SourceKind `json:"source"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type BusinessRepositoryInterface interface {
	List(ctx context.Context, ownerID string) ([]Business, error)
	FindByID(ctx context.Context, ownerID, id string) (*Business, error)
	UpsertMany(ctx context.Context, ownerID string, items []Business) error
}

// Factory
func NewBusiness(name string, source SourceKind) (*Business, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name is required")
	}
	return &Business{
		ID:        uuid.New().String(),
		Name:      name,
		Source:    source,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// AddEmail guarda no máximo MaxBusinessEmails endereços, sem duplicar.
func (b *Business) AddEmail(addr string) {
	addr = strings.TrimSpace(addr)
	if addr == "" || b.HasEmail(addr) {
		return
	}
	if len(b.Emails) >= MaxBusinessEmails {
		return
	}
	b.Emails = append(b.Emails, addr)
}

// HasEmail compara case-insensitive contra os endereços conhecidos.
func (b *Business) HasEmail(addr string) bool {
	for _, e := range b.Emails {
		if strings.EqualFold(e, addr) {
			return true
		}
	}
	return false
}
