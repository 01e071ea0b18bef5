package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

// Store agrega os repositórios por trás da interface estreita que os
// usecases enxergam (usecase.RemoteStore). Tudo escopado por owner_id.
type Store struct {
	StageRepo  *StageRepository
	StarRepo   *StarredRepository
	ThreadRepo *ThreadRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		StageRepo:  NewStageRepository(db),
		StarRepo:   NewStarredRepository(db),
		ThreadRepo: NewThreadRepository(db),
	}
}

func (s *Store) StageAssignments(ctx context.Context, ownerID string) (map[string]entity.Stage, error) {
	return s.StageRepo.All(ctx, ownerID)
}

func (s *Store) SetStage(ctx context.Context, ownerID, businessID string, stage entity.Stage) error {
	return s.StageRepo.Upsert(ctx, ownerID, businessID, stage)
}

func (s *Store) StarredIDs(ctx context.Context, ownerID string, kind entity.StarKind) ([]string, error) {
	return s.StarRepo.All(ctx, ownerID, kind)
}

func (s *Store) ToggleStar(ctx context.Context, ownerID, businessID string, kind entity.StarKind) (bool, error) {
	return s.StarRepo.Toggle(ctx, ownerID, businessID, kind)
}

func (s *Store) SetStarred(ctx context.Context, ownerID, businessID string, kind entity.StarKind) error {
	return s.StarRepo.Set(ctx, ownerID, businessID, kind)
}

func (s *Store) Threads(ctx context.Context, ownerID string) (map[string]entity.EmailThread, error) {
	return s.ThreadRepo.All(ctx, ownerID)
}

func (s *Store) SaveThread(ctx context.Context, ownerID, businessID string, thread entity.EmailThread) error {
	return s.ThreadRepo.Save(ctx, ownerID, businessID, thread)
}
