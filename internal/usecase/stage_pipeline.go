package usecase

import (
	"context"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

// StagePipeline lê e escreve o funil de 5 estágios através do store ativo
// da sessão. Transição é grafo livre (Converted não é terminal) e sempre
// manual; a única validação é pertencer ao enum.
type StagePipeline struct {
	Store PipelineStore
	locks *keyLock
}

func NewStagePipeline(store PipelineStore) *StagePipeline {
	return &StagePipeline{
		Store: store,
		locks: newKeyLock(),
	}
}

// StageOf devolve StageNew quando não existe registro (default implícito).
func (p *StagePipeline) StageOf(ctx context.Context, ownerID, businessID string) (entity.Stage, error) {
	assignments, err := p.Store.StageAssignments(ctx, ownerID)
	if err != nil {
		return "", &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao carregar estágios: " + err.Error()}
	}
	return entity.StageOf(assignments, businessID), nil
}

func (p *StagePipeline) All(ctx context.Context, ownerID string) (map[string]entity.Stage, error) {
	assignments, err := p.Store.StageAssignments(ctx, ownerID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao carregar estágios: " + err.Error()}
	}
	return assignments, nil
}

// SetStage grava a transição com upsert no store ativo. O lock por negócio
// cobre o caso do store local, onde o "update ou insert" é read-then-write.
func (p *StagePipeline) SetStage(ctx context.Context, ownerID, businessID string, stage entity.Stage) error {
	if businessID == "" {
		return &DomainError{Code: "VALIDATION_ERROR", Message: "business_id is required"}
	}
	if !stage.Valid() {
		return &DomainError{Code: "VALIDATION_ERROR", Message: "estágio inválido: " + string(stage)}
	}

	unlock := p.locks.Lock(businessID)
	defer unlock()

	if err := p.Store.SetStage(ctx, ownerID, businessID, stage); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao gravar estágio: " + err.Error()}
	}
	return nil
}
