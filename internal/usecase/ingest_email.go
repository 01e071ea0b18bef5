package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

type IngestEmailInput struct {
	OwnerID    string
	MessageID  string
	From       string
	To         string
	Subject    string
	HTML       string
	Text       string
	Timestamp  time.Time
	Direction  entity.EmailDirection
	BusinessID string // pré-atribuído por sistema upstream, opcional
}

type IngestResult struct {
	BusinessID string
	Heuristic  string
	Matched    bool
}

type IngestEmailUseCase struct {
	Businesses BusinessReader
	Store      PipelineStore
	Unmatched  UnmatchedStore
}

func NewIngestEmailUseCase(businesses BusinessReader, store PipelineStore, unmatched UnmatchedStore) *IngestEmailUseCase {
	return &IngestEmailUseCase{
		Businesses: businesses,
		Store:      store,
		Unmatched:  unmatched,
	}
}

// Execute roda a cascata de matching e mescla o e-mail na thread do negócio.
// Unmatched não é erro: o registro é guardado sem vínculo e fica visível no
// filtro de não-resolvidos até um rematch explícito.
func (uc *IngestEmailUseCase) Execute(ctx context.Context, input IngestEmailInput) (*IngestResult, error) {
	if input.MessageID == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "message_id is required"}
	}

	rec := entity.EmailRecord{
		ID:         input.MessageID,
		From:       input.From,
		To:         input.To,
		Subject:    input.Subject,
		Text:       input.Text,
		HTML:       input.HTML,
		Timestamp:  input.Timestamp,
		Direction:  input.Direction,
		BusinessID: input.BusinessID,
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if rec.Direction == "" {
		rec.Direction = entity.DirectionReceived
	}

	businesses, err := uc.Businesses.List(ctx, input.OwnerID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao listar negócios: " + err.Error()}
	}

	businessID, heuristic := MatchBusinessWithHeuristic(rec, businesses)
	if businessID == "" {
		rec.BusinessID = ""
		if err := uc.Unmatched.SaveUnmatched(ctx, input.OwnerID, rec); err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao guardar e-mail sem match: " + err.Error()}
		}
		return &IngestResult{Matched: false}, nil
	}

	rec.BusinessID = businessID
	if err := uc.mergeIntoThread(ctx, input.OwnerID, businessID, rec); err != nil {
		return nil, err
	}

	return &IngestResult{BusinessID: businessID, Heuristic: heuristic, Matched: true}, nil
}

// ListUnmatched expõe o filtro de e-mails sem dono.
func (uc *IngestEmailUseCase) ListUnmatched(ctx context.Context, ownerID string) ([]entity.EmailRecord, error) {
	records, err := uc.Unmatched.ListUnmatched(ctx, ownerID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao listar não-resolvidos: " + err.Error()}
	}
	return records, nil
}

// Rematch reprocessa os e-mails sem vínculo contra a lista atual de negócios.
// Operação explícita e separada: importar negócios novos nunca dispara isso
// sozinho. Devolve quantos passaram a ter dono.
func (uc *IngestEmailUseCase) Rematch(ctx context.Context, ownerID string) (int, error) {
	pending, err := uc.Unmatched.ListUnmatched(ctx, ownerID)
	if err != nil {
		return 0, &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao listar não-resolvidos: " + err.Error()}
	}

	businesses, err := uc.Businesses.List(ctx, ownerID)
	if err != nil {
		return 0, &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao listar negócios: " + err.Error()}
	}

	matched := 0
	for _, rec := range pending {
		businessID, _ := MatchBusinessWithHeuristic(rec, businesses)
		if businessID == "" {
			continue
		}

		rec.BusinessID = businessID
		if err := uc.mergeIntoThread(ctx, ownerID, businessID, rec); err != nil {
			return matched, err
		}
		if err := uc.Unmatched.DeleteUnmatched(ctx, ownerID, rec.ID); err != nil {
			return matched, &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao remover não-resolvido: " + err.Error()}
		}
		matched++
	}

	return matched, nil
}

func (uc *IngestEmailUseCase) mergeIntoThread(ctx context.Context, ownerID, businessID string, rec entity.EmailRecord) error {
	unlock := threadLocks.Lock(businessID)
	defer unlock()

	threads, err := uc.Store.Threads(ctx, ownerID)
	if err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao carregar threads: " + err.Error()}
	}

	threads = MergeThread(businessID, rec, threads)

	if err := uc.Store.SaveThread(ctx, ownerID, businessID, threads[businessID]); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao salvar thread: " + err.Error()}
	}
	return nil
}
