package usecase

import (
	"context"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
)

// PipelineStore é a visão estreita que os usecases têm do armazenamento
// ativo da sessão: cache local antes da migração, Remote Store depois.
// O cache local é single-user e ignora ownerID; o Remote Store filtra
// tudo pela coluna de dono.
type PipelineStore interface {
	StageAssignments(ctx context.Context, ownerID string) (map[string]entity.Stage, error)
	SetStage(ctx context.Context, ownerID, businessID string, stage entity.Stage) error
	StarredIDs(ctx context.Context, ownerID string, kind entity.StarKind) ([]string, error)
	ToggleStar(ctx context.Context, ownerID, businessID string, kind entity.StarKind) (bool, error)
	Threads(ctx context.Context, ownerID string) (map[string]entity.EmailThread, error)
	SaveThread(ctx context.Context, ownerID, businessID string, thread entity.EmailThread) error
}

// RemoteStore adiciona o SetStarred idempotente, usado só pela migração.
// Rodar a migração duas vezes nunca pode des-favoritar um negócio, então
// a migração não reusa o ToggleStar da UI.
type RemoteStore interface {
	PipelineStore
	SetStarred(ctx context.Context, ownerID, businessID string, kind entity.StarKind) error
}

// LocalCache é o PipelineStore local mais o purge pós-migração.
type LocalCache interface {
	PipelineStore
	PurgeAll(ctx context.Context) error
}

type BusinessReader interface {
	List(ctx context.Context, ownerID string) ([]entity.Business, error)
	FindByID(ctx context.Context, ownerID, id string) (*entity.Business, error)
}

// UnmatchedStore guarda e-mails que a cascata não resolveu, sem vínculo
// com negócio. O rematch é sempre uma operação explícita.
type UnmatchedStore interface {
	SaveUnmatched(ctx context.Context, ownerID string, rec entity.EmailRecord) error
	ListUnmatched(ctx context.Context, ownerID string) ([]entity.EmailRecord, error)
	DeleteUnmatched(ctx context.Context, ownerID, emailID string) error
}

type QueueProducerInterface interface {
	PublishInbound(ctx context.Context, payload queue.InboundEmailPayload) error
}

type EmailService interface {
	SendOutreach(to, subject, textBody, htmlBody string) error
}
