package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/ligue-outreach/internal/entity"
)

type SendOutreachInput struct {
	OwnerID    string `json:"-"`
	BusinessID string `json:"business_id"`
	To         string `json:"to,omitempty"` // vazio usa o primeiro e-mail do negócio
	Subject    string `json:"subject"`
	Text       string `json:"text"`
	HTML       string `json:"html,omitempty"`
}

type SendOutreachOutput struct {
	EmailID    string `json:"email_id"`
	BusinessID string `json:"business_id"`
	To         string `json:"to"`
}

// SendOutreachUseCase envia o e-mail de prospecção e mescla o registro
// enviado na thread do negócio, pelo mesmo merge do caminho inbound.
type SendOutreachUseCase struct {
	Businesses  BusinessReader
	Store       PipelineStore
	Email       EmailService
	FromAddress string
}

func NewSendOutreachUseCase(businesses BusinessReader, store PipelineStore, email EmailService, fromAddress string) *SendOutreachUseCase {
	return &SendOutreachUseCase{
		Businesses:  businesses,
		Store:       store,
		Email:       email,
		FromAddress: fromAddress,
	}
}

func (uc *SendOutreachUseCase) Execute(ctx context.Context, input SendOutreachInput) (*SendOutreachOutput, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "subject is required"}
	}

	business, err := uc.Businesses.FindByID(ctx, input.OwnerID, input.BusinessID)
	if err != nil {
		return nil, &DomainError{Code: "UNKNOWN_BUSINESS", Message: "negócio não encontrado: " + input.BusinessID}
	}

	to := strings.TrimSpace(input.To)
	if to == "" {
		if len(business.Emails) == 0 {
			return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "negócio sem e-mail conhecido e nenhum destinatário informado"}
		}
		to = business.Emails[0]
	}

	if err := uc.Email.SendOutreach(to, input.Subject, input.Text, input.HTML); err != nil {
		return nil, &TechnicalError{Code: "MAIL_ERROR", Message: "falha no envio SMTP: " + err.Error()}
	}

	// Registro imutável do que saiu. ID nosso, já que o SMTP não devolve um.
	rec := entity.EmailRecord{
		ID:         uuid.New().String(),
		From:       uc.FromAddress,
		To:         to,
		Subject:    input.Subject,
		Text:       input.Text,
		HTML:       input.HTML,
		Timestamp:  time.Now(),
		Direction:  entity.DirectionSent,
		BusinessID: business.ID,
	}

	unlock := threadLocks.Lock(business.ID)
	defer unlock()

	threads, err := uc.Store.Threads(ctx, input.OwnerID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "e-mail enviado, mas falha ao carregar threads: " + err.Error()}
	}
	threads = MergeThread(business.ID, rec, threads)
	if err := uc.Store.SaveThread(ctx, input.OwnerID, business.ID, threads[business.ID]); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "e-mail enviado, mas falha ao salvar thread: " + err.Error()}
	}

	return &SendOutreachOutput{
		EmailID:    rec.ID,
		BusinessID: business.ID,
		To:         to,
	}, nil
}
