package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

func TestSendOutreachMergesSentRecord(t *testing.T) {
	ctx := context.Background()

	businesses := new(MockBusinessReader)
	store := new(MockStore)
	email := new(MockEmailService)

	business := &entity.Business{ID: "biz-42", Name: "Acme Vet Clinic", Emails: []string{"contact@acmevet.com"}}
	businesses.On("FindByID", ctx, "user-1", "biz-42").Return(business, nil)
	email.On("SendOutreach", "contact@acmevet.com", "Proposta", "corpo", "").Return(nil)
	store.On("Threads", ctx, "user-1").Return(map[string]entity.EmailThread{}, nil)
	store.On("SaveThread", ctx, "user-1", "biz-42", mock.MatchedBy(func(thread entity.EmailThread) bool {
		return len(thread) == 1 &&
			thread[0].Direction == entity.DirectionSent &&
			thread[0].To == "contact@acmevet.com" &&
			thread[0].ID != ""
	})).Return(nil)

	uc := usecase.NewSendOutreachUseCase(businesses, store, email, "vendas@ligue.com")

	output, err := uc.Execute(ctx, usecase.SendOutreachInput{
		OwnerID:    "user-1",
		BusinessID: "biz-42",
		Subject:    "Proposta",
		Text:       "corpo",
	})

	assert.NoError(t, err)
	assert.Equal(t, "contact@acmevet.com", output.To)
	assert.NotEmpty(t, output.EmailID)
	store.AssertExpectations(t)
}

func TestSendOutreachFailsForUnknownBusiness(t *testing.T) {
	ctx := context.Background()

	businesses := new(MockBusinessReader)
	businesses.On("FindByID", ctx, "user-1", "biz-404").Return(nil, errors.New("sql: no rows in result set"))

	uc := usecase.NewSendOutreachUseCase(businesses, new(MockStore), new(MockEmailService), "vendas@ligue.com")

	_, err := uc.Execute(ctx, usecase.SendOutreachInput{
		OwnerID:    "user-1",
		BusinessID: "biz-404",
		Subject:    "Proposta",
	})

	assert.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
}

// Falha de SMTP não pode gravar nada na thread.
func TestSendOutreachSMTPFailure(t *testing.T) {
	ctx := context.Background()

	businesses := new(MockBusinessReader)
	store := new(MockStore)
	email := new(MockEmailService)

	business := &entity.Business{ID: "biz-42", Name: "Acme Vet Clinic", Emails: []string{"contact@acmevet.com"}}
	businesses.On("FindByID", ctx, "user-1", "biz-42").Return(business, nil)
	email.On("SendOutreach", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("dial tcp: timeout"))

	uc := usecase.NewSendOutreachUseCase(businesses, store, email, "vendas@ligue.com")

	_, err := uc.Execute(ctx, usecase.SendOutreachInput{
		OwnerID:    "user-1",
		BusinessID: "biz-42",
		Subject:    "Proposta",
		Text:       "corpo",
	})

	assert.Error(t, err)
	assert.True(t, usecase.IsTechnicalError(err))
	store.AssertNotCalled(t, "SaveThread", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
