package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

func TestIngestMatchedEmailGoesToThread(t *testing.T) {
	ctx := context.Background()

	businesses := new(MockBusinessReader)
	store := new(MockStore)
	unmatched := new(MockUnmatchedStore)

	businesses.On("List", ctx, "user-1").Return(knownBusinesses(), nil)
	store.On("Threads", ctx, "user-1").Return(map[string]entity.EmailThread{}, nil)
	store.On("SaveThread", ctx, "user-1", "biz-42", mock.MatchedBy(func(thread entity.EmailThread) bool {
		return len(thread) == 1 && thread[0].ID == "msg-1" && thread[0].BusinessID == "biz-42"
	})).Return(nil)

	uc := usecase.NewIngestEmailUseCase(businesses, store, unmatched)

	result, err := uc.Execute(ctx, usecase.IngestEmailInput{
		OwnerID:   "user-1",
		MessageID: "msg-1",
		From:      "owner@acmevet.com",
		Subject:   "Re: Acme Vet Clinic - orçamento",
		Timestamp: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "biz-42", result.BusinessID)
	assert.Equal(t, "subject_name", result.Heuristic)
	store.AssertExpectations(t)
	unmatched.AssertNotCalled(t, "SaveUnmatched", mock.Anything, mock.Anything, mock.Anything)
}

// E-mail que não casa com nenhuma heurística continua ingerível: vai para
// o filtro de não-resolvidos, sem erro e sem thread.
func TestIngestUnmatchedEmailStillAccepted(t *testing.T) {
	ctx := context.Background()

	businesses := new(MockBusinessReader)
	store := new(MockStore)
	unmatched := new(MockUnmatchedStore)

	businesses.On("List", ctx, "user-1").Return(knownBusinesses(), nil)
	unmatched.On("SaveUnmatched", ctx, "user-1", mock.MatchedBy(func(rec entity.EmailRecord) bool {
		return rec.ID == "msg-9" && rec.BusinessID == ""
	})).Return(nil)

	uc := usecase.NewIngestEmailUseCase(businesses, store, unmatched)

	result, err := uc.Execute(ctx, usecase.IngestEmailInput{
		OwnerID:   "user-1",
		MessageID: "msg-9",
		From:      "stranger@example.com",
		Subject:   "sem relação nenhuma",
		Text:      "nada aqui",
	})

	assert.NoError(t, err)
	assert.False(t, result.Matched)
	store.AssertNotCalled(t, "SaveThread", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	unmatched.AssertExpectations(t)
}

// Rematch é explícito: reprocessa os pendentes contra a lista atual e só
// remove do filtro quem realmente ganhou dono.
func TestRematchMovesNewlyMatched(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	businesses := new(MockBusinessReader)
	store := new(MockStore)
	unmatched := new(MockUnmatchedStore)

	pending := []entity.EmailRecord{
		{ID: "msg-1", From: "contact@acmevet.com", Subject: "ola", Timestamp: base},
		{ID: "msg-2", From: "stranger@example.com", Subject: "nada", Timestamp: base},
	}

	businesses.On("List", ctx, "user-1").Return(knownBusinesses(), nil)
	unmatched.On("ListUnmatched", ctx, "user-1").Return(pending, nil)
	store.On("Threads", ctx, "user-1").Return(map[string]entity.EmailThread{}, nil)
	store.On("SaveThread", ctx, "user-1", "biz-42", mock.Anything).Return(nil)
	unmatched.On("DeleteUnmatched", ctx, "user-1", "msg-1").Return(nil)

	uc := usecase.NewIngestEmailUseCase(businesses, store, unmatched)

	matched, err := uc.Rematch(ctx, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, 1, matched)
	unmatched.AssertCalled(t, "DeleteUnmatched", ctx, "user-1", "msg-1")
	unmatched.AssertNotCalled(t, "DeleteUnmatched", ctx, "user-1", "msg-2")
}

func TestListUnmatchedWrapsStoreErrors(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	unmatched := new(MockUnmatchedStore)
	unmatched.On("ListUnmatched", ctx, "user-1").Return([]entity.EmailRecord{
		{ID: "msg-1", From: "stranger@example.com", Timestamp: base},
	}, nil)
	unmatched.On("ListUnmatched", ctx, "user-2").Return(nil, errors.New("connection refused"))

	uc := usecase.NewIngestEmailUseCase(new(MockBusinessReader), new(MockStore), unmatched)

	records, err := uc.ListUnmatched(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = uc.ListUnmatched(ctx, "user-2")
	assert.Error(t, err)
	assert.True(t, usecase.IsTechnicalError(err))
}

func TestIngestRequiresMessageID(t *testing.T) {
	ctx := context.Background()

	uc := usecase.NewIngestEmailUseCase(new(MockBusinessReader), new(MockStore), new(MockUnmatchedStore))

	_, err := uc.Execute(ctx, usecase.IngestEmailInput{OwnerID: "user-1"})

	assert.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
}
