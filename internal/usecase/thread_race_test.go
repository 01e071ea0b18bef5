package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

// slowLoadStore guarda as threads em memória e abre de propósito uma janela
// entre o load e o save. Sem serialização por negócio, dois escritores leem
// a mesma versão e o segundo save apaga o e-mail do primeiro.
type slowLoadStore struct {
	mu      sync.Mutex
	threads map[string]entity.EmailThread
}

func newSlowLoadStore() *slowLoadStore {
	return &slowLoadStore{threads: make(map[string]entity.EmailThread)}
}

func (s *slowLoadStore) Threads(ctx context.Context, _ string) (map[string]entity.EmailThread, error) {
	s.mu.Lock()
	snapshot := make(map[string]entity.EmailThread, len(s.threads))
	for id, thread := range s.threads {
		snapshot[id] = append(entity.EmailThread{}, thread...)
	}
	s.mu.Unlock()

	time.Sleep(5 * time.Millisecond)
	return snapshot, nil
}

func (s *slowLoadStore) SaveThread(ctx context.Context, _ string, businessID string, thread entity.EmailThread) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads[businessID] = thread
	return nil
}

func (s *slowLoadStore) StageAssignments(ctx context.Context, _ string) (map[string]entity.Stage, error) {
	return map[string]entity.Stage{}, nil
}

func (s *slowLoadStore) SetStage(ctx context.Context, _, _ string, _ entity.Stage) error {
	return nil
}

func (s *slowLoadStore) StarredIDs(ctx context.Context, _ string, _ entity.StarKind) ([]string, error) {
	return nil, nil
}

func (s *slowLoadStore) ToggleStar(ctx context.Context, _, _ string, _ entity.StarKind) (bool, error) {
	return false, nil
}

// O worker da fila e o envio de outreach escrevem na mesma thread ao mesmo
// tempo (webhook entregando enquanto o usuário responde). Os dois e-mails
// têm que sobreviver: um não pode sobrescrever o save do outro.
func TestConcurrentIngestAndOutreachKeepBothEmails(t *testing.T) {
	ctx := context.Background()
	store := newSlowLoadStore()

	businesses := new(MockBusinessReader)
	businesses.On("List", ctx, "user-1").Return(knownBusinesses(), nil)
	businesses.On("FindByID", ctx, "user-1", "biz-42").Return(&knownBusinesses()[0], nil)

	email := new(MockEmailService)
	email.On("SendOutreach", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	ingest := usecase.NewIngestEmailUseCase(businesses, store, new(MockUnmatchedStore))
	outreach := usecase.NewSendOutreachUseCase(businesses, store, email, "vendas@ligue.com")

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		_, err := ingest.Execute(ctx, usecase.IngestEmailInput{
			OwnerID:   "user-1",
			MessageID: "msg-inbound",
			From:      "contact@acmevet.com",
			Subject:   "Re: Acme Vet Clinic",
			Timestamp: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		})
		assert.NoError(t, err)
	}()

	go func() {
		defer wg.Done()
		_, err := outreach.Execute(ctx, usecase.SendOutreachInput{
			OwnerID:    "user-1",
			BusinessID: "biz-42",
			Subject:    "Proposta",
			Text:       "corpo",
		})
		assert.NoError(t, err)
	}()

	wg.Wait()

	threads, err := store.Threads(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, threads["biz-42"], 2, "um dos escritores sobrescreveu o save do outro")
	assert.True(t, threads["biz-42"].Contains("msg-inbound"))
}
