package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-outreach/internal/entity"
)

// MockBusinessReader
type MockBusinessReader struct {
	mock.Mock
}

func (m *MockBusinessReader) List(ctx context.Context, ownerID string) ([]entity.Business, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Business), args.Error(1)
}

func (m *MockBusinessReader) FindByID(ctx context.Context, ownerID, id string) (*entity.Business, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Business), args.Error(1)
}

// MockStore serve como PipelineStore, RemoteStore e LocalCache nos testes.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) StageAssignments(ctx context.Context, ownerID string) (map[string]entity.Stage, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]entity.Stage), args.Error(1)
}

func (m *MockStore) SetStage(ctx context.Context, ownerID, businessID string, stage entity.Stage) error {
	args := m.Called(ctx, ownerID, businessID, stage)
	return args.Error(0)
}

func (m *MockStore) StarredIDs(ctx context.Context, ownerID string, kind entity.StarKind) ([]string, error) {
	args := m.Called(ctx, ownerID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) ToggleStar(ctx context.Context, ownerID, businessID string, kind entity.StarKind) (bool, error) {
	args := m.Called(ctx, ownerID, businessID, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) SetStarred(ctx context.Context, ownerID, businessID string, kind entity.StarKind) error {
	args := m.Called(ctx, ownerID, businessID, kind)
	return args.Error(0)
}

func (m *MockStore) Threads(ctx context.Context, ownerID string) (map[string]entity.EmailThread, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]entity.EmailThread), args.Error(1)
}

func (m *MockStore) SaveThread(ctx context.Context, ownerID, businessID string, thread entity.EmailThread) error {
	args := m.Called(ctx, ownerID, businessID, thread)
	return args.Error(0)
}

func (m *MockStore) PurgeAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockUnmatchedStore
type MockUnmatchedStore struct {
	mock.Mock
}

func (m *MockUnmatchedStore) SaveUnmatched(ctx context.Context, ownerID string, rec entity.EmailRecord) error {
	args := m.Called(ctx, ownerID, rec)
	return args.Error(0)
}

func (m *MockUnmatchedStore) ListUnmatched(ctx context.Context, ownerID string) ([]entity.EmailRecord, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.EmailRecord), args.Error(1)
}

func (m *MockUnmatchedStore) DeleteUnmatched(ctx context.Context, ownerID, emailID string) error {
	args := m.Called(ctx, ownerID, emailID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOutreach(to, subject, textBody, htmlBody string) error {
	args := m.Called(to, subject, textBody, htmlBody)
	return args.Error(0)
}
