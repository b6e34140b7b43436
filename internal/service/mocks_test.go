package service

import (
	"context"

	"daurulang/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockCatalogRepository is a mock implementation of CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListItems(ctx context.Context) ([]model.CatalogItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CatalogItem), args.Error(1)
}

func (m *MockCatalogRepository) GetItem(ctx context.Context, id string) (*model.CatalogItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CatalogItem), args.Error(1)
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCatalogRepository) UpsertCategories(ctx context.Context, categories []model.Category) error {
	return m.Called(ctx, categories).Error(0)
}

func (m *MockCatalogRepository) UpsertItems(ctx context.Context, items []model.CatalogItem) error {
	return m.Called(ctx, items).Error(0)
}

// MockOpportunityRepository is a mock implementation of OpportunityRepository.
type MockOpportunityRepository struct {
	mock.Mock
}

func (m *MockOpportunityRepository) List(ctx context.Context) ([]model.BusinessOpportunity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BusinessOpportunity), args.Error(1)
}

func (m *MockOpportunityRepository) GetByID(ctx context.Context, id string) (*model.BusinessOpportunity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BusinessOpportunity), args.Error(1)
}

func (m *MockOpportunityRepository) Upsert(ctx context.Context, opportunities []model.BusinessOpportunity) error {
	return m.Called(ctx, opportunities).Error(0)
}

// MockTutorialRepository is a mock implementation of TutorialRepository.
type MockTutorialRepository struct {
	mock.Mock
}

func (m *MockTutorialRepository) GetByID(ctx context.Context, id string) (*model.Tutorial, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tutorial), args.Error(1)
}

func (m *MockTutorialRepository) GetInteraction(ctx context.Context, tutorialID, userID string) (model.Interaction, error) {
	args := m.Called(ctx, tutorialID, userID)
	return args.Get(0).(model.Interaction), args.Error(1)
}

func (m *MockTutorialRepository) AddComment(ctx context.Context, comment *model.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockTutorialRepository) ToggleSaved(ctx context.Context, tutorialID, userID string) (bool, error) {
	args := m.Called(ctx, tutorialID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTutorialRepository) ToggleCompleted(ctx context.Context, tutorialID, userID string) (bool, error) {
	args := m.Called(ctx, tutorialID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTutorialRepository) Rate(ctx context.Context, tutorialID, userID string, rating int) error {
	return m.Called(ctx, tutorialID, userID, rating).Error(0)
}

func (m *MockTutorialRepository) Create(ctx context.Context, tutorial *model.Tutorial) error {
	return m.Called(ctx, tutorial).Error(0)
}

// MockBuyerRepository is a mock implementation of BuyerRepository.
type MockBuyerRepository struct {
	mock.Mock
}

func (m *MockBuyerRepository) List(ctx context.Context) ([]model.WasteBuyer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WasteBuyer), args.Error(1)
}

func (m *MockBuyerRepository) GetByID(ctx context.Context, id string) (*model.WasteBuyer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WasteBuyer), args.Error(1)
}

func (m *MockBuyerRepository) UpdateLocation(ctx context.Context, id string, loc model.Location) (*model.WasteBuyer, error) {
	args := m.Called(ctx, id, loc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WasteBuyer), args.Error(1)
}

func (m *MockBuyerRepository) Upsert(ctx context.Context, buyers []model.WasteBuyer) error {
	return m.Called(ctx, buyers).Error(0)
}

// MockAuthClient is a mock implementation of authclient.Client.
type MockAuthClient struct {
	mock.Mock
}

func (m *MockAuthClient) Login(ctx context.Context, creds model.Credentials) (*model.User, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthClient) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

// MockSessionProvider is a mock implementation of session.Provider.
type MockSessionProvider struct {
	mock.Mock
}

func (m *MockSessionProvider) Create(user model.User) model.Session {
	return m.Called(user).Get(0).(model.Session)
}

func (m *MockSessionProvider) Get(token string) (model.Session, bool) {
	args := m.Called(token)
	return args.Get(0).(model.Session), args.Bool(1)
}

func (m *MockSessionProvider) Revoke(token string) {
	m.Called(token)
}
