package handler

import (
	"context"

	"daurulang/internal/listing"
	"daurulang/internal/model"
	"daurulang/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockCatalogService is a mock implementation of CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) List(ctx context.Context, view service.View, filter model.FilterState, page int) (*listing.Page[model.CatalogItem], error) {
	args := m.Called(ctx, view, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Page[model.CatalogItem]), args.Error(1)
}

func (m *MockCatalogService) GetByID(ctx context.Context, id string) (*model.CatalogItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CatalogItem), args.Error(1)
}

func (m *MockCatalogService) Categories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

// MockOpportunityService is a mock implementation of OpportunityService.
type MockOpportunityService struct {
	mock.Mock
}

func (m *MockOpportunityService) List(ctx context.Context, filter model.FilterState, page int) (*listing.Page[model.BusinessOpportunity], error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Page[model.BusinessOpportunity]), args.Error(1)
}

func (m *MockOpportunityService) GetByID(ctx context.Context, id string) (*model.BusinessOpportunity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BusinessOpportunity), args.Error(1)
}

// MockTutorialService is a mock implementation of TutorialService.
type MockTutorialService struct {
	mock.Mock
}

func (m *MockTutorialService) GetByID(ctx context.Context, id string, viewer *model.User) (*model.Tutorial, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tutorial), args.Error(1)
}

func (m *MockTutorialService) AddComment(ctx context.Context, id string, viewer *model.User, req model.CommentRequest) (*model.Comment, error) {
	args := m.Called(ctx, id, viewer, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockTutorialService) ToggleSaved(ctx context.Context, id string, viewer *model.User) (*model.Interaction, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Interaction), args.Error(1)
}

func (m *MockTutorialService) ToggleCompleted(ctx context.Context, id string, viewer *model.User) (*model.Interaction, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Interaction), args.Error(1)
}

func (m *MockTutorialService) Rate(ctx context.Context, id string, viewer *model.User, req model.RatingRequest) (*model.Interaction, error) {
	args := m.Called(ctx, id, viewer, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Interaction), args.Error(1)
}

func (m *MockTutorialService) Create(ctx context.Context, viewer *model.User, req model.TutorialRequest) (*model.Tutorial, error) {
	args := m.Called(ctx, viewer, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tutorial), args.Error(1)
}

// MockBuyerService is a mock implementation of BuyerService.
type MockBuyerService struct {
	mock.Mock
}

func (m *MockBuyerService) List(ctx context.Context, filter service.BuyerFilter) ([]model.WasteBuyer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WasteBuyer), args.Error(1)
}

func (m *MockBuyerService) SaveLocation(ctx context.Context, id string, lat, lng *float64) (*model.WasteBuyer, error) {
	args := m.Called(ctx, id, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WasteBuyer), args.Error(1)
}

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, creds model.Credentials) (*model.Session, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(token string) {
	m.Called(token)
}

// MockForumService is a mock implementation of ForumService.
type MockForumService struct {
	mock.Mock
}

func (m *MockForumService) CreateTopic(ctx context.Context, viewer *model.User, req model.ForumPostRequest) (*model.ForumTopic, error) {
	args := m.Called(ctx, viewer, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ForumTopic), args.Error(1)
}
