package handler

import (
	"context"

	"farmprice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCatalogService is a mock implementation of CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListProducts(ctx context.Context, sessionID uuid.UUID, query string) (*model.ProductGrid, error) {
	args := m.Called(ctx, sessionID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductGrid), args.Error(1)
}

func (m *MockCatalogService) ListMarkets(ctx context.Context) ([]model.MarketProducts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MarketProducts), args.Error(1)
}

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CompareMarkets(ctx context.Context, productID string) (*model.MarketComparison, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MarketComparison), args.Error(1)
}

// MockTrendService is a mock implementation of TrendService.
type MockTrendService struct {
	mock.Mock
}

func (m *MockTrendService) GetTrend(ctx context.Context, marketID, productID string) (*model.PriceTrend, error) {
	args := m.Called(ctx, marketID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PriceTrend), args.Error(1)
}

// MockLikedService is a mock implementation of LikedService.
type MockLikedService struct {
	mock.Mock
}

func (m *MockLikedService) Like(ctx context.Context, sessionID uuid.UUID, productID string) error {
	args := m.Called(ctx, sessionID, productID)
	return args.Error(0)
}

func (m *MockLikedService) Unlike(ctx context.Context, sessionID uuid.UUID, productID string) error {
	args := m.Called(ctx, sessionID, productID)
	return args.Error(0)
}

func (m *MockLikedService) List(ctx context.Context, sessionID uuid.UUID) ([]model.MarketComparison, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MarketComparison), args.Error(1)
}

// MockSessionService is a mock implementation of SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context) (*model.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionService) Get(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionService) SetLanguage(ctx context.Context, id uuid.UUID, language string) (*model.Session, error) {
	args := m.Called(ctx, id, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionService) CompleteOnboarding(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

// MockAccountService is a mock implementation of AccountService.
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Login(ctx context.Context, sessionID uuid.UUID, creds model.Credentials) (*model.Account, error) {
	args := m.Called(ctx, sessionID, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountService) Register(ctx context.Context, creds model.Credentials) error {
	args := m.Called(ctx, creds)
	return args.Error(0)
}

func (m *MockAccountService) Logout(ctx context.Context, sessionID uuid.UUID) (*model.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}
