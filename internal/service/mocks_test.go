package service

import (
	"context"
	"time"

	"farmprice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockPriceAPI is a mock implementation of upstream.PriceAPI.
type MockPriceAPI struct {
	mock.Mock
}

func (m *MockPriceAPI) ListProductPrices(ctx context.Context) ([]model.ProductPrices, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductPrices), args.Error(1)
}

func (m *MockPriceAPI) GetProductPrices(ctx context.Context, productID string) (*model.ProductPrices, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductPrices), args.Error(1)
}

func (m *MockPriceAPI) GetPriceHistory(ctx context.Context, marketID, productID string) (*model.Product, []model.PricePoint, error) {
	args := m.Called(ctx, marketID, productID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Product), args.Get(1).([]model.PricePoint), args.Error(2)
}

func (m *MockPriceAPI) ListMarketProducts(ctx context.Context) ([]model.MarketProducts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MarketProducts), args.Error(1)
}

func (m *MockPriceAPI) Login(ctx context.Context, creds model.Credentials) (*model.Account, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockPriceAPI) Register(ctx context.Context, creds model.Credentials) error {
	args := m.Called(ctx, creds)
	return args.Error(0)
}

// MockLikedRepository is a mock implementation of repository.LikedRepository.
type MockLikedRepository struct {
	mock.Mock
}

func (m *MockLikedRepository) Add(ctx context.Context, sessionID uuid.UUID, productID string) error {
	args := m.Called(ctx, sessionID, productID)
	return args.Error(0)
}

func (m *MockLikedRepository) Remove(ctx context.Context, sessionID uuid.UUID, productID string) error {
	args := m.Called(ctx, sessionID, productID)
	return args.Error(0)
}

func (m *MockLikedRepository) List(ctx context.Context, sessionID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockSessionRepository is a mock implementation of repository.SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) Update(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// quote builds a market quote from whole-number prices.
func quote(marketID string, price, previous int64) model.MarketQuote {
	return model.MarketQuote{
		MarketID:      marketID,
		MarketName:    "Market " + marketID,
		Price:         decimal.NewFromInt(price),
		PreviousPrice: decimal.NewFromInt(previous),
		ObservedAt:    time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC),
	}
}

// sampleListing returns a home grid listing with three products.
func sampleListing() []model.ProductPrices {
	return []model.ProductPrices{
		{
			Product:      model.Product{ID: "tomato", Name: "Tomato", BaseUnit: "kg"},
			MarketPrices: []model.MarketQuote{quote("m1", 10, 8), quote("m2", 20, 20), quote("m3", 30, 0)},
		},
		{
			Product:      model.Product{ID: "potato", Name: "Potato", BaseUnit: "kg"},
			MarketPrices: []model.MarketQuote{quote("m1", 25, 20)},
		},
		{
			Product: model.Product{ID: "onion", Name: "Onion", BaseUnit: "kg"},
		},
	}
}

func newSession() *model.Session {
	now := time.Now().UTC()
	return &model.Session{ID: uuid.New(), Language: model.DefaultLanguage, CreatedAt: now, UpdatedAt: now}
}
