package service

import (
	"context"

	"farmprice/internal/model"

	"github.com/google/uuid"
)

// CatalogService defines operations behind the home grid and markets tab.
type CatalogService interface {
	// ListProducts returns the home grid filtered by query. sessionID may be
	// uuid.Nil, in which case no product is flagged as liked.
	ListProducts(ctx context.Context, sessionID uuid.UUID, query string) (*model.ProductGrid, error)

	// ListMarkets returns every market with the products it currently quotes.
	ListMarkets(ctx context.Context) ([]model.MarketProducts, error)
}

// ProductService defines operations for a single product.
type ProductService interface {
	// CompareMarkets returns the product's quotes ranked across all markets.
	CompareMarkets(ctx context.Context, productID string) (*model.MarketComparison, error)
}

// TrendService defines operations for price history.
type TrendService interface {
	// GetTrend summarises the recent prices of a product at one market.
	GetTrend(ctx context.Context, marketID, productID string) (*model.PriceTrend, error)
}

// LikedService defines operations on a session's liked products.
type LikedService interface {
	// Like adds productID to the session's liked set. Idempotent.
	Like(ctx context.Context, sessionID uuid.UUID, productID string) error

	// Unlike removes productID from the session's liked set. Idempotent.
	Unlike(ctx context.Context, sessionID uuid.UUID, productID string) error

	// List returns the liked products with their current market comparison.
	List(ctx context.Context, sessionID uuid.UUID) ([]model.MarketComparison, error)
}

// SessionService defines operations on client sessions.
type SessionService interface {
	// Create starts a new session with default preferences.
	Create(ctx context.Context) (*model.Session, error)

	// Get retrieves an existing session.
	Get(ctx context.Context, id uuid.UUID) (*model.Session, error)

	// SetLanguage changes the session's interface language.
	SetLanguage(ctx context.Context, id uuid.UUID, language string) (*model.Session, error)

	// CompleteOnboarding marks the onboarding screens as seen.
	CompleteOnboarding(ctx context.Context, id uuid.UUID) (*model.Session, error)
}

// AccountService defines the user account operations proxied upstream.
type AccountService interface {
	// Login authenticates against the price service and remembers the user
	// name on the session when sessionID is not uuid.Nil.
	Login(ctx context.Context, sessionID uuid.UUID, creds model.Credentials) (*model.Account, error)

	// Register creates an account at the price service.
	Register(ctx context.Context, creds model.Credentials) error

	// Logout forgets the user name stored on the session.
	Logout(ctx context.Context, sessionID uuid.UUID) (*model.Session, error)
}
