package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// likedRepository implements the LikedRepository interface using PostgreSQL.
type likedRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewLikedRepository creates a new PostgreSQL-backed liked product repository.
func NewLikedRepository(pool *pgxpool.Pool, logger zerolog.Logger) LikedRepository {
	return &likedRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "liked").Logger(),
	}
}

// Add marks a product as liked for the session.
func (r *likedRepository) Add(ctx context.Context, sessionID uuid.UUID, productID string) error {
	query := `
		INSERT INTO liked_products (session_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (session_id, product_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, sessionID, productID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("session_id", sessionID.String()).
			Str("product_id", productID).
			Msg("failed to add liked product")
		return fmt.Errorf("failed to add liked product: %w", err)
	}

	r.logger.Debug().
		Str("session_id", sessionID.String()).
		Str("product_id", productID).
		Bool("inserted", tag.RowsAffected() > 0).
		Msg("liked product added")

	return nil
}

// Remove unmarks a product for the session.
func (r *likedRepository) Remove(ctx context.Context, sessionID uuid.UUID, productID string) error {
	query := `
		DELETE FROM liked_products
		WHERE session_id = $1 AND product_id = $2
	`

	if _, err := r.pool.Exec(ctx, query, sessionID, productID); err != nil {
		r.logger.Error().
			Err(err).
			Str("session_id", sessionID.String()).
			Str("product_id", productID).
			Msg("failed to remove liked product")
		return fmt.Errorf("failed to remove liked product: %w", err)
	}

	return nil
}

// List returns the liked product IDs in insertion order.
func (r *likedRepository) List(ctx context.Context, sessionID uuid.UUID) ([]string, error) {
	query := `
		SELECT product_id
		FROM liked_products
		WHERE session_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to query liked products")
		return nil, fmt.Errorf("failed to query liked products: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan liked product row")
			return nil, fmt.Errorf("failed to scan liked product: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating liked product rows")
		return nil, fmt.Errorf("error iterating liked products: %w", err)
	}

	return ids, nil
}
