package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tanvir/noteshare/internal/app/models"
	"github.com/tanvir/noteshare/internal/pkg/apperrors"
	"github.com/tanvir/noteshare/internal/pkg/logger"
)

// TokenRepository persists refresh tokens.
type TokenRepository struct {
	DB *pgxpool.Pool
}

// NewTokenRepository creates a new instance of TokenRepository.
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{DB: db}
}

// CreateRefreshToken stores a refresh token for a user.
func (r *TokenRepository) CreateRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES ($1, $2, $3)`,
		userID, token, expiresAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error inserting refresh token")
		return err
	}
	return nil
}

// GetRefreshToken retrieves a refresh token that has not expired yet.
func (r *TokenRepository) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := r.DB.QueryRow(ctx,
		`SELECT id, user_id, token, expires_at, created_at
		 FROM refresh_tokens WHERE token = $1 AND expires_at > NOW()`,
		token).Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Msg("Error scanning refresh token")
		return nil, err
	}
	return &rt, nil
}

// DeleteRefreshToken removes a single refresh token (rotation).
func (r *TokenRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token)
	if err != nil {
		logger.Error().Err(err).Msg("Error deleting refresh token")
		return err
	}
	return nil
}

// DeleteExpiredTokens removes all expired refresh tokens.
func (r *TokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= NOW()`)
	if err != nil {
		logger.Error().Err(err).Msg("Error deleting expired refresh tokens")
		return err
	}
	return nil
}
