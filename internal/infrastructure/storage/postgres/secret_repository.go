package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"vaultis/internal/domain/secret"
)

// SecretRepository persists burn-after-reading secrets. The destructive
// reveal paths are single conditional statements with RETURNING so that
// postgres itself decides the winner under concurrent access.
type SecretRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewSecretRepository(pool *pgxpool.Pool, log *slog.Logger) *SecretRepository {
	return &SecretRepository{
		pool: pool,
		log:  log.With("component", "secret_repository"),
	}
}

func (r *SecretRepository) Create(ctx context.Context, s *secret.Secret) error {
	const query = `
		INSERT INTO secrets (id, content, created_at, expires_at, view_count, max_views)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.Content, s.CreatedAt, s.ExpiresAt, s.ViewCount, s.MaxViews)
	if err != nil {
		r.log.Error("failed to insert secret", "secret_id", s.ID, "error", err)
		return fmt.Errorf("insert secret: %w", err)
	}
	return nil
}

func (r *SecretRepository) Get(ctx context.Context, id string) (*secret.Secret, error) {
	const query = `
		SELECT id, content, created_at, expires_at, view_count, max_views
		FROM secrets WHERE id = $1`

	var s secret.Secret
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&s.ID, &s.Content, &s.CreatedAt, &s.ExpiresAt, &s.ViewCount, &s.MaxViews)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, secret.ErrNotFound
		}
		r.log.Error("failed to get secret", "secret_id", id, "error", err)
		return nil, fmt.Errorf("get secret: %w", err)
	}
	return &s, nil
}

func (r *SecretRepository) ConsumeFinal(ctx context.Context, id string) (string, error) {
	const query = `
		DELETE FROM secrets
		WHERE id = $1 AND view_count + 1 >= max_views
		RETURNING content`

	var content string
	err := r.pool.QueryRow(ctx, query, id).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", secret.ErrNotFound
		}
		r.log.Error("failed to consume secret", "secret_id", id, "error", err)
		return "", fmt.Errorf("consume secret: %w", err)
	}
	return content, nil
}

func (r *SecretRepository) IncrementView(ctx context.Context, id string) (string, int, error) {
	const query = `
		UPDATE secrets
		SET view_count = view_count + 1
		WHERE id = $1 AND view_count + 1 < max_views
		RETURNING content, max_views - view_count`

	var content string
	var viewsLeft int
	err := r.pool.QueryRow(ctx, query, id).Scan(&content, &viewsLeft)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", 0, secret.ErrNotFound
		}
		r.log.Error("failed to increment secret view", "secret_id", id, "error", err)
		return "", 0, fmt.Errorf("increment secret view: %w", err)
	}
	return content, viewsLeft, nil
}

func (r *SecretRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM secrets WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete secret", "secret_id", id, "error", err)
		return fmt.Errorf("delete secret: %w", err)
	}
	if result.RowsAffected() == 0 {
		return secret.ErrNotFound
	}
	return nil
}

func (r *SecretRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM secrets WHERE expires_at IS NOT NULL AND expires_at < NOW()`)
	if err != nil {
		r.log.Error("failed to delete expired secrets", "error", err)
		return 0, fmt.Errorf("delete expired secrets: %w", err)
	}
	return result.RowsAffected(), nil
}
