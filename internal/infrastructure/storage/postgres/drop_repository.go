package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"vaultis/internal/domain/drop"
)

type DropTokenRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewDropTokenRepository(pool *pgxpool.Pool, log *slog.Logger) *DropTokenRepository {
	return &DropTokenRepository{
		pool: pool,
		log:  log.With("component", "drop_token_repository"),
	}
}

func (r *DropTokenRepository) Create(ctx context.Context, t *drop.Token) error {
	const query = `
		INSERT INTO drop_tokens (token, user_id, is_used, created_at)
		VALUES ($1, $2, FALSE, $3)`

	_, err := r.pool.Exec(ctx, query, t.Token, t.UserID, t.CreatedAt)
	if err != nil {
		if uniqueViolation(err) {
			return drop.ErrDuplicateToken
		}
		r.log.Error("failed to insert drop token", "user_id", t.UserID, "error", err)
		return fmt.Errorf("insert drop token: %w", err)
	}
	return nil
}

func (r *DropTokenRepository) Get(ctx context.Context, token string) (*drop.Token, error) {
	const query = `
		SELECT token, user_id, is_used, created_at
		FROM drop_tokens WHERE token = $1`

	var t drop.Token
	err := r.pool.QueryRow(ctx, query, token).
		Scan(&t.Token, &t.UserID, &t.IsUsed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, drop.ErrNotFound
		}
		r.log.Error("failed to get drop token", "error", err)
		return nil, fmt.Errorf("get drop token: %w", err)
	}
	return &t, nil
}

// MarkUsed is the atomic test-and-set: the conditional update matches at
// most once per token lifetime, so a racing redeemer sees ErrNotFound.
func (r *DropTokenRepository) MarkUsed(ctx context.Context, token string) (int, error) {
	const query = `
		UPDATE drop_tokens
		SET is_used = TRUE
		WHERE token = $1 AND is_used = FALSE
		RETURNING user_id`

	var userID int
	err := r.pool.QueryRow(ctx, query, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, drop.ErrNotFound
		}
		r.log.Error("failed to mark drop token used", "error", err)
		return 0, fmt.Errorf("mark drop token used: %w", err)
	}
	return userID, nil
}

type DropMessageRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewDropMessageRepository(pool *pgxpool.Pool, log *slog.Logger) *DropMessageRepository {
	return &DropMessageRepository{
		pool: pool,
		log:  log.With("component", "drop_message_repository"),
	}
}

func (r *DropMessageRepository) Create(ctx context.Context, m *drop.Message) error {
	const query = `
		INSERT INTO drop_messages (id, recipient_id, sender_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, m.ID, m.RecipientID, m.SenderID, m.Content, m.CreatedAt)
	if err != nil {
		r.log.Error("failed to insert drop message", "recipient_id", m.RecipientID, "error", err)
		return fmt.Errorf("insert drop message: %w", err)
	}
	return nil
}

func (r *DropMessageRepository) ListByRecipient(ctx context.Context, recipientID int) ([]drop.Message, error) {
	const query = `
		SELECT id, recipient_id, sender_id, content, created_at
		FROM drop_messages
		WHERE recipient_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, recipientID)
	if err != nil {
		r.log.Error("failed to list drop messages", "recipient_id", recipientID, "error", err)
		return nil, fmt.Errorf("list drop messages: %w", err)
	}
	defer rows.Close()

	var messages []drop.Message
	for rows.Next() {
		var m drop.Message
		if err := rows.Scan(&m.ID, &m.RecipientID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan drop message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
