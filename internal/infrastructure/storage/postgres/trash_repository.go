package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"vaultis/internal/domain/trash"
)

type TrashRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewTrashRepository(pool *pgxpool.Pool, log *slog.Logger) *TrashRepository {
	return &TrashRepository{
		pool: pool,
		log:  log.With("component", "trash_repository"),
	}
}

func (r *TrashRepository) Create(ctx context.Context, e *trash.Entry) error {
	const query = `
		INSERT INTO trash_entries (id, owner_id, original_id, type, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.OwnerID, e.OriginalID, e.Type, e.Content, e.CreatedAt)
	if err != nil {
		r.log.Error("failed to insert trash entry", "original_id", e.OriginalID, "error", err)
		return fmt.Errorf("insert trash entry: %w", err)
	}
	return nil
}

func (r *TrashRepository) ListByOwner(ctx context.Context, ownerID int) ([]trash.Entry, error) {
	const query = `
		SELECT id, owner_id, original_id, type, content, created_at
		FROM trash_entries
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("failed to list trash entries", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("list trash entries: %w", err)
	}
	defer rows.Close()

	var entries []trash.Entry
	for rows.Next() {
		var e trash.Entry
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.OriginalID, &e.Type, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trash entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *TrashRepository) Delete(ctx context.Context, ownerID int, id string) error {
	const query = `DELETE FROM trash_entries WHERE id = $1 AND owner_id = $2`

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		r.log.Error("failed to delete trash entry", "trash_id", id, "error", err)
		return fmt.Errorf("delete trash entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return trash.ErrNotFound
	}
	return nil
}
