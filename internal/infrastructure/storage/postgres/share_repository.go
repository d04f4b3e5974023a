package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"vaultis/internal/domain/share"
)

// ShareRepository persists shareable items. Every lookup is scoped by the
// claimed owner id and kind in the WHERE clause; grant-list changes are
// single statements over the shared_with array so concurrent grant and
// revoke calls serialize in postgres.
type ShareRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewShareRepository(pool *pgxpool.Pool, log *slog.Logger) *ShareRepository {
	return &ShareRepository{
		pool: pool,
		log:  log.With("component", "share_repository"),
	}
}

const itemColumns = `
	id, owner_id, kind, title, content, shared_with,
	is_public, COALESCE(public_token, ''), is_hidden, created_at, updated_at`

func (r *ShareRepository) Create(ctx context.Context, item *share.Item) error {
	const query = `
		INSERT INTO items (id, owner_id, kind, title, content, shared_with,
		                   is_public, public_token, is_hidden, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, '{}', FALSE, NULL, FALSE, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.OwnerID, item.Kind, item.Title, item.Content,
		item.CreatedAt, item.UpdatedAt)
	if err != nil {
		r.log.Error("failed to insert item", "item_id", item.ID, "error", err)
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ShareRepository) Get(ctx context.Context, ownerID int, kind share.Kind, id string) (*share.Item, error) {
	query := `SELECT` + itemColumns + `
		FROM items WHERE id = $1 AND owner_id = $2 AND kind = $3`

	item, err := r.scanItem(r.pool.QueryRow(ctx, query, id, ownerID, kind))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, share.ErrNotFound
		}
		r.log.Error("failed to get item", "item_id", id, "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (r *ShareRepository) GetByPublicToken(ctx context.Context, token string) (*share.Item, error) {
	// is_public is part of the match: a revoked token resolves to nothing.
	query := `SELECT` + itemColumns + `
		FROM items WHERE public_token = $1 AND is_public = TRUE`

	item, err := r.scanItem(r.pool.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, share.ErrNotFound
		}
		r.log.Error("failed to resolve public token", "error", err)
		return nil, fmt.Errorf("resolve public token: %w", err)
	}
	return item, nil
}

func (r *ShareRepository) ListByOwner(ctx context.Context, ownerID int, kind share.Kind) ([]share.Item, error) {
	query := `SELECT` + itemColumns + `
		FROM items WHERE owner_id = $1 AND kind = $2 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, ownerID, kind)
	if err != nil {
		r.log.Error("failed to list items", "owner_id", ownerID, "kind", kind, "error", err)
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	return r.scanItems(rows)
}

func (r *ShareRepository) ListSharedWith(ctx context.Context, userID int, kind share.Kind) ([]share.Item, error) {
	query := `SELECT` + itemColumns + `
		FROM items WHERE $1 = ANY(shared_with) AND kind = $2 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID, kind)
	if err != nil {
		r.log.Error("failed to list shared items", "user_id", userID, "kind", kind, "error", err)
		return nil, fmt.Errorf("list shared items: %w", err)
	}
	defer rows.Close()

	return r.scanItems(rows)
}

func (r *ShareRepository) UpdateContent(ctx context.Context, ownerID int, kind share.Kind, id, title, content string) error {
	const query = `
		UPDATE items
		SET title = $4, content = $5, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND kind = $3`

	result, err := r.pool.Exec(ctx, query, id, ownerID, kind, title, content)
	if err != nil {
		r.log.Error("failed to update item", "item_id", id, "error", err)
		return fmt.Errorf("update item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return share.ErrNotFound
	}
	return nil
}

// AddGrantee appends inside a single statement; adding an existing grantee
// is a no-op, not an error.
func (r *ShareRepository) AddGrantee(ctx context.Context, ownerID int, kind share.Kind, id string, userID int) error {
	const query = `
		UPDATE items
		SET shared_with = CASE
			WHEN $4 = ANY(shared_with) THEN shared_with
			ELSE array_append(shared_with, $4)
		END,
		updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND kind = $3`

	result, err := r.pool.Exec(ctx, query, id, ownerID, kind, userID)
	if err != nil {
		r.log.Error("failed to add grantee", "item_id", id, "grantee_id", userID, "error", err)
		return fmt.Errorf("add grantee: %w", err)
	}
	if result.RowsAffected() == 0 {
		return share.ErrNotFound
	}
	return nil
}

func (r *ShareRepository) RemoveGrantee(ctx context.Context, ownerID int, kind share.Kind, id string, userID int) error {
	const query = `
		UPDATE items
		SET shared_with = array_remove(shared_with, $4), updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND kind = $3`

	result, err := r.pool.Exec(ctx, query, id, ownerID, kind, userID)
	if err != nil {
		r.log.Error("failed to remove grantee", "item_id", id, "grantee_id", userID, "error", err)
		return fmt.Errorf("remove grantee: %w", err)
	}
	if result.RowsAffected() == 0 {
		return share.ErrNotFound
	}
	return nil
}

func (r *ShareRepository) SetPublic(ctx context.Context, ownerID int, kind share.Kind, id string, isPublic bool, token string) error {
	var result pgconn.CommandTag
	var err error

	if token != "" {
		const query = `
			UPDATE items
			SET is_public = $4, public_token = $5, updated_at = NOW()
			WHERE id = $1 AND owner_id = $2 AND kind = $3`
		result, err = r.pool.Exec(ctx, query, id, ownerID, kind, isPublic, token)
	} else {
		const query = `
			UPDATE items
			SET is_public = $4, updated_at = NOW()
			WHERE id = $1 AND owner_id = $2 AND kind = $3`
		result, err = r.pool.Exec(ctx, query, id, ownerID, kind, isPublic)
	}

	if err != nil {
		if uniqueViolation(err) {
			return share.ErrDuplicateToken
		}
		r.log.Error("failed to set public flag", "item_id", id, "error", err)
		return fmt.Errorf("set public flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return share.ErrNotFound
	}
	return nil
}

func (r *ShareRepository) SetHidden(ctx context.Context, ownerID int, kind share.Kind, id string, hidden bool) error {
	const query = `
		UPDATE items
		SET is_hidden = $4, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND kind = $3`

	result, err := r.pool.Exec(ctx, query, id, ownerID, kind, hidden)
	if err != nil {
		r.log.Error("failed to set hidden flag", "item_id", id, "error", err)
		return fmt.Errorf("set hidden flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return share.ErrNotFound
	}
	return nil
}

func (r *ShareRepository) Delete(ctx context.Context, ownerID int, kind share.Kind, id string) error {
	const query = `DELETE FROM items WHERE id = $1 AND owner_id = $2 AND kind = $3`

	result, err := r.pool.Exec(ctx, query, id, ownerID, kind)
	if err != nil {
		r.log.Error("failed to delete item", "item_id", id, "error", err)
		return fmt.Errorf("delete item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return share.ErrNotFound
	}
	return nil
}

func (r *ShareRepository) scanItem(row pgx.Row) (*share.Item, error) {
	var item share.Item
	err := row.Scan(&item.ID, &item.OwnerID, &item.Kind, &item.Title, &item.Content,
		&item.SharedWith, &item.IsPublic, &item.PublicToken, &item.IsHidden,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ShareRepository) scanItems(rows pgx.Rows) ([]share.Item, error) {
	var items []share.Item
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
