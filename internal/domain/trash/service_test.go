package trash

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type memRepository struct {
	mu      sync.Mutex
	entries map[string]*Entry
}

func newMemRepository() *memRepository {
	return &memRepository{entries: make(map[string]*Entry)}
}

func (r *memRepository) Create(_ context.Context, e *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *memRepository) ListByOwner(_ context.Context, ownerID int) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Entry
	for _, e := range r.entries {
		if e.OwnerID == ownerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *memRepository) Delete(_ context.Context, ownerID int, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func TestService_CaptureListPurge(t *testing.T) {
	repo := newMemRepository()
	svc := NewService(repo, slog.Default())
	ctx := context.Background()

	err := svc.Capture(ctx, 1, "item-1", "clipboard", `{"title":"t","content":"c"}`)
	require.NoError(t, err)

	entries, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "item-1", entries[0].OriginalID)
	assert.Equal(t, "clipboard", entries[0].Type)
	assert.NotEmpty(t, entries[0].ID)

	// Another user sees nothing, and cannot purge someone else's entry.
	other, err := svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, other)
	err = svc.Purge(ctx, 2, entries[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Purge(ctx, 1, entries[0].ID)
	require.NoError(t, err)

	entries, err = svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestService_Purge_Unknown(t *testing.T) {
	svc := NewService(newMemRepository(), slog.Default())

	err := svc.Purge(context.Background(), 1, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
