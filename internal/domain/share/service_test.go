package share

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vaultis/internal/app/server/crypto"
)

// memRepository keeps the owner-scoped lookup and conditional-update
// behavior of the postgres repository.
type memRepository struct {
	mu    sync.Mutex
	items map[string]*Item
}

func newMemRepository() *memRepository {
	return &memRepository{items: make(map[string]*Item)}
}

func (r *memRepository) Create(_ context.Context, item *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memRepository) find(ownerID int, kind Kind, id string) (*Item, error) {
	item, ok := r.items[id]
	if !ok || item.OwnerID != ownerID || item.Kind != kind {
		return nil, ErrNotFound
	}
	return item, nil
}

func (r *memRepository) Get(_ context.Context, ownerID int, kind Kind, id string) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, err := r.find(ownerID, kind, id)
	if err != nil {
		return nil, err
	}
	cp := *item
	cp.SharedWith = append([]int(nil), item.SharedWith...)
	return &cp, nil
}

func (r *memRepository) GetByPublicToken(_ context.Context, token string) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.PublicToken == token && token != "" && item.IsPublic {
			cp := *item
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepository) ListByOwner(_ context.Context, ownerID int, kind Kind) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Item
	for _, item := range r.items {
		if item.OwnerID == ownerID && item.Kind == kind {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *memRepository) ListSharedWith(_ context.Context, userID int, kind Kind) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Item
	for _, item := range r.items {
		if item.Kind == kind && item.HasGrantee(userID) {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *memRepository) UpdateContent(_ context.Context, ownerID int, kind Kind, id, title, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, err := r.find(ownerID, kind, id)
	if err != nil {
		return err
	}
	item.Title = title
	item.Content = content
	return nil
}

func (r *memRepository) AddGrantee(_ context.Context, ownerID int, kind Kind, id string, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, err := r.find(ownerID, kind, id)
	if err != nil {
		return err
	}
	if !item.HasGrantee(userID) {
		item.SharedWith = append(item.SharedWith, userID)
	}
	return nil
}

func (r *memRepository) RemoveGrantee(_ context.Context, ownerID int, kind Kind, id string, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, err := r.find(ownerID, kind, id)
	if err != nil {
		return err
	}
	kept := item.SharedWith[:0]
	for _, g := range item.SharedWith {
		if g != userID {
			kept = append(kept, g)
		}
	}
	item.SharedWith = kept
	return nil
}

func (r *memRepository) SetPublic(_ context.Context, ownerID int, kind Kind, id string, isPublic bool, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, err := r.find(ownerID, kind, id)
	if err != nil {
		return err
	}
	if token != "" {
		for _, other := range r.items {
			if other.ID != id && other.PublicToken == token {
				return ErrDuplicateToken
			}
		}
		item.PublicToken = token
	}
	item.IsPublic = isPublic
	return nil
}

func (r *memRepository) SetHidden(_ context.Context, ownerID int, kind Kind, id string, hidden bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, err := r.find(ownerID, kind, id)
	if err != nil {
		return err
	}
	item.IsHidden = hidden
	return nil
}

func (r *memRepository) Delete(_ context.Context, ownerID int, kind Kind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.find(ownerID, kind, id); err != nil {
		return err
	}
	delete(r.items, id)
	return nil
}

// memResolver maps usernames to ids the way the user service does.
type memResolver struct {
	users map[string]int
}

func (r *memResolver) Resolve(_ context.Context, username string) (int, error) {
	id, ok := r.users[username]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrGranteeNotFound, username)
	}
	return id, nil
}

type memCapturer struct {
	mu       sync.Mutex
	captures []capturedEntry
}

type capturedEntry struct {
	DeleterID  int
	OriginalID string
	Type       string
	Snapshot   string
}

func (c *memCapturer) Capture(_ context.Context, deleterID int, originalID, itemType, snapshot string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.captures = append(c.captures, capturedEntry{deleterID, originalID, itemType, snapshot})
	return nil
}

const (
	ownerID    = 1
	granteeID  = 2
	strangerID = 3
)

func newTestService(t *testing.T) (*Service, *memRepository, *memCapturer) {
	t.Helper()
	cipher, err := crypto.NewFieldCipher("test-secret", "test-salt")
	require.NoError(t, err)
	repo := newMemRepository()
	capturer := &memCapturer{}
	resolver := &memResolver{users: map[string]int{
		"owner":   ownerID,
		"grantee": granteeID,
	}}
	svc := NewService(repo, resolver, capturer, cipher, slog.Default())
	return svc, repo, capturer
}

func createItem(t *testing.T, svc *Service) View {
	t.Helper()
	v, err := svc.Create(context.Background(), ownerID, KindClipboard, "notes", "secret body")
	require.NoError(t, err)
	return v
}

func TestService_Create_EncryptsAtRest(t *testing.T) {
	svc, repo, _ := newTestService(t)

	v := createItem(t, svc)

	stored := repo.items[v.ID]
	assert.NotContains(t, stored.Title, "notes")
	assert.NotContains(t, stored.Content, "secret body")
	assert.Contains(t, stored.Title, ":")
}

func TestService_Get_Roles(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	v := createItem(t, svc)

	_, err := svc.AddGrantee(ctx, ownerID, ownerID, KindClipboard, v.ID, "grantee")
	require.NoError(t, err)

	got, err := svc.Get(ctx, ownerID, ownerID, KindClipboard, v.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleOwner, got.Role)
	assert.Equal(t, "secret body", got.Content)

	got, err = svc.Get(ctx, granteeID, ownerID, KindClipboard, v.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleGrantee, got.Role)

	_, err = svc.Get(ctx, strangerID, ownerID, KindClipboard, v.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestService_Get_OwnerScopedLookup(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	v := createItem(t, svc)

	// A wrong owner claim looks like a missing item, even to the real
	// owner: existence cannot be probed through arbitrary owner ids.
	_, err := svc.Get(ctx, ownerID, strangerID, KindClipboard, v.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Same for a kind mismatch.
	_, err = svc.Get(ctx, ownerID, ownerID, KindCommand, v.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_SharingLifecycle(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	v := createItem(t, svc)

	gid, err := svc.AddGrantee(ctx, ownerID, ownerID, KindClipboard, v.ID, "grantee")
	require.NoError(t, err)
	assert.Equal(t, granteeID, gid)

	// Grantee edits content.
	err = svc.Update(ctx, granteeID, ownerID, KindClipboard, v.ID, "notes v2", "edited by grantee")
	require.NoError(t, err)

	got, err := svc.Get(ctx, ownerID, ownerID, KindClipboard, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited by grantee", got.Content)

	// Grantee cannot touch grant metadata.
	_, _, err = svc.TogglePublic(ctx, granteeID, ownerID, KindClipboard, v.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = svc.AddGrantee(ctx, granteeID, ownerID, KindClipboard, v.ID, "owner")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	err = svc.RemoveGrantee(ctx, granteeID, ownerID, KindClipboard, v.ID, granteeID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Owner revokes; the grantee is locked out.
	err = svc.RemoveGrantee(ctx, ownerID, ownerID, KindClipboard, v.ID, granteeID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, granteeID, ownerID, KindClipboard, v.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	err = svc.Update(ctx, granteeID, ownerID, KindClipboard, v.ID, "x", "y")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestService_AddGrantee_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	v := createItem(t, svc)

	_, err := svc.AddGrantee(ctx, ownerID, ownerID, KindClipboard, v.ID, "nobody")
	assert.ErrorIs(t, err, ErrGranteeNotFound)

	_, err = svc.AddGrantee(ctx, ownerID, ownerID, KindClipboard, v.ID, "owner")
	assert.ErrorIs(t, err, ErrSelfShare)
}

func TestService_Leave(t *testing.T) {
	svc, _, capturer := newTestService(t)
	ctx := context.Background()
	v := createItem(t, svc)

	_, err := svc.AddGrantee(ctx, ownerID, ownerID, KindClipboard, v.ID, "grantee")
	require.NoError(t, err)

	// The owner cannot "leave" their own item.
	err = svc.Leave(ctx, ownerID, ownerID, KindClipboard, v.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = svc.Leave(ctx, granteeID, ownerID, KindClipboard, v.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, granteeID, ownerID, KindClipboard, v.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Leaving is not a deletion: no trash entry.
	assert.Empty(t, capturer.captures)
}

func TestService_PublicToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	v := createItem(t, svc)

	isPublic, tok, err := svc.TogglePublic(ctx, ownerID, ownerID, KindClipboard, v.ID)
	require.NoError(t, err)
	assert.True(t, isPublic)
	assert.Len(t, tok, 32)

	// Anonymous resolution works while published.
	pub, err := svc.ResolvePublic(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "secret body", pub.Content)
	assert.Empty(t, pub.Role)

	// Revoked: the same token resolves to nothing, not to "forbidden".
	isPublic, tok2, err := svc.TogglePublic(ctx, ownerID, ownerID, KindClipboard, v.ID)
	require.NoError(t, err)
	assert.False(t, isPublic)
	assert.Equal(t, tok, tok2)

	_, err = svc.ResolvePublic(ctx, tok)
	assert.ErrorIs(t, err, ErrNotFound)

	// Re-enabling reuses the same token.
	isPublic, tok3, err := svc.TogglePublic(ctx, ownerID, ownerID, KindClipboard, v.ID)
	require.NoError(t, err)
	assert.True(t, isPublic)
	assert.Equal(t, tok, tok3)

	_, err = svc.ResolvePublic(ctx, tok)
	require.NoError(t, err)
}

func TestService_ResolvePublic_Unknown(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ResolvePublic(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete_CapturesSnapshot(t *testing.T) {
	svc, repo, capturer := newTestService(t)
	ctx := context.Background()
	v := createItem(t, svc)

	// Only the owner deletes.
	err := svc.Delete(ctx, strangerID, ownerID, KindClipboard, v.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = svc.Delete(ctx, ownerID, ownerID, KindClipboard, v.ID)
	require.NoError(t, err)

	assert.Empty(t, repo.items)
	require.Len(t, capturer.captures, 1)

	captured := capturer.captures[0]
	assert.Equal(t, ownerID, captured.DeleterID)
	assert.Equal(t, v.ID, captured.OriginalID)
	assert.Equal(t, string(KindClipboard), captured.Type)

	var snap snapshot
	require.NoError(t, json.Unmarshal([]byte(captured.Snapshot), &snap))
	assert.Equal(t, "notes", snap.Title)
	assert.Equal(t, "secret body", snap.Content)
}

func TestService_SaveCollection_DiffsToTrash(t *testing.T) {
	svc, _, capturer := newTestService(t)
	ctx := context.Background()

	keep, err := svc.Create(ctx, ownerID, KindTodoCategory, "keep", "kept content")
	require.NoError(t, err)
	drop, err := svc.Create(ctx, ownerID, KindTodoCategory, "drop", "doomed content")
	require.NoError(t, err)

	views, err := svc.SaveCollection(ctx, ownerID, KindTodoCategory, []Entry{
		{ID: keep.ID, Title: "keep renamed", Content: "kept content v2"},
		{Title: "brand new", Content: "fresh"},
	})
	require.NoError(t, err)
	require.Len(t, views, 2)

	titles := map[string]bool{}
	for _, v := range views {
		titles[v.Title] = true
		assert.NotEqual(t, drop.ID, v.ID)
	}
	assert.True(t, titles["keep renamed"])
	assert.True(t, titles["brand new"])

	// Exactly the disappeared item was captured, with decrypted content.
	require.Len(t, capturer.captures, 1)
	var snap snapshot
	require.NoError(t, json.Unmarshal([]byte(capturer.captures[0].Snapshot), &snap))
	assert.Equal(t, "doomed content", snap.Content)
	assert.Equal(t, drop.ID, capturer.captures[0].OriginalID)
}

func TestService_SaveCollection_UnknownID(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SaveCollection(context.Background(), ownerID, KindTodoCategory, []Entry{
		{ID: "not-mine", Title: "x", Content: "y"},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_List_OwnAndShared(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	own := createItem(t, svc)

	other, err := svc.Create(ctx, strangerID, KindClipboard, "theirs", "shared to owner")
	require.NoError(t, err)
	// strangerID shares with ownerID directly through the repo path the
	// resolver would take.
	_, err = svc.AddGrantee(ctx, strangerID, strangerID, KindClipboard, other.ID, "owner")
	require.NoError(t, err)

	views, err := svc.List(ctx, ownerID, KindClipboard)
	require.NoError(t, err)
	require.Len(t, views, 2)

	roles := map[string]Role{}
	for _, v := range views {
		roles[v.ID] = v.Role
	}
	assert.Equal(t, RoleOwner, roles[own.ID])
	assert.Equal(t, RoleGrantee, roles[other.ID])
}

func TestService_ToggleHidden(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	v := createItem(t, svc)

	hidden, err := svc.ToggleHidden(ctx, ownerID, ownerID, KindClipboard, v.ID)
	require.NoError(t, err)
	assert.True(t, hidden)

	hidden, err = svc.ToggleHidden(ctx, ownerID, ownerID, KindClipboard, v.ID)
	require.NoError(t, err)
	assert.False(t, hidden)
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"clipboard", "todo_category", "link_category", "command", "command_category"} {
		k, err := ParseKind(valid)
		require.NoError(t, err)
		assert.Equal(t, Kind(valid), k)
	}

	_, err := ParseKind("diary")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
