package session

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type memRepository struct {
	mu       sync.Mutex
	sessions map[string]sessionRow
}

type sessionRow struct {
	userID    int
	expiresAt time.Time
}

func (r *memRepository) Create(_ context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[tokenHash] = sessionRow{userID: userID, expiresAt: expiresAt}
	return nil
}

func (r *memRepository) Validate(_ context.Context, tokenHash string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.sessions[tokenHash]
	if !ok || time.Now().After(row.expiresAt) {
		return 0, errors.New("invalid session")
	}
	return row.userID, nil
}

func TestService_CreateAndValidate(t *testing.T) {
	repo := &memRepository{sessions: make(map[string]sessionRow)}
	svc := NewService(repo, slog.Default())
	ctx := context.Background()

	token, err := svc.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)

	_, err = svc.Validate(ctx, "bogus-token")
	assert.Error(t, err)
}

func TestService_Create_StoresHashNotToken(t *testing.T) {
	repo := &memRepository{sessions: make(map[string]sessionRow)}
	svc := NewService(repo, slog.Default())

	token, err := svc.Create(context.Background(), 42)
	require.NoError(t, err)

	// The raw token never appears in storage, only its hash.
	hash := sha256.Sum256([]byte(token))
	_, hashStored := repo.sessions[hex.EncodeToString(hash[:])]
	assert.True(t, hashStored)

	raw, err := base64.URLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}
