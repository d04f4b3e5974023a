package trash

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Capture(ctx context.Context, deleterID int, originalID, itemType, snapshot string) error
	List(ctx context.Context, ownerID int) ([]Entry, error)
	Purge(ctx context.Context, ownerID int, id string) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "trash_service"),
		now:  time.Now,
	}
}

// Capture records the decrypted snapshot before the live row is removed.
// Callers abort their deletion when this fails; a deletion must never
// outrun its snapshot.
func (s *Service) Capture(ctx context.Context, deleterID int, originalID, itemType, snapshot string) error {
	entry := &Entry{
		ID:         uuid.NewString(),
		OwnerID:    deleterID,
		OriginalID: originalID,
		Type:       itemType,
		Content:    snapshot,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Error("failed to capture trash entry", "original_id", originalID, "error", err)
		return fmt.Errorf("capture trash entry: %w", err)
	}

	s.log.Info("trash entry captured", "trash_id", entry.ID, "original_id", originalID, "type", itemType)
	return nil
}

func (s *Service) List(ctx context.Context, ownerID int) ([]Entry, error) {
	entries, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list trash entries: %w", err)
	}
	return entries, nil
}

// Purge removes one entry permanently.
func (s *Service) Purge(ctx context.Context, ownerID int, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("purge trash entry: %w", err)
	}

	s.log.Info("trash entry purged", "trash_id", id, "owner_id", ownerID)
	return nil
}
