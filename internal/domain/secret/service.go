package secret

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const maxMaxViews = 100

// Cipher is the field-level encryption the vault writes through.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(field string) (string, error)
}

type Servicer interface {
	Create(ctx context.Context, content string, maxViews int, expiresIn time.Duration) (string, error)
	Reveal(ctx context.Context, id string) (RevealResult, error)
	Sweep(ctx context.Context) (int64, error)
}

type Service struct {
	repo   Repository
	cipher Cipher
	log    *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, cipher Cipher, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cipher: cipher,
		log:    log.With("component", "secret_service"),
		now:    time.Now,
	}
}

// Create stores a new secret with content encrypted at rest. expiresIn <= 0
// means the secret never expires on its own.
func (s *Service) Create(ctx context.Context, content string, maxViews int, expiresIn time.Duration) (string, error) {
	if content == "" {
		return "", fmt.Errorf("%w: empty content", ErrInvalidInput)
	}
	if maxViews < 1 || maxViews > maxMaxViews {
		return "", fmt.Errorf("%w: max views must be between 1 and %d", ErrInvalidInput, maxMaxViews)
	}

	encrypted, err := s.cipher.Encrypt(content)
	if err != nil {
		return "", fmt.Errorf("encrypt secret: %w", err)
	}

	sec := &Secret{
		ID:        uuid.NewString(),
		Content:   encrypted,
		CreatedAt: s.now(),
		MaxViews:  maxViews,
	}
	if expiresIn > 0 {
		expiresAt := s.now().Add(expiresIn)
		sec.ExpiresAt = &expiresAt
	}

	if err := s.repo.Create(ctx, sec); err != nil {
		s.log.Error("failed to create secret", "error", err)
		return "", fmt.Errorf("create secret: %w", err)
	}

	s.log.Info("secret created", "secret_id", sec.ID, "max_views", maxViews)
	return sec.ID, nil
}

// Reveal returns the decrypted content and consumes one view. The reveal
// that reaches MaxViews destroys the record inside the same storage
// statement that yields the content, so under concurrent reveals of a
// one-view secret exactly one caller wins and the rest see ErrNotFound.
func (s *Service) Reveal(ctx context.Context, id string) (RevealResult, error) {
	sec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RevealResult{}, ErrNotFound
		}
		return RevealResult{}, fmt.Errorf("get secret: %w", err)
	}

	if sec.ExpiresAt != nil && s.now().After(*sec.ExpiresAt) {
		if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			s.log.Error("failed to delete expired secret", "secret_id", id, "error", err)
		}
		return RevealResult{}, ErrExpired
	}

	// Content never changes after creation, so a corrupt field can be
	// detected here, before any destructive statement runs.
	if _, err := s.cipher.Decrypt(sec.Content); err != nil {
		s.log.Error("stored secret failed to decrypt", "secret_id", id, "error", err)
		return RevealResult{}, err
	}

	if sec.ViewCount+1 >= sec.MaxViews {
		return s.consumeFinal(ctx, id)
	}

	encrypted, viewsLeft, err := s.repo.IncrementView(ctx, id)
	if errors.Is(err, ErrNotFound) {
		// A racing reveal moved the counter to the terminal boundary
		// between our read and the update; this view terminates instead.
		return s.consumeFinal(ctx, id)
	}
	if err != nil {
		return RevealResult{}, fmt.Errorf("increment view: %w", err)
	}

	content, err := s.cipher.Decrypt(encrypted)
	if err != nil {
		s.log.Error("stored secret failed to decrypt", "secret_id", id, "error", err)
		return RevealResult{}, err
	}

	return RevealResult{Content: content, ViewsLeft: viewsLeft}, nil
}

func (s *Service) consumeFinal(ctx context.Context, id string) (RevealResult, error) {
	encrypted, err := s.repo.ConsumeFinal(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RevealResult{}, ErrNotFound
		}
		return RevealResult{}, fmt.Errorf("consume secret: %w", err)
	}

	content, err := s.cipher.Decrypt(encrypted)
	if err != nil {
		s.log.Error("stored secret failed to decrypt", "secret_id", id, "error", err)
		return RevealResult{}, err
	}

	s.log.Info("secret consumed", "secret_id", id)
	return RevealResult{Content: content, ViewsLeft: 0}, nil
}

// Sweep removes expired secrets in bulk. Optional hygiene; lazy expiry at
// reveal time is what correctness rests on.
func (s *Service) Sweep(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("sweep secrets: %w", err)
	}
	if removed > 0 {
		s.log.Info("expired secrets removed", "count", removed)
	}
	return removed, nil
}
