package drop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"vaultis/internal/utils/token"
)

const issueRetries = 3

// Cipher is the field-level encryption delivered payloads are written through.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(field string) (string, error)
}

type Servicer interface {
	Issue(ctx context.Context, ownerID int) (string, error)
	CheckValid(ctx context.Context, tok string) (Validity, error)
	Redeem(ctx context.Context, tok string, senderID int, content string) (int, error)
	Inbox(ctx context.Context, recipientID int) ([]Message, error)
}

type Service struct {
	tokens   TokenRepository
	messages MessageRepository
	cipher   Cipher
	log      *slog.Logger
	now      func() time.Time
}

func NewService(tokens TokenRepository, messages MessageRepository, cipher Cipher, log *slog.Logger) *Service {
	return &Service{
		tokens:   tokens,
		messages: messages,
		cipher:   cipher,
		log:      log.With("component", "drop_service"),
		now:      time.Now,
	}
}

// Issue creates a single-use token that resolves back to ownerID. A token
// collision is vanishingly unlikely but the unique constraint is still
// honored with a short retry loop.
func (s *Service) Issue(ctx context.Context, ownerID int) (string, error) {
	for attempt := 0; attempt < issueRetries; attempt++ {
		tok, err := token.New()
		if err != nil {
			return "", err
		}

		err = s.tokens.Create(ctx, &Token{
			Token:     tok,
			UserID:    ownerID,
			CreatedAt: s.now(),
		})
		if errors.Is(err, ErrDuplicateToken) {
			continue
		}
		if err != nil {
			s.log.Error("failed to create drop token", "user_id", ownerID, "error", err)
			return "", fmt.Errorf("create drop token: %w", err)
		}

		s.log.Info("drop token issued", "user_id", ownerID)
		return tok, nil
	}
	return "", fmt.Errorf("create drop token: exhausted %d attempts", issueRetries)
}

// CheckValid reports whether the token can still be redeemed. Strictly
// read-only: an impatient client polling this endpoint must never consume
// its own token. It deliberately distinguishes "already used" from "never
// existed" so a sender can tell whether their link was picked up.
func (s *Service) CheckValid(ctx context.Context, tok string) (Validity, error) {
	t, err := s.tokens.Get(ctx, tok)
	if errors.Is(err, ErrNotFound) {
		return Validity{Valid: false, Reason: ReasonNotFound}, nil
	}
	if err != nil {
		return Validity{}, fmt.Errorf("get drop token: %w", err)
	}
	if t.IsUsed {
		return Validity{Valid: false, Reason: ReasonGone}, nil
	}
	return Validity{Valid: true}, nil
}

// Redeem consumes the token and delivers content to the resolved recipient.
// Marking used and delivering are one logical unit: if delivery fails after
// the atomic flip the token stays consumed and the error surfaces (fail
// closed, no rollback).
func (s *Service) Redeem(ctx context.Context, tok string, senderID int, content string) (int, error) {
	if content == "" {
		return 0, fmt.Errorf("%w: empty content", ErrInvalidInput)
	}

	t, err := s.tokens.Get(ctx, tok)
	if errors.Is(err, ErrNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get drop token: %w", err)
	}
	if t.IsUsed {
		return 0, ErrGone
	}

	// Rejected before the token is consumed.
	if t.UserID == senderID {
		return 0, ErrSelfDelivery
	}

	recipientID, err := s.tokens.MarkUsed(ctx, tok)
	if errors.Is(err, ErrNotFound) {
		// The row exists but the conditional update matched nothing:
		// a racing redeemer won.
		return 0, ErrGone
	}
	if err != nil {
		return 0, fmt.Errorf("mark drop token used: %w", err)
	}

	encrypted, err := s.cipher.Encrypt(content)
	if err != nil {
		s.log.Error("drop delivery failed after token consumed", "token_user", recipientID, "error", err)
		return 0, fmt.Errorf("encrypt drop payload: %w", err)
	}

	msg := &Message{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		SenderID:    senderID,
		Content:     encrypted,
		CreatedAt:   s.now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		s.log.Error("drop delivery failed after token consumed", "recipient_id", recipientID, "error", err)
		return 0, fmt.Errorf("deliver drop payload: %w", err)
	}

	s.log.Info("drop redeemed", "recipient_id", recipientID, "sender_id", senderID)
	return recipientID, nil
}

// Inbox lists delivered drops for a recipient with content decrypted.
func (s *Service) Inbox(ctx context.Context, recipientID int) ([]Message, error) {
	msgs, err := s.messages.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("list drop messages: %w", err)
	}

	for i := range msgs {
		plain, err := s.cipher.Decrypt(msgs[i].Content)
		if err != nil {
			s.log.Error("stored drop message failed to decrypt", "message_id", msgs[i].ID, "error", err)
			return nil, err
		}
		msgs[i].Content = plain
	}
	return msgs, nil
}
