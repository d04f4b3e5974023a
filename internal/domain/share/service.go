package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"vaultis/internal/utils/token"
)

const publishRetries = 3

// Cipher is the field-level encryption titles and contents are written
// through.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(field string) (string, error)
}

// Resolver turns a human-readable username into an internal user id for
// share-by-name. Implementations return an error wrapping ErrGranteeNotFound
// when the name does not resolve.
type Resolver interface {
	Resolve(ctx context.Context, username string) (int, error)
}

// Capturer writes a decrypted snapshot of an item into the trash store
// before the live row is removed.
type Capturer interface {
	Capture(ctx context.Context, deleterID int, originalID, itemType, snapshot string) error
}

type Servicer interface {
	Create(ctx context.Context, ownerID int, kind Kind, title, content string) (View, error)
	Get(ctx context.Context, callerID, ownerID int, kind Kind, id string) (View, error)
	List(ctx context.Context, callerID int, kind Kind) ([]View, error)
	Update(ctx context.Context, callerID, ownerID int, kind Kind, id, title, content string) error
	AddGrantee(ctx context.Context, callerID, ownerID int, kind Kind, id, username string) (int, error)
	RemoveGrantee(ctx context.Context, callerID, ownerID int, kind Kind, id string, granteeID int) error
	Leave(ctx context.Context, callerID, ownerID int, kind Kind, id string) error
	TogglePublic(ctx context.Context, callerID, ownerID int, kind Kind, id string) (bool, string, error)
	ToggleHidden(ctx context.Context, callerID, ownerID int, kind Kind, id string) (bool, error)
	ResolvePublic(ctx context.Context, publicToken string) (View, error)
	Delete(ctx context.Context, callerID, ownerID int, kind Kind, id string) error
	SaveCollection(ctx context.Context, ownerID int, kind Kind, entries []Entry) ([]View, error)
}

// Service is the permission engine applied uniformly to every shareable
// kind. Authorization is always decided before any write is attempted.
type Service struct {
	repo     Repository
	resolver Resolver
	trash    Capturer
	cipher   Cipher
	log      *slog.Logger
	now      func() time.Time
}

func NewService(repo Repository, resolver Resolver, trash Capturer, cipher Cipher, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		trash:    trash,
		cipher:   cipher,
		log:      log.With("component", "share_service"),
		now:      time.Now,
	}
}

// access loads the item under the claimed owner and resolves the caller's
// role. ErrNotFound when the item does not exist under that owner;
// ErrPermissionDenied when it does but the caller holds no grant.
func (s *Service) access(ctx context.Context, callerID, ownerID int, kind Kind, id string) (*Item, Role, error) {
	item, err := s.repo.Get(ctx, ownerID, kind, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("get item: %w", err)
	}

	switch {
	case callerID == item.OwnerID:
		return item, RoleOwner, nil
	case item.HasGrantee(callerID):
		return item, RoleGrantee, nil
	default:
		return nil, "", ErrPermissionDenied
	}
}

func (s *Service) Create(ctx context.Context, ownerID int, kind Kind, title, content string) (View, error) {
	if title == "" {
		return View{}, fmt.Errorf("%w: empty title", ErrInvalidInput)
	}

	titleEnc, err := s.cipher.Encrypt(title)
	if err != nil {
		return View{}, fmt.Errorf("encrypt title: %w", err)
	}
	contentEnc, err := s.cipher.Encrypt(content)
	if err != nil {
		return View{}, fmt.Errorf("encrypt content: %w", err)
	}

	item := &Item{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Kind:      kind,
		Title:     titleEnc,
		Content:   contentEnc,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		s.log.Error("failed to create item", "owner_id", ownerID, "kind", kind, "error", err)
		return View{}, fmt.Errorf("create item: %w", err)
	}

	s.log.Info("item created", "item_id", item.ID, "owner_id", ownerID, "kind", kind)
	return View{
		ID:        item.ID,
		OwnerID:   ownerID,
		Kind:      kind,
		Title:     title,
		Content:   content,
		Role:      RoleOwner,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}, nil
}

func (s *Service) Get(ctx context.Context, callerID, ownerID int, kind Kind, id string) (View, error) {
	item, role, err := s.access(ctx, callerID, ownerID, kind, id)
	if err != nil {
		return View{}, err
	}
	return s.toView(item, role)
}

// List returns the caller's own items plus items shared with them, all
// decrypted.
func (s *Service) List(ctx context.Context, callerID int, kind Kind) ([]View, error) {
	own, err := s.repo.ListByOwner(ctx, callerID, kind)
	if err != nil {
		return nil, fmt.Errorf("list own items: %w", err)
	}
	shared, err := s.repo.ListSharedWith(ctx, callerID, kind)
	if err != nil {
		return nil, fmt.Errorf("list shared items: %w", err)
	}

	views := make([]View, 0, len(own)+len(shared))
	for i := range own {
		v, err := s.toView(&own[i], RoleOwner)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	for i := range shared {
		v, err := s.toView(&shared[i], RoleGrantee)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// Update rewrites title and content. Owners and grantees may both edit;
// grant metadata stays untouched.
func (s *Service) Update(ctx context.Context, callerID, ownerID int, kind Kind, id, title, content string) error {
	if title == "" {
		return fmt.Errorf("%w: empty title", ErrInvalidInput)
	}

	if _, _, err := s.access(ctx, callerID, ownerID, kind, id); err != nil {
		return err
	}

	titleEnc, err := s.cipher.Encrypt(title)
	if err != nil {
		return fmt.Errorf("encrypt title: %w", err)
	}
	contentEnc, err := s.cipher.Encrypt(content)
	if err != nil {
		return fmt.Errorf("encrypt content: %w", err)
	}

	if err := s.repo.UpdateContent(ctx, ownerID, kind, id, titleEnc, contentEnc); err != nil {
		s.log.Error("failed to update item", "item_id", id, "error", err)
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// AddGrantee shares the item with the user behind username. Owner only;
// self-sharing is always rejected.
func (s *Service) AddGrantee(ctx context.Context, callerID, ownerID int, kind Kind, id, username string) (int, error) {
	item, role, err := s.access(ctx, callerID, ownerID, kind, id)
	if err != nil {
		return 0, err
	}
	if role != RoleOwner {
		return 0, ErrPermissionDenied
	}

	granteeID, err := s.resolver.Resolve(ctx, username)
	if err != nil {
		if errors.Is(err, ErrGranteeNotFound) {
			return 0, ErrGranteeNotFound
		}
		return 0, fmt.Errorf("resolve grantee: %w", err)
	}
	if granteeID == item.OwnerID {
		return 0, ErrSelfShare
	}

	if err := s.repo.AddGrantee(ctx, ownerID, kind, id, granteeID); err != nil {
		s.log.Error("failed to add grantee", "item_id", id, "grantee_id", granteeID, "error", err)
		return 0, fmt.Errorf("add grantee: %w", err)
	}

	s.log.Info("grantee added", "item_id", id, "owner_id", ownerID, "grantee_id", granteeID)
	return granteeID, nil
}

// RemoveGrantee revokes a grant. Owner only.
func (s *Service) RemoveGrantee(ctx context.Context, callerID, ownerID int, kind Kind, id string, granteeID int) error {
	_, role, err := s.access(ctx, callerID, ownerID, kind, id)
	if err != nil {
		return err
	}
	if role != RoleOwner {
		return ErrPermissionDenied
	}

	if err := s.repo.RemoveGrantee(ctx, ownerID, kind, id, granteeID); err != nil {
		s.log.Error("failed to remove grantee", "item_id", id, "grantee_id", granteeID, "error", err)
		return fmt.Errorf("remove grantee: %w", err)
	}

	s.log.Info("grantee removed", "item_id", id, "owner_id", ownerID, "grantee_id", granteeID)
	return nil
}

// Leave removes the caller from the item's grant list. The item is looked
// up under the owner reference the request carries, because the grantee has
// no other path to the owner's collection. Leaving never touches trash.
func (s *Service) Leave(ctx context.Context, callerID, ownerID int, kind Kind, id string) error {
	_, role, err := s.access(ctx, callerID, ownerID, kind, id)
	if err != nil {
		return err
	}
	if role != RoleGrantee {
		return ErrPermissionDenied
	}

	if err := s.repo.RemoveGrantee(ctx, ownerID, kind, id, callerID); err != nil {
		s.log.Error("failed to leave item", "item_id", id, "caller_id", callerID, "error", err)
		return fmt.Errorf("leave item: %w", err)
	}

	s.log.Info("grantee left item", "item_id", id, "caller_id", callerID)
	return nil
}

// TogglePublic flips the publish flag. The public token is generated the
// first time the item is published and survives later toggles, so a link
// revoked and re-enabled points at the same URL.
func (s *Service) TogglePublic(ctx context.Context, callerID, ownerID int, kind Kind, id string) (bool, string, error) {
	item, role, err := s.access(ctx, callerID, ownerID, kind, id)
	if err != nil {
		return false, "", err
	}
	if role != RoleOwner {
		return false, "", ErrPermissionDenied
	}

	publish := !item.IsPublic

	if publish && item.PublicToken == "" {
		for attempt := 0; attempt < publishRetries; attempt++ {
			tok, err := token.New()
			if err != nil {
				return false, "", err
			}
			err = s.repo.SetPublic(ctx, ownerID, kind, id, publish, tok)
			if errors.Is(err, ErrDuplicateToken) {
				continue
			}
			if err != nil {
				return false, "", fmt.Errorf("publish item: %w", err)
			}
			s.log.Info("item published", "item_id", id, "owner_id", ownerID)
			return publish, tok, nil
		}
		return false, "", fmt.Errorf("publish item: exhausted %d attempts", publishRetries)
	}

	if err := s.repo.SetPublic(ctx, ownerID, kind, id, publish, ""); err != nil {
		return false, "", fmt.Errorf("toggle public: %w", err)
	}

	s.log.Info("item publish flag toggled", "item_id", id, "owner_id", ownerID, "is_public", publish)
	return publish, item.PublicToken, nil
}

// ToggleHidden flips the owner's display flag.
func (s *Service) ToggleHidden(ctx context.Context, callerID, ownerID int, kind Kind, id string) (bool, error) {
	item, role, err := s.access(ctx, callerID, ownerID, kind, id)
	if err != nil {
		return false, err
	}
	if role != RoleOwner {
		return false, ErrPermissionDenied
	}

	hidden := !item.IsHidden
	if err := s.repo.SetHidden(ctx, ownerID, kind, id, hidden); err != nil {
		return false, fmt.Errorf("toggle hidden: %w", err)
	}
	return hidden, nil
}

// ResolvePublic is the anonymous read path. It succeeds only while the item
// is published; a revoked link is indistinguishable from one that never
// existed.
func (s *Service) ResolvePublic(ctx context.Context, publicToken string) (View, error) {
	item, err := s.repo.GetByPublicToken(ctx, publicToken)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return View{}, ErrNotFound
		}
		return View{}, fmt.Errorf("resolve public token: %w", err)
	}
	return s.toView(item, "")
}

// Delete removes an item outright. Owner only; the decrypted snapshot is
// captured to trash before the live row goes away, and a failed capture
// aborts the deletion.
func (s *Service) Delete(ctx context.Context, callerID, ownerID int, kind Kind, id string) error {
	item, role, err := s.access(ctx, callerID, ownerID, kind, id)
	if err != nil {
		return err
	}
	if role != RoleOwner {
		return ErrPermissionDenied
	}

	if err := s.capture(ctx, callerID, item); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, ownerID, kind, id); err != nil {
		s.log.Error("failed to delete item", "item_id", id, "error", err)
		return fmt.Errorf("delete item: %w", err)
	}

	s.log.Info("item deleted", "item_id", id, "owner_id", ownerID, "kind", kind)
	return nil
}

// SaveCollection replaces the owner's whole collection of one kind. Items
// present before but absent from the submitted set are captured to trash
// and removed; without the diff a bulk save would silently lose data.
func (s *Service) SaveCollection(ctx context.Context, ownerID int, kind Kind, entries []Entry) ([]View, error) {
	existing, err := s.repo.ListByOwner(ctx, ownerID, kind)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	byID := make(map[string]*Item, len(existing))
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
	}

	submitted := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Title == "" {
			return nil, fmt.Errorf("%w: empty title", ErrInvalidInput)
		}
		if e.ID == "" {
			continue
		}
		if _, ok := byID[e.ID]; !ok {
			return nil, fmt.Errorf("%w: unknown item %s", ErrNotFound, e.ID)
		}
		submitted[e.ID] = true
	}

	// Capture and remove everything that disappeared from the set.
	for i := range existing {
		item := &existing[i]
		if submitted[item.ID] {
			continue
		}
		if err := s.capture(ctx, ownerID, item); err != nil {
			return nil, err
		}
		if err := s.repo.Delete(ctx, ownerID, kind, item.ID); err != nil {
			return nil, fmt.Errorf("delete item: %w", err)
		}
		s.log.Info("item removed by bulk save", "item_id", item.ID, "owner_id", ownerID, "kind", kind)
	}

	for _, e := range entries {
		if e.ID == "" {
			if _, err := s.Create(ctx, ownerID, kind, e.Title, e.Content); err != nil {
				return nil, err
			}
			continue
		}
		if err := s.Update(ctx, ownerID, ownerID, kind, e.ID, e.Title, e.Content); err != nil {
			return nil, err
		}
	}

	return s.List(ctx, ownerID, kind)
}

// snapshot is the decrypted trash payload for one item.
type snapshot struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Service) capture(ctx context.Context, deleterID int, item *Item) error {
	title, err := s.cipher.Decrypt(item.Title)
	if err != nil {
		s.log.Error("stored item title failed to decrypt", "item_id", item.ID, "error", err)
		return err
	}
	content, err := s.cipher.Decrypt(item.Content)
	if err != nil {
		s.log.Error("stored item content failed to decrypt", "item_id", item.ID, "error", err)
		return err
	}

	payload, err := json.Marshal(snapshot{Title: title, Content: content})
	if err != nil {
		return fmt.Errorf("marshal trash snapshot: %w", err)
	}

	if err := s.trash.Capture(ctx, deleterID, item.ID, string(item.Kind), string(payload)); err != nil {
		s.log.Error("failed to capture trash snapshot", "item_id", item.ID, "error", err)
		return fmt.Errorf("capture trash snapshot: %w", err)
	}
	return nil
}

func (s *Service) toView(item *Item, role Role) (View, error) {
	title, err := s.cipher.Decrypt(item.Title)
	if err != nil {
		s.log.Error("stored item title failed to decrypt", "item_id", item.ID, "error", err)
		return View{}, err
	}
	content, err := s.cipher.Decrypt(item.Content)
	if err != nil {
		s.log.Error("stored item content failed to decrypt", "item_id", item.ID, "error", err)
		return View{}, err
	}

	return View{
		ID:          item.ID,
		OwnerID:     item.OwnerID,
		Kind:        item.Kind,
		Title:       title,
		Content:     content,
		SharedWith:  item.SharedWith,
		IsPublic:    item.IsPublic,
		PublicToken: item.PublicToken,
		IsHidden:    item.IsHidden,
		Role:        role,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}, nil
}
