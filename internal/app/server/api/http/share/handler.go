package share

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"vaultis/internal/app/server/api/http/middleware/auth"
	"vaultis/internal/domain/share"
)

type Handler struct {
	service  share.Servicer
	log      *slog.Logger
	authMW   huma.Middlewares
	publicMW huma.Middlewares
}

func NewHandler(service share.Servicer, log *slog.Logger, authMW, publicMW huma.Middlewares) *Handler {
	return &Handler{
		service:  service,
		log:      log,
		authMW:   authMW,
		publicMW: publicMW,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.saveCollectionOp(), h.saveCollection)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.addGranteeOp(), h.addGrantee)
	huma.Register(api, h.removeGranteeOp(), h.removeGrantee)
	huma.Register(api, h.leaveOp(), h.leave)
	huma.Register(api, h.togglePublicOp(), h.togglePublic)
	huma.Register(api, h.toggleHiddenOp(), h.toggleHidden)
	huma.Register(api, h.resolvePublicOp(), h.resolvePublic)
}

// mapErr translates domain errors into HTTP responses shared by most item
// endpoints. Unknown errors pass through to huma's 500 handling.
func (h *Handler) mapErr(err error) error {
	switch {
	case errors.Is(err, share.ErrNotFound):
		return huma.Error404NotFound("item not found")
	case errors.Is(err, share.ErrPermissionDenied):
		return huma.Error403Forbidden("permission denied")
	case errors.Is(err, share.ErrGranteeNotFound):
		return huma.Error404NotFound("user not found")
	case errors.Is(err, share.ErrSelfShare):
		return huma.Error422UnprocessableEntity("cannot share with yourself")
	case errors.Is(err, share.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		h.log.Error("item operation failed", "error", err)
		return err
	}
}

func parseKind(raw string) (share.Kind, error) {
	kind, err := share.ParseKind(raw)
	if err != nil {
		return "", huma.Error422UnprocessableEntity(err.Error())
	}
	return kind, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	view, err := h.service.Create(ctx, userID, kind, input.Body.Title, input.Body.Content)
	if err != nil {
		return nil, h.mapErr(err)
	}

	return &createOutput{Body: toItemView(view)}, nil
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	views, err := h.service.List(ctx, userID, kind)
	if err != nil {
		return nil, h.mapErr(err)
	}

	items := make([]itemView, 0, len(views))
	for _, v := range views {
		items = append(items, toItemView(v))
	}

	return &listOutput{Body: listResponse{Items: items}}, nil
}

func (h *Handler) saveCollection(ctx context.Context, input *saveCollectionInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	entries := make([]share.Entry, 0, len(input.Body.Items))
	for _, e := range input.Body.Items {
		entries = append(entries, share.Entry{ID: e.ID, Title: e.Title, Content: e.Content})
	}

	views, err := h.service.SaveCollection(ctx, userID, kind, entries)
	if err != nil {
		return nil, h.mapErr(err)
	}

	items := make([]itemView, 0, len(views))
	for _, v := range views {
		items = append(items, toItemView(v))
	}

	return &listOutput{Body: listResponse{Items: items}}, nil
}

func (h *Handler) get(ctx context.Context, input *itemPathInput) (*getOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	view, err := h.service.Get(ctx, userID, input.OwnerID, kind, input.ID)
	if err != nil {
		return nil, h.mapErr(err)
	}

	return &getOutput{Body: toItemView(view)}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*statusOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	if err := h.service.Update(ctx, userID, input.OwnerID, kind, input.ID, input.Body.Title, input.Body.Content); err != nil {
		return nil, h.mapErr(err)
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}

func (h *Handler) delete(ctx context.Context, input *itemPathInput) (*statusOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	if err := h.service.Delete(ctx, userID, input.OwnerID, kind, input.ID); err != nil {
		return nil, h.mapErr(err)
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}

func (h *Handler) addGrantee(ctx context.Context, input *addGranteeInput) (*addGranteeOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	granteeID, err := h.service.AddGrantee(ctx, userID, input.OwnerID, kind, input.ID, input.Body.Login)
	if err != nil {
		return nil, h.mapErr(err)
	}

	return &addGranteeOutput{
		Body: addGranteeResponse{GranteeID: granteeID, Status: "Ok"},
	}, nil
}

func (h *Handler) removeGrantee(ctx context.Context, input *removeGranteeInput) (*statusOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	if err := h.service.RemoveGrantee(ctx, userID, input.OwnerID, kind, input.ID, input.GranteeID); err != nil {
		return nil, h.mapErr(err)
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}

func (h *Handler) leave(ctx context.Context, input *itemPathInput) (*statusOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	if err := h.service.Leave(ctx, userID, input.OwnerID, kind, input.ID); err != nil {
		return nil, h.mapErr(err)
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}

func (h *Handler) togglePublic(ctx context.Context, input *itemPathInput) (*togglePublicOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	isPublic, token, err := h.service.TogglePublic(ctx, userID, input.OwnerID, kind, input.ID)
	if err != nil {
		return nil, h.mapErr(err)
	}

	return &togglePublicOutput{
		Body: togglePublicResponse{IsPublic: isPublic, PublicToken: token},
	}, nil
}

func (h *Handler) toggleHidden(ctx context.Context, input *itemPathInput) (*toggleHiddenOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	isHidden, err := h.service.ToggleHidden(ctx, userID, input.OwnerID, kind, input.ID)
	if err != nil {
		return nil, h.mapErr(err)
	}

	return &toggleHiddenOutput{
		Body: toggleHiddenResponse{IsHidden: isHidden},
	}, nil
}

func (h *Handler) resolvePublic(ctx context.Context, input *publicInput) (*publicOutput, error) {
	view, err := h.service.ResolvePublic(ctx, input.Token)
	if err != nil {
		if errors.Is(err, share.ErrNotFound) {
			return nil, huma.Error404NotFound("not found")
		}
		h.log.Error("failed to resolve public token", "error", err)
		return nil, err
	}

	return &publicOutput{
		Body: publicResponse{Kind: string(view.Kind), Title: view.Title, Content: view.Content},
	}, nil
}
