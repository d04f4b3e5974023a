package trash

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"vaultis/internal/app/server/api/http/middleware/auth"
	"vaultis/internal/domain/trash"
)

type Handler struct {
	service    trash.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service trash.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.purgeOp(), h.purge)
}

type listInput struct{}

func (h *Handler) list(ctx context.Context, _ *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	entries, err := h.service.List(ctx, userID)
	if err != nil {
		h.log.Error("failed to list trash", "user_id", userID, "error", err)
		return nil, err
	}

	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, entryView{
			ID:         e.ID,
			OriginalID: e.OriginalID,
			Type:       e.Type,
			Content:    e.Content,
			CreatedAt:  e.CreatedAt,
		})
	}

	return &listOutput{Body: listResponse{Entries: views}}, nil
}

func (h *Handler) purge(ctx context.Context, input *purgeInput) (*purgeOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Purge(ctx, userID, input.ID); err != nil {
		if errors.Is(err, trash.ErrNotFound) {
			return nil, huma.Error404NotFound("trash entry not found")
		}
		h.log.Error("failed to purge trash entry", "user_id", userID, "error", err)
		return nil, err
	}

	return &purgeOutput{Body: purgeResponse{Status: "Ok"}}, nil
}
