package secret

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"vaultis/internal/domain/secret"
)

type Handler struct {
	service    secret.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service secret.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.revealOp(), h.reveal)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	var expiresIn time.Duration
	if input.Body.ExpiresInMinutes > 0 {
		expiresIn = time.Duration(input.Body.ExpiresInMinutes) * time.Minute
	}

	maxViews := input.Body.MaxViews
	if maxViews == 0 {
		maxViews = 1
	}

	id, err := h.service.Create(ctx, input.Body.Content, maxViews, expiresIn)
	if err != nil {
		if errors.Is(err, secret.ErrInvalidInput) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		h.log.Error("failed to create secret", "error", err)
		return nil, err
	}

	return &createOutput{
		Body: createResponse{ID: id, Status: "Ok"},
	}, nil
}

func (h *Handler) reveal(ctx context.Context, input *revealInput) (*revealOutput, error) {
	res, err := h.service.Reveal(ctx, input.ID)
	if err != nil {
		switch {
		case errors.Is(err, secret.ErrNotFound):
			return nil, huma.Error404NotFound("secret not found")
		case errors.Is(err, secret.ErrExpired):
			return nil, huma.Error410Gone("secret expired")
		default:
			h.log.Error("failed to reveal secret", "secret_id", input.ID, "error", err)
			return nil, err
		}
	}

	return &revealOutput{
		Body: revealResponse{Content: res.Content, ViewsLeft: res.ViewsLeft, Status: "Ok"},
	}, nil
}
