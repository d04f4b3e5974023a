package drop

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"vaultis/internal/app/server/api/http/middleware/auth"
	"vaultis/internal/domain/drop"
)

type Handler struct {
	service  drop.Servicer
	log      *slog.Logger
	authMW   huma.Middlewares
	publicMW huma.Middlewares
}

func NewHandler(service drop.Servicer, log *slog.Logger, authMW, publicMW huma.Middlewares) *Handler {
	return &Handler{
		service:  service,
		log:      log,
		authMW:   authMW,
		publicMW: publicMW,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.issueOp(), h.issue)
	huma.Register(api, h.checkOp(), h.check)
	huma.Register(api, h.redeemOp(), h.redeem)
	huma.Register(api, h.inboxOp(), h.inbox)
}

type issueInput struct{}

func (h *Handler) issue(ctx context.Context, _ *issueInput) (*issueOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	token, err := h.service.Issue(ctx, userID)
	if err != nil {
		h.log.Error("failed to issue drop token", "user_id", userID, "error", err)
		return nil, err
	}

	return &issueOutput{
		Body: issueResponse{Token: token, Status: "Ok"},
	}, nil
}

func (h *Handler) check(ctx context.Context, input *checkInput) (*checkOutput, error) {
	validity, err := h.service.CheckValid(ctx, input.Token)
	if err != nil {
		h.log.Error("failed to check drop token", "error", err)
		return nil, err
	}

	return &checkOutput{
		Body: checkResponse{Valid: validity.Valid, Reason: validity.Reason},
	}, nil
}

func (h *Handler) redeem(ctx context.Context, input *redeemInput) (*redeemOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	recipientID, err := h.service.Redeem(ctx, input.Token, userID, input.Body.Content)
	if err != nil {
		switch {
		case errors.Is(err, drop.ErrNotFound):
			return nil, huma.Error404NotFound("token not found")
		case errors.Is(err, drop.ErrGone):
			return nil, huma.Error410Gone("token already used")
		case errors.Is(err, drop.ErrSelfDelivery):
			return nil, huma.Error422UnprocessableEntity("cannot deliver to yourself")
		case errors.Is(err, drop.ErrInvalidInput):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		default:
			h.log.Error("failed to redeem drop token", "user_id", userID, "error", err)
			return nil, err
		}
	}

	return &redeemOutput{
		Body: redeemResponse{RecipientID: recipientID, Status: "Ok"},
	}, nil
}

type inboxInput struct{}

func (h *Handler) inbox(ctx context.Context, _ *inboxInput) (*inboxOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	messages, err := h.service.Inbox(ctx, userID)
	if err != nil {
		h.log.Error("failed to list inbox", "user_id", userID, "error", err)
		return nil, err
	}

	views := make([]messageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, messageView{
			ID:        m.ID,
			SenderID:  m.SenderID,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}

	return &inboxOutput{
		Body: inboxResponse{Messages: views},
	}, nil
}
