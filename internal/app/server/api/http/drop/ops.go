package drop

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) issueOp() huma.Operation {
	return huma.Operation{
		OperationID: "drop-issue",
		Method:      http.MethodPost,
		Path:        "/api/drops",
		Summary:     "Issue a one-time drop token",
		Tags:        []string{"drop"},
		Middlewares: h.authMW,
	}
}

func (h *Handler) checkOp() huma.Operation {
	return huma.Operation{
		OperationID: "drop-check",
		Method:      http.MethodGet,
		Path:        "/drops/{token}/check",
		Summary:     "Probe a drop token without consuming it",
		Tags:        []string{"drop"},
		Middlewares: h.publicMW,
	}
}

func (h *Handler) redeemOp() huma.Operation {
	return huma.Operation{
		OperationID: "drop-redeem",
		Method:      http.MethodPost,
		Path:        "/drops/{token}",
		Summary:     "Redeem a drop token, delivering a message to its owner",
		Tags:        []string{"drop"},
		Middlewares: h.authMW,
	}
}

func (h *Handler) inboxOp() huma.Operation {
	return huma.Operation{
		OperationID: "drop-inbox",
		Method:      http.MethodGet,
		Path:        "/api/inbox",
		Summary:     "List messages delivered to the caller",
		Tags:        []string{"drop"},
		Middlewares: h.authMW,
	}
}
