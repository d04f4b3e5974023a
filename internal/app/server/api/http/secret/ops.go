package secret

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "secret-create",
		Method:      http.MethodPost,
		Path:        "/secrets",
		Summary:     "Create a burn-after-reading secret",
		Tags:        []string{"secret"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) revealOp() huma.Operation {
	return huma.Operation{
		OperationID: "secret-reveal",
		Method:      http.MethodGet,
		Path:        "/secrets/{id}",
		Summary:     "Reveal a secret, consuming one view",
		Tags:        []string{"secret"},
		Middlewares: h.middleware,
	}
}
