package trash

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "trash-list",
		Method:      http.MethodGet,
		Path:        "/api/trash",
		Summary:     "List the caller's trash entries",
		Tags:        []string{"trash"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) purgeOp() huma.Operation {
	return huma.Operation{
		OperationID: "trash-purge",
		Method:      http.MethodDelete,
		Path:        "/api/trash/{id}",
		Summary:     "Remove a trash entry permanently",
		Tags:        []string{"trash"},
		Middlewares: h.middleware,
	}
}
