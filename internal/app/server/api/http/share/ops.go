package share

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "item-create",
		Method:      http.MethodPost,
		Path:        "/api/items/{kind}",
		Summary:     "Create an item",
		Tags:        []string{"item"},
		Middlewares: h.authMW,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "item-list",
		Method:      http.MethodGet,
		Path:        "/api/items/{kind}",
		Summary:     "List own and shared items of one kind",
		Tags:        []string{"item"},
		Middlewares: h.authMW,
	}
}

func (h *Handler) saveCollectionOp() huma.Operation {
	return huma.Operation{
		OperationID: "item-save-collection",
		Method:      http.MethodPut,
		Path:        "/api/items/{kind}",
		Summary:     "Replace the caller's collection of one kind",
		Tags:        []string{"item"},
		Middlewares: h.authMW,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "item-get",
		Method:      http.MethodGet,
		Path:        "/api/items/{kind}/{ownerID}/{id}",
		Summary:     "Fetch a single item",
		Tags:        []string{"item"},
		Middlewares: h.authMW,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "item-update",
		Method:      http.MethodPatch,
		Path:        "/api/items/{kind}/{ownerID}/{id}",
		Summary:     "Update an item's title and content",
		Tags:        []string{"item"},
		Middlewares: h.authMW,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "item-delete",
		Method:      http.MethodDelete,
		Path:        "/api/items/{kind}/{ownerID}/{id}",
		Summary:     "Delete an item, capturing it into the owner's trash",
		Tags:        []string{"item"},
		Middlewares: h.authMW,
	}
}

func (h *Handler) addGranteeOp() huma.Operation {
	return huma.Operation{
		OperationID: "item-grant-add",
		Method:      http.MethodPost,
		Path:        "/api/items/{kind}/{ownerID}/{id}/grants",
		Summary:     "Share an item with another user by login",
		Tags:        []string{"item"},
		Middlewares: h.authMW,
	}
}

func (h *Handler) removeGranteeOp() huma.Operation {
	return huma.Operation{
		OperationID: "item-grant-remove",
		Method:      http.MethodDelete,
		Path:        "/api/items/{kind}/{ownerID}/{id}/grants/{granteeID}",
		Summary:     "Revoke another user's access to an item",
		Tags:        []string{"item"},
		Middlewares: h.authMW,
	}
}

func (h *Handler) leaveOp() huma.Operation {
	return huma.Operation{
		OperationID: "item-leave",
		Method:      http.MethodPost,
		Path:        "/api/items/{kind}/{ownerID}/{id}/leave",
		Summary:     "Give up access to an item shared with the caller",
		Tags:        []string{"item"},
		Middlewares: h.authMW,
	}
}

func (h *Handler) togglePublicOp() huma.Operation {
	return huma.Operation{
		OperationID: "item-toggle-public",
		Method:      http.MethodPost,
		Path:        "/api/items/{kind}/{ownerID}/{id}/public",
		Summary:     "Toggle anonymous link access for an item",
		Tags:        []string{"item"},
		Middlewares: h.authMW,
	}
}

func (h *Handler) toggleHiddenOp() huma.Operation {
	return huma.Operation{
		OperationID: "item-toggle-hidden",
		Method:      http.MethodPost,
		Path:        "/api/items/{kind}/{ownerID}/{id}/hidden",
		Summary:     "Toggle an item's hidden flag",
		Tags:        []string{"item"},
		Middlewares: h.authMW,
	}
}

func (h *Handler) resolvePublicOp() huma.Operation {
	return huma.Operation{
		OperationID: "item-public-resolve",
		Method:      http.MethodGet,
		Path:        "/public/{token}",
		Summary:     "Resolve a public share token",
		Tags:        []string{"item"},
		Middlewares: h.publicMW,
	}
}
