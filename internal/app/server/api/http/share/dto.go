package share

import (
	"time"

	"vaultis/internal/domain/share"
)

type itemView struct {
	ID          string    `json:"id"`
	OwnerID     int       `json:"owner_id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	SharedWith  []int     `json:"shared_with,omitempty"`
	IsPublic    bool      `json:"is_public"`
	PublicToken string    `json:"public_token,omitempty"`
	IsHidden    bool      `json:"is_hidden"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toItemView(v share.View) itemView {
	return itemView{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Kind:        string(v.Kind),
		Title:       v.Title,
		Content:     v.Content,
		SharedWith:  v.SharedWith,
		IsPublic:    v.IsPublic,
		PublicToken: v.PublicToken,
		IsHidden:    v.IsHidden,
		Role:        string(v.Role),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

type createInput struct {
	Kind string `path:"kind" doc:"Item kind"`
	Body createRequest
}

type createRequest struct {
	Title   string `json:"title" doc:"Item title" minLength:"1"`
	Content string `json:"content" doc:"Item payload"`
}

type createOutput struct {
	Body itemView
}

type listInput struct {
	Kind string `path:"kind" doc:"Item kind"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Items []itemView `json:"items"`
}

type saveCollectionInput struct {
	Kind string `path:"kind" doc:"Item kind"`
	Body saveCollectionRequest
}

type saveCollectionRequest struct {
	Items []entryRequest `json:"items"`
}

type entryRequest struct {
	ID      string `json:"id,omitempty" doc:"Existing item id, empty for a new item"`
	Title   string `json:"title" minLength:"1"`
	Content string `json:"content"`
}

type itemPathInput struct {
	Kind    string `path:"kind" doc:"Item kind"`
	OwnerID int    `path:"ownerID" doc:"Item owner"`
	ID      string `path:"id" doc:"Item id"`
}

type getOutput struct {
	Body itemView
}

type updateInput struct {
	Kind    string `path:"kind"`
	OwnerID int    `path:"ownerID"`
	ID      string `path:"id"`
	Body    updateRequest
}

type updateRequest struct {
	Title   string `json:"title" minLength:"1"`
	Content string `json:"content"`
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
}

type addGranteeInput struct {
	Kind    string `path:"kind"`
	OwnerID int    `path:"ownerID"`
	ID      string `path:"id"`
	Body    addGranteeRequest
}

type addGranteeRequest struct {
	Login string `json:"login" doc:"Login of the user to share with" minLength:"1"`
}

type addGranteeOutput struct {
	Body addGranteeResponse
}

type addGranteeResponse struct {
	GranteeID int    `json:"grantee_id"`
	Status    string `json:"status"`
}

type removeGranteeInput struct {
	Kind      string `path:"kind"`
	OwnerID   int    `path:"ownerID"`
	ID        string `path:"id"`
	GranteeID int    `path:"granteeID"`
}

type togglePublicOutput struct {
	Body togglePublicResponse
}

type togglePublicResponse struct {
	IsPublic    bool   `json:"is_public"`
	PublicToken string `json:"public_token,omitempty"`
}

type toggleHiddenOutput struct {
	Body toggleHiddenResponse
}

type toggleHiddenResponse struct {
	IsHidden bool `json:"is_hidden"`
}

type publicInput struct {
	Token string `path:"token" doc:"Public share token"`
}

type publicOutput struct {
	Body publicResponse
}

type publicResponse struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
