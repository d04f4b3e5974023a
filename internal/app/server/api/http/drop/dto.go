package drop

import "time"

type issueOutput struct {
	Body issueResponse
}

type issueResponse struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}

type checkInput struct {
	Token string `path:"token" doc:"Drop token"`
}

type checkOutput struct {
	Body checkResponse
}

type checkResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type redeemInput struct {
	Token string `path:"token" doc:"Drop token"`
	Body  redeemRequest
}

type redeemRequest struct {
	Content string `json:"content" doc:"Message payload" minLength:"1"`
}

type redeemOutput struct {
	Body redeemResponse
}

type redeemResponse struct {
	RecipientID int    `json:"recipient_id"`
	Status      string `json:"status"`
}

type inboxOutput struct {
	Body inboxResponse
}

type inboxResponse struct {
	Messages []messageView `json:"messages"`
}

type messageView struct {
	ID        string    `json:"id"`
	SenderID  int       `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
