package trash

import "time"

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Entries []entryView `json:"entries"`
}

type entryView struct {
	ID         string    `json:"id"`
	OriginalID string    `json:"original_id"`
	Type       string    `json:"type"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type purgeInput struct {
	ID string `path:"id" doc:"Trash entry id"`
}

type purgeOutput struct {
	Body purgeResponse
}

type purgeResponse struct {
	Status string `json:"status"`
}
