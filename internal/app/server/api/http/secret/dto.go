package secret

type createInput struct {
	Body createRequest
}

type createRequest struct {
	Content          string `json:"content" doc:"Secret payload" minLength:"1"`
	MaxViews         int    `json:"max_views,omitempty" doc:"Times the secret may be revealed before it burns" minimum:"1" maximum:"100"`
	ExpiresInMinutes int    `json:"expires_in_minutes,omitempty" doc:"Optional lifetime in minutes" minimum:"1"`
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type revealInput struct {
	ID string `path:"id" doc:"Secret id"`
}

type revealOutput struct {
	Body revealResponse
}

type revealResponse struct {
	Content   string `json:"content"`
	ViewsLeft int    `json:"views_left"`
	Status    string `json:"status"`
}
