package user

type registerInput struct {
	Body credentials
}

type loginInput struct {
	Body credentials
}

type credentials struct {
	Login    string `json:"login" doc:"User login" minLength:"3" maxLength:"32"`
	Password string `json:"password" doc:"User password" minLength:"8"`
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     int    `json:"id,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Status string `json:"status"`
	Token  string `json:"token,omitempty"`
	Error  string `json:"error,omitempty"`
}
