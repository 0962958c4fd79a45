package identity

// TokenRequest is the body of POST /auth/token.
type TokenRequest struct {
	Key string `json:"key" binding:"required"`
}

// TokenResponse carries a bearer token for protected routes.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
}
