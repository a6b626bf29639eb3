package request

// LoginRequest represents an operator sign-in request
type LoginRequest struct {
	Operator string `json:"operator" binding:"required"`
	PIN      string `json:"pin" binding:"required,min=4"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
