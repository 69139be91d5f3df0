package auth

import "context"

// Session describes the authenticated user behind a valid token.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, error)

	// GetSession validates a token and returns the session it represents.
	GetSession(ctx context.Context, token string) (*Session, error)
}
