package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	// Optional role gate: when set, accounts with a different role are
	// rejected even with correct credentials.
	RequiredRole *Role `json:"required_role,omitempty"`
}

// LoginResponse returns the issued token and the stripped profile.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	User        UserProfile `json:"user"`
	IssuedAt    time.Time   `json:"issued_at"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}
