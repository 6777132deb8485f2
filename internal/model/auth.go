package model

import (
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required,max=120"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type SelectRoleRequest struct {
	Role UserRole `json:"role" binding:"required,oneof=client specialist venue"`
}

type TokenResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	User         *Profile `json:"user,omitempty"`
}

// TokenClaims is the authenticated identity set on the request context.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
	Role   UserRole
}
