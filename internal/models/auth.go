package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token types
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims are the JWT claims carried by access and refresh tokens.
type TokenClaims struct {
	Type      string `json:"type"`
	ProfileID string `json:"profile_id"`
	Email     string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
