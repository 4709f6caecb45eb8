package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/srpnetwork/realty-api/internal/auth"
	"github.com/srpnetwork/realty-api/internal/models"
	"github.com/srpnetwork/realty-api/internal/services"
	pkgauth "github.com/srpnetwork/realty-api/pkg/auth"
	pkghttp "github.com/srpnetwork/realty-api/pkg/http"
)

// IdentityServiceInterface defines the interface for login/registration logic
type IdentityServiceInterface interface {
	Login(ctx context.Context, email, password string) (*services.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*services.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*services.AuthResponse, error)
	Logout(ctx context.Context, claims *models.TokenClaims)
	CurrentProfile(ctx context.Context, claims *models.TokenClaims) (*models.Profile, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	identity IdentityServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(identity IdentityServiceInterface) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents the request body for token refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Login handles member login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidCredentials):
			pkghttp.WriteUnauthorized(w, "Invalid email or password")
		case errors.Is(err, models.ErrProfileMissing):
			// Credentials matched but no profile exists; do not hint which
			pkghttp.WriteUnauthorized(w, "Invalid email or password")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// Register handles member registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.identity.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmailTaken):
			pkghttp.WriteConflict(w, "An account with this email already exists")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Invalid registration details")
		default:
			var pve *pkgauth.PasswordValidationError
			if errors.As(err, &pve) {
				pkghttp.WriteBadRequest(w, "Password does not meet requirements")
				return
			}
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, resp)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.identity.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			pkghttp.WriteUnauthorized(w, "Invalid or expired refresh token")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// Logout revokes the presented token. Always returns 204: logout succeeds
// locally even when the revocation write fails.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := auth.IdentityFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	h.identity.Logout(r.Context(), claims)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated member's own profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.IdentityFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	profile, err := h.identity.CurrentProfile(r.Context(), claims)
	if err != nil {
		if errors.Is(err, models.ErrProfileMissing) {
			pkghttp.WriteUnauthorized(w, "profile not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, services.ProfileToResponse(profile))
}
