package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/srpnetwork/realty-api/internal/models"
	pkghttp "github.com/srpnetwork/realty-api/pkg/http"
)

// contextKey is a custom type for context keys
type contextKey string

const (
	// IdentityContextKey is the key for storing token claims in context
	IdentityContextKey contextKey = "identity"
)

// TokenRevocationChecker defines the interface for checking if tokens are revoked
type TokenRevocationChecker interface {
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// ProfileFetcher is the repository subset needed for role and status gating.
// Gating always re-fetches the stored profile rather than trusting claims.
type ProfileFetcher interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
}

// Authenticate validates bearer tokens and injects claims into the request context
func Authenticate(tm *TokenManager, revocationChecker TokenRevocationChecker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				pkghttp.WriteUnauthorized(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				pkghttp.WriteUnauthorized(w, "invalid authorization header format")
				return
			}

			claims, err := tm.ValidateToken(parts[1])
			if err != nil {
				pkghttp.WriteUnauthorized(w, "invalid or expired token")
				return
			}

			// Refresh tokens are only accepted by the refresh endpoint
			if claims.Type == models.TokenTypeRefresh {
				pkghttp.WriteUnauthorized(w, "refresh tokens cannot be used for API access")
				return
			}

			if revocationChecker != nil && claims.ID != "" {
				revoked, err := revocationChecker.IsTokenRevoked(r.Context(), claims.ID)
				// Revocation-check failure fails open; invalid tokens already failed closed above
				if err == nil && revoked {
					pkghttp.WriteUnauthorized(w, "token has been revoked")
					return
				}
			}

			ctx := context.WithValue(r.Context(), IdentityContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthenticateOptional injects claims when a valid bearer token is present
// but lets anonymous requests through. Used on public endpoints that attach
// extra context for logged-in members (property inquiries).
func AuthenticateOptional(tm *TokenManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := tm.ValidateToken(parts[1]); err == nil && claims.Type != models.TokenTypeRefresh {
					r = r.WithContext(context.WithValue(r.Context(), IdentityContextKey, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin enforces that the authenticated profile has the admin role,
// verified against the store rather than a client-supplied claim.
func RequireAdmin(profiles ProfileFetcher) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := IdentityFromContext(r)
			if claims == nil {
				pkghttp.WriteUnauthorized(w, "unauthorized")
				return
			}

			profile, err := profiles.GetByID(r.Context(), claims.ProfileID)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					pkghttp.WriteUnauthorized(w, "profile not found")
					return
				}
				pkghttp.WriteInternalError(w, "internal server error")
				return
			}

			if profile.Role != models.RoleAdmin {
				pkghttp.WriteForbidden(w, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireActiveMember blocks profiles that have not been approved yet.
// Pending members may authenticate but only see the awaiting-approval view;
// member-only surfaces (favorites, alerts, inquiry history) need active status.
func RequireActiveMember(profiles ProfileFetcher) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := IdentityFromContext(r)
			if claims == nil {
				pkghttp.WriteUnauthorized(w, "unauthorized")
				return
			}

			profile, err := profiles.GetByID(r.Context(), claims.ProfileID)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					pkghttp.WriteUnauthorized(w, "profile not found")
					return
				}
				pkghttp.WriteInternalError(w, "internal server error")
				return
			}

			switch profile.Status {
			case models.StatusActive:
				next.ServeHTTP(w, r)
			case models.StatusPending:
				pkghttp.WriteForbidden(w, "membership awaiting approval")
			default:
				pkghttp.WriteForbidden(w, "membership not active")
			}
		})
	}
}

// IdentityFromContext extracts token claims from the request context
func IdentityFromContext(r *http.Request) *models.TokenClaims {
	claims, ok := r.Context().Value(IdentityContextKey).(*models.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}
