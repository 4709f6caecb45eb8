package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/srpnetwork/realty-api/internal/auth"
	"github.com/srpnetwork/realty-api/internal/models"
	"github.com/srpnetwork/realty-api/internal/notify"
	pkgauth "github.com/srpnetwork/realty-api/pkg/auth"
	pkglogger "github.com/srpnetwork/realty-api/pkg/logger"
)

// CredentialRepository defines the interface to the credential store
type CredentialRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Credential, error)
	Create(ctx context.Context, cred *models.Credential) (*models.Credential, error)
}

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	List(ctx context.Context, limit, offset int) ([]*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	Update(ctx context.Context, id string, profile *models.Profile) (*models.Profile, error)
	UpdateFavorites(ctx context.Context, id string, favorites []string) error
	UpdateAlerts(ctx context.Context, id string, alerts []models.PropertyAlert) error
	FindByFavorite(ctx context.Context, propertyID string) ([]*models.Profile, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// TokenRevocationRepository defines the interface for token revocation operations
type TokenRevocationRepository interface {
	RevokeToken(ctx context.Context, jti, profileID, tokenType string, expiresAt time.Time, reason string) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// Notifier is the subset of the notification dispatcher the services use.
// Dispatch is best-effort: failures are logged by callers, never propagated
// into the primary action.
type Notifier interface {
	RegistrationReceived(ctx context.Context, name, email string) error
	MemberApproved(ctx context.Context, name, email string) error
	ContactSubmission(ctx context.Context, name, email, phone, interest, message string) error
	PropertyInquiry(ctx context.Context, name, email, message, propertyTitle string) error
	FavoritePropertyUpdated(ctx context.Context, recipients []notify.Recipient, propertyID, propertyTitle string) int
}

// ProfileResponse represents a profile in HTTP responses
type ProfileResponse struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	Role      string                 `json:"role"`
	Status    string                 `json:"status"`
	Favorites []string               `json:"favorites"`
	Alerts    []models.PropertyAlert `json:"alerts"`
	CreatedAt string                 `json:"created_at"`
}

// AuthResponse is the result of login, registration and token refresh
type AuthResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	Profile      *ProfileResponse `json:"profile"`
}

// ProfileToResponse converts a stored profile to its HTTP representation
func ProfileToResponse(p *models.Profile) *ProfileResponse {
	return profileModelToResponse(p)
}

func profileModelToResponse(p *models.Profile) *ProfileResponse {
	favorites := p.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	alerts := p.Alerts
	if alerts == nil {
		alerts = []models.PropertyAlert{}
	}
	return &ProfileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Role:      p.Role,
		Status:    p.Status,
		Favorites: favorites,
		Alerts:    alerts,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

// IdentityService owns the mapping from credentials to a profile: login,
// registration, logout and resolution of the current identity.
type IdentityService struct {
	creds       CredentialRepository
	profiles    ProfileRepository
	revokeRepo  TokenRevocationRepository
	tm          *auth.TokenManager
	notifier    Notifier
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(
	creds CredentialRepository,
	profiles ProfileRepository,
	revokeRepo TokenRevocationRepository,
	tm *auth.TokenManager,
	notifier Notifier,
	logger *slog.Logger,
	auditLogger *pkglogger.AuditLogger,
) *IdentityService {
	return &IdentityService{
		creds:       creds,
		profiles:    profiles,
		revokeRepo:  revokeRepo,
		tm:          tm,
		notifier:    notifier,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// Login authenticates against the credential store, then resolves the
// associated profile. A missing profile row after successful authentication
// fails closed: no tokens are issued.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	if email = strings.ToLower(strings.TrimSpace(email)); email == "" {
		return nil, models.ErrInvalidCredentials
	}

	cred, err := s.creds.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("login failed: invalid credentials")
			s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
				EventType:     "login_failed",
				FailureReason: "invalid_credentials",
				Success:       false,
			})
			return nil, models.ErrInvalidCredentials
		}
		s.logger.Error("failed to get credential by email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := pkgauth.ComparePassword(cred.PasswordHash, password); err != nil {
		s.logger.Info("login failed: invalid credentials")
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_failed",
			ProfileID:     cred.ID,
			FailureReason: "invalid_credentials",
			Success:       false,
		})
		return nil, models.ErrInvalidCredentials
	}

	profile, err := s.profiles.GetByID(ctx, cred.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Warn("authenticated identity has no profile row", slog.String("profile_id", cred.ID))
			s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
				EventType:     "login_failed",
				ProfileID:     cred.ID,
				FailureReason: "profile_missing",
				Success:       false,
			})
			return nil, models.ErrProfileMissing
		}
		s.logger.Error("failed to get profile for login", slog.String("profile_id", cred.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	resp, err := s.issueTokens(profile)
	if err != nil {
		return nil, err
	}

	s.logger.Info("member logged in", slog.String("profile_id", profile.ID))
	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login_success",
		ProfileID: profile.ID,
		Success:   true,
	})

	return resp, nil
}

// Register creates a credential record and exactly one profile row keyed by
// the new identity id, with status pending and role member. A profile row
// that already exists for that id (retry after a partial prior failure) is
// treated as success rather than duplicated.
func (s *IdentityService) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if email == "" || name == "" {
		return nil, models.ErrBadRequest
	}

	if err := pkgauth.ValidatePassword(password); err != nil {
		return nil, err
	}

	// Check if the identity already has a credential
	_, err := s.creds.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Info("registration failed: email already registered")
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "register_failed",
			FailureReason: "email_taken",
			Success:       false,
		})
		return nil, models.ErrEmailTaken
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check existing credential", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	hashedPassword, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	cred, err := s.creds.Create(ctx, &models.Credential{
		Email:        email,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrEmailTaken
		}
		s.logger.Error("failed to create credential", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	profile, err := s.profiles.Create(ctx, &models.Profile{
		ID:     cred.ID,
		Name:   name,
		Email:  email,
		Role:   models.RoleMember,
		Status: models.StatusPending,
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			// Retry after a partial prior failure: the profile row already
			// exists for this identity, treat as success
			profile, err = s.profiles.GetByID(ctx, cred.ID)
			if err != nil {
				s.logger.Error("failed to load existing profile after conflict", slog.Any("error", err))
				return nil, models.ErrInternalServer
			}
		} else {
			s.logger.Error("failed to create profile", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
	}

	// Notification dispatch is best-effort and must never fail registration
	if err := s.notifier.RegistrationReceived(ctx, profile.Name, profile.Email); err != nil {
		s.logger.Error("registration notification failed",
			slog.String("email", pkglogger.SanitizedEmail(profile.Email)),
			slog.Any("error", err))
	}

	resp, err := s.issueTokens(profile)
	if err != nil {
		return nil, err
	}

	s.logger.Info("member registered", slog.String("profile_id", profile.ID))
	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "register_success",
		ProfileID: profile.ID,
		Success:   true,
	})

	return resp, nil
}

// Refresh generates a new token pair from a refresh token
func (s *IdentityService) Refresh(ctx context.Context, refreshTokenString string) (*AuthResponse, error) {
	if refreshTokenString = strings.TrimSpace(refreshTokenString); refreshTokenString == "" {
		return nil, models.ErrUnauthorized
	}

	claims, err := s.tm.ValidateToken(refreshTokenString)
	if err != nil {
		s.logger.Info("refresh token validation failed", slog.Any("error", err))
		return nil, models.ErrUnauthorized
	}

	if claims.Type != models.TokenTypeRefresh {
		s.logger.Warn("refresh attempt with non-refresh token", slog.String("profile_id", claims.ProfileID))
		return nil, models.ErrUnauthorized
	}

	if claims.ID != "" {
		revoked, err := s.revokeRepo.IsTokenRevoked(ctx, claims.ID)
		if err == nil && revoked {
			return nil, models.ErrUnauthorized
		}
	}

	profile, err := s.profiles.GetByID(ctx, claims.ProfileID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to get profile for token refresh", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return s.issueTokens(profile)
}

// Logout invalidates the presented token. Always succeeds from the caller's
// perspective: a failed revocation write is logged, not returned.
func (s *IdentityService) Logout(ctx context.Context, claims *models.TokenClaims) {
	if claims == nil || claims.ID == "" {
		return
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := s.revokeRepo.RevokeToken(ctx, claims.ID, claims.ProfileID, claims.Type, expiresAt, "logout"); err != nil {
		s.logger.Error("failed to revoke token on logout",
			slog.String("profile_id", claims.ProfileID),
			slog.Any("error", err))
	}

	s.logger.Info("member logged out", slog.String("profile_id", claims.ProfileID))
}

// CurrentProfile resolves the profile for an authenticated request
func (s *IdentityService) CurrentProfile(ctx context.Context, claims *models.TokenClaims) (*models.Profile, error) {
	if claims == nil {
		return nil, models.ErrUnauthorized
	}

	profile, err := s.profiles.GetByID(ctx, claims.ProfileID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrProfileMissing
		}
		s.logger.Error("failed to resolve current profile", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return profile, nil
}

func (s *IdentityService) issueTokens(profile *models.Profile) (*AuthResponse, error) {
	accessToken, err := s.tm.GenerateAccessToken(profile.ID, profile.Email)
	if err != nil {
		s.logger.Error("failed to generate access token", slog.String("profile_id", profile.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	refreshToken, err := s.tm.GenerateRefreshToken(profile.ID, profile.Email)
	if err != nil {
		s.logger.Error("failed to generate refresh token", slog.String("profile_id", profile.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Profile:      profileModelToResponse(profile),
	}, nil
}
