package handlers_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srpnetwork/realty-api/internal/handlers"
	"github.com/srpnetwork/realty-api/internal/models"
	"github.com/srpnetwork/realty-api/internal/services"
	pkgauth "github.com/srpnetwork/realty-api/pkg/auth"
	pkghttp "github.com/srpnetwork/realty-api/pkg/http"
)

func TestLogin_Success(t *testing.T) {
	mockIdentity := &handlers.MockIdentityService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			return &services.AuthResponse{
				AccessToken:  "access_token_123",
				RefreshToken: "refresh_token_123",
			}, nil
		},
	}

	handler := handlers.NewAuthHandler(mockIdentity)
	req := handlers.NewTestRequest(t, "POST", "/auth/login", handlers.LoginRequest{
		Email:    "member@example.com",
		Password: "password123",
	})

	w := httptest.NewRecorder()
	handler.Login(w, req)

	var resp services.AuthResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "access_token_123", resp.AccessToken)
	assert.Equal(t, "refresh_token_123", resp.RefreshToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mockIdentity := &handlers.MockIdentityService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			return nil, models.ErrInvalidCredentials
		},
	}

	handler := handlers.NewAuthHandler(mockIdentity)
	req := handlers.NewTestRequest(t, "POST", "/auth/login", handlers.LoginRequest{
		Email:    "member@example.com",
		Password: "wrongpassword",
	})

	w := httptest.NewRecorder()
	handler.Login(w, req)

	handlers.AssertErrorResponse(t, w, 401, "unauthorized")
}

func TestLogin_MissingProfile_SameMessageAsBadPassword(t *testing.T) {
	// Credentials matched but no profile row exists. The response must not
	// reveal which half failed.
	mockIdentity := &handlers.MockIdentityService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			return nil, models.ErrProfileMissing
		},
	}

	handler := handlers.NewAuthHandler(mockIdentity)
	req := handlers.NewTestRequest(t, "POST", "/auth/login", handlers.LoginRequest{
		Email:    "orphan@example.com",
		Password: "password123",
	})

	w := httptest.NewRecorder()
	handler.Login(w, req)

	handlers.AssertErrorResponse(t, w, 401, "unauthorized")

	var resp pkghttp.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Invalid email or password", resp.Message)
}

func TestLogin_MissingEmail(t *testing.T) {
	handler := handlers.NewAuthHandler(&handlers.MockIdentityService{})
	req := handlers.NewTestRequest(t, "POST", "/auth/login", handlers.LoginRequest{
		Password: "password123",
	})

	w := httptest.NewRecorder()
	handler.Login(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
}

func TestRegister_Success(t *testing.T) {
	mockIdentity := &handlers.MockIdentityService{
		RegisterFunc: func(ctx context.Context, name, email, password string) (*services.AuthResponse, error) {
			return &services.AuthResponse{
				AccessToken:  "access_token_new",
				RefreshToken: "refresh_token_new",
				Profile: &services.ProfileResponse{
					ID:     "profile-1",
					Name:   name,
					Email:  email,
					Role:   models.RoleMember,
					Status: models.StatusPending,
				},
			}, nil
		},
	}

	handler := handlers.NewAuthHandler(mockIdentity)
	req := handlers.NewTestRequest(t, "POST", "/auth/register", handlers.RegisterRequest{
		Name:     "New Member",
		Email:    "newmember@example.com",
		Password: "securePassword123",
	})

	w := httptest.NewRecorder()
	handler.Register(w, req)

	var resp services.AuthResponse
	handlers.AssertJSONResponse(t, w, 201, &resp)
	assert.Equal(t, "access_token_new", resp.AccessToken)
	assert.Equal(t, models.StatusPending, resp.Profile.Status)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	mockIdentity := &handlers.MockIdentityService{
		RegisterFunc: func(ctx context.Context, name, email, password string) (*services.AuthResponse, error) {
			return nil, models.ErrEmailTaken
		},
	}

	handler := handlers.NewAuthHandler(mockIdentity)
	req := handlers.NewTestRequest(t, "POST", "/auth/register", handlers.RegisterRequest{
		Name:     "Member",
		Email:    "existing@example.com",
		Password: "securePassword123",
	})

	w := httptest.NewRecorder()
	handler.Register(w, req)

	handlers.AssertErrorResponse(t, w, 409, "conflict")
}

func TestRegister_WeakPassword_GenericMessage(t *testing.T) {
	mockIdentity := &handlers.MockIdentityService{
		RegisterFunc: func(ctx context.Context, name, email, password string) (*services.AuthResponse, error) {
			return nil, &pkgauth.PasswordValidationError{Errors: []string{"must contain at least one digit"}}
		},
	}

	handler := handlers.NewAuthHandler(mockIdentity)
	req := handlers.NewTestRequest(t, "POST", "/auth/register", handlers.RegisterRequest{
		Name:     "Member",
		Email:    "member@example.com",
		Password: "weakpassword",
	})

	w := httptest.NewRecorder()
	handler.Register(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")

	// Specific requirements stay server-side
	var resp pkghttp.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Password does not meet requirements", resp.Message)
}

func TestRefresh_Success(t *testing.T) {
	mockIdentity := &handlers.MockIdentityService{
		RefreshFunc: func(ctx context.Context, refreshToken string) (*services.AuthResponse, error) {
			return &services.AuthResponse{
				AccessToken:  "new_access_token",
				RefreshToken: "new_refresh_token",
			}, nil
		},
	}

	handler := handlers.NewAuthHandler(mockIdentity)
	req := handlers.NewTestRequest(t, "POST", "/auth/refresh", handlers.RefreshRequest{
		RefreshToken: "refresh_token_123",
	})

	w := httptest.NewRecorder()
	handler.Refresh(w, req)

	var resp services.AuthResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "new_access_token", resp.AccessToken)
}

func TestRefresh_InvalidToken(t *testing.T) {
	mockIdentity := &handlers.MockIdentityService{
		RefreshFunc: func(ctx context.Context, refreshToken string) (*services.AuthResponse, error) {
			return nil, models.ErrUnauthorized
		},
	}

	handler := handlers.NewAuthHandler(mockIdentity)
	req := handlers.NewTestRequest(t, "POST", "/auth/refresh", handlers.RefreshRequest{
		RefreshToken: "expired_token",
	})

	w := httptest.NewRecorder()
	handler.Refresh(w, req)

	handlers.AssertErrorResponse(t, w, 401, "unauthorized")
}

func TestLogout_Success(t *testing.T) {
	logoutCalled := false
	mockIdentity := &handlers.MockIdentityService{
		LogoutFunc: func(ctx context.Context, claims *models.TokenClaims) {
			logoutCalled = true
		},
	}

	handler := handlers.NewAuthHandler(mockIdentity)
	req := handlers.NewTestRequest(t, "POST", "/auth/logout", nil)
	req = handlers.WithIdentityContext(req, "profile-1", "member@example.com")

	w := httptest.NewRecorder()
	handler.Logout(w, req)

	assert.Equal(t, 204, w.Code)
	assert.True(t, logoutCalled)
}

func TestLogout_NoClaims(t *testing.T) {
	handler := handlers.NewAuthHandler(&handlers.MockIdentityService{})
	req := handlers.NewTestRequest(t, "POST", "/auth/logout", nil)

	w := httptest.NewRecorder()
	handler.Logout(w, req)

	handlers.AssertErrorResponse(t, w, 401, "unauthorized")
}

func TestMe_Success(t *testing.T) {
	mockIdentity := &handlers.MockIdentityService{
		CurrentProfileFunc: func(ctx context.Context, claims *models.TokenClaims) (*models.Profile, error) {
			return services.NewTestProfile("profile-1", "member@example.com", "Member One"), nil
		},
	}

	handler := handlers.NewAuthHandler(mockIdentity)
	req := handlers.NewTestRequest(t, "GET", "/auth/me", nil)
	req = handlers.WithIdentityContext(req, "profile-1", "member@example.com")

	w := httptest.NewRecorder()
	handler.Me(w, req)

	var resp services.ProfileResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "profile-1", resp.ID)
	assert.Equal(t, models.StatusActive, resp.Status)
}

func TestMe_ProfileMissing(t *testing.T) {
	mockIdentity := &handlers.MockIdentityService{
		CurrentProfileFunc: func(ctx context.Context, claims *models.TokenClaims) (*models.Profile, error) {
			return nil, models.ErrProfileMissing
		},
	}

	handler := handlers.NewAuthHandler(mockIdentity)
	req := handlers.NewTestRequest(t, "GET", "/auth/me", nil)
	req = handlers.WithIdentityContext(req, "gone", "gone@example.com")

	w := httptest.NewRecorder()
	handler.Me(w, req)

	handlers.AssertErrorResponse(t, w, 401, "unauthorized")
}
