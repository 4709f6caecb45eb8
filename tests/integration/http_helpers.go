package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/srpnetwork/realty-api/internal/auth"
	"github.com/srpnetwork/realty-api/internal/config"
	"github.com/srpnetwork/realty-api/internal/database"
	"github.com/srpnetwork/realty-api/internal/handlers"
	middlewareCustom "github.com/srpnetwork/realty-api/internal/middleware"
	"github.com/srpnetwork/realty-api/internal/notify"
	"github.com/srpnetwork/realty-api/internal/routes"
	"github.com/srpnetwork/realty-api/internal/services"
	pkglogger "github.com/srpnetwork/realty-api/pkg/logger"
)

// SentEmail represents a captured email message
type SentEmail struct {
	To      string
	Subject string
	Text    string
}

// CapturingEmailSender records outbound emails for test assertions
type CapturingEmailSender struct {
	SentEmails []SentEmail
	mu         sync.Mutex
}

// Send records the email instead of dispatching it
func (c *CapturingEmailSender) Send(ctx context.Context, email notify.Email) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.SentEmails = append(c.SentEmails, SentEmail{
		To:      email.To,
		Subject: email.Subject,
		Text:    email.Text,
	})
	return nil
}

// EmailsTo returns every captured email addressed to the given recipient
func (c *CapturingEmailSender) EmailsTo(address string) []SentEmail {
	c.mu.Lock()
	defer c.mu.Unlock()

	var matched []SentEmail
	for _, e := range c.SentEmails {
		if e.To == address {
			matched = append(matched, e)
		}
	}
	return matched
}

// Reset clears the captured emails
func (c *CapturingEmailSender) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SentEmails = nil
}

// TestServer wraps httptest.Server with database and all dependencies
type TestServer struct {
	Server *httptest.Server
	DB     *database.DB
	Emails *CapturingEmailSender
	Config *config.Config

	logger *slog.Logger
}

// NewTestServer initializes a complete HTTP server with real database + captured email
func NewTestServer(db *database.DB) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret-32-characters-long-for-testing",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
			CleanupInterval:    1 * time.Hour,
		},
		Email: config.EmailConfig{
			AWSRegion:    "",
			FromAddress:  "noreply@test.local",
			AdminAddress: "admin@test.local",
		},
		Server: config.ServerConfig{
			Port:           "0",
			Env:            "test",
			AllowedOrigins: []string{},
			PublicBaseURL:  "http://localhost:3000",
		},
	}

	credRepo, profileRepo, propertyRepo, inquiryRepo, blogRepo, revokeRepo := InitializeRepositories(db)

	emails := &CapturingEmailSender{}
	dispatcher := notify.NewDispatcher(emails, cfg.Email.AdminAddress, cfg.Server.PublicBaseURL, logger)

	tokenManager := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)

	auditLogger := pkglogger.NewAuditLogger(logger)

	identityService := services.NewIdentityService(credRepo, profileRepo, revokeRepo, tokenManager, dispatcher, logger, auditLogger)
	membershipService := services.NewMembershipService(profileRepo, dispatcher, logger, auditLogger)
	favoritesService := services.NewFavoritesService(profileRepo, propertyRepo, dispatcher, logger)
	propertyService := services.NewPropertyService(propertyRepo, logger)
	inquiryService := services.NewInquiryService(inquiryRepo, propertyRepo, dispatcher, logger)
	blogService := services.NewBlogService(blogRepo, logger)

	authHandler := handlers.NewAuthHandler(identityService)
	propertyHandler := handlers.NewPropertyHandler(propertyService, favoritesService, identityService)
	favoritesHandler := handlers.NewFavoritesHandler(favoritesService)
	inquiryHandler := handlers.NewInquiryHandler(inquiryService)
	blogHandler := handlers.NewBlogHandler(blogService, identityService)
	adminHandler := handlers.NewAdminHandler(membershipService, favoritesService, dispatcher, identityService)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(
		r,
		authHandler,
		propertyHandler,
		favoritesHandler,
		inquiryHandler,
		blogHandler,
		adminHandler,
		tokenManager,
		profileRepo,
		revokeRepo,
	)

	server := httptest.NewServer(r)

	return &TestServer{
		Server: server,
		DB:     db,
		Emails: emails,
		Config: cfg,
		logger: logger,
	}
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	if ts.Server != nil {
		ts.Server.Close()
	}
}

// Request makes an HTTP request to the test server
func (ts *TestServer) Request(method, path string, body interface{}, headers map[string]string) (*http.Response, error) {
	url := ts.Server.URL + path

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return http.DefaultClient.Do(req)
}

// RequestWithAuth makes an authenticated HTTP request with access token
func (ts *TestServer) RequestWithAuth(method, path, accessToken string, body interface{}) (*http.Response, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + accessToken,
	}
	return ts.Request(method, path, body, headers)
}

// ParseJSONResponse parses JSON response body into target struct
func ParseJSONResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}

// ExtractTokensFromResponse extracts access/refresh tokens from auth response
func ExtractTokensFromResponse(resp *http.Response) (accessToken, refreshToken string, err error) {
	defer resp.Body.Close()

	var authResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		return "", "", err
	}

	if access, ok := authResp["access_token"].(string); ok {
		accessToken = access
	}
	if refresh, ok := authResp["refresh_token"].(string); ok {
		refreshToken = refresh
	}

	return accessToken, refreshToken, nil
}

// GetErrorMessage extracts error message from error response
func GetErrorMessage(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	var errResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return "", err
	}
	if msg, ok := errResp["message"].(string); ok {
		return msg, nil
	}
	return "", nil
}
