package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/srpnetwork/realty-api/internal/auth"
	"github.com/srpnetwork/realty-api/internal/listing"
	"github.com/srpnetwork/realty-api/internal/models"
	"github.com/srpnetwork/realty-api/internal/services"
	pkghttp "github.com/srpnetwork/realty-api/pkg/http"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithIdentityContext adds token claims to the request context for testing
// authenticated endpoints
func WithIdentityContext(req *http.Request, profileID, email string) *http.Request {
	claims := &models.TokenClaims{
		Type:      models.TokenTypeAccess,
		ProfileID: profileID,
		Email:     email,
	}
	ctx := context.WithValue(req.Context(), auth.IdentityContextKey, claims)
	return req.WithContext(ctx)
}

// WithChiRouteContext adds chi URL parameters to the request context so
// handlers can read them without a full router
func WithChiRouteContext(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// MockIdentityService implements IdentityServiceInterface for testing
type MockIdentityService struct {
	LoginFunc          func(ctx context.Context, email, password string) (*services.AuthResponse, error)
	RegisterFunc       func(ctx context.Context, name, email, password string) (*services.AuthResponse, error)
	RefreshFunc        func(ctx context.Context, refreshToken string) (*services.AuthResponse, error)
	LogoutFunc         func(ctx context.Context, claims *models.TokenClaims)
	CurrentProfileFunc func(ctx context.Context, claims *models.TokenClaims) (*models.Profile, error)
}

func (m *MockIdentityService) Login(ctx context.Context, email, password string) (*services.AuthResponse, error) {
	if m.LoginFunc == nil {
		return nil, models.ErrInvalidCredentials
	}
	return m.LoginFunc(ctx, email, password)
}

func (m *MockIdentityService) Register(ctx context.Context, name, email, password string) (*services.AuthResponse, error) {
	if m.RegisterFunc == nil {
		return nil, models.ErrEmailTaken
	}
	return m.RegisterFunc(ctx, name, email, password)
}

func (m *MockIdentityService) Refresh(ctx context.Context, refreshToken string) (*services.AuthResponse, error) {
	if m.RefreshFunc == nil {
		return nil, models.ErrUnauthorized
	}
	return m.RefreshFunc(ctx, refreshToken)
}

func (m *MockIdentityService) Logout(ctx context.Context, claims *models.TokenClaims) {
	if m.LogoutFunc != nil {
		m.LogoutFunc(ctx, claims)
	}
}

func (m *MockIdentityService) CurrentProfile(ctx context.Context, claims *models.TokenClaims) (*models.Profile, error) {
	if m.CurrentProfileFunc == nil {
		return nil, models.ErrProfileMissing
	}
	return m.CurrentProfileFunc(ctx, claims)
}

// IdentityForProfile returns a mock identity service that resolves every
// request to the given profile. Handler tests use it to satisfy actor lookup.
func IdentityForProfile(profile *models.Profile) *MockIdentityService {
	return &MockIdentityService{
		CurrentProfileFunc: func(ctx context.Context, claims *models.TokenClaims) (*models.Profile, error) {
			return profile, nil
		},
	}
}

// MockMembershipService implements MembershipServiceInterface for testing
type MockMembershipService struct {
	ListMembersFunc  func(ctx context.Context, actor *models.Profile, limit, offset int) ([]*services.ProfileResponse, error)
	PendingCountFunc func(ctx context.Context, actor *models.Profile) (int64, error)
	ApproveFunc      func(ctx context.Context, actor *models.Profile, memberEmail string) (*services.ProfileResponse, error)
	SetRoleFunc      func(ctx context.Context, actor *models.Profile, profileID, role string) (*services.ProfileResponse, error)
}

func (m *MockMembershipService) ListMembers(ctx context.Context, actor *models.Profile, limit, offset int) ([]*services.ProfileResponse, error) {
	if m.ListMembersFunc == nil {
		return []*services.ProfileResponse{}, nil
	}
	return m.ListMembersFunc(ctx, actor, limit, offset)
}

func (m *MockMembershipService) PendingCount(ctx context.Context, actor *models.Profile) (int64, error) {
	if m.PendingCountFunc == nil {
		return 0, nil
	}
	return m.PendingCountFunc(ctx, actor)
}

func (m *MockMembershipService) Approve(ctx context.Context, actor *models.Profile, memberEmail string) (*services.ProfileResponse, error) {
	if m.ApproveFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.ApproveFunc(ctx, actor, memberEmail)
}

func (m *MockMembershipService) SetRole(ctx context.Context, actor *models.Profile, profileID, role string) (*services.ProfileResponse, error) {
	if m.SetRoleFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.SetRoleFunc(ctx, actor, profileID, role)
}

// MockFavoritesService implements FavoritesServiceInterface for testing
type MockFavoritesService struct {
	ToggleFunc      func(ctx context.Context, profileID, propertyID string) (*services.FavoritesResponse, error)
	ListFunc        func(ctx context.Context, profileID string) ([]string, error)
	AddAlertFunc    func(ctx context.Context, profileID string, alert models.PropertyAlert) (*services.AlertsResponse, error)
	RemoveAlertFunc func(ctx context.Context, profileID, alertID string) (*services.AlertsResponse, error)
}

func (m *MockFavoritesService) Toggle(ctx context.Context, profileID, propertyID string) (*services.FavoritesResponse, error) {
	if m.ToggleFunc == nil {
		return nil, models.ErrProfileMissing
	}
	return m.ToggleFunc(ctx, profileID, propertyID)
}

func (m *MockFavoritesService) List(ctx context.Context, profileID string) ([]string, error) {
	if m.ListFunc == nil {
		return []string{}, nil
	}
	return m.ListFunc(ctx, profileID)
}

func (m *MockFavoritesService) AddAlert(ctx context.Context, profileID string, alert models.PropertyAlert) (*services.AlertsResponse, error) {
	if m.AddAlertFunc == nil {
		return nil, models.ErrProfileMissing
	}
	return m.AddAlertFunc(ctx, profileID, alert)
}

func (m *MockFavoritesService) RemoveAlert(ctx context.Context, profileID, alertID string) (*services.AlertsResponse, error) {
	if m.RemoveAlertFunc == nil {
		return nil, models.ErrProfileMissing
	}
	return m.RemoveAlertFunc(ctx, profileID, alertID)
}

// MockFavoritesFanout implements FavoritesFanout for testing
type MockFavoritesFanout struct {
	NotifyPropertyUpdateFunc func(ctx context.Context, actor *models.Profile, propertyID string) (int, int, error)
}

func (m *MockFavoritesFanout) NotifyPropertyUpdate(ctx context.Context, actor *models.Profile, propertyID string) (int, int, error) {
	if m.NotifyPropertyUpdateFunc == nil {
		return 0, 0, nil
	}
	return m.NotifyPropertyUpdateFunc(ctx, actor, propertyID)
}

// MockPropertyService implements PropertyServiceInterface for testing
type MockPropertyService struct {
	BrowseFunc   func(ctx context.Context, f listing.Filter, sortOrder string) ([]*services.PropertyResponse, error)
	FeaturedFunc func(ctx context.Context, limit int) ([]*services.PropertyResponse, error)
	GetFunc      func(ctx context.Context, id string) (*services.PropertyResponse, error)
	CreateFunc   func(ctx context.Context, actor *models.Profile, property *models.Property) (*services.PropertyResponse, error)
	UpdateFunc   func(ctx context.Context, actor *models.Profile, id string, property *models.Property) (*services.PropertyResponse, error)
	DeleteFunc   func(ctx context.Context, actor *models.Profile, id string) error
}

func (m *MockPropertyService) Browse(ctx context.Context, f listing.Filter, sortOrder string) ([]*services.PropertyResponse, error) {
	if m.BrowseFunc == nil {
		return []*services.PropertyResponse{}, nil
	}
	return m.BrowseFunc(ctx, f, sortOrder)
}

func (m *MockPropertyService) Featured(ctx context.Context, limit int) ([]*services.PropertyResponse, error) {
	if m.FeaturedFunc == nil {
		return []*services.PropertyResponse{}, nil
	}
	return m.FeaturedFunc(ctx, limit)
}

func (m *MockPropertyService) Get(ctx context.Context, id string) (*services.PropertyResponse, error) {
	if m.GetFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetFunc(ctx, id)
}

func (m *MockPropertyService) Create(ctx context.Context, actor *models.Profile, property *models.Property) (*services.PropertyResponse, error) {
	if m.CreateFunc == nil {
		return nil, models.ErrForbidden
	}
	return m.CreateFunc(ctx, actor, property)
}

func (m *MockPropertyService) Update(ctx context.Context, actor *models.Profile, id string, property *models.Property) (*services.PropertyResponse, error) {
	if m.UpdateFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateFunc(ctx, actor, id, property)
}

func (m *MockPropertyService) Delete(ctx context.Context, actor *models.Profile, id string) error {
	if m.DeleteFunc == nil {
		return models.ErrNotFound
	}
	return m.DeleteFunc(ctx, actor, id)
}

// MockInquiryService implements InquiryServiceInterface for testing
type MockInquiryService struct {
	SubmitContactFunc         func(ctx context.Context, sub services.ContactSubmission) error
	SubmitPropertyInquiryFunc func(ctx context.Context, name, email, message, propertyID, userID string) error
	HistoryFunc               func(ctx context.Context, profileID string) ([]*services.InquiryResponse, error)
}

func (m *MockInquiryService) SubmitContact(ctx context.Context, sub services.ContactSubmission) error {
	if m.SubmitContactFunc == nil {
		return nil
	}
	return m.SubmitContactFunc(ctx, sub)
}

func (m *MockInquiryService) SubmitPropertyInquiry(ctx context.Context, name, email, message, propertyID, userID string) error {
	if m.SubmitPropertyInquiryFunc == nil {
		return nil
	}
	return m.SubmitPropertyInquiryFunc(ctx, name, email, message, propertyID, userID)
}

func (m *MockInquiryService) History(ctx context.Context, profileID string) ([]*services.InquiryResponse, error) {
	if m.HistoryFunc == nil {
		return []*services.InquiryResponse{}, nil
	}
	return m.HistoryFunc(ctx, profileID)
}

// MockBlogService implements BlogServiceInterface for testing
type MockBlogService struct {
	ListFunc   func(ctx context.Context) ([]*services.BlogPostResponse, error)
	GetFunc    func(ctx context.Context, id string) (*services.BlogPostResponse, error)
	CreateFunc func(ctx context.Context, actor *models.Profile, post *models.BlogPost) (*services.BlogPostResponse, error)
	UpdateFunc func(ctx context.Context, actor *models.Profile, id string, post *models.BlogPost) (*services.BlogPostResponse, error)
	DeleteFunc func(ctx context.Context, actor *models.Profile, id string) error
}

func (m *MockBlogService) List(ctx context.Context) ([]*services.BlogPostResponse, error) {
	if m.ListFunc == nil {
		return []*services.BlogPostResponse{}, nil
	}
	return m.ListFunc(ctx)
}

func (m *MockBlogService) Get(ctx context.Context, id string) (*services.BlogPostResponse, error) {
	if m.GetFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetFunc(ctx, id)
}

func (m *MockBlogService) Create(ctx context.Context, actor *models.Profile, post *models.BlogPost) (*services.BlogPostResponse, error) {
	if m.CreateFunc == nil {
		return nil, models.ErrForbidden
	}
	return m.CreateFunc(ctx, actor, post)
}

func (m *MockBlogService) Update(ctx context.Context, actor *models.Profile, id string, post *models.BlogPost) (*services.BlogPostResponse, error) {
	if m.UpdateFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateFunc(ctx, actor, id, post)
}

func (m *MockBlogService) Delete(ctx context.Context, actor *models.Profile, id string) error {
	if m.DeleteFunc == nil {
		return models.ErrNotFound
	}
	return m.DeleteFunc(ctx, actor, id)
}
