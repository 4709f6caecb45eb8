package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/srpnetwork/realty-api/internal/models"
	"github.com/srpnetwork/realty-api/internal/notify"
)

// MockCredentialRepository implements CredentialRepository for testing
type MockCredentialRepository struct {
	GetByEmailFunc func(ctx context.Context, email string) (*models.Credential, error)
	CreateFunc     func(ctx context.Context, cred *models.Credential) (*models.Credential, error)
}

func (m *MockCredentialRepository) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockCredentialRepository) Create(ctx context.Context, cred *models.Credential) (*models.Credential, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, cred)
	}
	return nil, models.ErrInternalServer
}

// MockProfileRepository implements ProfileRepository for testing
type MockProfileRepository struct {
	GetByIDFunc         func(ctx context.Context, id string) (*models.Profile, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*models.Profile, error)
	ListFunc            func(ctx context.Context, limit, offset int) ([]*models.Profile, error)
	CreateFunc          func(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	UpdateFunc          func(ctx context.Context, id string, profile *models.Profile) (*models.Profile, error)
	UpdateFavoritesFunc func(ctx context.Context, id string, favorites []string) error
	UpdateAlertsFunc    func(ctx context.Context, id string, alerts []models.PropertyAlert) error
	FindByFavoriteFunc  func(ctx context.Context, propertyID string) ([]*models.Profile, error)
	CountByStatusFunc   func(ctx context.Context, status string) (int64, error)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockProfileRepository) List(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.Profile{}, nil
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	return nil, models.ErrInternalServer
}

func (m *MockProfileRepository) Update(ctx context.Context, id string, profile *models.Profile) (*models.Profile, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, profile)
	}
	return nil, models.ErrInternalServer
}

func (m *MockProfileRepository) UpdateFavorites(ctx context.Context, id string, favorites []string) error {
	if m.UpdateFavoritesFunc != nil {
		return m.UpdateFavoritesFunc(ctx, id, favorites)
	}
	return nil
}

func (m *MockProfileRepository) UpdateAlerts(ctx context.Context, id string, alerts []models.PropertyAlert) error {
	if m.UpdateAlertsFunc != nil {
		return m.UpdateAlertsFunc(ctx, id, alerts)
	}
	return nil
}

func (m *MockProfileRepository) FindByFavorite(ctx context.Context, propertyID string) ([]*models.Profile, error) {
	if m.FindByFavoriteFunc != nil {
		return m.FindByFavoriteFunc(ctx, propertyID)
	}
	return []*models.Profile{}, nil
}

func (m *MockProfileRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

// MockTokenRevocationRepository implements TokenRevocationRepository for testing
type MockTokenRevocationRepository struct {
	RevokeTokenFunc    func(ctx context.Context, jti, profileID, tokenType string, expiresAt time.Time, reason string) error
	IsTokenRevokedFunc func(ctx context.Context, jti string) (bool, error)
}

func (m *MockTokenRevocationRepository) RevokeToken(ctx context.Context, jti, profileID, tokenType string, expiresAt time.Time, reason string) error {
	if m.RevokeTokenFunc != nil {
		return m.RevokeTokenFunc(ctx, jti, profileID, tokenType, expiresAt, reason)
	}
	return nil
}

func (m *MockTokenRevocationRepository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if m.IsTokenRevokedFunc != nil {
		return m.IsTokenRevokedFunc(ctx, jti)
	}
	return false, nil
}

// MockPropertyRepository implements PropertyRepository for testing
type MockPropertyRepository struct {
	GetByIDFunc      func(ctx context.Context, id string) (*models.Property, error)
	ListFunc         func(ctx context.Context) ([]*models.Property, error)
	ListFeaturedFunc func(ctx context.Context, limit int) ([]*models.Property, error)
	CreateFunc       func(ctx context.Context, p *models.Property) (*models.Property, error)
	UpdateFunc       func(ctx context.Context, id string, p *models.Property) (*models.Property, error)
	DeleteFunc       func(ctx context.Context, id string) error
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockPropertyRepository) List(ctx context.Context) ([]*models.Property, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.Property{}, nil
}

func (m *MockPropertyRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Property, error) {
	if m.ListFeaturedFunc != nil {
		return m.ListFeaturedFunc(ctx, limit)
	}
	return []*models.Property{}, nil
}

func (m *MockPropertyRepository) Create(ctx context.Context, p *models.Property) (*models.Property, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil, models.ErrInternalServer
}

func (m *MockPropertyRepository) Update(ctx context.Context, id string, p *models.Property) (*models.Property, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, p)
	}
	return nil, models.ErrInternalServer
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockInquiryRepository implements InquiryRepository for testing
type MockInquiryRepository struct {
	CreateFunc     func(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error)
	ListByUserFunc func(ctx context.Context, userID string) ([]*models.Inquiry, error)
}

func (m *MockInquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, inquiry)
	}
	inquiry.ID = "inquiry_test"
	inquiry.CreatedAt = time.Now()
	return inquiry, nil
}

func (m *MockInquiryRepository) ListByUser(ctx context.Context, userID string) ([]*models.Inquiry, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []*models.Inquiry{}, nil
}

// MockBlogRepository implements BlogRepository for testing
type MockBlogRepository struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.BlogPost, error)
	ListFunc    func(ctx context.Context) ([]*models.BlogPost, error)
	CreateFunc  func(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	UpdateFunc  func(ctx context.Context, id string, post *models.BlogPost) (*models.BlogPost, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockBlogRepository) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockBlogRepository) List(ctx context.Context) ([]*models.BlogPost, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.BlogPost{}, nil
}

func (m *MockBlogRepository) Create(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	post.ID = "post_test"
	return post, nil
}

func (m *MockBlogRepository) Update(ctx context.Context, id string, post *models.BlogPost) (*models.BlogPost, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, post)
	}
	return nil, models.ErrInternalServer
}

func (m *MockBlogRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockNotifier implements Notifier for testing. The default is a successful
// no-op so primary-action tests don't have to care about email.
type MockNotifier struct {
	RegistrationReceivedFunc    func(ctx context.Context, name, email string) error
	MemberApprovedFunc          func(ctx context.Context, name, email string) error
	ContactSubmissionFunc       func(ctx context.Context, name, email, phone, interest, message string) error
	PropertyInquiryFunc         func(ctx context.Context, name, email, message, propertyTitle string) error
	FavoritePropertyUpdatedFunc func(ctx context.Context, recipients []notify.Recipient, propertyID, propertyTitle string) int
}

func (m *MockNotifier) RegistrationReceived(ctx context.Context, name, email string) error {
	if m.RegistrationReceivedFunc != nil {
		return m.RegistrationReceivedFunc(ctx, name, email)
	}
	return nil
}

func (m *MockNotifier) MemberApproved(ctx context.Context, name, email string) error {
	if m.MemberApprovedFunc != nil {
		return m.MemberApprovedFunc(ctx, name, email)
	}
	return nil
}

func (m *MockNotifier) ContactSubmission(ctx context.Context, name, email, phone, interest, message string) error {
	if m.ContactSubmissionFunc != nil {
		return m.ContactSubmissionFunc(ctx, name, email, phone, interest, message)
	}
	return nil
}

func (m *MockNotifier) PropertyInquiry(ctx context.Context, name, email, message, propertyTitle string) error {
	if m.PropertyInquiryFunc != nil {
		return m.PropertyInquiryFunc(ctx, name, email, message, propertyTitle)
	}
	return nil
}

func (m *MockNotifier) FavoritePropertyUpdated(ctx context.Context, recipients []notify.Recipient, propertyID, propertyTitle string) int {
	if m.FavoritePropertyUpdatedFunc != nil {
		return m.FavoritePropertyUpdatedFunc(ctx, recipients, propertyID, propertyTitle)
	}
	return 0
}

// NewTestProfile creates an active member profile
func NewTestProfile(id, email, name string) *models.Profile {
	now := time.Now()
	return &models.Profile{
		ID:        id,
		Email:     email,
		Name:      name,
		Role:      models.RoleMember,
		Status:    models.StatusActive,
		Favorites: []string{},
		Alerts:    []models.PropertyAlert{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestProfilePending creates a profile awaiting approval
func NewTestProfilePending(id, email, name string) *models.Profile {
	profile := NewTestProfile(id, email, name)
	profile.Status = models.StatusPending
	return profile
}

// NewTestAdmin creates an active admin profile
func NewTestAdmin(id, email, name string) *models.Profile {
	profile := NewTestProfile(id, email, name)
	profile.Role = models.RoleAdmin
	return profile
}

// NewTestCredential creates a credential with the given bcrypt hash
func NewTestCredential(id, email, passwordHash string) *models.Credential {
	return &models.Credential{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
}

// NewTestProperty creates a minimal valid listing
func NewTestProperty(id, title string, price float64) *models.Property {
	now := time.Now()
	return &models.Property{
		ID:        id,
		Title:     title,
		Price:     price,
		Location:  "Lekki Phase 1, Lagos",
		Type:      models.PropertyTypeApartment,
		Status:    models.PropertyStatusForSale,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTokenClaims creates valid token claims
func NewTokenClaims(profileID, email, tokenType string) *models.TokenClaims {
	now := time.Now()
	return &models.TokenClaims{
		Type:      tokenType,
		ProfileID: profileID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        fmt.Sprintf("jti_%s_%d", profileID, now.Unix()),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
}
