package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srpnetwork/realty-api/internal/models"
)

func newInquiryService(inquiries InquiryRepository, properties PropertyGetter, notifier Notifier) *InquiryService {
	return NewInquiryService(inquiries, properties, notifier, slog.Default())
}

// ============================================================================
// SubmitContact Tests
// ============================================================================

func TestInquiryService_SubmitContact_Success(t *testing.T) {
	var stored *models.Inquiry
	mockInquiries := &MockInquiryRepository{
		CreateFunc: func(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error) {
			stored = inquiry
			inquiry.ID = "inquiry_1"
			return inquiry, nil
		},
	}

	var notified bool
	notifier := &MockNotifier{
		ContactSubmissionFunc: func(ctx context.Context, name, email, phone, interest, message string) error {
			notified = true
			assert.Equal(t, "chidi@example.com", email)
			return nil
		},
	}

	svc := newInquiryService(mockInquiries, &MockPropertyRepository{}, notifier)

	err := svc.SubmitContact(context.Background(), ContactSubmission{
		Name:     "  Chidi Eze  ",
		Email:    "Chidi@Example.com",
		Interest: "Partnership",
		Message:  "I would like to join.",
	})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Chidi Eze", stored.Name)
	assert.Equal(t, "chidi@example.com", stored.Email)
	assert.True(t, notified)
}

func TestInquiryService_SubmitContact_MissingFields(t *testing.T) {
	svc := newInquiryService(&MockInquiryRepository{}, &MockPropertyRepository{}, &MockNotifier{})

	tests := []struct {
		name string
		sub  ContactSubmission
	}{
		{"no name", ContactSubmission{Email: "a@b.com", Message: "hello"}},
		{"no email", ContactSubmission{Name: "A", Message: "hello"}},
		{"no message", ContactSubmission{Name: "A", Email: "a@b.com", Message: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.SubmitContact(context.Background(), tt.sub)
			assert.ErrorIs(t, err, models.ErrBadRequest)
		})
	}
}

func TestInquiryService_SubmitContact_EmailFailureDoesNotFailSubmission(t *testing.T) {
	notifier := &MockNotifier{
		ContactSubmissionFunc: func(ctx context.Context, name, email, phone, interest, message string) error {
			return errors.New("ses unavailable")
		},
	}

	svc := newInquiryService(&MockInquiryRepository{}, &MockPropertyRepository{}, notifier)

	err := svc.SubmitContact(context.Background(), ContactSubmission{
		Name:    "Chidi Eze",
		Email:   "chidi@example.com",
		Message: "hello",
	})

	assert.NoError(t, err)
}

func TestInquiryService_SubmitContact_StorageFailure(t *testing.T) {
	mockInquiries := &MockInquiryRepository{
		CreateFunc: func(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error) {
			return nil, errors.New("connection refused")
		},
	}

	var notified bool
	notifier := &MockNotifier{
		ContactSubmissionFunc: func(ctx context.Context, name, email, phone, interest, message string) error {
			notified = true
			return nil
		},
	}

	svc := newInquiryService(mockInquiries, &MockPropertyRepository{}, notifier)

	err := svc.SubmitContact(context.Background(), ContactSubmission{
		Name:    "Chidi Eze",
		Email:   "chidi@example.com",
		Message: "hello",
	})

	assert.ErrorIs(t, err, models.ErrInternalServer)
	assert.False(t, notified, "no email should go out when the record was not stored")
}

// ============================================================================
// SubmitPropertyInquiry Tests
// ============================================================================

func TestInquiryService_SubmitPropertyInquiry_ResolvesTitleServerSide(t *testing.T) {
	property := NewTestProperty("prop_a", "Ikoyi Duplex", 100_000_000)
	mockProperties := &MockPropertyRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Property, error) {
			return property, nil
		},
	}

	var stored *models.Inquiry
	mockInquiries := &MockInquiryRepository{
		CreateFunc: func(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error) {
			stored = inquiry
			return inquiry, nil
		},
	}

	var notifiedTitle string
	notifier := &MockNotifier{
		PropertyInquiryFunc: func(ctx context.Context, name, email, message, propertyTitle string) error {
			notifiedTitle = propertyTitle
			return nil
		},
	}

	svc := newInquiryService(mockInquiries, mockProperties, notifier)

	err := svc.SubmitPropertyInquiry(context.Background(),
		"Visitor", "visitor@example.com", "Still available?", "prop_a", "")

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Ikoyi Duplex", stored.PropertyTitle)
	assert.Equal(t, "Ikoyi Duplex", notifiedTitle)
	require.NotNil(t, stored.PropertyID)
	assert.Equal(t, "prop_a", *stored.PropertyID)
	assert.Nil(t, stored.UserID)
}

func TestInquiryService_SubmitPropertyInquiry_UnknownProperty(t *testing.T) {
	svc := newInquiryService(&MockInquiryRepository{}, &MockPropertyRepository{}, &MockNotifier{})

	err := svc.SubmitPropertyInquiry(context.Background(),
		"Visitor", "visitor@example.com", "Still available?", "deleted", "")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestInquiryService_SubmitPropertyInquiry_LinksAuthenticatedUser(t *testing.T) {
	var stored *models.Inquiry
	mockInquiries := &MockInquiryRepository{
		CreateFunc: func(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error) {
			stored = inquiry
			return inquiry, nil
		},
	}

	svc := newInquiryService(mockInquiries, &MockPropertyRepository{}, &MockNotifier{})

	err := svc.SubmitPropertyInquiry(context.Background(),
		"Member", "member@example.com", "Interested in a viewing", "", "profile123")

	require.NoError(t, err)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, "profile123", *stored.UserID)
	assert.Nil(t, stored.PropertyID)
}

func TestInquiryService_SubmitPropertyInquiry_MissingFields(t *testing.T) {
	svc := newInquiryService(&MockInquiryRepository{}, &MockPropertyRepository{}, &MockNotifier{})

	err := svc.SubmitPropertyInquiry(context.Background(), "", "visitor@example.com", "hello", "", "")

	assert.ErrorIs(t, err, models.ErrBadRequest)
}

// ============================================================================
// History Tests
// ============================================================================

func TestInquiryService_History_Success(t *testing.T) {
	propertyID := "prop_a"
	mockInquiries := &MockInquiryRepository{
		ListByUserFunc: func(ctx context.Context, userID string) ([]*models.Inquiry, error) {
			assert.Equal(t, "profile123", userID)
			return []*models.Inquiry{
				{ID: "inquiry_1", Name: "Member", Email: "member@example.com", Message: "hi", PropertyID: &propertyID, PropertyTitle: "Ikoyi Duplex"},
			}, nil
		},
	}

	svc := newInquiryService(mockInquiries, &MockPropertyRepository{}, &MockNotifier{})

	resp, err := svc.History(context.Background(), "profile123")

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "inquiry_1", resp[0].ID)
	assert.Equal(t, "prop_a", resp[0].PropertyID)
}

func TestInquiryService_History_Empty(t *testing.T) {
	svc := newInquiryService(&MockInquiryRepository{}, &MockPropertyRepository{}, &MockNotifier{})

	resp, err := svc.History(context.Background(), "profile123")

	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Empty(t, resp)
}
