package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/srpnetwork/realty-api/internal/models"
)

// InquiryRepository defines the interface for inquiry persistence
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Inquiry, error)
}

// InquiryResponse represents a stored inquiry in HTTP responses
type InquiryResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Message       string `json:"message"`
	PropertyID    string `json:"property_id,omitempty"`
	PropertyTitle string `json:"property_title,omitempty"`
	CreatedAt     string `json:"created_at"`
}

func inquiryModelToResponse(i *models.Inquiry) *InquiryResponse {
	resp := &InquiryResponse{
		ID:            i.ID,
		Name:          i.Name,
		Email:         i.Email,
		Phone:         i.Phone,
		Message:       i.Message,
		PropertyTitle: i.PropertyTitle,
		CreatedAt:     i.CreatedAt.Format(time.RFC3339),
	}
	if i.PropertyID != nil {
		resp.PropertyID = *i.PropertyID
	}
	return resp
}

// InquiryService records contact-form and property inquiries and forwards
// them to the admin inbox. The record is the source of truth: a failed email
// never fails the submission.
type InquiryService struct {
	inquiries  InquiryRepository
	properties PropertyGetter
	notifier   Notifier
	logger     *slog.Logger
}

// NewInquiryService creates a new InquiryService
func NewInquiryService(inquiries InquiryRepository, properties PropertyGetter, notifier Notifier, logger *slog.Logger) *InquiryService {
	return &InquiryService{
		inquiries:  inquiries,
		properties: properties,
		notifier:   notifier,
		logger:     logger,
	}
}

// ContactSubmission holds a general contact-form submission
type ContactSubmission struct {
	Name     string
	Email    string
	Phone    string
	Interest string
	Message  string
}

// SubmitContact stores a contact-form submission and forwards it to the
// admin address.
func (s *InquiryService) SubmitContact(ctx context.Context, sub ContactSubmission) error {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.ToLower(strings.TrimSpace(sub.Email))
	if sub.Name == "" || sub.Email == "" || strings.TrimSpace(sub.Message) == "" {
		return models.ErrBadRequest
	}

	_, err := s.inquiries.Create(ctx, &models.Inquiry{
		Name:    sub.Name,
		Email:   sub.Email,
		Phone:   sub.Phone,
		Message: sub.Message,
	})
	if err != nil {
		s.logger.Error("failed to store contact submission", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.notifier.ContactSubmission(ctx, sub.Name, sub.Email, sub.Phone, sub.Interest, sub.Message); err != nil {
		s.logger.Error("contact notification failed", slog.Any("error", err))
	}

	return nil
}

// SubmitPropertyInquiry stores an inquiry about a specific listing. The
// property title is resolved server-side so a stale client cannot mislabel
// the inquiry. userID is empty for anonymous submissions.
func (s *InquiryService) SubmitPropertyInquiry(ctx context.Context, name, email, message, propertyID, userID string) error {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || strings.TrimSpace(message) == "" {
		return models.ErrBadRequest
	}

	inquiry := &models.Inquiry{
		Name:    name,
		Email:   email,
		Message: message,
	}

	if propertyID = strings.TrimSpace(propertyID); propertyID != "" {
		inquiry.PropertyID = &propertyID
		property, err := s.properties.GetByID(ctx, propertyID)
		switch {
		case err == nil:
			inquiry.PropertyTitle = property.Title
		case errors.Is(err, models.ErrNotFound):
			return models.ErrNotFound
		default:
			s.logger.Error("failed to resolve property for inquiry", slog.Any("error", err))
			return models.ErrInternalServer
		}
	}

	if userID != "" {
		inquiry.UserID = &userID
	}

	if _, err := s.inquiries.Create(ctx, inquiry); err != nil {
		s.logger.Error("failed to store property inquiry", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.notifier.PropertyInquiry(ctx, name, email, message, inquiry.PropertyTitle); err != nil {
		s.logger.Error("property inquiry notification failed", slog.Any("error", err))
	}

	return nil
}

// History returns a member's own inquiry history, newest first.
func (s *InquiryService) History(ctx context.Context, profileID string) ([]*InquiryResponse, error) {
	inquiries, err := s.inquiries.ListByUser(ctx, profileID)
	if err != nil {
		s.logger.Error("failed to list inquiries", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	responses := make([]*InquiryResponse, 0, len(inquiries))
	for _, i := range inquiries {
		responses = append(responses, inquiryModelToResponse(i))
	}

	return responses, nil
}
