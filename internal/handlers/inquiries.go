package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/srpnetwork/realty-api/internal/auth"
	"github.com/srpnetwork/realty-api/internal/services"
	pkghttp "github.com/srpnetwork/realty-api/pkg/http"
)

// InquiryServiceInterface defines the interface for inquiry submissions
type InquiryServiceInterface interface {
	SubmitContact(ctx context.Context, sub services.ContactSubmission) error
	SubmitPropertyInquiry(ctx context.Context, name, email, message, propertyID, userID string) error
	History(ctx context.Context, profileID string) ([]*services.InquiryResponse, error)
}

// InquiryHandler handles the contact form and property inquiry endpoints
type InquiryHandler struct {
	inquiries InquiryServiceInterface
}

// NewInquiryHandler creates a new InquiryHandler
func NewInquiryHandler(inquiries InquiryServiceInterface) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries}
}

// ContactRequest represents the request body for the contact form
type ContactRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"max=32"`
	Interest string `json:"interest" validate:"max=100"`
	Message  string `json:"message" validate:"required,min=1,max=5000"`
}

// InquiryRequest represents the request body for a property inquiry.
// propertyTitle is accepted for compatibility with older clients; the title
// stored and mailed is resolved from propertyId server-side.
type InquiryRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Message       string `json:"message" validate:"required,min=1,max=5000"`
	PropertyTitle string `json:"propertyTitle"`
	PropertyID    string `json:"propertyId"`
	UserID        string `json:"userId"`
}

// Contact handles the public contact form
func (h *InquiryHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	err := h.inquiries.SubmitContact(r.Context(), services.ContactSubmission{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Interest: req.Interest,
		Message:  req.Message,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// Inquiry handles a property inquiry submission. The submitter does not have
// to be logged in; if they are, the inquiry is attached to their profile so
// it shows in their history. The client-supplied userId is ignored in favor
// of the authenticated identity.
func (h *InquiryHandler) Inquiry(w http.ResponseWriter, r *http.Request) {
	var req InquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	userID := ""
	if claims := auth.IdentityFromContext(r); claims != nil {
		userID = claims.ProfileID
	}

	if err := h.inquiries.SubmitPropertyInquiry(r.Context(), req.Name, req.Email, req.Message, req.PropertyID, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// History returns the member's own inquiry history
func (h *InquiryHandler) History(w http.ResponseWriter, r *http.Request) {
	claims := auth.IdentityFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	inquiries, err := h.inquiries.History(r.Context(), claims.ProfileID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"inquiries": inquiries,
	})
}
