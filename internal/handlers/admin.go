package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/srpnetwork/realty-api/internal/models"
	"github.com/srpnetwork/realty-api/internal/notify"
	"github.com/srpnetwork/realty-api/internal/services"
	pkghttp "github.com/srpnetwork/realty-api/pkg/http"
)

// MembershipServiceInterface defines the interface for membership admin logic
type MembershipServiceInterface interface {
	ListMembers(ctx context.Context, actor *models.Profile, limit, offset int) ([]*services.ProfileResponse, error)
	PendingCount(ctx context.Context, actor *models.Profile) (int64, error)
	Approve(ctx context.Context, actor *models.Profile, memberEmail string) (*services.ProfileResponse, error)
	SetRole(ctx context.Context, actor *models.Profile, profileID, role string) (*services.ProfileResponse, error)
}

// AdminHandler handles the admin panel's membership and notification surface
type AdminHandler struct {
	membership MembershipServiceInterface
	favorites  FavoritesFanout
	notifier   services.Notifier
	identity   IdentityServiceInterface
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(membership MembershipServiceInterface, favorites FavoritesFanout, notifier services.Notifier, identity IdentityServiceInterface) *AdminHandler {
	return &AdminHandler{
		membership: membership,
		favorites:  favorites,
		notifier:   notifier,
		identity:   identity,
	}
}

// ApproveMemberRequest represents the request body for member approval
type ApproveMemberRequest struct {
	UserEmail string `json:"userEmail" validate:"required,email"`
	UserName  string `json:"userName"`
}

// SetRoleRequest represents the request body for a role change
type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=member admin"`
}

// NotifyAdminRequest represents the request body for the admin mail relay
type NotifyAdminRequest struct {
	Type string `json:"type" validate:"required"`
	User struct {
		Name  string `json:"name"`
		Email string `json:"email" validate:"required,email"`
	} `json:"user"`
}

// NotifyFavoritesRequest represents the request body for the favorite-holder
// fan-out. Recipients are resolved server-side from stored favorites; the
// client-supplied list is accepted for compatibility but not trusted.
type NotifyFavoritesRequest struct {
	Recipients    []notify.Recipient `json:"recipients"`
	PropertyID    string             `json:"propertyId" validate:"required"`
	PropertyTitle string             `json:"propertyTitle"`
}

// ListMembers returns profiles for the admin dashboard, pending first
func (h *AdminHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.resolveActor(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	members, err := h.membership.ListMembers(r.Context(), actor, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pending, err := h.membership.PendingCount(r.Context(), actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"members":       members,
		"count":         len(members),
		"pending_count": pending,
	})
}

// ApproveMember transitions a pending member to active and sends the
// approval email. The transition happens here, server-side; the email in
// the body identifies the member, nothing more.
func (h *AdminHandler) ApproveMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.resolveActor(w, r)
	if !ok {
		return
	}

	var req ApproveMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	member, err := h.membership.Approve(r.Context(), actor, req.UserEmail)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"member":  member,
	})
}

// SetRole assigns a member's role
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.resolveActor(w, r)
	if !ok {
		return
	}

	var req SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	member, err := h.membership.SetRole(r.Context(), actor, chi.URLParam(r, "id"), req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, member)
}

// NotifyAdmin relays a membership event to the admin inbox. Unlike the
// dispatch hooks inside registration and approval, this surface reports
// mail failure to the caller.
func (h *AdminHandler) NotifyAdmin(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.resolveActor(w, r); !ok {
		return
	}

	var req NotifyAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	var err error
	switch req.Type {
	case notify.EventNewRegistration:
		err = h.notifier.RegistrationReceived(r.Context(), req.User.Name, req.User.Email)
	case notify.EventApproved:
		err = h.notifier.MemberApproved(r.Context(), req.User.Name, req.User.Email)
	default:
		pkghttp.WriteBadRequest(w, "Unknown notification type")
		return
	}
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to send notification")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// NotifyFavorites fans a property-update notice out to members who saved it
func (h *AdminHandler) NotifyFavorites(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.resolveActor(w, r)
	if !ok {
		return
	}

	var req NotifyFavoritesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	_, failures, err := h.favorites.NotifyPropertyUpdate(r.Context(), actor, req.PropertyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"failures": failures,
	})
}

func (h *AdminHandler) resolveActor(w http.ResponseWriter, r *http.Request) (*models.Profile, bool) {
	return resolveActor(w, r, h.identity)
}
