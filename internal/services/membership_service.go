package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/srpnetwork/realty-api/internal/models"
	pkglogger "github.com/srpnetwork/realty-api/pkg/logger"
)

// MembershipService owns the membership state machine: pending registrations,
// approval, and role assignment. Every mutating operation verifies the acting
// profile's role on the server; client-supplied role claims are never trusted.
type MembershipService struct {
	profiles    ProfileRepository
	notifier    Notifier
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(profiles ProfileRepository, notifier Notifier, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *MembershipService {
	return &MembershipService{
		profiles:    profiles,
		notifier:    notifier,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

func (s *MembershipService) requireAdmin(actor *models.Profile) error {
	if actor == nil || actor.Role != models.RoleAdmin {
		return models.ErrForbidden
	}
	return nil
}

// ListMembers returns profiles for the admin dashboard, pending first.
func (s *MembershipService) ListMembers(ctx context.Context, actor *models.Profile, limit, offset int) ([]*ProfileResponse, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	profiles, err := s.profiles.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list profiles", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	responses := make([]*ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, profileModelToResponse(p))
	}

	return responses, nil
}

// PendingCount returns the number of registrations awaiting approval.
func (s *MembershipService) PendingCount(ctx context.Context, actor *models.Profile) (int64, error) {
	if err := s.requireAdmin(actor); err != nil {
		return 0, err
	}

	count, err := s.profiles.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		s.logger.Error("failed to count pending profiles", slog.Any("error", err))
		return 0, models.ErrInternalServer
	}

	return count, nil
}

// Approve transitions a member from pending to active and sends the approval
// email. Approving an already-active member is a no-op success and does not
// re-send the email.
func (s *MembershipService) Approve(ctx context.Context, actor *models.Profile, memberEmail string) (*ProfileResponse, error) {
	if err := s.requireAdmin(actor); err != nil {
		s.auditLogger.LogMembershipAction(pkglogger.AuditEvent{
			EventType:     "member_approve",
			ActorID:       actorID(actor),
			FailureReason: "not_admin",
			Success:       false,
		})
		return nil, err
	}

	memberEmail = strings.ToLower(strings.TrimSpace(memberEmail))
	if memberEmail == "" {
		return nil, models.ErrBadRequest
	}

	profile, err := s.profiles.GetByEmail(ctx, memberEmail)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get profile for approval", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if profile.Status == models.StatusActive {
		return profileModelToResponse(profile), nil
	}

	profile.Status = models.StatusActive
	updated, err := s.profiles.Update(ctx, profile.ID, profile)
	if err != nil {
		s.logger.Error("failed to approve member", slog.String("profile_id", profile.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	// Best-effort: an undelivered approval email does not undo the approval
	if err := s.notifier.MemberApproved(ctx, updated.Name, updated.Email); err != nil {
		s.logger.Error("approval notification failed",
			slog.String("profile_id", updated.ID),
			slog.Any("error", err))
	}

	s.logger.Info("member approved",
		slog.String("profile_id", updated.ID),
		slog.String("actor_id", actor.ID))
	s.auditLogger.LogMembershipAction(pkglogger.AuditEvent{
		EventType: "member_approve",
		ProfileID: updated.ID,
		ActorID:   actor.ID,
		Success:   true,
	})

	return profileModelToResponse(updated), nil
}

// SetRole assigns a profile's role. Admins cannot demote themselves, which
// keeps at least one admin reachable from every state.
func (s *MembershipService) SetRole(ctx context.Context, actor *models.Profile, profileID, role string) (*ProfileResponse, error) {
	if err := s.requireAdmin(actor); err != nil {
		s.auditLogger.LogMembershipAction(pkglogger.AuditEvent{
			EventType:     "role_change",
			ActorID:       actorID(actor),
			FailureReason: "not_admin",
			Success:       false,
		})
		return nil, err
	}

	if !models.ValidRole(role) {
		return nil, models.ErrBadRequest
	}

	if actor.ID == profileID && role != models.RoleAdmin {
		return nil, models.ErrBadRequest
	}

	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get profile for role change", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if profile.Role == role {
		return profileModelToResponse(profile), nil
	}

	profile.Role = role
	updated, err := s.profiles.Update(ctx, profile.ID, profile)
	if err != nil {
		s.logger.Error("failed to update role", slog.String("profile_id", profile.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("member role changed",
		slog.String("profile_id", updated.ID),
		slog.String("role", role),
		slog.String("actor_id", actor.ID))
	s.auditLogger.LogMembershipAction(pkglogger.AuditEvent{
		EventType: "role_change",
		ProfileID: updated.ID,
		ActorID:   actor.ID,
		Success:   true,
	})

	return profileModelToResponse(updated), nil
}

func actorID(actor *models.Profile) string {
	if actor == nil {
		return ""
	}
	return actor.ID
}
