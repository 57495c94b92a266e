package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/audience"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/domain"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/mapper"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/repository"
)

// RosterService serves the recipient roster for the broadcast composer
type RosterService struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

// NewRosterService creates a new RosterService instance
func NewRosterService(userRepo *repository.UserRepository, logger *zap.Logger) *RosterService {
	return &RosterService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetComposable returns the selectable recipients: active members outside
// the admin family, optionally narrowed to one requested role.
func (s *RosterService) GetComposable(ctx context.Context, roleFilter string) ([]domain.RosterEntryDTO, error) {
	users, err := s.userRepo.ListRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	entries := make([]domain.RosterEntryDTO, 0, len(users))
	for i := range users {
		user := &users[i]
		if !user.IsActive {
			continue
		}
		if audience.Classify(user.Role) == audience.FamilyAdmin {
			continue
		}
		if roleFilter != "" && !audience.MatchesRole(user.Role, roleFilter) {
			continue
		}
		entries = append(entries, mapper.ToRosterEntryDTO(user))
	}

	s.logger.Debug("roster loaded",
		zap.Int("total", len(users)),
		zap.Int("selectable", len(entries)),
		zap.String("role_filter", roleFilter),
	)

	return entries, nil
}

// loadRosterIndex loads the tenant roster once and returns the audience
// projection alongside a user lookup map. Several services need both.
func loadRosterIndex(ctx context.Context, userRepo *repository.UserRepository) ([]audience.Member, map[string]*domain.User, error) {
	users, err := userRepo.ListRoster(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load roster: %w", err)
	}

	members := make([]audience.Member, 0, len(users))
	byID := make(map[string]*domain.User, len(users))
	for i := range users {
		user := &users[i]
		members = append(members, audience.Member{
			ID:     user.ID,
			Role:   user.Role,
			Active: user.IsActive,
		})
		byID[audience.NormalizeID(user.ID)] = user
	}

	return members, byID, nil
}

// displayNameOrID resolves a user id to its roster display name, falling
// back to the raw id for users the roster no longer carries.
func displayNameOrID(byID map[string]*domain.User, userID string) (name, roleLabel string) {
	if user, ok := byID[audience.NormalizeID(userID)]; ok {
		return user.DisplayName(false), audience.Label(user.Role, audience.LocaleEn)
	}
	return userID, "-"
}
