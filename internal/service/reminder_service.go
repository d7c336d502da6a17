package service

import (
	"context"
	"errors"

	"github.com/splitsmart/splitsmart/internal/models"
	"github.com/splitsmart/splitsmart/internal/storage"
)

// ReminderService manages stored reminder preferences. An external scheduler
// consumes them; this service only validates and persists.
type ReminderService struct {
	store storage.Store
}

// NewReminderService creates a new reminder service.
func NewReminderService(store storage.Store) *ReminderService {
	return &ReminderService{store: store}
}

// SetPreference creates or updates a reminder preference for a group or
// contact scope.
func (s *ReminderService) SetPreference(ctx context.Context, userID string, scopeType models.ReminderScope, scopeID string, frequency models.ReminderFrequency) (*models.ReminderPreference, error) {
	switch frequency {
	case models.FrequencyWeekly, models.FrequencyMonthly:
	default:
		return nil, invalidf("unknown frequency: %s", frequency)
	}
	if scopeID == "" {
		return nil, invalidf("scope id is required")
	}

	switch scopeType {
	case models.ScopeGroup:
		group, err := s.store.GetGroup(ctx, scopeID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if !group.HasMember(userID) {
			return nil, ErrPermissionDenied
		}
	case models.ScopeContact:
		if scopeID == userID {
			return nil, invalidf("cannot set a reminder for yourself")
		}
		if _, err := s.store.GetUserByID(ctx, scopeID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	default:
		return nil, invalidf("unknown scope type: %s", scopeType)
	}

	pref := &models.ReminderPreference{
		UserID:    userID,
		ScopeType: scopeType,
		ScopeID:   scopeID,
		Frequency: frequency,
	}
	if err := s.store.UpsertReminderPreference(ctx, pref); err != nil {
		return nil, err
	}

	return pref, nil
}

// ListPreferences returns the user's reminder preferences.
func (s *ReminderService) ListPreferences(ctx context.Context, userID string) ([]*models.ReminderPreference, error) {
	return s.store.ListReminderPreferences(ctx, userID)
}

// DeletePreference removes a reminder preference if present.
func (s *ReminderService) DeletePreference(ctx context.Context, userID string, scopeType models.ReminderScope, scopeID string) error {
	switch scopeType {
	case models.ScopeGroup, models.ScopeContact:
	default:
		return invalidf("unknown scope type: %s", scopeType)
	}
	return s.store.DeleteReminderPreference(ctx, userID, scopeType, scopeID)
}
