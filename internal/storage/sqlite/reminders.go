package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitsmart/splitsmart/internal/models"
)

// UpsertReminderPreference creates or updates a reminder preference for the
// (user, scope) pair.
func (s *SQLiteStore) UpsertReminderPreference(ctx context.Context, pref *models.ReminderPreference) error {
	if pref.ID == "" {
		pref.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if pref.CreatedAt == 0 {
		pref.CreatedAt = now
	}
	pref.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reminder_preferences (id, user_id, scope_type, scope_id, frequency, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, scope_type, scope_id) DO UPDATE SET
		   frequency = excluded.frequency,
		   updated_at = excluded.updated_at`,
		pref.ID, pref.UserID, string(pref.ScopeType), pref.ScopeID,
		string(pref.Frequency), pref.CreatedAt, pref.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert reminder preference: %w", err)
	}

	return nil
}

// ListReminderPreferences returns all of a user's reminder preferences.
func (s *SQLiteStore) ListReminderPreferences(ctx context.Context, userID string) ([]*models.ReminderPreference, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, scope_type, scope_id, frequency, created_at, updated_at
		 FROM reminder_preferences WHERE user_id = ?
		 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminder preferences: %w", err)
	}
	defer rows.Close()

	var prefs []*models.ReminderPreference
	for rows.Next() {
		pref := &models.ReminderPreference{}
		var scopeType, frequency string
		if err := rows.Scan(&pref.ID, &pref.UserID, &scopeType, &pref.ScopeID,
			&frequency, &pref.CreatedAt, &pref.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder preference: %w", err)
		}
		pref.ScopeType = models.ReminderScope(scopeType)
		pref.Frequency = models.ReminderFrequency(frequency)
		prefs = append(prefs, pref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminder preferences: %w", err)
	}

	return prefs, nil
}

// DeleteReminderPreference removes a preference for the (user, scope) pair
// if present.
func (s *SQLiteStore) DeleteReminderPreference(ctx context.Context, userID string, scopeType models.ReminderScope, scopeID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM reminder_preferences WHERE user_id = ? AND scope_type = ? AND scope_id = ?",
		userID, string(scopeType), scopeID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete reminder preference: %w", err)
	}

	return nil
}
