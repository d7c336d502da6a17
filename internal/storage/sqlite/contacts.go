package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/splitsmart/splitsmart/internal/models"
)

// HideContact marks a counterparty hidden from the owner's contact list.
// Hiding an already-hidden contact is a no-op.
func (s *SQLiteStore) HideContact(ctx context.Context, ownerUserID, contactUserID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO hidden_contacts (owner_user_id, contact_user_id, created_at)
		 VALUES (?, ?, ?)`,
		ownerUserID, contactUserID, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to hide contact: %w", err)
	}

	return nil
}

// ListHiddenContacts returns the contact user ids the owner has hidden.
func (s *SQLiteStore) ListHiddenContacts(ctx context.Context, ownerUserID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT contact_user_id FROM hidden_contacts WHERE owner_user_id = ?",
		ownerUserID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list hidden contacts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan hidden contact: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hidden contacts: %w", err)
	}

	return ids, nil
}

// contactPair canonicalizes the unordered user pair a conversation is keyed
// by, so both participants read and write the same rows.
func contactPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// AddContactMessage appends a message to the conversation between two users.
func (s *SQLiteStore) AddContactMessage(ctx context.Context, userA, userB string, message models.ContactMessage) error {
	createdAt := message.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}

	a, b := contactPair(userA, userB)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO contact_messages (user_a, user_b, sender_id, text, created_at) VALUES (?, ?, ?, ?, ?)",
		a, b, message.SenderID, message.Text, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}

	return nil
}

// ListContactMessages returns the conversation between two users, oldest
// first.
func (s *SQLiteStore) ListContactMessages(ctx context.Context, userA, userB string) ([]models.ContactMessage, error) {
	a, b := contactPair(userA, userB)
	rows, err := s.db.QueryContext(ctx,
		`SELECT sender_id, text, created_at FROM contact_messages
		 WHERE user_a = ? AND user_b = ?
		 ORDER BY created_at, rowid`,
		a, b,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.SenderID, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contact messages: %w", err)
	}

	return messages, nil
}
