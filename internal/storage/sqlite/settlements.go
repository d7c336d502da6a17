package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitsmart/splitsmart/internal/models"
)

// CreateSettlement persists a new settlement to the database.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, amount, note, date, paid_by, received_by, group_id, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.Amount, nullString(settlement.Note), nullInt64(settlement.Date),
		settlement.PaidByUserID, settlement.ReceivedByUserID,
		nullString(settlement.GroupID), settlement.CreatedBy, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

// ListSettlementsByParticipant retrieves every settlement, in any scope,
// where the user paid or received.
func (s *SQLiteStore) ListSettlementsByParticipant(ctx context.Context, userID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		`SELECT id, amount, note, date, paid_by, received_by, group_id, created_by, created_at
		 FROM settlements WHERE paid_by = ? OR received_by = ?
		 ORDER BY created_at DESC`,
		userID, userID,
	)
}

// ListPersonalSettlementsBetween retrieves non-group settlements between
// exactly the two users, in either direction.
func (s *SQLiteStore) ListPersonalSettlementsBetween(ctx context.Context, userA, userB string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		`SELECT id, amount, note, date, paid_by, received_by, group_id, created_by, created_at
		 FROM settlements
		 WHERE group_id IS NULL
		   AND ((paid_by = ? AND received_by = ?) OR (paid_by = ? AND received_by = ?))
		 ORDER BY created_at DESC`,
		userA, userB, userB, userA,
	)
}

// ListGroupSettlements retrieves all settlements scoped to a group, newest
// first.
func (s *SQLiteStore) ListGroupSettlements(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		`SELECT id, amount, note, date, paid_by, received_by, group_id, created_by, created_at
		 FROM settlements WHERE group_id = ?
		 ORDER BY created_at DESC`,
		groupID,
	)
}

func (s *SQLiteStore) listSettlements(ctx context.Context, query string, args ...interface{}) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var note, groupID sql.NullString
		var date sql.NullInt64

		if err := rows.Scan(&settlement.ID, &settlement.Amount, &note, &date,
			&settlement.PaidByUserID, &settlement.ReceivedByUserID,
			&groupID, &settlement.CreatedBy, &settlement.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}

		settlement.Note = note.String
		settlement.Date = date.Int64
		settlement.GroupID = groupID.String

		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}
