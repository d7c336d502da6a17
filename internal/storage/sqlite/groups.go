package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitsmart/splitsmart/internal/models"
	"github.com/splitsmart/splitsmart/internal/storage"
)

// CreateGroup persists a new group and its members to the database.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, description, created_by, created_at) VALUES (?, ?, ?, ?, ?)",
		group.ID, group.Name, nullString(group.Description), group.CreatedBy, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i := range group.Members {
		member := &group.Members[i]
		if member.JoinedAt == 0 {
			member.JoinedAt = group.CreatedAt
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)",
			group.ID, member.UserID, string(member.Role), member.JoinedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID, including members and comments.
func (s *SQLiteStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	group, err := s.scanGroup(s.db.QueryRowContext(ctx,
		"SELECT id, name, description, created_by, created_at FROM groups WHERE id = ?",
		id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := s.attachMembers(ctx, group); err != nil {
		return nil, err
	}
	if err := s.attachGroupComments(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// ListGroupsByMember retrieves all groups the user belongs to.
func (s *SQLiteStore) ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id, g.name, g.description, g.created_by, g.created_at
		 FROM groups g
		 JOIN group_members m ON m.group_id = g.id
		 WHERE m.user_id = ?
		 ORDER BY g.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := s.scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for _, group := range groups {
		if err := s.attachMembers(ctx, group); err != nil {
			return nil, err
		}
		if err := s.attachGroupComments(ctx, group); err != nil {
			return nil, err
		}
	}

	return groups, nil
}

// DeleteGroup removes a group. Members, comments, expenses and settlements
// scoped to the group go with it via foreign key cascades.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, id string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("group %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check group existence: %w", err)
	}

	_, err = s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	return nil
}

// AddGroupComment appends a comment to a group.
func (s *SQLiteStore) AddGroupComment(ctx context.Context, groupID string, comment models.Comment) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE id = ?", groupID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check group existence: %w", err)
	}

	createdAt := comment.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO group_comments (group_id, user_id, text, created_at) VALUES (?, ?, ?, ?)",
		groupID, comment.UserID, comment.Text, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

func (s *SQLiteStore) scanGroup(row rowScanner) (*models.Group, error) {
	group := &models.Group{}
	var description sql.NullString

	err := row.Scan(&group.ID, &group.Name, &description, &group.CreatedBy, &group.CreatedAt)
	if err != nil {
		return nil, err
	}

	group.Description = description.String

	return group, nil
}

func (s *SQLiteStore) attachMembers(ctx context.Context, group *models.Group) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, role, joined_at FROM group_members
		 WHERE group_id = ? ORDER BY joined_at, user_id`,
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var member models.GroupMember
		var role string
		if err := rows.Scan(&member.UserID, &role, &member.JoinedAt); err != nil {
			return fmt.Errorf("failed to scan group member: %w", err)
		}
		member.Role = models.Role(role)
		group.Members = append(group.Members, member)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate group members: %w", err)
	}

	return nil
}

func (s *SQLiteStore) attachGroupComments(ctx context.Context, group *models.Group) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, text, created_at FROM group_comments
		 WHERE group_id = ? ORDER BY created_at`,
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get group comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.UserID, &comment.Text, &comment.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan group comment: %w", err)
		}
		group.Comments = append(group.Comments, comment)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate group comments: %w", err)
	}

	return nil
}
