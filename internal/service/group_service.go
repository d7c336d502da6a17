package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/splitsmart/splitsmart/internal/ledger"
	"github.com/splitsmart/splitsmart/internal/models"
	"github.com/splitsmart/splitsmart/internal/notify"
	"github.com/splitsmart/splitsmart/internal/storage"
)

// CreateGroupInput carries a new group.
type CreateGroupInput struct {
	Name        string
	Description string
	MemberIDs   []string
}

// MemberSummary is one member row in a group balance sheet.
type MemberSummary struct {
	UserID string
	Name   string
	Net    float64
}

// GroupSummary is the full balance sheet of a group.
type GroupSummary struct {
	Group   *models.Group
	Members []MemberSummary
	Debts   []ledger.Edge
}

// GroupService handles group lifecycle, membership and balance sheets.
type GroupService struct {
	store    storage.Store
	notifier notify.Notifier
}

// NewGroupService creates a new group service.
func NewGroupService(store storage.Store, notifier notify.Notifier) *GroupService {
	return &GroupService{store: store, notifier: notifier}
}

// CreateGroup creates a group with the caller as admin and notifies the
// invited members.
func (s *GroupService) CreateGroup(ctx context.Context, userID string, in CreateGroupInput) (*models.Group, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidf("group name is required")
	}

	members := []models.GroupMember{{UserID: userID, Role: models.RoleAdmin}}
	seen := map[string]bool{userID: true}
	for _, id := range in.MemberIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		members = append(members, models.GroupMember{UserID: id, Role: models.RoleMember})
	}

	// Invited members must exist.
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if users[m.UserID] == nil {
			return nil, invalidf("unknown member: %s", m.UserID)
		}
	}

	group := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedBy:   userID,
		Members:     members,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("failed to create group", "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("group created", "group_id", group.ID, "members", len(group.Members))

	creator := users[userID]
	for _, m := range group.Members {
		if m.UserID == userID {
			continue
		}
		invitee := users[m.UserID]
		event := notify.Event{
			Type:           notify.EventGroupInvite,
			RecipientEmail: invitee.Email,
			RecipientName:  invitee.Name,
			ActorName:      creator.Name,
			GroupName:      group.Name,
		}
		if err := s.notifier.Notify(ctx, event); err != nil {
			slog.Warn("failed to notify invitee", "group_id", group.ID, "user_id", m.UserID, "error", err)
		}
	}

	return group, nil
}

// GetGroup returns a group the user is a member of.
func (s *GroupService) GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrPermissionDenied
	}
	return group, nil
}

// ListGroups returns the groups the user belongs to.
func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.ListGroupsByMember(ctx, userID)
}

// Summary computes the group's balance sheet: one net position per member
// and the minimal settle-up transfers.
func (s *GroupService) Summary(ctx context.Context, userID, groupID string) (*GroupSummary, error) {
	group, err := s.GetGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListGroupExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListGroupSettlements(ctx, groupID)
	if err != nil {
		return nil, err
	}

	sheet := ledger.GroupSheet(group.MemberIDs(), toLedgerExpenses(expenses), toLedgerSettlements(settlements))
	if sheet.Diagnostics.SkippedRecords > 0 || sheet.Diagnostics.SkippedSplits > 0 {
		slog.Warn("group sheet skipped malformed records",
			"group_id", groupID,
			"skipped_records", sheet.Diagnostics.SkippedRecords,
			"skipped_splits", sheet.Diagnostics.SkippedSplits,
		)
	}

	users, err := s.store.GetUsersByIDs(ctx, group.MemberIDs())
	if err != nil {
		return nil, err
	}

	summary := &GroupSummary{Group: group, Debts: sheet.Edges}
	for _, m := range sheet.Members {
		row := MemberSummary{UserID: m.UserID, Net: m.Net}
		if u := users[m.UserID]; u != nil {
			row.Name = u.Name
		}
		summary.Members = append(summary.Members, row)
	}

	return summary, nil
}

// DeleteGroup removes a group and everything scoped to it. Admins only.
func (s *GroupService) DeleteGroup(ctx context.Context, userID, groupID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !group.IsAdmin(userID) {
		return ErrPermissionDenied
	}

	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		return err
	}

	slog.Info("group deleted", "group_id", groupID, "deleted_by", userID)
	return nil
}

// AddComment appends a comment to the group discussion. Members only.
func (s *GroupService) AddComment(ctx context.Context, userID, groupID, text string) (*models.Group, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalidf("comment text is required")
	}

	if _, err := s.GetGroup(ctx, userID, groupID); err != nil {
		return nil, err
	}

	comment := models.Comment{UserID: userID, Text: text}
	if err := s.store.AddGroupComment(ctx, groupID, comment); err != nil {
		return nil, err
	}

	return s.store.GetGroup(ctx, groupID)
}

// RemindDebtors sends a balance reminder to every member who owes the group.
// Returns the number of reminders sent.
func (s *GroupService) RemindDebtors(ctx context.Context, userID, groupID string) (int, error) {
	summary, err := s.Summary(ctx, userID, groupID)
	if err != nil {
		return 0, err
	}

	users, err := s.store.GetUsersByIDs(ctx, summary.Group.MemberIDs())
	if err != nil {
		return 0, err
	}
	sender := users[userID]
	if sender == nil {
		return 0, ErrNotFound
	}

	sent := 0
	for _, m := range summary.Members {
		if m.Net >= 0 || m.UserID == userID {
			continue
		}
		recipient := users[m.UserID]
		if recipient == nil {
			continue
		}
		event := notify.Event{
			Type:           notify.EventBalanceReminder,
			RecipientEmail: recipient.Email,
			RecipientName:  recipient.Name,
			ActorName:      sender.Name,
			Amount:         -m.Net,
			GroupName:      summary.Group.Name,
		}
		if err := s.notifier.Notify(ctx, event); err != nil {
			slog.Warn("failed to send reminder", "group_id", groupID, "user_id", m.UserID, "error", err)
			continue
		}
		sent++
	}

	slog.Info("group reminders sent", "group_id", groupID, "count", sent)
	return sent, nil
}
