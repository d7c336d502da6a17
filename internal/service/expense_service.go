package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"

	"github.com/splitsmart/splitsmart/internal/models"
	"github.com/splitsmart/splitsmart/internal/notify"
	"github.com/splitsmart/splitsmart/internal/storage"
)

// splitSumTolerance is how far the split amounts may drift from the expense
// total before the expense is rejected.
const splitSumTolerance = 0.01

// SplitInput is one participant share in a create request.
type SplitInput struct {
	UserID string
	Amount float64
}

// CreateExpenseInput carries a new expense.
type CreateExpenseInput struct {
	Description  string
	Amount       float64
	Category     string
	Date         int64
	PaidByUserID string
	SplitType    models.SplitType
	Splits       []SplitInput
	GroupID      string
}

// ExpenseService handles expense creation, listing and discussion.
type ExpenseService struct {
	store    storage.Store
	notifier notify.Notifier
}

// NewExpenseService creates a new expense service.
func NewExpenseService(store storage.Store, notifier notify.Notifier) *ExpenseService {
	return &ExpenseService{store: store, notifier: notifier}
}

// CreateExpense validates and persists a new expense, then notifies the
// other participants.
func (s *ExpenseService) CreateExpense(ctx context.Context, userID string, in CreateExpenseInput) (*models.Expense, error) {
	if err := s.validateExpense(ctx, userID, &in); err != nil {
		return nil, err
	}

	splits := make([]models.Split, 0, len(in.Splits))
	for _, sp := range in.Splits {
		splits = append(splits, models.Split{
			UserID: sp.UserID,
			Amount: sp.Amount,
			// The payer's own share is settled the moment they pay.
			Paid: sp.UserID == in.PaidByUserID,
		})
	}

	expense := &models.Expense{
		Description:  strings.TrimSpace(in.Description),
		Amount:       in.Amount,
		Category:     in.Category,
		Date:         in.Date,
		PaidByUserID: in.PaidByUserID,
		SplitType:    in.SplitType,
		Splits:       splits,
		GroupID:      in.GroupID,
		CreatedBy:    userID,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("failed to create expense", "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("expense created",
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"group_id", expense.GroupID,
		"splits", len(expense.Splits),
	)

	s.notifyParticipants(ctx, userID, expense)

	return expense, nil
}

// GetExpense returns an expense the user participates in.
func (s *ExpenseService) GetExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.authorize(ctx, userID, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpenses returns every expense the user participates in, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.store.ListExpensesByParticipant(ctx, userID)
}

// AddComment appends a comment to an expense the user participates in.
func (s *ExpenseService) AddComment(ctx context.Context, userID, expenseID, text string) (*models.Expense, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalidf("comment text is required")
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.authorize(ctx, userID, expense); err != nil {
		return nil, err
	}

	comment := models.Comment{UserID: userID, Text: text}
	if err := s.store.AddExpenseComment(ctx, expenseID, comment); err != nil {
		return nil, err
	}

	return s.store.GetExpense(ctx, expenseID)
}

// authorize checks the user may see the expense: they participate in it, or
// it belongs to a group they are a member of.
func (s *ExpenseService) authorize(ctx context.Context, userID string, expense *models.Expense) error {
	if expense.Involves(userID) || expense.CreatedBy == userID {
		return nil
	}
	if expense.GroupID != "" {
		group, err := s.store.GetGroup(ctx, expense.GroupID)
		if err == nil && group.HasMember(userID) {
			return nil
		}
	}
	return ErrPermissionDenied
}

func (s *ExpenseService) validateExpense(ctx context.Context, userID string, in *CreateExpenseInput) error {
	if strings.TrimSpace(in.Description) == "" {
		return invalidf("description is required")
	}
	if in.Amount <= 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return invalidf("amount must be positive")
	}
	if in.PaidByUserID == "" {
		return invalidf("payer is required")
	}
	if len(in.Splits) == 0 {
		return invalidf("at least one split is required")
	}

	switch in.SplitType {
	case models.SplitEqual, models.SplitPercentage, models.SplitExact:
	case "":
		in.SplitType = models.SplitExact
	default:
		return invalidf("unknown split type: %s", in.SplitType)
	}

	seen := make(map[string]bool, len(in.Splits))
	var sum float64
	for _, sp := range in.Splits {
		if sp.UserID == "" {
			return invalidf("split participant is required")
		}
		if seen[sp.UserID] {
			return invalidf("duplicate split participant: %s", sp.UserID)
		}
		seen[sp.UserID] = true
		if sp.Amount < 0 || math.IsNaN(sp.Amount) {
			return invalidf("split amount must be non-negative")
		}
		sum += sp.Amount
	}
	if math.Abs(sum-in.Amount) > splitSumTolerance {
		return invalidf("split amounts sum to %.2f, expected %.2f", sum, in.Amount)
	}

	if in.GroupID != "" {
		group, err := s.store.GetGroup(ctx, in.GroupID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !group.HasMember(userID) {
			return ErrPermissionDenied
		}
		if !group.HasMember(in.PaidByUserID) {
			return invalidf("payer is not a member of the group")
		}
		for id := range seen {
			if !group.HasMember(id) {
				return invalidf("split participant %s is not a member of the group", id)
			}
		}
		return nil
	}

	// Personal expenses must involve the creator.
	if in.PaidByUserID != userID && !seen[userID] {
		return invalidf("you must participate in a personal expense")
	}
	return nil
}

// notifyParticipants tells every split holder except the creator about the
// new expense. Delivery is best effort.
func (s *ExpenseService) notifyParticipants(ctx context.Context, creatorID string, expense *models.Expense) {
	ids := []string{creatorID}
	for _, sp := range expense.Splits {
		if sp.UserID != creatorID {
			ids = append(ids, sp.UserID)
		}
	}

	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		slog.Warn("failed to load users for notification", "expense_id", expense.ID, "error", err)
		return
	}
	creator := users[creatorID]
	if creator == nil {
		return
	}

	var groupName string
	if expense.GroupID != "" {
		if group, err := s.store.GetGroup(ctx, expense.GroupID); err == nil {
			groupName = group.Name
		}
	}

	for _, sp := range expense.Splits {
		if sp.UserID == creatorID {
			continue
		}
		recipient := users[sp.UserID]
		if recipient == nil {
			continue
		}
		event := notify.Event{
			Type:           notify.EventExpenseAdded,
			RecipientEmail: recipient.Email,
			RecipientName:  recipient.Name,
			ActorName:      creator.Name,
			Description:    expense.Description,
			Amount:         sp.Amount,
			GroupName:      groupName,
		}
		if err := s.notifier.Notify(ctx, event); err != nil {
			slog.Warn("failed to notify participant",
				"expense_id", expense.ID,
				"user_id", sp.UserID,
				"error", err,
			)
		}
	}
}
