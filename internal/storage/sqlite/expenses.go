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

// CreateExpense persists a new expense and its splits to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, description, amount, category, date, paid_by, split_type, group_id, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Description, expense.Amount,
		nullString(expense.Category), nullInt64(expense.Date),
		expense.PaidByUserID, string(expense.SplitType),
		nullString(expense.GroupID), expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, user_id, amount, paid) VALUES (?, ?, ?, ?)",
			expense.ID, split.UserID, split.Amount, split.Paid,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including splits and comments.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense, err := s.scanExpense(s.db.QueryRowContext(ctx,
		`SELECT id, description, amount, category, date, paid_by, split_type, group_id, created_by, created_at
		 FROM expenses WHERE id = ?`,
		id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.attachSplits(ctx, []*models.Expense{expense}); err != nil {
		return nil, err
	}
	if err := s.attachExpenseComments(ctx, []*models.Expense{expense}); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpensesByParticipant retrieves every expense, in any scope, where the
// user is the payer or holds a split.
func (s *SQLiteStore) ListExpensesByParticipant(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT DISTINCT e.id, e.description, e.amount, e.category, e.date, e.paid_by, e.split_type, e.group_id, e.created_by, e.created_at
		 FROM expenses e
		 LEFT JOIN expense_splits sp ON sp.expense_id = e.id
		 WHERE e.paid_by = ? OR sp.user_id = ?
		 ORDER BY e.created_at DESC`,
		userID, userID,
	)
}

// ListPersonalExpenses retrieves non-group expenses where any of the given
// users is the payer or holds a split.
func (s *SQLiteStore) ListPersonalExpenses(ctx context.Context, userIDs ...string) ([]*models.Expense, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	in := "(?" + repeatPlaceholder(len(userIDs)-1) + ")"
	query := `
		SELECT DISTINCT e.id, e.description, e.amount, e.category, e.date, e.paid_by, e.split_type, e.group_id, e.created_by, e.created_at
		FROM expenses e
		LEFT JOIN expense_splits sp ON sp.expense_id = e.id
		WHERE e.group_id IS NULL AND (e.paid_by IN ` + in + ` OR sp.user_id IN ` + in + `)
		ORDER BY e.created_at DESC`

	args := make([]interface{}, 0, 2*len(userIDs))
	for _, id := range userIDs {
		args = append(args, id)
	}
	for _, id := range userIDs {
		args = append(args, id)
	}

	return s.listExpenses(ctx, query, args...)
}

// ListGroupExpenses retrieves all expenses scoped to a group, newest first.
func (s *SQLiteStore) ListGroupExpenses(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT id, description, amount, category, date, paid_by, split_type, group_id, created_by, created_at
		 FROM expenses WHERE group_id = ?
		 ORDER BY created_at DESC`,
		groupID,
	)
}

// AddExpenseComment appends a comment to an expense.
func (s *SQLiteStore) AddExpenseComment(ctx context.Context, expenseID string, comment models.Comment) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM expenses WHERE id = ?", expenseID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check expense existence: %w", err)
	}

	createdAt := comment.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO expense_comments (expense_id, user_id, text, created_at) VALUES (?, ?, ?, ?)",
		expenseID, comment.UserID, comment.Text, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// listExpenses runs an expense query and attaches splits and comments to the
// results.
func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...interface{}) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := s.scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if err := s.attachSplits(ctx, expenses); err != nil {
		return nil, err
	}
	if err := s.attachExpenseComments(ctx, expenses); err != nil {
		return nil, err
	}

	return expenses, nil
}

func (s *SQLiteStore) scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var category, groupID sql.NullString
	var date sql.NullInt64
	var splitType string

	err := row.Scan(
		&expense.ID,
		&expense.Description,
		&expense.Amount,
		&category,
		&date,
		&expense.PaidByUserID,
		&splitType,
		&groupID,
		&expense.CreatedBy,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	expense.Category = category.String
	expense.Date = date.Int64
	expense.SplitType = models.SplitType(splitType)
	expense.GroupID = groupID.String

	return expense, nil
}

// attachSplits loads the splits for each expense in one query.
func (s *SQLiteStore) attachSplits(ctx context.Context, expenses []*models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	byID := make(map[string]*models.Expense, len(expenses))
	args := make([]interface{}, len(expenses))
	for i, e := range expenses {
		byID[e.ID] = e
		args[i] = e.ID
	}

	query := `
		SELECT expense_id, user_id, amount, paid
		FROM expense_splits
		WHERE expense_id IN (?` + repeatPlaceholder(len(expenses)-1) + `)
		ORDER BY user_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID string
		var split models.Split
		if err := rows.Scan(&expenseID, &split.UserID, &split.Amount, &split.Paid); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		if e, ok := byID[expenseID]; ok {
			e.Splits = append(e.Splits, split)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}

	return nil
}

// attachExpenseComments loads the comments for each expense in one query.
func (s *SQLiteStore) attachExpenseComments(ctx context.Context, expenses []*models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	byID := make(map[string]*models.Expense, len(expenses))
	args := make([]interface{}, len(expenses))
	for i, e := range expenses {
		byID[e.ID] = e
		args[i] = e.ID
	}

	query := `
		SELECT expense_id, user_id, text, created_at
		FROM expense_comments
		WHERE expense_id IN (?` + repeatPlaceholder(len(expenses)-1) + `)
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to get comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID string
		var comment models.Comment
		if err := rows.Scan(&expenseID, &comment.UserID, &comment.Text, &comment.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan comment: %w", err)
		}
		if e, ok := byID[expenseID]; ok {
			e.Comments = append(e.Comments, comment)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate comments: %w", err)
	}

	return nil
}

// nullString maps the empty string to NULL.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// nullInt64 maps zero to NULL.
func nullInt64(n int64) interface{} {
	if n == 0 {
		return nil
	}
	return n
}
