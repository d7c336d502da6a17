// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitsmart/splitsmart/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for persistence operations. This abstraction
// allows swapping storage backends (SQLite, PostgreSQL, etc.) without
// changing the service layer.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users keyed by ID. Users that do not
	// exist are omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// SearchUsers finds users whose name or email contains the query,
	// excluding the given user. Used for participant pickers.
	SearchUsers(ctx context.Context, query, excludeUserID string) ([]*models.User, error)

	// CreateExpense persists a new expense with its splits.
	// Generates ID and CreatedAt when unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID, including splits and comments.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListExpensesByParticipant retrieves every expense, in any scope, where
	// the user is the payer or holds a split.
	ListExpensesByParticipant(ctx context.Context, userID string) ([]*models.Expense, error)

	// ListPersonalExpenses retrieves non-group expenses where any of the
	// given users is the payer or holds a split.
	ListPersonalExpenses(ctx context.Context, userIDs ...string) ([]*models.Expense, error)

	// ListGroupExpenses retrieves all expenses scoped to a group, newest
	// first.
	ListGroupExpenses(ctx context.Context, groupID string) ([]*models.Expense, error)

	// AddExpenseComment appends a comment to an expense.
	AddExpenseComment(ctx context.Context, expenseID string, comment models.Comment) error

	// CreateSettlement persists a new settlement.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByParticipant retrieves every settlement, in any scope,
	// where the user paid or received.
	ListSettlementsByParticipant(ctx context.Context, userID string) ([]*models.Settlement, error)

	// ListPersonalSettlementsBetween retrieves non-group settlements between
	// exactly the two users, in either direction.
	ListPersonalSettlementsBetween(ctx context.Context, userA, userB string) ([]*models.Settlement, error)

	// ListGroupSettlements retrieves all settlements scoped to a group,
	// newest first.
	ListGroupSettlements(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// CreateGroup persists a new group with its members.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID, including members and comments.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// ListGroupsByMember retrieves all groups the user belongs to.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// DeleteGroup removes a group and its expenses and settlements.
	DeleteGroup(ctx context.Context, id string) error

	// AddGroupComment appends a comment to a group.
	AddGroupComment(ctx context.Context, groupID string, comment models.Comment) error

	// HideContact marks a counterparty hidden from the owner's contact list.
	// Idempotent.
	HideContact(ctx context.Context, ownerUserID, contactUserID string) error

	// ListHiddenContacts returns the contact user ids the owner has hidden.
	ListHiddenContacts(ctx context.Context, ownerUserID string) ([]string, error)

	// AddContactMessage appends a message to the conversation between the two
	// users. The pair is unordered; the sender must be one of the two.
	AddContactMessage(ctx context.Context, userA, userB string, message models.ContactMessage) error

	// ListContactMessages returns the conversation between the two users,
	// oldest first. The pair is unordered.
	ListContactMessages(ctx context.Context, userA, userB string) ([]models.ContactMessage, error)

	// UpsertReminderPreference creates or updates a reminder preference for
	// the (user, scope) pair.
	UpsertReminderPreference(ctx context.Context, pref *models.ReminderPreference) error

	// ListReminderPreferences returns all of a user's reminder preferences.
	ListReminderPreferences(ctx context.Context, userID string) ([]*models.ReminderPreference, error)

	// DeleteReminderPreference removes a preference for the (user, scope)
	// pair if present.
	DeleteReminderPreference(ctx context.Context, userID string, scopeType models.ReminderScope, scopeID string) error

	// Close releases any resources held by the store.
	Close() error
}
