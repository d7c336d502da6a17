package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/splitsmart/splitsmart/internal/ledger"
	"github.com/splitsmart/splitsmart/internal/models"
	"github.com/splitsmart/splitsmart/internal/notify"
	"github.com/splitsmart/splitsmart/internal/storage"
)

// Contact is a counterparty from the user's personal expense history,
// together with the net personal balance. Balance > 0 means the contact owes
// the user.
type Contact struct {
	User    *models.User
	Balance float64
}

// ContactService derives the user's contact list and pairwise balances.
type ContactService struct {
	store    storage.Store
	notifier notify.Notifier
}

// NewContactService creates a new contact service.
func NewContactService(store storage.Store, notifier notify.Notifier) *ContactService {
	return &ContactService{store: store, notifier: notifier}
}

// ListContacts returns every user the caller shares personal expenses or
// settlements with, minus hidden contacts, sorted by name.
func (s *ContactService) ListContacts(ctx context.Context, userID string) ([]Contact, error) {
	expenses, err := s.store.ListPersonalExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlementsByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	counterparties := make(map[string]bool)
	for _, e := range expenses {
		if !e.Involves(userID) {
			continue
		}
		if e.PaidByUserID != userID {
			counterparties[e.PaidByUserID] = true
		}
		for _, sp := range e.Splits {
			if sp.UserID != userID {
				counterparties[sp.UserID] = true
			}
		}
	}
	for _, st := range settlements {
		if st.GroupID != "" {
			continue
		}
		if st.PaidByUserID != userID {
			counterparties[st.PaidByUserID] = true
		}
		if st.ReceivedByUserID != userID {
			counterparties[st.ReceivedByUserID] = true
		}
	}

	hidden, err := s.store.ListHiddenContacts(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, id := range hidden {
		delete(counterparties, id)
	}

	ids := make([]string, 0, len(counterparties))
	for id := range counterparties {
		ids = append(ids, id)
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	contacts := make([]Contact, 0, len(ids))
	for _, id := range ids {
		user := users[id]
		if user == nil {
			continue
		}
		balance, err := s.Balance(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, Contact{User: user, Balance: balance})
	}

	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].User.Name != contacts[j].User.Name {
			return contacts[i].User.Name < contacts[j].User.Name
		}
		return contacts[i].User.ID < contacts[j].User.ID
	})

	return contacts, nil
}

// resolveContact validates the pair and loads the contact. A pairwise
// computation needs two distinct, existing users.
func (s *ContactService) resolveContact(ctx context.Context, userID, contactID string) (*models.User, error) {
	if contactID == "" || contactID == userID {
		return nil, invalidf("invalid contact")
	}
	contact, err := s.store.GetUserByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contact, nil
}

// Balance computes the personal net between the user and a contact.
// Positive means the contact owes the user.
func (s *ContactService) Balance(ctx context.Context, userID, contactID string) (float64, error) {
	if _, err := s.resolveContact(ctx, userID, contactID); err != nil {
		return 0, err
	}

	expenses, err := s.store.ListPersonalExpenses(ctx, userID, contactID)
	if err != nil {
		return 0, err
	}
	settlements, err := s.store.ListPersonalSettlementsBetween(ctx, userID, contactID)
	if err != nil {
		return 0, err
	}

	return ledger.PairwiseNet(userID, contactID, toLedgerExpenses(expenses), toLedgerSettlements(settlements)), nil
}

// SharedHistory returns the personal expenses and settlements between the
// user and a contact, for the contact detail screen.
func (s *ContactService) SharedHistory(ctx context.Context, userID, contactID string) ([]*models.Expense, []*models.Settlement, error) {
	if _, err := s.resolveContact(ctx, userID, contactID); err != nil {
		return nil, nil, err
	}

	expenses, err := s.store.ListPersonalExpenses(ctx, userID, contactID)
	if err != nil {
		return nil, nil, err
	}

	// Keep only expenses involving both users; one-sided records belong to
	// other relationships.
	shared := expenses[:0]
	for _, e := range expenses {
		if e.Involves(userID) && e.Involves(contactID) {
			shared = append(shared, e)
		}
	}

	settlements, err := s.store.ListPersonalSettlementsBetween(ctx, userID, contactID)
	if err != nil {
		return nil, nil, err
	}

	return shared, settlements, nil
}

// HideContact removes a contact from the user's list. Balances are
// unaffected.
func (s *ContactService) HideContact(ctx context.Context, userID, contactID string) error {
	if _, err := s.resolveContact(ctx, userID, contactID); err != nil {
		return err
	}
	return s.store.HideContact(ctx, userID, contactID)
}

// Conversation returns the one-to-one message thread with a contact, oldest
// first.
func (s *ContactService) Conversation(ctx context.Context, userID, contactID string) ([]models.ContactMessage, error) {
	if _, err := s.resolveContact(ctx, userID, contactID); err != nil {
		return nil, err
	}
	return s.store.ListContactMessages(ctx, userID, contactID)
}

// SendMessage appends a message to the thread with a contact, notifies the
// contact, and returns the updated thread.
func (s *ContactService) SendMessage(ctx context.Context, userID, contactID, text string) ([]models.ContactMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalidf("message text is required")
	}
	contact, err := s.resolveContact(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	message := models.ContactMessage{SenderID: userID, Text: text}
	if err := s.store.AddContactMessage(ctx, userID, contactID, message); err != nil {
		return nil, err
	}

	// Delivery is best effort; the message is already stored.
	if sender, err := s.store.GetUserByID(ctx, userID); err == nil {
		event := notify.Event{
			Type:           notify.EventContactMessage,
			RecipientEmail: contact.Email,
			RecipientName:  contact.Name,
			ActorName:      sender.Name,
			Description:    text,
		}
		if err := s.notifier.Notify(ctx, event); err != nil {
			slog.Warn("failed to notify contact", "user_id", userID, "contact_id", contactID, "error", err)
		}
	}

	return s.store.ListContactMessages(ctx, userID, contactID)
}

// Remind sends a balance reminder to a contact who owes the user.
func (s *ContactService) Remind(ctx context.Context, userID, contactID string) error {
	balance, err := s.Balance(ctx, userID, contactID)
	if err != nil {
		return err
	}
	if balance <= 0 {
		return invalidf("contact does not owe you anything")
	}

	users, err := s.store.GetUsersByIDs(ctx, []string{userID, contactID})
	if err != nil {
		return err
	}
	sender, recipient := users[userID], users[contactID]
	if sender == nil || recipient == nil {
		return ErrNotFound
	}

	event := notify.Event{
		Type:           notify.EventBalanceReminder,
		RecipientEmail: recipient.Email,
		RecipientName:  recipient.Name,
		ActorName:      sender.Name,
		Amount:         balance,
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		return err
	}

	slog.Info("contact reminder sent", "user_id", userID, "contact_id", contactID, "amount", balance)
	return nil
}
