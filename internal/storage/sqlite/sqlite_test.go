package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/splitsmart/splitsmart/internal/models"
	"github.com/splitsmart/splitsmart/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func mustCreateUser(t *testing.T, store *SQLiteStore, email, name string) *models.User {
	t.Helper()

	user := models.NewUser(email, name, "bcrypt-hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestSQLiteStoreUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@example.com", "Alice")
	bob := mustCreateUser(t, store, "bob@example.com", "Bob")

	t.Run("GetUserByEmail retrieves the user", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != alice.ID || got.Name != "Alice" || got.PasswordHash != "bcrypt-hash" {
			t.Errorf("unexpected user: %+v", got)
		}
	})

	t.Run("GetUserByID wraps ErrNotFound for missing users", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "nonexistent")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetUsersByIDs omits missing users", func(t *testing.T) {
		users, err := store.GetUsersByIDs(ctx, []string{alice.ID, bob.ID, "ghost"})
		if err != nil {
			t.Fatalf("GetUsersByIDs failed: %v", err)
		}
		if len(users) != 2 {
			t.Errorf("expected 2 users, got %d", len(users))
		}
		if users[alice.ID] == nil || users[bob.ID] == nil {
			t.Errorf("missing expected users in %v", users)
		}
	})

	t.Run("SearchUsers matches name and excludes the searcher", func(t *testing.T) {
		results, err := store.SearchUsers(ctx, "bob", alice.ID)
		if err != nil {
			t.Fatalf("SearchUsers failed: %v", err)
		}
		if len(results) != 1 || results[0].ID != bob.ID {
			t.Errorf("expected only Bob, got %+v", results)
		}

		results, err = store.SearchUsers(ctx, "example.com", bob.ID)
		if err != nil {
			t.Fatalf("SearchUsers failed: %v", err)
		}
		if len(results) != 1 || results[0].ID != alice.ID {
			t.Errorf("expected only Alice, got %+v", results)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup := models.NewUser("alice@example.com", "Alice Again", "hash")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("expected unique constraint error, got nil")
		}
	})
}

func TestSQLiteStoreExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@example.com", "Alice")
	bob := mustCreateUser(t, store, "bob@example.com", "Bob")
	carol := mustCreateUser(t, store, "carol@example.com", "Carol")

	expense := &models.Expense{
		Description:  "Dinner",
		Amount:       60,
		Category:     "Food",
		Date:         1717200000000,
		PaidByUserID: alice.ID,
		SplitType:    models.SplitEqual,
		CreatedBy:    alice.ID,
		Splits: []models.Split{
			{UserID: alice.ID, Amount: 30, Paid: true},
			{UserID: bob.ID, Amount: 30},
		},
	}

	t.Run("CreateExpense generates ID and timestamp", func(t *testing.T) {
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("expected expense ID to be generated")
		}
		if expense.CreatedAt == 0 {
			t.Error("expected CreatedAt to be set")
		}
	})

	t.Run("GetExpense retrieves splits and comments", func(t *testing.T) {
		comment := models.Comment{UserID: bob.ID, Text: "thanks!"}
		if err := store.AddExpenseComment(ctx, expense.ID, comment); err != nil {
			t.Fatalf("AddExpenseComment failed: %v", err)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Description != "Dinner" || got.Category != "Food" || got.Date != expense.Date {
			t.Errorf("unexpected expense: %+v", got)
		}
		if len(got.Splits) != 2 {
			t.Fatalf("expected 2 splits, got %d", len(got.Splits))
		}
		paid := got.SplitFor(alice.ID)
		if paid == nil || !paid.Paid {
			t.Errorf("expected Alice's split to be marked paid, got %+v", paid)
		}
		if len(got.Comments) != 1 || got.Comments[0].Text != "thanks!" {
			t.Errorf("unexpected comments: %+v", got.Comments)
		}
	})

	t.Run("AddExpenseComment on missing expense wraps ErrNotFound", func(t *testing.T) {
		err := store.AddExpenseComment(ctx, "ghost", models.Comment{UserID: bob.ID, Text: "hi"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListPersonalExpenses excludes group expenses", func(t *testing.T) {
		group := &models.Group{
			Name:      "Trip",
			CreatedBy: alice.ID,
			Members: []models.GroupMember{
				{UserID: alice.ID, Role: models.RoleAdmin},
				{UserID: bob.ID, Role: models.RoleMember},
			},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		grouped := &models.Expense{
			Description:  "Hotel",
			Amount:       200,
			PaidByUserID: alice.ID,
			SplitType:    models.SplitEqual,
			GroupID:      group.ID,
			CreatedBy:    alice.ID,
			Splits: []models.Split{
				{UserID: alice.ID, Amount: 100, Paid: true},
				{UserID: bob.ID, Amount: 100},
			},
		}
		if err := store.CreateExpense(ctx, grouped); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		personal, err := store.ListPersonalExpenses(ctx, alice.ID, bob.ID)
		if err != nil {
			t.Fatalf("ListPersonalExpenses failed: %v", err)
		}
		for _, e := range personal {
			if e.GroupID != "" {
				t.Errorf("personal listing contains group expense %s", e.ID)
			}
		}
		if len(personal) != 1 || personal[0].ID != expense.ID {
			t.Errorf("expected only the dinner expense, got %+v", personal)
		}

		inGroup, err := store.ListGroupExpenses(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListGroupExpenses failed: %v", err)
		}
		if len(inGroup) != 1 || inGroup[0].ID != grouped.ID {
			t.Errorf("expected only the hotel expense, got %+v", inGroup)
		}
	})

	t.Run("ListExpensesByParticipant spans scopes and roles", func(t *testing.T) {
		all, err := store.ListExpensesByParticipant(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListExpensesByParticipant failed: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("expected 2 expenses for Bob, got %d", len(all))
		}

		none, err := store.ListExpensesByParticipant(ctx, carol.ID)
		if err != nil {
			t.Fatalf("ListExpensesByParticipant failed: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("expected no expenses for Carol, got %d", len(none))
		}
	})
}

func TestSQLiteStoreSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@example.com", "Alice")
	bob := mustCreateUser(t, store, "bob@example.com", "Bob")
	carol := mustCreateUser(t, store, "carol@example.com", "Carol")

	s1 := &models.Settlement{
		Amount:           25,
		Note:             "venmo",
		PaidByUserID:     bob.ID,
		ReceivedByUserID: alice.ID,
		CreatedBy:        bob.ID,
	}
	s2 := &models.Settlement{
		Amount:           10,
		PaidByUserID:     alice.ID,
		ReceivedByUserID: bob.ID,
		CreatedBy:        alice.ID,
	}
	s3 := &models.Settlement{
		Amount:           5,
		PaidByUserID:     carol.ID,
		ReceivedByUserID: alice.ID,
		CreatedBy:        carol.ID,
	}
	for _, s := range []*models.Settlement{s1, s2, s3} {
		if err := store.CreateSettlement(ctx, s); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}
		if s.ID == "" {
			t.Error("expected settlement ID to be generated")
		}
	}

	t.Run("ListPersonalSettlementsBetween matches either direction", func(t *testing.T) {
		between, err := store.ListPersonalSettlementsBetween(ctx, alice.ID, bob.ID)
		if err != nil {
			t.Fatalf("ListPersonalSettlementsBetween failed: %v", err)
		}
		if len(between) != 2 {
			t.Errorf("expected 2 settlements between Alice and Bob, got %d", len(between))
		}
		for _, s := range between {
			if s.PaidByUserID == carol.ID || s.ReceivedByUserID == carol.ID {
				t.Errorf("settlement with Carol leaked into pair listing: %+v", s)
			}
		}
	})

	t.Run("ListSettlementsByParticipant includes both roles", func(t *testing.T) {
		mine, err := store.ListSettlementsByParticipant(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListSettlementsByParticipant failed: %v", err)
		}
		if len(mine) != 3 {
			t.Errorf("expected 3 settlements for Alice, got %d", len(mine))
		}
	})

	t.Run("note round-trips and empty note stays empty", func(t *testing.T) {
		between, err := store.ListPersonalSettlementsBetween(ctx, alice.ID, bob.ID)
		if err != nil {
			t.Fatalf("ListPersonalSettlementsBetween failed: %v", err)
		}
		var withNote, withoutNote bool
		for _, s := range between {
			if s.Note == "venmo" {
				withNote = true
			}
			if s.Note == "" {
				withoutNote = true
			}
		}
		if !withNote || !withoutNote {
			t.Errorf("expected one noted and one unnoted settlement, got %+v", between)
		}
	})
}

func TestSQLiteStoreGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@example.com", "Alice")
	bob := mustCreateUser(t, store, "bob@example.com", "Bob")

	group := &models.Group{
		Name:        "Roommates",
		Description: "Apartment 4B",
		CreatedBy:   alice.ID,
		Members: []models.GroupMember{
			{UserID: alice.ID, Role: models.RoleAdmin},
			{UserID: bob.ID, Role: models.RoleMember},
		},
	}

	t.Run("CreateGroup persists members with roles", func(t *testing.T) {
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Roommates" || got.Description != "Apartment 4B" {
			t.Errorf("unexpected group: %+v", got)
		}
		if len(got.Members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(got.Members))
		}
		if !got.IsAdmin(alice.ID) {
			t.Error("expected Alice to be admin")
		}
		if !got.HasMember(bob.ID) || got.IsAdmin(bob.ID) {
			t.Error("expected Bob to be a non-admin member")
		}
	})

	t.Run("ListGroupsByMember returns only memberships", func(t *testing.T) {
		carol := mustCreateUser(t, store, "carol@example.com", "Carol")

		groups, err := store.ListGroupsByMember(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListGroupsByMember failed: %v", err)
		}
		if len(groups) != 1 || groups[0].ID != group.ID {
			t.Errorf("expected one group for Bob, got %+v", groups)
		}

		none, err := store.ListGroupsByMember(ctx, carol.ID)
		if err != nil {
			t.Fatalf("ListGroupsByMember failed: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("expected no groups for Carol, got %+v", none)
		}
	})

	t.Run("group comments round-trip in order", func(t *testing.T) {
		c1 := models.Comment{UserID: alice.ID, Text: "rent is due", CreatedAt: 100}
		c2 := models.Comment{UserID: bob.ID, Text: "paying tomorrow", CreatedAt: 200}
		if err := store.AddGroupComment(ctx, group.ID, c1); err != nil {
			t.Fatalf("AddGroupComment failed: %v", err)
		}
		if err := store.AddGroupComment(ctx, group.ID, c2); err != nil {
			t.Fatalf("AddGroupComment failed: %v", err)
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(got.Comments) != 2 || got.Comments[0].Text != "rent is due" {
			t.Errorf("unexpected comments: %+v", got.Comments)
		}
	})

	t.Run("DeleteGroup cascades to expenses and settlements", func(t *testing.T) {
		expense := &models.Expense{
			Description:  "Utilities",
			Amount:       80,
			PaidByUserID: alice.ID,
			SplitType:    models.SplitEqual,
			GroupID:      group.ID,
			CreatedBy:    alice.ID,
			Splits: []models.Split{
				{UserID: alice.ID, Amount: 40, Paid: true},
				{UserID: bob.ID, Amount: 40},
			},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		settlement := &models.Settlement{
			Amount:           40,
			PaidByUserID:     bob.ID,
			ReceivedByUserID: alice.ID,
			GroupID:          group.ID,
			CreatedBy:        bob.ID,
		}
		if err := store.CreateSettlement(ctx, settlement); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}

		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}

		if _, err := store.GetGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if _, err := store.GetExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected group expense to be deleted, got %v", err)
		}
		remaining, err := store.ListSettlementsByParticipant(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListSettlementsByParticipant failed: %v", err)
		}
		if len(remaining) != 0 {
			t.Errorf("expected group settlements to be deleted, got %+v", remaining)
		}
	})

	t.Run("DeleteGroup on missing group wraps ErrNotFound", func(t *testing.T) {
		if err := store.DeleteGroup(ctx, "ghost"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStoreContactsAndReminders(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@example.com", "Alice")
	bob := mustCreateUser(t, store, "bob@example.com", "Bob")

	t.Run("HideContact is idempotent", func(t *testing.T) {
		if err := store.HideContact(ctx, alice.ID, bob.ID); err != nil {
			t.Fatalf("HideContact failed: %v", err)
		}
		if err := store.HideContact(ctx, alice.ID, bob.ID); err != nil {
			t.Fatalf("HideContact (repeat) failed: %v", err)
		}

		hidden, err := store.ListHiddenContacts(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListHiddenContacts failed: %v", err)
		}
		if len(hidden) != 1 || hidden[0] != bob.ID {
			t.Errorf("expected [bob], got %v", hidden)
		}

		// Hiding is one-directional.
		reverse, err := store.ListHiddenContacts(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListHiddenContacts failed: %v", err)
		}
		if len(reverse) != 0 {
			t.Errorf("expected no hidden contacts for Bob, got %v", reverse)
		}
	})

	t.Run("UpsertReminderPreference updates frequency in place", func(t *testing.T) {
		pref := &models.ReminderPreference{
			UserID:    alice.ID,
			ScopeType: models.ScopeContact,
			ScopeID:   bob.ID,
			Frequency: models.FrequencyWeekly,
		}
		if err := store.UpsertReminderPreference(ctx, pref); err != nil {
			t.Fatalf("UpsertReminderPreference failed: %v", err)
		}

		update := &models.ReminderPreference{
			UserID:    alice.ID,
			ScopeType: models.ScopeContact,
			ScopeID:   bob.ID,
			Frequency: models.FrequencyMonthly,
		}
		if err := store.UpsertReminderPreference(ctx, update); err != nil {
			t.Fatalf("UpsertReminderPreference (update) failed: %v", err)
		}

		prefs, err := store.ListReminderPreferences(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListReminderPreferences failed: %v", err)
		}
		if len(prefs) != 1 {
			t.Fatalf("expected a single preference, got %d", len(prefs))
		}
		if prefs[0].Frequency != models.FrequencyMonthly {
			t.Errorf("frequency = %s, want monthly", prefs[0].Frequency)
		}
	})

	t.Run("DeleteReminderPreference removes the pair", func(t *testing.T) {
		if err := store.DeleteReminderPreference(ctx, alice.ID, models.ScopeContact, bob.ID); err != nil {
			t.Fatalf("DeleteReminderPreference failed: %v", err)
		}
		prefs, err := store.ListReminderPreferences(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListReminderPreferences failed: %v", err)
		}
		if len(prefs) != 0 {
			t.Errorf("expected no preferences, got %+v", prefs)
		}
	})
}

func TestSQLiteStoreContactMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@example.com", "Alice")
	bob := mustCreateUser(t, store, "bob@example.com", "Bob")

	t.Run("messages are shared regardless of pair order", func(t *testing.T) {
		if err := store.AddContactMessage(ctx, alice.ID, bob.ID, models.ContactMessage{
			SenderID: alice.ID, Text: "hey, dinner tonight?", CreatedAt: 100,
		}); err != nil {
			t.Fatalf("AddContactMessage failed: %v", err)
		}
		if err := store.AddContactMessage(ctx, bob.ID, alice.ID, models.ContactMessage{
			SenderID: bob.ID, Text: "sure, 7pm", CreatedAt: 200,
		}); err != nil {
			t.Fatalf("AddContactMessage failed: %v", err)
		}

		messages, err := store.ListContactMessages(ctx, alice.ID, bob.ID)
		if err != nil {
			t.Fatalf("ListContactMessages failed: %v", err)
		}
		if len(messages) != 2 {
			t.Fatalf("expected 2 messages, got %+v", messages)
		}
		if messages[0].SenderID != alice.ID || messages[1].SenderID != bob.ID {
			t.Errorf("messages out of order: %+v", messages)
		}

		// The reversed pair reads the same thread.
		reversed, err := store.ListContactMessages(ctx, bob.ID, alice.ID)
		if err != nil {
			t.Fatalf("ListContactMessages failed: %v", err)
		}
		if len(reversed) != 2 {
			t.Errorf("expected the same thread for the reversed pair, got %+v", reversed)
		}
	})

	t.Run("CreatedAt defaults when unset", func(t *testing.T) {
		if err := store.AddContactMessage(ctx, alice.ID, bob.ID, models.ContactMessage{
			SenderID: alice.ID, Text: "see you there",
		}); err != nil {
			t.Fatalf("AddContactMessage failed: %v", err)
		}
		messages, err := store.ListContactMessages(ctx, alice.ID, bob.ID)
		if err != nil {
			t.Fatalf("ListContactMessages failed: %v", err)
		}
		last := messages[len(messages)-1]
		if last.CreatedAt == 0 {
			t.Error("expected generated CreatedAt")
		}
	})
}
