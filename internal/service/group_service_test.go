package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/splitsmart/splitsmart/internal/models"
	"github.com/splitsmart/splitsmart/internal/notify"
)

func createTestGroup(t *testing.T, env *testEnv, memberIDs ...string) *models.Group {
	t.Helper()
	group, err := env.groups.CreateGroup(context.Background(), env.alice.ID, CreateGroupInput{
		Name:      "Ski Trip",
		MemberIDs: memberIDs,
	})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return group
}

func TestCreateGroup(t *testing.T) {
	env := newTestEnv(t)

	group := createTestGroup(t, env, env.bob.ID, env.carol.ID, env.bob.ID)

	if len(group.Members) != 3 {
		t.Fatalf("expected 3 members after dedupe, got %d", len(group.Members))
	}
	if !group.IsAdmin(env.alice.ID) {
		t.Error("creator should be admin")
	}
	if group.IsAdmin(env.bob.ID) {
		t.Error("invitee should not be admin")
	}

	invites := env.notifier.byType(notify.EventGroupInvite)
	if len(invites) != 2 {
		t.Errorf("expected 2 invite notifications, got %d", len(invites))
	}
}

func TestCreateGroupUnknownMember(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.groups.CreateGroup(context.Background(), env.alice.ID, CreateGroupInput{
		Name:      "Ghosts",
		MemberIDs: []string{"nobody"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGroupSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	group := createTestGroup(t, env, env.bob.ID, env.carol.ID)

	_, err := env.expenses.CreateExpense(ctx, env.alice.ID, CreateExpenseInput{
		Description:  "Cabin",
		Amount:       90,
		PaidByUserID: env.alice.ID,
		GroupID:      group.ID,
		Splits: []SplitInput{
			{UserID: env.alice.ID, Amount: 30},
			{UserID: env.bob.ID, Amount: 30},
			{UserID: env.carol.ID, Amount: 30},
		},
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	_, err = env.settlements.CreateSettlement(ctx, env.bob.ID, CreateSettlementInput{
		Amount:           30,
		PaidByUserID:     env.bob.ID,
		ReceivedByUserID: env.alice.ID,
		GroupID:          group.ID,
	})
	if err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}

	summary, err := env.groups.Summary(ctx, env.bob.ID, group.ID)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	nets := make(map[string]float64)
	for _, m := range summary.Members {
		nets[m.UserID] = m.Net
		if m.Name == "" {
			t.Errorf("member %s has no resolved name", m.UserID)
		}
	}
	if math.Abs(nets[env.alice.ID]-30) > 1e-9 {
		t.Errorf("Alice net = %v, want 30", nets[env.alice.ID])
	}
	if math.Abs(nets[env.bob.ID]) > 1e-9 {
		t.Errorf("Bob net = %v, want 0 after settling", nets[env.bob.ID])
	}
	if math.Abs(nets[env.carol.ID]+30) > 1e-9 {
		t.Errorf("Carol net = %v, want -30", nets[env.carol.ID])
	}

	if len(summary.Debts) != 1 || summary.Debts[0].From != env.carol.ID || summary.Debts[0].To != env.alice.ID {
		t.Errorf("expected single Carol->Alice debt, got %+v", summary.Debts)
	}

	// Non-members cannot see the sheet.
	dave := env.createUser(t, ctx, "dave@example.com", "Dave")
	if _, err := env.groups.Summary(ctx, dave.ID, group.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestDeleteGroupAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	group := createTestGroup(t, env, env.bob.ID)

	if err := env.groups.DeleteGroup(ctx, env.bob.ID, group.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied for non-admin, got %v", err)
	}
	if err := env.groups.DeleteGroup(ctx, env.alice.ID, group.ID); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	if _, err := env.groups.GetGroup(ctx, env.alice.ID, group.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRemindDebtors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	group := createTestGroup(t, env, env.bob.ID, env.carol.ID)

	_, err := env.expenses.CreateExpense(ctx, env.alice.ID, CreateExpenseInput{
		Description:  "Lift tickets",
		Amount:       90,
		PaidByUserID: env.alice.ID,
		GroupID:      group.ID,
		Splits: []SplitInput{
			{UserID: env.alice.ID, Amount: 30},
			{UserID: env.bob.ID, Amount: 30},
			{UserID: env.carol.ID, Amount: 30},
		},
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	sent, err := env.groups.RemindDebtors(ctx, env.alice.ID, group.ID)
	if err != nil {
		t.Fatalf("RemindDebtors failed: %v", err)
	}
	if sent != 2 {
		t.Errorf("sent = %d, want 2 (Bob and Carol owe)", sent)
	}

	reminders := env.notifier.byType(notify.EventBalanceReminder)
	if len(reminders) != 2 {
		t.Fatalf("expected 2 reminder events, got %d", len(reminders))
	}
	for _, r := range reminders {
		if math.Abs(r.Amount-30) > 1e-9 {
			t.Errorf("reminder amount = %v, want 30", r.Amount)
		}
		if r.GroupName != group.Name {
			t.Errorf("reminder group = %q, want %q", r.GroupName, group.Name)
		}
	}
}

func TestGroupComments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	group := createTestGroup(t, env, env.bob.ID)

	updated, err := env.groups.AddComment(ctx, env.bob.ID, group.ID, "who booked the cabin?")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if len(updated.Comments) != 1 {
		t.Errorf("expected 1 comment, got %d", len(updated.Comments))
	}

	if _, err := env.groups.AddComment(ctx, env.carol.ID, group.ID, "hi"); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied for non-member, got %v", err)
	}
}
