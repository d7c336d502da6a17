package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/splitsmart/splitsmart/internal/models"
	"github.com/splitsmart/splitsmart/internal/notify"
	"github.com/splitsmart/splitsmart/internal/storage/sqlite"
)

// captureNotifier records events instead of delivering them.
type captureNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *captureNotifier) Notify(ctx context.Context, event notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *captureNotifier) Close() error { return nil }

func (n *captureNotifier) byType(t notify.EventType) []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notify.Event
	for _, e := range n.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// testEnv wires every service against a real SQLite store.
type testEnv struct {
	store    *sqlite.SQLiteStore
	notifier *captureNotifier

	expenses    *ExpenseService
	settlements *SettlementService
	groups      *GroupService
	contacts    *ContactService
	dashboard   *DashboardService
	reminders   *ReminderService

	alice *models.User
	bob   *models.User
	carol *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	notifier := &captureNotifier{}
	env := &testEnv{
		store:       store,
		notifier:    notifier,
		expenses:    NewExpenseService(store, notifier),
		settlements: NewSettlementService(store, notifier),
		groups:      NewGroupService(store, notifier),
		contacts:    NewContactService(store, notifier),
		dashboard:   NewDashboardService(store),
		reminders:   NewReminderService(store),
	}

	ctx := context.Background()
	env.alice = env.createUser(t, ctx, "alice@example.com", "Alice")
	env.bob = env.createUser(t, ctx, "bob@example.com", "Bob")
	env.carol = env.createUser(t, ctx, "carol@example.com", "Carol")

	return env
}

func (env *testEnv) createUser(t *testing.T, ctx context.Context, email, name string) *models.User {
	t.Helper()
	user := models.NewUser(email, name, "test-hash")
	if err := env.store.CreateUser(ctx, user); err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

// splitEqually builds an even two-way split with the payer's share first.
func splitEqually(payer, other string, total float64) []SplitInput {
	return []SplitInput{
		{UserID: payer, Amount: total / 2},
		{UserID: other, Amount: total / 2},
	}
}
