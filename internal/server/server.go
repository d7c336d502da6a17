// Package server exposes the application services over a JSON HTTP API.
package server

import (
	"net/http"

	"github.com/splitsmart/splitsmart/internal/auth"
	"github.com/splitsmart/splitsmart/internal/middleware"
	"github.com/splitsmart/splitsmart/internal/service"
)

// Server holds the application services and maps HTTP routes onto them.
type Server struct {
	auth        *service.AuthService
	expenses    *service.ExpenseService
	settlements *service.SettlementService
	groups      *service.GroupService
	contacts    *service.ContactService
	dashboard   *service.DashboardService
	reminders   *service.ReminderService
	jwtManager  *auth.JWTManager
}

// New creates a server over the given services.
func New(
	authService *service.AuthService,
	expenses *service.ExpenseService,
	settlements *service.SettlementService,
	groups *service.GroupService,
	contacts *service.ContactService,
	dashboard *service.DashboardService,
	reminders *service.ReminderService,
	jwtManager *auth.JWTManager,
) *Server {
	return &Server{
		auth:        authService,
		expenses:    expenses,
		settlements: settlements,
		groups:      groups,
		contacts:    contacts,
		dashboard:   dashboard,
		reminders:   reminders,
		jwtManager:  jwtManager,
	}
}

// Handler builds the route table. Everything except registration and login
// requires a valid bearer token.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	authed := middleware.RequireAuth(s.jwtManager)
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(h))
	}

	protected("GET /api/auth/me", s.handleMe)
	protected("GET /api/users/search", s.handleSearchUsers)

	protected("POST /api/expenses", s.handleCreateExpense)
	protected("GET /api/expenses", s.handleListExpenses)
	protected("GET /api/expenses/{id}", s.handleGetExpense)
	protected("POST /api/expenses/{id}/comments", s.handleAddExpenseComment)

	protected("POST /api/settlements", s.handleCreateSettlement)
	protected("GET /api/settlements", s.handleListSettlements)

	protected("POST /api/groups", s.handleCreateGroup)
	protected("GET /api/groups", s.handleListGroups)
	protected("GET /api/groups/{id}", s.handleGetGroup)
	protected("DELETE /api/groups/{id}", s.handleDeleteGroup)
	protected("GET /api/groups/{id}/summary", s.handleGroupSummary)
	protected("POST /api/groups/{id}/comments", s.handleAddGroupComment)
	protected("POST /api/groups/{id}/remind", s.handleRemindGroup)

	protected("GET /api/contacts", s.handleListContacts)
	protected("GET /api/contacts/{id}", s.handleGetContact)
	protected("POST /api/contacts/{id}/hide", s.handleHideContact)
	protected("POST /api/contacts/{id}/remind", s.handleRemindContact)
	protected("GET /api/contacts/{id}/messages", s.handleContactMessages)
	protected("POST /api/contacts/{id}/messages", s.handleSendContactMessage)

	protected("GET /api/dashboard", s.handleDashboard)
	protected("GET /api/dashboard/balances", s.handleDashboardBalances)
	protected("GET /api/dashboard/spending", s.handleDashboardSpending)

	protected("GET /api/reminders/preferences", s.handleListReminderPreferences)
	protected("PUT /api/reminders/preferences", s.handleSetReminderPreference)
	protected("DELETE /api/reminders/preferences", s.handleDeleteReminderPreference)

	return mux
}
