package server

import (
	"net/http"

	"github.com/splitsmart/splitsmart/internal/middleware"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	overview, err := s.dashboard.Overview(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboardResponse{
		Balances: toBalanceOverviewResponse(&overview.Balances),
		Spending: toSpendingOverviewResponse(&overview.Spending),
		Groups:   toGroupResponses(overview.Groups),
	})
}

func (s *Server) handleDashboardBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.dashboard.Balances(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toBalanceOverviewResponse(balances))
}

func (s *Server) handleDashboardSpending(w http.ResponseWriter, r *http.Request) {
	spending, err := s.dashboard.Spending(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSpendingOverviewResponse(spending))
}
