package server

import (
	"net/http"

	"github.com/splitsmart/splitsmart/internal/middleware"
	"github.com/splitsmart/splitsmart/internal/models"
	"github.com/splitsmart/splitsmart/internal/service"
)

type splitRequest struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string         `json:"description"`
		Amount      float64        `json:"amount"`
		Category    string         `json:"category"`
		Date        int64          `json:"date"`
		PaidBy      string         `json:"paid_by"`
		SplitType   string         `json:"split_type"`
		Splits      []splitRequest `json:"splits"`
		GroupID     string         `json:"group_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	splits := make([]service.SplitInput, 0, len(req.Splits))
	for _, sp := range req.Splits {
		splits = append(splits, service.SplitInput{UserID: sp.UserID, Amount: sp.Amount})
	}

	expense, err := s.expenses.CreateExpense(r.Context(), middleware.GetUserID(r.Context()), service.CreateExpenseInput{
		Description:  req.Description,
		Amount:       req.Amount,
		Category:     req.Category,
		Date:         req.Date,
		PaidByUserID: req.PaidBy,
		SplitType:    models.SplitType(req.SplitType),
		Splits:       splits,
		GroupID:      req.GroupID,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ListExpenses(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"expenses": toExpenseResponses(expenses)})
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.expenses.GetExpense(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (s *Server) handleAddExpenseComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, err := s.expenses.AddComment(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), req.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toExpenseResponse(expense))
}
