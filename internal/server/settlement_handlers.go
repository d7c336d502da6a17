package server

import (
	"net/http"

	"github.com/splitsmart/splitsmart/internal/middleware"
	"github.com/splitsmart/splitsmart/internal/service"
)

func (s *Server) handleCreateSettlement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount     float64 `json:"amount"`
		Note       string  `json:"note"`
		Date       int64   `json:"date"`
		PaidBy     string  `json:"paid_by"`
		ReceivedBy string  `json:"received_by"`
		GroupID    string  `json:"group_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	settlement, err := s.settlements.CreateSettlement(r.Context(), middleware.GetUserID(r.Context()), service.CreateSettlementInput{
		Amount:           req.Amount,
		Note:             req.Note,
		Date:             req.Date,
		PaidByUserID:     req.PaidBy,
		ReceivedByUserID: req.ReceivedBy,
		GroupID:          req.GroupID,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toSettlementResponse(settlement))
}

func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := s.settlements.ListSettlements(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"settlements": toSettlementResponses(settlements)})
}
