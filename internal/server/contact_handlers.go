package server

import (
	"net/http"

	"github.com/splitsmart/splitsmart/internal/middleware"
)

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.contacts.ListContacts(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"contacts": toContactResponses(contacts)})
}

// handleGetContact returns the pairwise balance and the shared history with
// one contact.
func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	contactID := r.PathValue("id")

	balance, err := s.contacts.Balance(r.Context(), userID, contactID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	expenses, settlements, err := s.contacts.SharedHistory(r.Context(), userID, contactID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"balance":     balance,
		"expenses":    toExpenseResponses(expenses),
		"settlements": toSettlementResponses(settlements),
	})
}

func (s *Server) handleHideContact(w http.ResponseWriter, r *http.Request) {
	if err := s.contacts.HideContact(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleContactMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.contacts.Conversation(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"messages": toContactMessageResponses(messages)})
}

func (s *Server) handleSendContactMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	messages, err := s.contacts.SendMessage(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), req.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"messages": toContactMessageResponses(messages)})
}

func (s *Server) handleRemindContact(w http.ResponseWriter, r *http.Request) {
	if err := s.contacts.Remind(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "sent"})
}
