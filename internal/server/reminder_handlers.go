package server

import (
	"net/http"

	"github.com/splitsmart/splitsmart/internal/middleware"
	"github.com/splitsmart/splitsmart/internal/models"
)

func (s *Server) handleListReminderPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.reminders.ListPreferences(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	out := make([]reminderPreferenceResponse, 0, len(prefs))
	for _, p := range prefs {
		out = append(out, toReminderPreferenceResponse(p))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"preferences": out})
}

func (s *Server) handleSetReminderPreference(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScopeType string `json:"scope_type"`
		ScopeID   string `json:"scope_id"`
		Frequency string `json:"frequency"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	pref, err := s.reminders.SetPreference(
		r.Context(),
		middleware.GetUserID(r.Context()),
		models.ReminderScope(req.ScopeType),
		req.ScopeID,
		models.ReminderFrequency(req.Frequency),
	)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toReminderPreferenceResponse(pref))
}

func (s *Server) handleDeleteReminderPreference(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScopeType string `json:"scope_type"`
		ScopeID   string `json:"scope_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.reminders.DeletePreference(
		r.Context(),
		middleware.GetUserID(r.Context()),
		models.ReminderScope(req.ScopeType),
		req.ScopeID,
	)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
