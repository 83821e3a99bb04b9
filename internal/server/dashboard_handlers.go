package server

import "net/http"

func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to Admin Dashboard"})
}

func (s *Server) handleTrainerDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to Trainer Dashboard"})
}
