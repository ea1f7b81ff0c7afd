package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"policylens/apimodels"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req apimodels.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	if req.Company == "" {
		writeError(w, http.StatusBadRequest, "Company name is required")
		return
	}
	if req.Type == "product" && req.Product == "" {
		writeError(w, http.StatusBadRequest, "Product name is required for product analysis")
		return
	}
	// The product name only participates in product analyses.
	if req.Type != "product" {
		req.Product = ""
	}

	slog.Debug("received analysis request", "request", req)

	result, err := s.analyses.Analyze(r.Context(), req)
	if err != nil {
		// Internal error kinds are logged in full but flattened to one
		// generic failure for the caller.
		slog.Error("analysis request failed", "company", req.Company, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to analyze policies")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apimodels.ErrorResponse{Error: msg})
}
