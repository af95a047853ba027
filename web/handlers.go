package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cliptranslate/translate"
)

// handleConfig handles GET and PUT requests for configuration
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGetConfig(w, r)
	case http.MethodPut:
		s.handlePutConfig(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleGetConfig returns the current configuration. The API key itself is
// never echoed back, only whether one is stored.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg := s.GetConfig()

	hasKey := false
	if key, err := s.creds.Load(); err == nil && key != "" {
		hasKey = true
	}

	sanitized := struct {
		Hotkey      string `json:"hotkey"`
		HotkeyMode  string `json:"hotkeyMode"`
		Model       string `json:"model"`
		PromptMode  string `json:"promptMode"`
		CopyResult  bool   `json:"copyResult"`
		SaveHistory bool   `json:"saveHistory"`
		WebPort     int    `json:"webPort"`
		HasAPIKey   bool   `json:"hasApiKey"`
	}{
		Hotkey:      cfg.Hotkey.Combo,
		HotkeyMode:  cfg.Hotkey.Mode,
		Model:       cfg.Translation.Model,
		PromptMode:  cfg.Translation.PromptMode,
		CopyResult:  cfg.Translation.CopyResult,
		SaveHistory: cfg.Translation.SaveHistory,
		WebPort:     cfg.Web.Port,
		HasAPIKey:   hasKey,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sanitized)
}

// handlePutConfig updates the configuration. Hotkey and model changes take
// effect on the next start; the hook session is fixed once installed.
func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hotkey      *string `json:"hotkey"`
		HotkeyMode  *string `json:"hotkeyMode"`
		Model       *string `json:"model"`
		PromptMode  *string `json:"promptMode"`
		CopyResult  *bool   `json:"copyResult"`
		SaveHistory *bool   `json:"saveHistory"`
		APIKey      *string `json:"apiKey"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cfg := s.GetConfig()

	if req.Hotkey != nil {
		cfg.Hotkey.Combo = *req.Hotkey
	}
	if req.HotkeyMode != nil {
		cfg.Hotkey.Mode = *req.HotkeyMode
	}
	if req.Model != nil {
		cfg.Translation.Model = *req.Model
	}
	if req.PromptMode != nil {
		cfg.Translation.PromptMode = *req.PromptMode
	}
	if req.CopyResult != nil {
		cfg.Translation.CopyResult = *req.CopyResult
	}
	if req.SaveHistory != nil {
		cfg.Translation.SaveHistory = *req.SaveHistory
	}

	if req.APIKey != nil && *req.APIKey != "" {
		if err := s.creds.Save(*req.APIKey); err != nil {
			slog.Error("Failed to store API key", "error", err)
			http.Error(w, "Failed to store API key", http.StatusInternalServerError)
			return
		}
	}

	if err := cfg.Save(); err != nil {
		slog.Error("Failed to save config", "error", err)
		http.Error(w, "Failed to save configuration", http.StatusInternalServerError)
		return
	}

	s.UpdateConfig(cfg)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// handleStats returns statistics for the specified time range
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	daysStr := r.URL.Query().Get("days")
	days := 7 // default to 7 days
	if daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d > 0 {
			days = d
		}
	}

	overall, err := s.db.GetOverallStats(days)
	if err != nil {
		slog.Error("Failed to get overall stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	daily, err := s.db.GetDailyStats(days)
	if err != nil {
		slog.Error("Failed to get daily stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	models, err := s.db.GetModelStats(days)
	if err != nil {
		slog.Error("Failed to get model stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	response := map[string]any{
		"overall": overall,
		"daily":   daily,
		"models":  models,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleHistory handles GET and DELETE requests for translation history
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGetHistory(w, r)
	case http.MethodDelete:
		s.handleDeleteHistory(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleGetHistory returns paginated translation history
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	limit := 50 // default
	offset := 0

	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	if offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	translations, err := s.db.GetTranslations(limit, offset)
	if err != nil {
		slog.Error("Failed to get translations", "error", err)
		http.Error(w, "Failed to get history", http.StatusInternalServerError)
		return
	}

	total, err := s.db.GetTranslationCount()
	if err != nil {
		slog.Error("Failed to get translation count", "error", err)
		http.Error(w, "Failed to get history", http.StatusInternalServerError)
		return
	}

	response := map[string]any{
		"translations": translations,
		"total":        total,
		"limit":        limit,
		"offset":       offset,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleDeleteHistory deletes a translation by ID (path /api/history/123)
func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 4 {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	idStr := parts[len(parts)-1]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := s.db.DeleteTranslation(id); err != nil {
		slog.Error("Failed to delete translation", "error", err, "id", id)
		http.Error(w, "Failed to delete translation", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// handleModels returns the provider's model catalog, falling back to the
// built-in list when the catalog is unreachable.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	type modelEntry struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName,omitempty"`
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var entries []modelEntry
	fallback := false

	if s.models != nil {
		if models, err := s.models(ctx); err == nil {
			for _, m := range models {
				entries = append(entries, modelEntry{ID: m.ID(), DisplayName: m.DisplayName})
			}
		} else {
			slog.Warn("Failed to fetch model catalog, using fallback", "error", err)
		}
	}

	if len(entries) == 0 {
		fallback = true
		for _, id := range translate.FallbackModels {
			entries = append(entries, modelEntry{ID: id})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"models":   entries,
		"fallback": fallback,
	})
}

// handleStatus returns the current agent status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	status := s.status
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
