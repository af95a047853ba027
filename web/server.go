// Package web serves the local dashboard: REST endpoints over the
// translation history and config, plus a websocket feed of live status
// and outcome events.
package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"cliptranslate/config"
	"cliptranslate/platform"
	"cliptranslate/storage"
	"cliptranslate/translate"
)

//go:embed static/*
var staticFiles embed.FS

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Local-only server
	},
}

// ModelLister fetches the provider's model catalog.
type ModelLister func(ctx context.Context) ([]translate.ModelInfo, error)

// Server represents the dashboard web server.
type Server struct {
	db     *storage.DB
	creds  platform.Credentials
	models ModelLister
	port   int
	hub    *Hub

	mu     sync.RWMutex
	config *config.Config
	status string
}

// NewServer creates a new web server.
func NewServer(db *storage.DB, cfg *config.Config, creds platform.Credentials, models ModelLister) *Server {
	hub := NewHub()
	go hub.Run()

	return &Server{
		db:     db,
		config: cfg,
		creds:  creds,
		models: models,
		port:   cfg.Web.Port,
		hub:    hub,
		status: "idle",
	}
}

// Start starts the web server. Blocking.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/history/", s.handleHistory)
	mux.HandleFunc("/api/models", s.handleModels)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/ws", s.handleWebSocket)

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to load static files: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticFS)))

	addr := fmt.Sprintf("localhost:%d", s.port)
	slog.Info("Starting web server", "url", fmt.Sprintf("http://%s", addr))

	return http.ListenAndServe(addr, mux)
}

// GetConfig returns the current configuration (thread-safe).
func (s *Server) GetConfig() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// UpdateConfig updates the configuration (thread-safe).
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

// SetStatus records the agent status and pushes it to connected clients.
func (s *Server) SetStatus(status string) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()

	s.hub.BroadcastMessage(Message{
		Type: MessageTypeStatus,
		Data: StatusMessage{Status: status},
	})
}

// BroadcastOutcome pushes a finished translation to connected clients.
func (s *Server) BroadcastOutcome(t *storage.Translation) {
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeOutcome,
		Data: OutcomeMessage{
			ID:          t.ID,
			Outcome:     t.Outcome,
			SourceChars: t.SourceChars,
			LatencyMs:   t.LatencyMs,
			Detail:      t.Detail,
			Timestamp:   t.Timestamp.UTC().Format(time.RFC3339),
		},
	})
}

// handleWebSocket upgrades the connection and registers it with the hub.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
