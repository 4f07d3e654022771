package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/bbqjunction/tabletalk/config"
	"github.com/bbqjunction/tabletalk/knowledge"
	"github.com/bbqjunction/tabletalk/session"
)

// RestServer exposes the assistant over plain HTTP for clients that cannot
// hold a WebSocket open. Each POST /turn carries the session id explicitly.
type RestServer struct {
	httpServer     *http.Server
	sessionManager *session.Manager
	kb             *knowledge.Store
	config         *config.Config
}

// TurnRequest is one user turn. An empty sessionId starts a new conversation;
// its text is ignored in that case and the opening prompt comes back.
type TurnRequest struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
}

// TurnResponse carries the assistant's reply.
type TurnResponse struct {
	SessionID   string `json:"sessionId"`
	DisplayText string `json:"displayText"`
	StateID     string `json:"currentStateId"`
}

// EndRequest ends a conversation.
type EndRequest struct {
	SessionID string `json:"sessionId"`
}

func NewRestServer(cfg *config.Config, sessionManager *session.Manager, kb *knowledge.Store) *RestServer {
	s := &RestServer{
		sessionManager: sessionManager,
		kb:             kb,
		config:         cfg,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/turn", s.handleTurn)
	mux.HandleFunc("/end", s.handleEnd)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/kb/menu", s.handleMenu)
	mux.HandleFunc("/kb/faqs", s.handleFAQs)

	// Determine which port to use
	port := cfg.RestPort
	if cfg.ServerType == "rest" {
		// When running as standalone REST server, use the main port
		port = cfg.Port
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

// Start begins listening for connections
func (s *RestServer) Start() error {
	log.Printf("🚀 REST server starting on %s", s.httpServer.Addr)
	log.Printf("📡 Turn endpoint: http://localhost%s/turn", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *RestServer) Shutdown(ctx context.Context) error {
	log.Println("Shutting down REST server...")
	return s.httpServer.Shutdown(ctx)
}

func (s *RestServer) handleTurn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TurnRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.SessionID == "" {
		conv, greeting, err := s.sessionManager.Create(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, TurnResponse{SessionID: conv.ID, DisplayText: greeting, StateID: conv.State.Current})
		return
	}

	reply, stateID, err := s.sessionManager.Advance(r.Context(), req.SessionID, req.Text)
	if err != nil {
		if errors.Is(err, session.ErrUnknownSession) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, TurnResponse{SessionID: req.SessionID, DisplayText: reply, StateID: stateID})
}

func (s *RestServer) handleEnd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req EndRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_ = s.sessionManager.End(r.Context(), req.SessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *RestServer) handleMenu(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	writeJSON(w, s.kb.SearchMenu(query))
}

func (s *RestServer) handleFAQs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	writeJSON(w, s.kb.SearchFAQ(query))
}

func (s *RestServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","server":"rest","sessions":%d}`, s.sessionManager.ActiveCount())
}

func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if err := sonic.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
