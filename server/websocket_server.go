// Package server exposes the assistant over two transports: a WebSocket
// server for interactive clients and a REST server for simple integrations.
// Both drive the same session manager.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/bbqjunction/tabletalk/config"
	"github.com/bbqjunction/tabletalk/messages"
	"github.com/bbqjunction/tabletalk/session"
)

const writeTimeout = 10 * time.Second

type Server struct {
	httpServer     *http.Server
	upgrader       websocket.Upgrader
	sessionManager *session.Manager
	config         *config.Config
}

func NewServerWebsocket(cfg *config.Config, sessionManager *session.Manager) *Server {
	s := &Server{
		sessionManager: sessionManager,
		config:         cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:    4 * 1024,
			WriteBufferSize:   4 * 1024,
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				// Check allowed origins
				origin := r.Header.Get("Origin")
				for _, allowed := range cfg.AllowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  0, // long-lived connections manage their own deadlines
		WriteTimeout: 0,
	}

	return s
}

// Start begins listening for connections
func (s *Server) Start() error {
	log.Printf("🚀 WebSocket server starting on port %d", s.config.Port)
	log.Printf("📡 WebSocket endpoint: ws://localhost:%d/ws", s.config.Port)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("🛑 Shutting down server...")
	s.sessionManager.Shutdown()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Upgrade HTTP to WebSocket
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	conv, greeting, err := s.sessionManager.Create(r.Context())
	if err != nil {
		log.Printf("Failed to create session: %v", err)
		writeMessage(conn, messages.NewErrorMessage("", messages.ErrCodeSessionLimit, err.Error()))
		return
	}

	log.Printf("✅ New session created: %s", conv.ID)
	writeMessage(conn, messages.NewStatusMessage(conv.ID, "connected", "Session established"))
	writeMessage(conn, messages.NewPromptMessage(conv.ID, greeting, conv.State.Current))

	s.readLoop(conn, conv.ID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.sessionManager.End(ctx, conv.ID)
	log.Printf("🔌 Session closed: %s", conv.ID)
}

// readLoop processes client messages until the connection or session ends.
func (s *Server) readLoop(conn *websocket.Conn, sessionID string) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("⚠️ [%s] WebSocket read error: %v", shortID(sessionID), err)
			}
			return
		}

		var clientMsg messages.ClientMessage
		if err := sonic.Unmarshal(raw, &clientMsg); err != nil {
			writeMessage(conn, messages.NewErrorMessage(sessionID, messages.ErrCodeInvalidMessage, "Invalid message format"))
			continue
		}

		switch clientMsg.Type {
		case messages.TypeText:
			var payload messages.TextPayload
			if err := sonic.Unmarshal(clientMsg.Payload, &payload); err != nil {
				writeMessage(conn, messages.NewErrorMessage(sessionID, messages.ErrCodeInvalidMessage, "Invalid text payload"))
				continue
			}
			reply, stateID, err := s.sessionManager.Advance(context.Background(), sessionID, payload.Text)
			if err != nil {
				writeMessage(conn, messages.NewErrorMessage(sessionID, messages.ErrCodeSessionFailed, err.Error()))
				return
			}
			writeMessage(conn, messages.NewPromptMessage(sessionID, reply, stateID))

		case "control":
			var payload messages.ControlPayload
			if err := sonic.Unmarshal(clientMsg.Payload, &payload); err != nil {
				writeMessage(conn, messages.NewErrorMessage(sessionID, messages.ErrCodeInvalidMessage, "Invalid control payload"))
				continue
			}
			switch payload.Action {
			case "ping":
				writeMessage(conn, messages.NewStatusMessage(sessionID, "pong", ""))
			case "end_session":
				writeMessage(conn, messages.NewStatusMessage(sessionID, "session_ended", "Thank you for chatting with us"))
				return
			default:
				writeMessage(conn, messages.NewErrorMessage(sessionID, messages.ErrCodeInvalidMessage, "Unknown control action: "+payload.Action))
			}

		default:
			writeMessage(conn, messages.NewErrorMessage(sessionID, messages.ErrCodeInvalidMessage, "Unknown message type: "+clientMsg.Type))
		}
	}
}

// writeMessage encodes and sends one server message. Write errors are left to
// surface on the next read.
func writeMessage(conn *websocket.Conn, msg *messages.ServerMessage) {
	data, err := sonic.Marshal(msg)
	if err != nil {
		log.Printf("⚠️ failed to encode server message: %v", err)
		return
	}
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","sessions":%d}`, s.sessionManager.ActiveCount())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
