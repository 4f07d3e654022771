package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bbqjunction/tabletalk/config"
	"github.com/bbqjunction/tabletalk/dialogue"
	"github.com/bbqjunction/tabletalk/sink"
	"github.com/bbqjunction/tabletalk/summary"
)

// ErrSessionLimit is returned when the manager is at capacity.
var ErrSessionLimit = fmt.Errorf("maximum sessions reached")

// ErrUnknownSession is returned for ids the manager does not track.
var ErrUnknownSession = fmt.Errorf("unknown session")

// Manager manages all live conversations
type Manager struct {
	conversations map[string]*Conversation
	mu            sync.RWMutex
	redis         *redis.Client
	config        *config.Config
	engine        *dialogue.Engine
	logSink       sink.Sink
}

// NewManager creates a session manager with Redis connection
func NewManager(cfg *config.Config, engine *dialogue.Engine, logSink sink.Sink) (*Manager, error) {
	var redisClient *redis.Client

	// Try to connect to Redis, but don't fail if unavailable
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		// Redis unavailable, continue without it
		redisClient = nil
	}

	return &Manager{
		conversations: make(map[string]*Conversation),
		redis:         redisClient,
		config:        cfg,
		engine:        engine,
		logSink:       logSink,
	}, nil
}

// Create starts a new conversation and returns it with its opening prompt.
func (sm *Manager) Create(ctx context.Context) (*Conversation, string, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.conversations) >= sm.config.MaxSessions {
		return nil, "", ErrSessionLimit
	}

	conv := newConversation(uuid.New().String())
	greeting := sm.engine.Greeting(conv.State)

	sm.conversations[conv.ID] = conv
	sm.mirrorSession(ctx, conv)
	return conv, greeting, nil
}

// Advance runs one user turn and returns the reply plus the state the
// conversation landed in.
func (sm *Manager) Advance(ctx context.Context, sessionID, text string) (string, string, error) {
	conv, exists := sm.Get(sessionID)
	if !exists {
		return "", "", ErrUnknownSession
	}
	if conv.IsClosed() {
		return "", "", ErrUnknownSession
	}

	conv.turnMu.Lock()
	reply := sm.engine.Advance(ctx, conv.State, text)
	stateID := conv.State.Current
	conv.turnMu.Unlock()

	conv.touch()
	sm.touchSession(ctx, conv)
	return reply, stateID, nil
}

// Get retrieves a conversation by ID
func (sm *Manager) Get(sessionID string) (*Conversation, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	conv, exists := sm.conversations[sessionID]
	return conv, exists
}

// End finishes a conversation: its summary goes to the logging sink and the
// session is discarded. Ending an unknown or already ended session is a no-op.
func (sm *Manager) End(ctx context.Context, sessionID string) error {
	sm.mu.Lock()
	conv, exists := sm.conversations[sessionID]
	if exists {
		delete(sm.conversations, sessionID)
	}
	sm.mu.Unlock()

	if !exists {
		return nil
	}
	sm.finish(ctx, conv)
	return nil
}

// finish summarizes and submits a conversation exactly once.
func (sm *Manager) finish(ctx context.Context, conv *Conversation) {
	if !conv.markClosed() {
		return
	}

	rec := summary.Summarize(conv.State)
	if err := sm.logSink.Submit(ctx, rec); err != nil {
		log.Printf("⚠️ [%s] failed to submit conversation log: %v", shortID(conv.ID), err)
	}

	if sm.redis != nil {
		sm.redis.Del(ctx, "session:"+conv.ID)
		sm.redis.SRem(ctx, "active_sessions", conv.ID)
	}
}

// mirrorSession saves session metadata to Redis
func (sm *Manager) mirrorSession(ctx context.Context, conv *Conversation) {
	if sm.redis == nil {
		return
	}
	sm.redis.HSet(ctx, "session:"+conv.ID, map[string]interface{}{
		"created_at":    conv.CreatedAt.Format(time.RFC3339),
		"last_activity": conv.LastActivity().Format(time.RFC3339),
		"state":         conv.State.Current,
		"status":        "active",
	})
	sm.redis.SAdd(ctx, "active_sessions", conv.ID)
	sm.redis.Expire(ctx, "session:"+conv.ID, sm.config.SessionTimeout)
}

func (sm *Manager) touchSession(ctx context.Context, conv *Conversation) {
	if sm.redis == nil {
		return
	}
	sm.redis.HSet(ctx, "session:"+conv.ID, map[string]interface{}{
		"last_activity": conv.LastActivity().Format(time.RFC3339),
		"state":         conv.State.Current,
	})
	sm.redis.Expire(ctx, "session:"+conv.ID, sm.config.SessionTimeout)
}

// ActiveCount returns current conversation count
func (sm *Manager) ActiveCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.conversations)
}

// CleanupInactive ends conversations that have been idle past the timeout.
// Their summaries still reach the sink.
func (sm *Manager) CleanupInactive(ctx context.Context) {
	sm.mu.Lock()
	now := time.Now()
	var stale []*Conversation
	for id, conv := range sm.conversations {
		if now.Sub(conv.LastActivity()) > sm.config.SessionTimeout {
			stale = append(stale, conv)
			delete(sm.conversations, id)
		}
	}
	sm.mu.Unlock()

	for _, conv := range stale {
		log.Printf("🧹 [%s] ending idle conversation", shortID(conv.ID))
		sm.finish(ctx, conv)
	}
}

// StartCleanupRoutine starts periodic cleanup of idle conversations
func (sm *Manager) StartCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sm.CleanupInactive(ctx)
		}
	}
}

// Shutdown ends every conversation and closes Redis
func (sm *Manager) Shutdown() {
	sm.mu.Lock()
	remaining := make([]*Conversation, 0, len(sm.conversations))
	for id, conv := range sm.conversations {
		remaining = append(remaining, conv)
		delete(sm.conversations, id)
	}
	sm.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, conv := range remaining {
		sm.finish(ctx, conv)
	}

	if sm.redis != nil {
		sm.redis.Close()
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
