// Package session tracks live conversations and their lifecycle: creation,
// per-turn serialization, idle cleanup and the summary handoff to the logging
// sink when a conversation ends.
package session

import (
	"sync"
	"time"

	"github.com/bbqjunction/tabletalk/dialogue"
)

// Conversation is one user's live dialogue. The mutex serializes turns so a
// client that fires requests concurrently still sees a consistent state walk.
type Conversation struct {
	ID    string
	State *dialogue.Session

	// turnMu serializes whole turns; mu guards the bookkeeping fields.
	turnMu sync.Mutex

	mu           sync.Mutex
	CreatedAt    time.Time
	lastActivity time.Time
	closed       bool
}

func newConversation(id string) *Conversation {
	now := time.Now()
	return &Conversation{
		ID:           id,
		State:        dialogue.NewSession(id),
		CreatedAt:    now,
		lastActivity: now,
	}
}

// LastActivity returns the time of the most recent turn.
func (c *Conversation) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActivity
}

func (c *Conversation) touch() {
	c.mu.Lock()
	c.lastActivity = time.Now()
	c.mu.Unlock()
}

// IsClosed reports whether the conversation has been ended.
func (c *Conversation) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Conversation) markClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.closed = true
	return true
}
