package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbqjunction/tabletalk/config"
	"github.com/bbqjunction/tabletalk/dialogue"
	"github.com/bbqjunction/tabletalk/knowledge"
	"github.com/bbqjunction/tabletalk/summary"
)

// recordingSink remembers every submitted record.
type recordingSink struct {
	mu      sync.Mutex
	records []summary.LogRecord
}

func (r *recordingSink) Submit(_ context.Context, rec summary.LogRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func newTestManager(t *testing.T, cfg *config.Config) (*Manager, *recordingSink) {
	t.Helper()
	kb := knowledge.NewStore()
	reg, err := dialogue.NewRegistry(kb)
	require.NoError(t, err)
	engine := dialogue.NewEngine(reg, kb)

	if cfg == nil {
		cfg = &config.Config{MaxSessions: 10, SessionTimeout: time.Minute}
	}
	// Point Redis at a closed port so the manager degrades to memory-only.
	cfg.RedisURL = "localhost:1"

	rec := &recordingSink{}
	m, err := NewManager(cfg, engine, rec)
	require.NoError(t, err)
	return m, rec
}

func TestCreateAndAdvance(t *testing.T) {
	m, _ := newTestManager(t, nil)
	ctx := context.Background()

	conv, greeting, err := m.Create(ctx)
	require.NoError(t, err)
	assert.Contains(t, greeting, "Barbeque Junction")
	assert.Equal(t, 1, m.ActiveCount())

	reply, stateID, err := m.Advance(ctx, conv.ID, "Delhi")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
	assert.Equal(t, dialogue.StateVerifyLocation, stateID)
}

func TestAdvanceUnknownSession(t *testing.T) {
	m, _ := newTestManager(t, nil)

	_, _, err := m.Advance(context.Background(), "nope", "hi")
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestSessionLimit(t *testing.T) {
	m, _ := newTestManager(t, &config.Config{MaxSessions: 1, SessionTimeout: time.Minute})
	ctx := context.Background()

	_, _, err := m.Create(ctx)
	require.NoError(t, err)

	_, _, err = m.Create(ctx)
	assert.ErrorIs(t, err, ErrSessionLimit)
}

func TestEndSubmitsSummaryOnce(t *testing.T) {
	m, sink := newTestManager(t, nil)
	ctx := context.Background()

	conv, _, err := m.Create(ctx)
	require.NoError(t, err)
	_, _, err = m.Advance(ctx, conv.ID, "Delhi")
	require.NoError(t, err)

	require.NoError(t, m.End(ctx, conv.ID))
	assert.Equal(t, 1, sink.count())
	assert.Zero(t, m.ActiveCount())

	// Ending again is a no-op
	require.NoError(t, m.End(ctx, conv.ID))
	assert.Equal(t, 1, sink.count())

	_, _, err = m.Advance(ctx, conv.ID, "yes")
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestEndUnknownSessionIsNoop(t *testing.T) {
	m, sink := newTestManager(t, nil)

	require.NoError(t, m.End(context.Background(), "missing"))
	assert.Zero(t, sink.count())
}

func TestCleanupInactiveSubmitsSummaries(t *testing.T) {
	m, sink := newTestManager(t, &config.Config{MaxSessions: 10, SessionTimeout: 10 * time.Millisecond})
	ctx := context.Background()

	_, _, err := m.Create(ctx)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	m.CleanupInactive(ctx)

	assert.Zero(t, m.ActiveCount())
	assert.Equal(t, 1, sink.count())
}

func TestShutdownEndsEverything(t *testing.T) {
	m, sink := newTestManager(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := m.Create(ctx)
		require.NoError(t, err)
	}

	m.Shutdown()

	assert.Zero(t, m.ActiveCount())
	assert.Equal(t, 3, sink.count())
}
