package sink

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbqjunction/tabletalk/summary"
)

func testRecord() summary.LogRecord {
	return summary.LogRecord{
		Modality:    summary.Modality,
		Timestamp:   time.Now(),
		OutcomeCode: summary.OutcomeNewBooking,
		Location:    "Delhi",
		SummaryText: "The booking was successfully confirmed.",
	}
}

func TestWebhookSubmit(t *testing.T) {
	var got summary.LogRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, sonic.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewWebhook(srv.URL, nil).Submit(context.Background(), testRecord())

	require.NoError(t, err)
	assert.Equal(t, "Delhi", got.Location)
	assert.Equal(t, summary.OutcomeNewBooking, got.OutcomeCode)
}

func TestWebhookRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewWebhook(srv.URL, nil).Submit(context.Background(), testRecord())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

// failNTimes fails the first n submissions, then succeeds.
type failNTimes struct {
	n     int32
	calls int32
}

func (f *failNTimes) Submit(context.Context, summary.LogRecord) error {
	call := atomic.AddInt32(&f.calls, 1)
	if call <= atomic.LoadInt32(&f.n) {
		return assert.AnError
	}
	return nil
}

func TestRetrierRetriesUntilSuccess(t *testing.T) {
	inner := &failNTimes{n: 2}
	r := NewRetrier(inner, 3)
	r.backoff = time.Millisecond

	require.NoError(t, r.Submit(context.Background(), testRecord()))
	r.Close()

	assert.Equal(t, int32(3), atomic.LoadInt32(&inner.calls))
}

func TestRetrierGivesUpAfterMaxAttempts(t *testing.T) {
	inner := &failNTimes{n: 100}
	r := NewRetrier(inner, 2)
	r.backoff = time.Millisecond

	require.NoError(t, r.Submit(context.Background(), testRecord()))
	r.Close()

	assert.Equal(t, int32(2), atomic.LoadInt32(&inner.calls))
}

func TestRetrierSubmitAfterCloseIsNoop(t *testing.T) {
	inner := &failNTimes{}
	r := NewRetrier(inner, 1)
	r.Close()

	require.NoError(t, r.Submit(context.Background(), testRecord()))
	assert.Zero(t, atomic.LoadInt32(&inner.calls))
}

// Shutdown can overlap with late submissions from still-open connections;
// the retrier must drop those records, never panic.
func TestRetrierSubmitDuringCloseIsSafe(t *testing.T) {
	for i := 0; i < 200; i++ {
		inner := &failNTimes{}
		r := NewRetrier(inner, 1)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.NoError(t, r.Submit(context.Background(), testRecord()))
			}
		}()

		r.Close()
		wg.Wait()
	}
}

func TestDiscardAcceptsEverything(t *testing.T) {
	assert.NoError(t, Discard{}.Submit(context.Background(), testRecord()))
}
