package summary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbqjunction/tabletalk/dialogue"
	"github.com/bbqjunction/tabletalk/knowledge"
)

// runConversation drives a fresh session through the given inputs.
func runConversation(t *testing.T, inputs ...string) *dialogue.Session {
	t.Helper()
	kb := knowledge.NewStore()
	reg, err := dialogue.NewRegistry(kb)
	require.NoError(t, err)
	engine := dialogue.NewEngine(reg, kb)

	sess := dialogue.NewSession("test")
	engine.Greeting(sess)
	for _, input := range inputs {
		engine.Advance(context.Background(), sess, input)
	}
	return sess
}

func TestSummarizeBooking(t *testing.T) {
	sess := runConversation(t,
		"Delhi", "yes", "Asha", "9876543210", "yes",
		"5", "25th May, 7:30 PM", "4", "yes",
	)
	require.Equal(t, dialogue.StateBookingConfirmed, sess.Current)

	rec := Summarize(sess)

	assert.Equal(t, Modality, rec.Modality)
	assert.Equal(t, OutcomeNewBooking, rec.OutcomeCode)
	assert.Equal(t, "Delhi", rec.Location)
	assert.Equal(t, "Asha", rec.CustomerName)
	assert.Equal(t, "9876543210", rec.PhoneNumber)
	assert.Equal(t, 4, rec.PartySize)
	assert.Equal(t, "25th May", rec.BookingDate)
	assert.Equal(t, "7:30 PM", rec.BookingTime)
	assert.Contains(t, rec.SummaryText, "successfully confirmed")
	assert.False(t, rec.Timestamp.IsZero())
}

func TestSummarizeEnquiry(t *testing.T) {
	sess := runConversation(t,
		"Bangalore", "yes", "Ravi", "9876543210", "yes", "3",
	)

	rec := Summarize(sess)

	assert.Equal(t, OutcomeEnquiry, rec.OutcomeCode)
	assert.Contains(t, rec.SummaryText, "Bangalore")
}

func TestSummarizeCancellation(t *testing.T) {
	sess := runConversation(t,
		"Delhi", "yes", "skip", "9876543210", "yes",
		"7", "BN123456", "cancel", "yes",
	)
	require.Equal(t, dialogue.StateCancellationConfirmd, sess.Current)

	rec := Summarize(sess)

	assert.Equal(t, OutcomePostBookingChange, rec.OutcomeCode)
	assert.Contains(t, rec.SummaryText, "cancel")
	assert.Contains(t, rec.SummaryText, "BN123456")
	assert.Empty(t, rec.CustomerName)
}

func TestSummarizeEmptySession(t *testing.T) {
	sess := dialogue.NewSession("empty")

	rec := Summarize(sess)

	assert.Equal(t, OutcomeMisc, rec.OutcomeCode)
	assert.Empty(t, rec.Location)
	assert.Nil(t, rec.StateVisits)
	assert.NotEmpty(t, rec.SummaryText)
}

func TestStateVisitsCounted(t *testing.T) {
	sess := runConversation(t, "Delhi", "yes")

	rec := Summarize(sess)

	require.NotNil(t, rec.StateVisits)
	assert.GreaterOrEqual(t, rec.StateVisits[dialogue.StateStart], 1)
}

func TestQuestionsCollected(t *testing.T) {
	sess := dialogue.NewSession("q")
	sess.Transcript = []dialogue.Turn{
		{Role: dialogue.RoleUser, Text: "Do you serve Jain food?"},
		{Role: dialogue.RoleAssistant, Text: "Is there anything else?"},
		{Role: dialogue.RoleUser, Text: "Delhi"},
		{Role: dialogue.RoleUser, Text: "what are your timings"},
	}

	rec := Summarize(sess)

	assert.Equal(t, []string{"Do you serve Jain food?", "what are your timings"}, rec.Questions)
}

func TestSplitDateTime(t *testing.T) {
	tests := []struct {
		in       string
		wantDate string
		wantTime string
	}{
		{"25th May, 7:30 PM", "25th May", "7:30 PM"},
		{"tomorrow evening", "tomorrow evening", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		date, clock := splitDateTime(tt.in)
		assert.Equal(t, tt.wantDate, date)
		assert.Equal(t, tt.wantTime, clock)
	}
}
