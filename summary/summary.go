// Package summary turns a finished conversation into the structured record
// the logging sink consumes. Summarize is pure computation over a session
// snapshot and never fails; whatever was not collected is simply left out.
package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/bbqjunction/tabletalk/dialogue"
)

// OutcomeCode categorizes what the conversation was about.
type OutcomeCode string

const (
	OutcomeEnquiry           OutcomeCode = "ENQUIRY"
	OutcomeNewBooking        OutcomeCode = "NEW_BOOKING"
	OutcomePostBookingChange OutcomeCode = "POST_BOOKING_CHANGE"
	OutcomeMisc              OutcomeCode = "MISC"
)

// Modality of this service's conversations.
const Modality = "Chatbot"

// LogRecord is the append-only entry handed to the logging sink.
type LogRecord struct {
	Modality     string         `json:"modality"`
	Timestamp    time.Time      `json:"timestamp"`
	PhoneNumber  string         `json:"phoneNumber,omitempty"`
	OutcomeCode  OutcomeCode    `json:"outcomeCode"`
	Location     string         `json:"location,omitempty"`
	BookingDate  string         `json:"bookingDate,omitempty"`
	BookingTime  string         `json:"bookingTime,omitempty"`
	PartySize    int            `json:"partySize,omitempty"`
	CustomerName string         `json:"customerName,omitempty"`
	SummaryText  string         `json:"summaryText"`
	StateVisits  map[string]int `json:"stateVisits,omitempty"`
	Questions    []string       `json:"questionsAsked,omitempty"`
}

// Summarize builds the log record for a session.
func Summarize(sess *dialogue.Session) LogRecord {
	slots := sess.Slots
	rec := LogRecord{
		Modality:     Modality,
		Timestamp:    time.Now(),
		PhoneNumber:  slots.PhoneNumber,
		OutcomeCode:  outcome(slots),
		Location:     slots.Location,
		PartySize:    slots.PaxSize,
		CustomerName: slots.Name,
		SummaryText:  prose(sess),
		StateVisits:  stateVisits(sess),
		Questions:    questionsAsked(sess),
	}
	rec.BookingDate, rec.BookingTime = splitDateTime(effectiveDateTime(slots))
	return rec
}

func outcome(slots dialogue.Slots) OutcomeCode {
	switch {
	case slots.EnquiryType != "":
		return OutcomeEnquiry
	case slots.ActionType == dialogue.ActionNew:
		return OutcomeNewBooking
	case slots.ActionType == dialogue.ActionModify, slots.ActionType == dialogue.ActionCancel:
		return OutcomePostBookingChange
	default:
		return OutcomeMisc
	}
}

func effectiveDateTime(slots dialogue.Slots) string {
	if slots.NewDateTime != "" {
		return slots.NewDateTime
	}
	return slots.DateTime
}

// splitDateTime makes a best effort at separating "25th May, 7:30 PM" style
// free text into date and time. Anything without a comma stays a date.
func splitDateTime(dt string) (string, string) {
	if dt == "" {
		return "", ""
	}
	if date, clock, ok := strings.Cut(dt, ","); ok {
		return strings.TrimSpace(date), strings.TrimSpace(clock)
	}
	return strings.TrimSpace(dt), ""
}

func prose(sess *dialogue.Session) string {
	slots := sess.Slots
	var b strings.Builder

	if slots.Location != "" {
		fmt.Fprintf(&b, "The guest was interested in the %s location. ", slots.Location)
	}
	if dt := effectiveDateTime(slots); dt != "" {
		fmt.Fprintf(&b, "They were looking at %s. ", dt)
	}
	if slots.PaxSize > 0 {
		fmt.Fprintf(&b, "For a party of %d. ", slots.PaxSize)
	}
	switch slots.ActionType {
	case dialogue.ActionNew:
		b.WriteString("They wanted to make a new booking. ")
	case dialogue.ActionModify:
		b.WriteString("They wanted to modify an existing booking. ")
	case dialogue.ActionCancel:
		b.WriteString("They wanted to cancel an existing booking. ")
	}
	if slots.BookingRef != "" {
		fmt.Fprintf(&b, "Reference: %s. ", slots.BookingRef)
	}

	b.WriteString(outcomeSentence(sess.Current))
	return b.String()
}

func outcomeSentence(state string) string {
	switch state {
	case dialogue.StateBookingConfirmed:
		return "The booking was successfully confirmed."
	case dialogue.StateModificationConfirmd:
		return "The booking was successfully modified."
	case dialogue.StateCancellationConfirmd:
		return "The booking was cancelled."
	case dialogue.StateEnd:
		return "The conversation was completed."
	default:
		return fmt.Sprintf("The conversation ended in the %s state.", state)
	}
}

func stateVisits(sess *dialogue.Session) map[string]int {
	if len(sess.Transcript) == 0 {
		return nil
	}
	visits := make(map[string]int)
	for _, turn := range sess.Transcript {
		if turn.State != "" {
			visits[turn.State]++
		}
	}
	return visits
}

var questionLeads = []string{"what", "how", "when", "where", "why", "do ", "does ", "is ", "are ", "can "}

func questionsAsked(sess *dialogue.Session) []string {
	var out []string
	for _, turn := range sess.Transcript {
		if turn.Role != dialogue.RoleUser {
			continue
		}
		if isLikelyQuestion(turn.Text) {
			out = append(out, turn.Text)
		}
	}
	return out
}

func isLikelyQuestion(text string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(text))
	if trimmed == "" {
		return false
	}
	if strings.HasSuffix(trimmed, "?") {
		return true
	}
	for _, lead := range questionLeads {
		if strings.HasPrefix(trimmed, lead) {
			return true
		}
	}
	return false
}
