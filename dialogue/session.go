// Package dialogue implements the conversational core: per-session state,
// the registry of prompt states and their transitions, and the engine that
// advances a session one user turn at a time.
package dialogue

import (
	"strconv"
	"strings"
	"time"
)

// Role identifies who produced a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ActionType is what the guest wants done with a booking.
type ActionType string

const (
	ActionNew    ActionType = "NEW"
	ActionModify ActionType = "MODIFY"
	ActionCancel ActionType = "CANCEL"
)

// Slots holds everything collected from the guest during a conversation.
// A field stays zero until the corresponding state stores it; only explicit
// state logic may clear a field again (e.g. rejecting the location).
type Slots struct {
	Location    string
	Name        string
	PhoneNumber string // 10 digits, no separators
	DateTime    string // free text, as given
	NewDateTime string
	PaxSize     int
	BookingRef  string // two letters followed by six digits
	ActionType  ActionType
	EnquiryType string // DISCOVER option token
}

// Slot keys as the oracle and the wire layer see them.
const (
	SlotLocation    = "location"
	SlotName        = "name"
	SlotPhoneNumber = "phoneNumber"
	SlotDateTime    = "dateTime"
	SlotNewDateTime = "newDateTime"
	SlotPaxSize     = "paxSize"
	SlotBookingRef  = "bookingRef"
	SlotActionType  = "actionType"
	SlotEnquiryType = "enquiryType"
)

// Known returns the set slots as a string map, for the oracle context.
func (s Slots) Known() map[string]string {
	out := make(map[string]string)
	if s.Location != "" {
		out[SlotLocation] = s.Location
	}
	if s.Name != "" {
		out[SlotName] = s.Name
	}
	if s.PhoneNumber != "" {
		out[SlotPhoneNumber] = s.PhoneNumber
	}
	if s.DateTime != "" {
		out[SlotDateTime] = s.DateTime
	}
	if s.NewDateTime != "" {
		out[SlotNewDateTime] = s.NewDateTime
	}
	if s.PaxSize > 0 {
		out[SlotPaxSize] = strconv.Itoa(s.PaxSize)
	}
	if s.BookingRef != "" {
		out[SlotBookingRef] = s.BookingRef
	}
	if s.ActionType != "" {
		out[SlotActionType] = string(s.ActionType)
	}
	if s.EnquiryType != "" {
		out[SlotEnquiryType] = s.EnquiryType
	}
	return out
}

// apply sets one slot by key. Unknown keys and unparsable values are
// ignored; the oracle is advisory and must never corrupt a session.
func (s *Slots) apply(key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	switch key {
	case SlotLocation:
		s.Location = value
	case SlotName:
		s.Name = value
	case SlotPhoneNumber:
		if digits := stripNonDigits(value); len(digits) == 10 {
			s.PhoneNumber = digits
		}
	case SlotDateTime:
		s.DateTime = value
	case SlotNewDateTime:
		s.NewDateTime = value
	case SlotPaxSize:
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			s.PaxSize = n
		}
	case SlotBookingRef:
		if bookingRefPattern.MatchString(value) {
			s.BookingRef = value
		}
	case SlotActionType:
		switch ActionType(strings.ToUpper(value)) {
		case ActionNew, ActionModify, ActionCancel:
			s.ActionType = ActionType(strings.ToUpper(value))
		}
	case SlotEnquiryType:
		s.EnquiryType = value
	}
}

// Turn is one transcript entry, in conversation order.
type Turn struct {
	Role  Role
	Text  string
	Time  time.Time
	State string // state id active when the turn was produced
}

// Session is the mutable per-conversation record. It is owned by exactly one
// caller at a time; the engine mutates it in place on each Advance.
type Session struct {
	ID         string
	Current    string
	Slots      Slots
	Transcript []Turn
	CreatedAt  time.Time
}

// NewSession starts a conversation in the initial state with an empty
// transcript.
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		Current:   StateStart,
		CreatedAt: time.Now(),
	}
}

func (s *Session) appendTurn(role Role, text string) {
	s.Transcript = append(s.Transcript, Turn{
		Role:  role,
		Text:  text,
		Time:  time.Now(),
		State: s.Current,
	})
}

func stripNonDigits(in string) string {
	var b strings.Builder
	for _, r := range in {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
