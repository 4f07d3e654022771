package dialogue

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bbqjunction/tabletalk/knowledge"
)

// State ids, in conversation order.
const (
	StateStart                = "START"
	StateVerifyLocation       = "VERIFY_LOCATION"
	StateCollectName          = "COLLECT_NAME"
	StateCollectPhone         = "COLLECT_PHONE"
	StateConfirmDetails       = "CONFIRM_DETAILS"
	StateDiscover             = "DISCOVER"
	StateProvideInfo          = "PROVIDE_INFO"
	StateAskMoreHelp          = "ASK_MORE_HELP"
	StateCollectDateTime      = "COLLECT_DATE_TIME"
	StateCollectPaxSize       = "COLLECT_PAX_SIZE"
	StateConfirmBooking       = "CONFIRM_BOOKING"
	StateBookingConfirmed     = "BOOKING_CONFIRMED"
	StateCollectBookingRef    = "COLLECT_BOOKING_REF"
	StateVerifyBooking        = "VERIFY_BOOKING"
	StateCollectNewDateTime   = "COLLECT_NEW_DATE_TIME"
	StateConfirmModification  = "CONFIRM_MODIFICATION"
	StateModificationConfirmd = "MODIFICATION_CONFIRMED"
	StateConfirmCancellation  = "CONFIRM_CANCELLATION"
	StateCancellationConfirmd = "CANCELLATION_CONFIRMED"
	StateEnd                  = "END"
)

// Wildcard is the catch-all transition key. Every state must carry one.
const Wildcard = "*"

// Binding maps one template placeholder to its value source: either a slot
// key or a computed value resolved at render time.
type Binding struct {
	Placeholder string // token inside braces
	Slot        string // slot key, empty for computed bindings
	Compute     string // computed binding name, empty for slot bindings
}

// Computed binding names.
const (
	ComputeNameConfirmation = "nameConfirmation"
	ComputePhone            = "phone"
	ComputeEnquiryResponse  = "enquiryResponse"
)

// StateDef is one node of the conversation graph. Definitions are immutable
// after registry load and shared read-only by all sessions.
type StateDef struct {
	ID          string
	Template    string
	Transitions map[string]string // normalized token -> next state id
	Aliases     map[string]string // keyword -> canonical token, applied first
	Validate    func(token string) bool
	Corrective  string // appended to the re-prompt on validation failure
	OnInput     func(sess *Session, raw, token string)
	Bindings    []Binding
}

// Registry holds the loaded state graph.
type Registry struct {
	states map[string]*StateDef
}

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z]+)\}`)

// Load validates a set of state definitions and builds the registry. It
// rejects states without a wildcard transition, transitions to unknown
// states, and templates whose placeholders have no binding (and vice versa),
// so render can never meet an unresolvable token.
func Load(defs []*StateDef) (*Registry, error) {
	reg := &Registry{states: make(map[string]*StateDef, len(defs))}
	for _, def := range defs {
		if _, dup := reg.states[def.ID]; dup {
			return nil, fmt.Errorf("duplicate state %q", def.ID)
		}
		reg.states[def.ID] = def
	}
	for _, def := range reg.states {
		if _, ok := def.Transitions[Wildcard]; !ok {
			return nil, fmt.Errorf("state %q has no wildcard transition", def.ID)
		}
		for token, next := range def.Transitions {
			if _, ok := reg.states[next]; !ok {
				return nil, fmt.Errorf("state %q transition %q targets unknown state %q", def.ID, token, next)
			}
		}
		bound := make(map[string]bool, len(def.Bindings))
		for _, b := range def.Bindings {
			bound[b.Placeholder] = true
		}
		for _, m := range placeholderPattern.FindAllStringSubmatch(def.Template, -1) {
			if !bound[m[1]] {
				return nil, fmt.Errorf("state %q template references unbound placeholder %q", def.ID, m[1])
			}
		}
		for _, b := range def.Bindings {
			if !strings.Contains(def.Template, "{"+b.Placeholder+"}") {
				return nil, fmt.Errorf("state %q binds %q which the template never uses", def.ID, b.Placeholder)
			}
		}
	}
	return reg, nil
}

// NewRegistry loads the default restaurant conversation graph.
func NewRegistry(kb *knowledge.Store) (*Registry, error) {
	return Load(defaultStates(kb))
}

// Get returns the definition for a state id.
func (r *Registry) Get(id string) (*StateDef, bool) {
	def, ok := r.states[id]
	return def, ok
}

// Has reports whether a state id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.states[id]
	return ok
}

// Validators. All receive the normalized (trimmed, lower-cased, alias-mapped)
// token.

var bookingRefPattern = regexp.MustCompile(`^[A-Za-z]{2}\d{6}$`)

func validYesNo(token string) bool {
	return token == "yes" || token == "no"
}

func validPhone(token string) bool {
	return len(stripNonDigits(token)) == 10
}

func validPax(token string) bool {
	n, err := strconv.Atoi(token)
	return err == nil && n > 0
}

func validBookingRef(token string) bool {
	return bookingRefPattern.MatchString(token)
}

func validDiscoverOption(token string) bool {
	return len(token) == 1 && token >= "1" && token <= "7"
}

// discoverAliases maps spoken keywords onto the numeric menu tokens, so
// "book" works as well as "5".
var discoverAliases = map[string]string{
	"menu":       "1",
	"pricing":    "1",
	"offers":     "2",
	"offer":      "2",
	"promotions": "2",
	"timings":    "3",
	"timing":     "3",
	"hours":      "3",
	"location":   "4",
	"directions": "4",
	"address":    "4",
	"book":       "5",
	"booking":    "5",
	"reserve":    "5",
	"modify":     "6",
	"change":     "6",
	"cancel":     "7",
}

func defaultStates(kb *knowledge.Store) []*StateDef {
	return []*StateDef{
		{
			ID:          StateStart,
			Template:    "Welcome to Barbeque Junction! Which city would you like to dine in - Delhi or Bangalore?",
			Transitions: map[string]string{Wildcard: StateVerifyLocation},
			Validate: func(token string) bool {
				_, ok := kb.MatchLocation(token)
				return ok
			},
			Corrective: "We currently serve Delhi and Bangalore.",
			OnInput: func(sess *Session, raw, token string) {
				sess.Slots.Location = raw
			},
		},
		{
			ID:       StateVerifyLocation,
			Template: "You're looking for a restaurant in {location}, correct?",
			Transitions: map[string]string{
				"yes":    StateCollectName,
				"no":     StateStart,
				Wildcard: StateStart,
			},
			Validate: validYesNo,
			OnInput: func(sess *Session, raw, token string) {
				if token == "no" {
					sess.Slots.Location = ""
				}
			},
			Bindings: []Binding{{Placeholder: "location", Slot: SlotLocation}},
		},
		{
			ID:       StateCollectName,
			Template: "Please share your name.",
			Transitions: map[string]string{
				"no":     StateCollectPhone,
				"skip":   StateCollectPhone,
				Wildcard: StateCollectPhone,
			},
			OnInput: func(sess *Session, raw, token string) {
				if token == "no" || token == "skip" {
					sess.Slots.Name = ""
					return
				}
				sess.Slots.Name = raw
			},
		},
		{
			ID:          StateCollectPhone,
			Template:    "Please provide your 10-digit phone number.",
			Transitions: map[string]string{Wildcard: StateConfirmDetails},
			Validate:    validPhone,
			Corrective:  "I need a valid 10-digit phone number.",
			OnInput: func(sess *Session, raw, token string) {
				sess.Slots.PhoneNumber = stripNonDigits(raw)
			},
		},
		{
			ID:       StateConfirmDetails,
			Template: "Thanks! So far I have: {nameConfirmation}, phone number {phone}. Is this correct?",
			Transitions: map[string]string{
				"yes":    StateDiscover,
				"no":     StateCollectName,
				Wildcard: StateCollectName,
			},
			Validate: validYesNo,
			Bindings: []Binding{
				{Placeholder: "nameConfirmation", Compute: ComputeNameConfirmation},
				{Placeholder: "phone", Compute: ComputePhone},
			},
		},
		{
			ID: StateDiscover,
			Template: "How may I assist you today?\n" +
				"1. Menu and pricing information\n" +
				"2. Current offers and promotions\n" +
				"3. Restaurant timings\n" +
				"4. Location and directions\n" +
				"5. Make a new booking\n" +
				"6. Modify existing booking\n" +
				"7. Cancel booking",
			Transitions: map[string]string{
				"1":      StateProvideInfo,
				"2":      StateProvideInfo,
				"3":      StateProvideInfo,
				"4":      StateProvideInfo,
				"5":      StateCollectDateTime,
				"6":      StateCollectBookingRef,
				"7":      StateCollectBookingRef,
				Wildcard: StateDiscover,
			},
			Aliases:    discoverAliases,
			Validate:   validDiscoverOption,
			Corrective: "Please select a valid option (1-7).",
			OnInput: func(sess *Session, raw, token string) {
				switch token {
				case "1", "2", "3", "4":
					sess.Slots.EnquiryType = token
				case "5":
					sess.Slots.ActionType = ActionNew
				case "6":
					sess.Slots.ActionType = ActionModify
				case "7":
					sess.Slots.ActionType = ActionCancel
				}
			},
		},
		{
			ID:          StateCollectDateTime,
			Template:    "What's your preferred date and time for dining?",
			Transitions: map[string]string{Wildcard: StateCollectPaxSize},
			OnInput: func(sess *Session, raw, token string) {
				sess.Slots.DateTime = raw
			},
		},
		{
			ID:          StateCollectPaxSize,
			Template:    "How many guests will be dining?",
			Transitions: map[string]string{Wildcard: StateConfirmBooking},
			Validate:    validPax,
			Corrective:  "Please provide a valid number of guests.",
			OnInput: func(sess *Session, raw, token string) {
				sess.Slots.PaxSize, _ = strconv.Atoi(token)
			},
		},
		{
			ID:       StateConfirmBooking,
			Template: "Booking details: {paxSize} guests on {dateTime} at {location}. Would you like to confirm?",
			Transitions: map[string]string{
				"yes":    StateBookingConfirmed,
				"no":     StateCollectDateTime,
				Wildcard: StateCollectDateTime,
			},
			Validate: validYesNo,
			OnInput: func(sess *Session, raw, token string) {
				if token == "yes" {
					sess.Slots.BookingRef = NewBookingRef()
				}
			},
			Bindings: []Binding{
				{Placeholder: "paxSize", Slot: SlotPaxSize},
				{Placeholder: "dateTime", Slot: SlotDateTime},
				{Placeholder: "location", Slot: SlotLocation},
			},
		},
		{
			ID:          StateBookingConfirmed,
			Template:    "Your booking is confirmed! Reference number: {bookingRef}. Please keep it handy for any changes.",
			Transitions: map[string]string{Wildcard: StateAskMoreHelp},
			Bindings:    []Binding{{Placeholder: "bookingRef", Slot: SlotBookingRef}},
		},
		{
			ID:          StateCollectBookingRef,
			Template:    "Please provide your booking reference number.",
			Transitions: map[string]string{Wildcard: StateVerifyBooking},
			Validate:    validBookingRef,
			Corrective:  "Booking references are two letters followed by six digits, like BN123456.",
			OnInput: func(sess *Session, raw, token string) {
				sess.Slots.BookingRef = strings.TrimSpace(raw)
			},
		},
		{
			ID:       StateVerifyBooking,
			Template: "I found your booking {bookingRef}. Would you like to modify or cancel it?",
			Transitions: map[string]string{
				"modify": StateCollectNewDateTime,
				"cancel": StateConfirmCancellation,
				Wildcard: StateDiscover,
			},
			OnInput: func(sess *Session, raw, token string) {
				switch token {
				case "modify":
					sess.Slots.ActionType = ActionModify
				case "cancel":
					sess.Slots.ActionType = ActionCancel
				}
			},
			Bindings: []Binding{{Placeholder: "bookingRef", Slot: SlotBookingRef}},
		},
		{
			ID:          StateCollectNewDateTime,
			Template:    "What's your preferred new date and time?",
			Transitions: map[string]string{Wildcard: StateConfirmModification},
			OnInput: func(sess *Session, raw, token string) {
				sess.Slots.NewDateTime = raw
			},
		},
		{
			ID:       StateConfirmModification,
			Template: "New booking time: {newDateTime}. Would you like to confirm this change?",
			Transitions: map[string]string{
				"yes":    StateModificationConfirmd,
				"no":     StateVerifyBooking,
				Wildcard: StateVerifyBooking,
			},
			Validate: validYesNo,
			Bindings: []Binding{{Placeholder: "newDateTime", Slot: SlotNewDateTime}},
		},
		{
			ID:          StateModificationConfirmd,
			Template:    "Your booking has been updated. You will receive a confirmation SMS shortly.",
			Transitions: map[string]string{Wildcard: StateAskMoreHelp},
		},
		{
			ID:       StateConfirmCancellation,
			Template: "Would you like to proceed with cancelling booking {bookingRef}?",
			Transitions: map[string]string{
				"yes":    StateCancellationConfirmd,
				"no":     StateDiscover,
				Wildcard: StateDiscover,
			},
			Validate: validYesNo,
			Bindings: []Binding{{Placeholder: "bookingRef", Slot: SlotBookingRef}},
		},
		{
			ID:          StateCancellationConfirmd,
			Template:    "Your booking has been cancelled. We hope to see you another time.",
			Transitions: map[string]string{Wildcard: StateAskMoreHelp},
		},
		{
			ID:          StateProvideInfo,
			Template:    "{enquiryResponse}",
			Transitions: map[string]string{Wildcard: StateAskMoreHelp},
			Bindings:    []Binding{{Placeholder: "enquiryResponse", Compute: ComputeEnquiryResponse}},
		},
		{
			ID:       StateAskMoreHelp,
			Template: "Would you like help with anything else?",
			Transitions: map[string]string{
				"yes":    StateDiscover,
				"no":     StateEnd,
				Wildcard: StateEnd,
			},
			Validate: validYesNo,
		},
		{
			ID:          StateEnd,
			Template:    "Thank you for choosing Barbeque Junction. Have a great day!",
			Transitions: map[string]string{Wildcard: StateStart},
		},
	}
}
