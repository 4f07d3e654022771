package dialogue

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/bbqjunction/tabletalk/knowledge"
	"github.com/bbqjunction/tabletalk/oracle"
)

const (
	// DefaultOracleTimeout bounds a single oracle consultation. The engine
	// proceeds rule-based the moment the deadline passes.
	DefaultOracleTimeout = 2 * time.Second

	// DefaultOracleThreshold is the minimum confidence an oracle result
	// needs before the engine will act on it.
	DefaultOracleThreshold = 0.8
)

// Engine advances sessions through the conversation graph. It is stateless
// apart from its read-only collaborators and safe for use from many sessions
// concurrently; a single session must not see concurrent Advance calls.
type Engine struct {
	registry *Registry
	kb       *knowledge.Store

	oracle          oracle.Oracle
	oracleTimeout   time.Duration
	oracleThreshold float64
}

// NewEngine builds an engine over a loaded registry and knowledge store.
// The oracle is off until SetOracle is called.
func NewEngine(reg *Registry, kb *knowledge.Store) *Engine {
	return &Engine{
		registry:        reg,
		kb:              kb,
		oracleTimeout:   DefaultOracleTimeout,
		oracleThreshold: DefaultOracleThreshold,
	}
}

// SetOracle plugs in the intent oracle. A zero timeout or threshold keeps
// the defaults.
func (e *Engine) SetOracle(o oracle.Oracle, timeout time.Duration, threshold float64) {
	e.oracle = o
	if timeout > 0 {
		e.oracleTimeout = timeout
	}
	if threshold > 0 {
		e.oracleThreshold = threshold
	}
}

// Greeting renders the session's current prompt without consuming input.
// Used for the opening message of a fresh session.
func (e *Engine) Greeting(sess *Session) string {
	if !e.registry.Has(sess.Current) {
		sess.Current = StateStart
	}
	text := e.render(sess)
	sess.appendTurn(RoleAssistant, text)
	return text
}

// Advance processes one user turn and returns the text to display. It never
// fails: invalid input re-prompts, an unknown state resets to START, and an
// unreachable oracle is ignored.
func (e *Engine) Advance(ctx context.Context, sess *Session, rawInput string) string {
	def, ok := e.registry.Get(sess.Current)
	if !ok {
		log.Printf("⚠️ [%s] unknown state %q, resetting to %s", shortID(sess.ID), sess.Current, StateStart)
		sess.Current = StateStart
		def, _ = e.registry.Get(StateStart)
	}

	raw := strings.TrimSpace(rawInput)
	token := strings.ToLower(raw)
	if mapped, ok := def.Aliases[token]; ok {
		token = mapped
	}

	sess.appendTurn(RoleUser, raw)

	if reply, handled := e.consultOracle(ctx, sess, raw); handled {
		sess.appendTurn(RoleAssistant, reply)
		return reply
	}

	if def.Validate != nil && !def.Validate(token) {
		reply := e.render(sess)
		if def.Corrective != "" {
			reply = reply + "\n" + def.Corrective
		}
		sess.appendTurn(RoleAssistant, reply)
		return reply
	}

	if def.OnInput != nil {
		def.OnInput(sess, raw, token)
	}

	next, ok := def.Transitions[token]
	if !ok {
		next = def.Transitions[Wildcard]
	}
	sess.Current = next

	reply := e.render(sess)
	sess.appendTurn(RoleAssistant, reply)
	return reply
}

// consultOracle asks the intent oracle about the turn. It returns a reply
// and true only when the oracle is confident enough and suggests a valid
// state to jump to; in every other case (no oracle, timeout, low confidence,
// unknown suggested state) the rule-based path continues. Slot candidates
// from a confident result are merged either way.
func (e *Engine) consultOracle(ctx context.Context, sess *Session, raw string) (string, bool) {
	if e.oracle == nil {
		return "", false
	}

	octx, cancel := context.WithTimeout(ctx, e.oracleTimeout)
	defer cancel()

	res, err := e.oracle.Analyze(octx, oracle.Request{
		Text:    raw,
		StateID: sess.Current,
		Slots:   sess.Slots.Known(),
	})
	if err != nil {
		log.Printf("⚠️ [%s] oracle unavailable, using rule-based transition: %v", shortID(sess.ID), err)
		return "", false
	}
	if res == nil || res.Confidence < e.oracleThreshold {
		return "", false
	}

	for key, value := range res.Slots {
		sess.Slots.apply(key, value)
	}

	if res.SuggestedState == "" {
		return "", false
	}
	if !e.registry.Has(res.SuggestedState) {
		log.Printf("⚠️ [%s] oracle suggested unknown state %q, ignoring", shortID(sess.ID), res.SuggestedState)
		return "", false
	}

	sess.Current = res.SuggestedState
	if res.Response != "" {
		return res.Response, true
	}
	return e.render(sess), true
}

// render substitutes the current state's bindings into its template. Unset
// slots become a neutral phrase so a placeholder token is never shown.
func (e *Engine) render(sess *Session) string {
	def, ok := e.registry.Get(sess.Current)
	if !ok {
		return ""
	}
	out := def.Template
	for _, b := range def.Bindings {
		out = strings.Replace(out, "{"+b.Placeholder+"}", e.bindingValue(sess, b), 1)
	}
	return out
}

const unsetSlotPhrase = "not provided yet"

func (e *Engine) bindingValue(sess *Session, b Binding) string {
	switch b.Compute {
	case ComputeNameConfirmation:
		if sess.Slots.Name != "" {
			return "your name is " + sess.Slots.Name
		}
		return "you preferred not to share your name"
	case ComputePhone:
		return FormatPhone(sess.Slots.PhoneNumber)
	case ComputeEnquiryResponse:
		return e.kb.EnquiryResponse(sess.Slots.EnquiryType, sess.Slots.Location)
	}

	switch b.Slot {
	case SlotLocation:
		return orUnset(sess.Slots.Location)
	case SlotName:
		return orUnset(sess.Slots.Name)
	case SlotPhoneNumber:
		return FormatPhone(sess.Slots.PhoneNumber)
	case SlotDateTime:
		return orUnset(sess.Slots.DateTime)
	case SlotNewDateTime:
		return orUnset(sess.Slots.NewDateTime)
	case SlotBookingRef:
		return orUnset(sess.Slots.BookingRef)
	case SlotEnquiryType:
		return orUnset(sess.Slots.EnquiryType)
	case SlotActionType:
		return orUnset(string(sess.Slots.ActionType))
	case SlotPaxSize:
		if sess.Slots.PaxSize > 0 {
			return strconv.Itoa(sess.Slots.PaxSize)
		}
		return unsetSlotPhrase
	}
	return unsetSlotPhrase
}

func orUnset(v string) string {
	if v == "" {
		return unsetSlotPhrase
	}
	return v
}

// FormatPhone renders a stored 10-digit number as DDDD-DDD-DDD. Anything
// else comes back unchanged (or as the neutral phrase when empty).
func FormatPhone(digits string) string {
	if digits == "" {
		return unsetSlotPhrase
	}
	if len(digits) != 10 {
		return digits
	}
	return digits[:4] + "-" + digits[4:7] + "-" + digits[7:]
}

// NewBookingRef generates a fresh reference: the BN prefix plus six random
// digits.
func NewBookingRef() string {
	return fmt.Sprintf("BN%06d", rand.IntN(1_000_000))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
