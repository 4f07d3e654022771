package messages

// Error codes
const (
	ErrCodeInvalidMessage = "INVALID_MESSAGE"
	ErrCodeSessionFailed  = "SESSION_FAILED"
	ErrCodeSessionLimit   = "SESSION_LIMIT"
)

// Message types. TypeText is inbound only (user turns); the server replies
// with prompt, status and error messages.
const (
	TypePrompt = "prompt"
	TypeText   = "text"
	TypeStatus = "status"
	TypeError  = "error"
)

// ServerMessage represents a message sent to frontend client
type ServerMessage struct {
	Type      string      `json:"type"` // "prompt", "status", "error"
	SessionID string      `json:"sessionId,omitempty"`
	Payload   interface{} `json:"payload"`
}

// PromptPayload carries the assistant's reply plus where the conversation is
type PromptPayload struct {
	Text    string `json:"text"`
	StateID string `json:"currentStateId"`
}

// StatusPayload contains status updates
type StatusPayload struct {
	Status  string `json:"status"` // "connected", "session_ended", "disconnected"
	Message string `json:"message,omitempty"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewPromptMessage creates a reply message carrying the conversation state
func NewPromptMessage(sessionID, text, stateID string) *ServerMessage {
	return &ServerMessage{
		Type:      TypePrompt,
		SessionID: sessionID,
		Payload: PromptPayload{
			Text:    text,
			StateID: stateID,
		},
	}
}

// NewStatusMessage creates a status message
func NewStatusMessage(sessionID, status, message string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeStatus,
		SessionID: sessionID,
		Payload: StatusPayload{
			Status:  status,
			Message: message,
		},
	}
}

// NewErrorMessage creates an error message
func NewErrorMessage(sessionID, code, message string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeError,
		SessionID: sessionID,
		Payload: ErrorPayload{
			Code:    code,
			Message: message,
		},
	}
}
