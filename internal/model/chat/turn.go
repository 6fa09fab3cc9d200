package chat

// Turn is one exchange: the user message and, once answered, the
// assistant reply. Assistant is empty while the turn is in flight.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant,omitempty"`
}

// Answered reports whether the turn carries an assistant reply.
func (t Turn) Answered() bool {
	return t.Assistant != ""
}

// Request is the chat endpoint's input. History is the caller's own view
// of the conversation; the server never merges it with stored state.
type Request struct {
	Message   string `json:"message"`
	History   []Turn `json:"history"`
	SessionID string `json:"sessionId"`
}

// Response carries the cleaned model reply.
type Response struct {
	Response string `json:"response"`
}
