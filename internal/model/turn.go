package model

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message of the rolling conversation history. The history is
// supplied by the caller each request; the engine does not store it.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
