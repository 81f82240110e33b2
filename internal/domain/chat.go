package domain

import "time"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in a session's chat history.
type Turn struct {
	Role    Role
	Content string
	At      time.Time
}
