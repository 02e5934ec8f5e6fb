package types

// Message kind values for generated outreach
const (
	MessageConnection = "connection"
	MessageEmail      = "email"
	MessageFollowUp   = "follow_up"
	MessageNetworking = "networking"
)

// ConnectionRequestMaxChars is the LinkedIn connection request limit.
const ConnectionRequestMaxChars = 200

// Message is a generated outreach message. Subject is empty for
// non-email kinds.
type Message struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

// IsValidMessageKind reports whether k is a known message kind.
func IsValidMessageKind(k string) bool {
	switch k {
	case MessageConnection, MessageEmail, MessageFollowUp, MessageNetworking:
		return true
	}
	return false
}
