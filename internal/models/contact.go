package models

// ContactMessage is one message in the one-to-one conversation between two
// contacts. A conversation is keyed by the unordered user pair; either
// participant may send.
type ContactMessage struct {
	SenderID  string
	Text      string
	CreatedAt int64
}
