// internal/chat/chat.go
// Package chat defines the boundary to the chat transport. Event delivery,
// command registration and session handling live outside this module; the
// dispatch layer only consumes these events and replies through a Messenger.
package chat

// Messenger sends structured replies back into a chat stream.
type Messenger interface {
	SendMessage(streamID, content string) error
	SendAttachment(streamID, content, filename string, data []byte) error
}

// TextEvent is an inbound free-text message.
type TextEvent struct {
	StreamID  string
	MessageID string
	Initiator string
	Text      string
}

// FormReplyEvent is a submitted interactive form.
type FormReplyEvent struct {
	StreamID  string
	MessageID string
	Initiator string
	FormID    string
	Values    map[string]string
}
