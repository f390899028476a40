package ws

import "github.com/shark/internal/model"

type EventType string

const (
	// EventMessage is pushed to every connection when a message is sent
	// anywhere in the system.
	EventMessage EventType = "message"
)

// MessagePayload is the frame clients receive over the push channel.
// Status here is what the client should display, not necessarily what the
// messages table holds (see service.MessageService.Send).
type MessagePayload struct {
	Type   EventType           `json:"type"`
	ChatID int64               `json:"chat_id"`
	ID     int64               `json:"id"`
	Mine   bool                `json:"mine"`
	Text   string              `json:"text"`
	Time   string              `json:"time"`
	Status model.MessageStatus `json:"status"`
}
