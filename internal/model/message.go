package model

type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "Sent"
	MessageStatusDelivered MessageStatus = "Delivered"
	MessageStatusRead      MessageStatus = "Read"
)

// Message is one chat entry. Time is a display label (HH:MM), not a timestamp;
// Status may be empty on seeded history.
type Message struct {
	ID     int64         `json:"id"`
	ChatID int64         `json:"chat_id"`
	Mine   bool          `json:"mine"`
	Text   string        `json:"text"`
	Time   string        `json:"time"`
	Status MessageStatus `json:"status"`
}
