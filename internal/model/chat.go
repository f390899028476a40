package model

type ChatKind string

const (
	ChatKindDirect  ChatKind = "direct"
	ChatKindGroup   ChatKind = "group"
	ChatKindChannel ChatKind = "channel"
)

// Chat is a conversation container. LastMessage/LastTime cache the preview of
// the most recently appended message ("Chat started." / "Now" until one lands).
type Chat struct {
	ID          int64    `json:"id"`
	Kind        ChatKind `json:"kind"`
	Title       string   `json:"title"`
	Verified    bool     `json:"verified"`
	LastMessage string   `json:"last"`
	LastTime    string   `json:"time"`
	Unread      int      `json:"unread"`
}
