package model

type CallType string

const (
	CallTypeVoice CallType = "voice"
	CallTypeVideo CallType = "video"
)

type CallDirection string

const (
	CallIncoming CallDirection = "incoming"
	CallOutgoing CallDirection = "outgoing"
	CallMissed   CallDirection = "missed"
)

// CallLog keeps one entry of the call history. Time is a display label
// like "Today • 22:10" supplied by the client.
type CallLog struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Type      CallType      `json:"type"`
	Direction CallDirection `json:"direction"`
	Time      string        `json:"time"`
}
