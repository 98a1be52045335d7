package entity

import "github.com/slack-go/slack"

type ChatEventType string

const (
	ChatEventMessage  ChatEventType = "message"
	ChatEventPostback ChatEventType = "postback"
	ChatEventFollow   ChatEventType = "follow"
)

// ChatEvent is an inbound event normalized from any transport
type ChatEvent struct {
	Type     ChatEventType
	SenderID string
	// Channel is where replies go; falls back to SenderID (direct message)
	Channel string
	Text    string
	// Data is the postback payload, "action=<name>&id=<scheduleId>"
	Data string
}

// ReplyTarget returns the channel a reply should be posted to
func (e ChatEvent) ReplyTarget() string {
	if e.Channel != "" {
		return e.Channel
	}
	return e.SenderID
}

// Reply is what the bot answers to the sender of an event
type Reply struct {
	Text   string
	Blocks []slack.Block
}

// TextReply builds a plain text reply
func TextReply(text string) *Reply {
	return &Reply{Text: text}
}
