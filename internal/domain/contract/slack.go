package contract

import (
	"context"

	"github.com/slack-go/slack"
)

// SlackClient defines the interface for Slack operations
// This allows mocking in tests while keeping the real implementation simple
type SlackClient interface {
	// GetUserInfoContext retrieves user information from Slack
	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)

	// PostMessageContext sends a message to a Slack channel or user
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}
