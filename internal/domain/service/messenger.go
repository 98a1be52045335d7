package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kankrittapon/calendar/internal/domain/contract"
	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/kankrittapon/calendar/internal/logger"
	"github.com/slack-go/slack"
)

const defaultSendTimeout = 15 * time.Second

// messenger posts replies with a bounded timeout. Failures are logged here and
// returned only so callers can count successful sends.
type messenger struct {
	slackClient contract.SlackClient
	timeout     time.Duration
}

func newMessenger(slackClient contract.SlackClient, timeout time.Duration) *messenger {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &messenger{slackClient: slackClient, timeout: timeout}
}

func (m *messenger) Send(ctx context.Context, target string, reply *entity.Reply) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	options := []slack.MsgOption{slack.MsgOptionText(reply.Text, false)}
	if len(reply.Blocks) > 0 {
		options = append(options, slack.MsgOptionBlocks(reply.Blocks...))
	}

	if _, _, err := m.slackClient.PostMessageContext(ctx, target, slack.MsgOptionCompose(options...)); err != nil {
		logger.Warn("failed to send slack message", "target", target, "error", err)
		return fmt.Errorf("failed to send message to %s: %w", target, err)
	}

	return nil
}

// Broadcast sends reply to every user with a messaging identity and returns how many sends succeeded
func (m *messenger) Broadcast(ctx context.Context, users []*entity.User, reply *entity.Reply) int {
	sent := 0
	for _, user := range users {
		if user.MessagingID == "" {
			continue
		}
		if err := m.Send(ctx, user.MessagingID, reply); err != nil {
			continue
		}
		sent++
	}
	return sent
}

// displayName fetches the profile name of a Slack user, "Unknown" when the lookup fails
func (m *messenger) displayName(ctx context.Context, userID string) string {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	user, err := m.slackClient.GetUserInfoContext(ctx, userID)
	if err != nil || user == nil {
		logger.Warn("failed to get slack profile", "user", userID, "error", err)
		return "Unknown"
	}

	for _, name := range []string{user.Profile.DisplayName, user.Profile.RealName, user.RealName, user.Name} {
		if name != "" {
			return name
		}
	}
	return "Unknown"
}
