// Package socket receives Slack events over Socket Mode, for deployments without a public URL.
package socket

import (
	"context"

	"github.com/kankrittapon/calendar/internal/domain/contract"
	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/kankrittapon/calendar/internal/handlers"
	"github.com/kankrittapon/calendar/internal/logger"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

type acker interface {
	Ack(req socketmode.Request, payload ...interface{})
}

type Listener struct {
	client      *socketmode.Client
	chatService contract.ChatService
}

func New(client *socketmode.Client, chatService contract.ChatService) *Listener {
	return &Listener{client: client, chatService: chatService}
}

// Run blocks until ctx is cancelled or the connection fails for good
func (l *Listener) Run(ctx context.Context) error {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-l.client.Events:
				if !ok {
					return
				}
				l.handle(ctx, l.client, evt)
			}
		}
	}()

	logger.Info("socket mode listener started")
	return l.client.RunContext(ctx)
}

// handle acks first so Slack does not redeliver while the reply is being built
func (l *Listener) handle(ctx context.Context, ack acker, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		logger.Debug("connecting to slack with socket mode")
	case socketmode.EventTypeConnected:
		logger.Info("connected to slack with socket mode")
	case socketmode.EventTypeConnectionError:
		logger.Warn("socket mode connection failed, retrying")

	case socketmode.EventTypeEventsAPI:
		eventsAPIEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok {
			return
		}
		if evt.Request != nil {
			ack.Ack(*evt.Request)
		}
		if eventsAPIEvent.Type != slackevents.CallbackEvent {
			return
		}
		if event, ok := handlers.EventFromCallback(eventsAPIEvent.InnerEvent); ok {
			l.respond(ctx, event)
		}

	case socketmode.EventTypeInteractive:
		callback, ok := evt.Data.(slack.InteractionCallback)
		if !ok {
			return
		}
		if evt.Request != nil {
			ack.Ack(*evt.Request)
		}
		for _, event := range handlers.EventsFromInteraction(callback) {
			l.respond(ctx, event)
		}
	}
}

func (l *Listener) respond(ctx context.Context, event entity.ChatEvent) {
	if err := l.chatService.Respond(ctx, event); err != nil {
		logger.Warn("failed to reply to socket mode event", "type", event.Type, "sender", event.SenderID, "error", err)
	}
}
