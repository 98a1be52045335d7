package socket

import (
	"context"
	"testing"

	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/kankrittapon/calendar/mocks"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type recordingAcker struct {
	acked []string
}

func (a *recordingAcker) Ack(req socketmode.Request, _ ...interface{}) {
	a.acked = append(a.acked, req.EnvelopeID)
}

func TestListener_Handle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	chat := mocks.NewMockChatService(ctrl)
	l := New(nil, chat)
	ack := &recordingAcker{}
	ctx := context.Background()

	t.Run("message event", func(t *testing.T) {
		chat.EXPECT().
			Respond(gomock.Any(), entity.ChatEvent{Type: entity.ChatEventMessage, SenderID: "U1", Channel: "D1", Text: "help"}).
			Return(nil).Times(1)

		l.handle(ctx, ack, socketmode.Event{
			Type:    socketmode.EventTypeEventsAPI,
			Request: &socketmode.Request{EnvelopeID: "env-1"},
			Data: slackevents.EventsAPIEvent{
				Type: slackevents.CallbackEvent,
				InnerEvent: slackevents.EventsAPIInnerEvent{
					Type: "message",
					Data: &slackevents.MessageEvent{User: "U1", Channel: "D1", Text: "help"},
				},
			},
		})
	})

	t.Run("bot message is acked but ignored", func(t *testing.T) {
		l.handle(ctx, ack, socketmode.Event{
			Type:    socketmode.EventTypeEventsAPI,
			Request: &socketmode.Request{EnvelopeID: "env-2"},
			Data: slackevents.EventsAPIEvent{
				Type: slackevents.CallbackEvent,
				InnerEvent: slackevents.EventsAPIInnerEvent{
					Type: "message",
					Data: &slackevents.MessageEvent{User: "U1", BotID: "B1", Channel: "D1", Text: "hi"},
				},
			},
		})
	})

	t.Run("button click", func(t *testing.T) {
		chat.EXPECT().
			Respond(gomock.Any(), entity.ChatEvent{Type: entity.ChatEventPostback, SenderID: "U1", Data: "action=toggle_attend&id=s1"}).
			Return(nil).Times(1)

		callback := slack.InteractionCallback{Type: slack.InteractionTypeBlockActions}
		callback.User.ID = "U1"
		callback.ActionCallback.BlockActions = []*slack.BlockAction{
			{ActionID: "toggle_attend", Value: "action=toggle_attend&id=s1"},
		}

		l.handle(ctx, ack, socketmode.Event{
			Type:    socketmode.EventTypeInteractive,
			Request: &socketmode.Request{EnvelopeID: "env-3"},
			Data:    callback,
		})
	})

	assert.Equal(t, []string{"env-1", "env-2", "env-3"}, ack.acked)
}
