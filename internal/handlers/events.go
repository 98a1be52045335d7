package handlers

import (
	"strings"

	"github.com/kankrittapon/calendar/internal/domain/command"
	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

// EventFromMessage converts a direct message. Bot messages, edits, joins and
// other subtypes are skipped.
func EventFromMessage(ev *slackevents.MessageEvent) (entity.ChatEvent, bool) {
	if ev.BotID != "" || ev.SubType != "" || ev.User == "" {
		return entity.ChatEvent{}, false
	}

	return entity.ChatEvent{
		Type:     entity.ChatEventMessage,
		SenderID: ev.User,
		Channel:  ev.Channel,
		Text:     strings.TrimSpace(ev.Text),
	}, true
}

// EventFromAppHome turns a home tab open into a follow. Slack sends one per open.
func EventFromAppHome(ev *slackevents.AppHomeOpenedEvent) (entity.ChatEvent, bool) {
	if ev.User == "" {
		return entity.ChatEvent{}, false
	}

	return entity.ChatEvent{
		Type:     entity.ChatEventFollow,
		SenderID: ev.User,
		Channel:  ev.Channel,
	}, true
}

// EventsFromInteraction converts block actions. Help-menu buttons become the
// message their digit would have been; every other button is a postback.
func EventsFromInteraction(callback slack.InteractionCallback) []entity.ChatEvent {
	if callback.Type != slack.InteractionTypeBlockActions {
		return nil
	}

	var events []entity.ChatEvent
	for _, action := range callback.ActionCallback.BlockActions {
		event := entity.ChatEvent{
			SenderID: callback.User.ID,
			Channel:  callback.Channel.ID,
		}

		if strings.HasPrefix(action.ActionID, command.MenuActionPrefix) {
			event.Type = entity.ChatEventMessage
			event.Text = action.Value
		} else {
			event.Type = entity.ChatEventPostback
			event.Data = action.Value
		}

		events = append(events, event)
	}

	return events
}
