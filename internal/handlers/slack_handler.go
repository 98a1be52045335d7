package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/kankrittapon/calendar/internal/domain/contract"
	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/kankrittapon/calendar/internal/logger"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

type SlackHandler struct {
	chatService   contract.ChatService
	signingSecret string
}

func NewSlackHandler(chatService contract.ChatService, signingSecret string) *SlackHandler {
	return &SlackHandler{
		chatService:   chatService,
		signingSecret: signingSecret,
	}
}

// verify checks the Slack signature and returns the raw body
func (h *SlackHandler) verify(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return nil, false
	}

	if _, err := verifier.Write(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return nil, false
	}

	if err := verifier.Ensure(); err != nil {
		logger.Warn("rejected slack request with bad signature", "path", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
		return nil, false
	}

	return body, true
}

// HandleEvents serves the Events API endpoint
func (h *SlackHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	body, ok := h.verify(w, r)
	if !ok {
		return
	}

	eventsAPIEvent, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if eventsAPIEvent.Type == slackevents.URLVerification {
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(challenge.Challenge))
		return
	}

	// Slack redelivers when the first ack was slow; the first delivery already ran
	if r.Header.Get("X-Slack-Retry-Num") != "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if eventsAPIEvent.Type == slackevents.CallbackEvent {
		if event, ok := EventFromCallback(eventsAPIEvent.InnerEvent); ok {
			h.respond(r, event)
		}
	}

	w.WriteHeader(http.StatusOK)
}

// EventFromCallback converts the inner event of an Events API callback
func EventFromCallback(inner slackevents.EventsAPIInnerEvent) (entity.ChatEvent, bool) {
	switch ev := inner.Data.(type) {
	case *slackevents.MessageEvent:
		return EventFromMessage(ev)
	case *slackevents.AppHomeOpenedEvent:
		return EventFromAppHome(ev)
	}
	return entity.ChatEvent{}, false
}

// HandleInteractions serves button clicks
func (h *SlackHandler) HandleInteractions(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.verify(w, r); !ok {
		return
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(r.FormValue("payload")), &callback); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	for _, event := range EventsFromInteraction(callback) {
		h.respond(r, event)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *SlackHandler) respond(r *http.Request, event entity.ChatEvent) {
	if err := h.chatService.Respond(r.Context(), event); err != nil {
		logger.Warn("failed to reply to slack event", "type", event.Type, "sender", event.SenderID, "error", err)
	}
}
