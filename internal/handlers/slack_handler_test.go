package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/kankrittapon/calendar/internal/handlers/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func eventCallback(inner string) string {
	return `{"token":"x","team_id":"T1","api_app_id":"A1","type":"event_callback","event_id":"Ev1","event_time":1736906400,"event":` + inner + `}`
}

func TestSlackHandler_HandleEvents(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		retry      bool
		buildMocks func(ctx context.Context, m test.ServiceMocks)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Should answer url verification challenge",
			body:       `{"token":"x","challenge":"challenge-123","type":"url_verification"}`,
			wantStatus: http.StatusOK,
			wantBody:   "challenge-123",
		},
		{
			name: "Should dispatch direct message",
			body: eventCallback(`{"type":"message","channel":"D1","user":"U1","text":" งานวันนี้ ","ts":"1736906400.000100","channel_type":"im"}`),
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.ChatServiceMock.EXPECT().
					Respond(gomock.Any(), entity.ChatEvent{
						Type:     entity.ChatEventMessage,
						SenderID: "U1",
						Channel:  "D1",
						Text:     "งานวันนี้",
					}).
					Return(nil).Times(1)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Should ignore bot messages",
			body:       eventCallback(`{"type":"message","channel":"D1","user":"U1","bot_id":"B1","text":"hello","ts":"1.1"}`),
			wantStatus: http.StatusOK,
		},
		{
			name:       "Should ignore edited messages",
			body:       eventCallback(`{"type":"message","subtype":"message_changed","channel":"D1","ts":"1.1"}`),
			wantStatus: http.StatusOK,
		},
		{
			name:       "Should skip redelivered events",
			body:       eventCallback(`{"type":"message","channel":"D1","user":"U1","text":"งานวันนี้","ts":"1.1"}`),
			retry:      true,
			wantStatus: http.StatusOK,
		},
		{
			name: "Should treat app home opened as follow",
			body: eventCallback(`{"type":"app_home_opened","user":"U1","channel":"D1","tab":"home"}`),
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.ChatServiceMock.EXPECT().
					Respond(gomock.Any(), entity.ChatEvent{Type: entity.ChatEventFollow, SenderID: "U1", Channel: "D1"}).
					Return(nil).Times(1)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Should acknowledge even when the reply fails",
			body: eventCallback(`{"type":"message","channel":"D1","user":"U1","text":"help","ts":"1.1"}`),
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.ChatServiceMock.EXPECT().Respond(gomock.Any(), gomock.Any()).Return(assert.AnError).Times(1)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, router, ctrl := test.GetHandlerTest(t)
			defer ctrl.Finish()

			if tt.buildMocks != nil {
				tt.buildMocks(context.Background(), m)
			}

			req := test.CreateSlackEventRequest(t, tt.body)
			if tt.retry {
				req.Header.Set("X-Slack-Retry-Num", "1")
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			require.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

func TestSlackHandler_RejectsBadSignature(t *testing.T) {
	_, router, ctrl := test.GetHandlerTest(t)
	defer ctrl.Finish()

	req := test.CreateSlackEventRequest(t, eventCallback(`{"type":"message","channel":"D1","user":"U1","text":"x","ts":"1.1"}`))
	req.Header.Set("X-Slack-Signature", "v0=deadbeef")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	req, err := http.NewRequest(http.MethodPost, "/slack/events", strings.NewReader("{}"))
	require.NoError(t, err)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code, "missing signature headers")
}

func TestSlackHandler_HandleInteractions(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		buildMocks func(ctx context.Context, m test.ServiceMocks)
		wantStatus int
	}{
		{
			name:    "Should dispatch attendance button as postback",
			payload: `{"type":"block_actions","user":{"id":"U1"},"channel":{"id":"D1"},"actions":[{"type":"button","block_id":"b1","action_id":"toggle_attend","value":"action=toggle_attend&id=s1"}]}`,
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.ChatServiceMock.EXPECT().
					Respond(gomock.Any(), entity.ChatEvent{
						Type:     entity.ChatEventPostback,
						SenderID: "U1",
						Channel:  "D1",
						Data:     "action=toggle_attend&id=s1",
					}).
					Return(nil).Times(1)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "Should dispatch help menu button as its digit",
			payload: `{"type":"block_actions","user":{"id":"U1"},"channel":{"id":"D1"},"actions":[{"type":"button","block_id":"help_menu","action_id":"menu_5","value":"5"}]}`,
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.ChatServiceMock.EXPECT().
					Respond(gomock.Any(), entity.ChatEvent{
						Type:     entity.ChatEventMessage,
						SenderID: "U1",
						Channel:  "D1",
						Text:     "5",
					}).
					Return(nil).Times(1)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Should ignore other interaction types",
			payload:    `{"type":"view_submission","user":{"id":"U1"}}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Should reject malformed payload",
			payload:    `not json`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, router, ctrl := test.GetHandlerTest(t)
			defer ctrl.Finish()

			if tt.buildMocks != nil {
				tt.buildMocks(context.Background(), m)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, test.CreateInteractionRequest(t, tt.payload))

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
