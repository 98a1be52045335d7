package test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/kankrittapon/calendar/internal/handlers"
	"github.com/kankrittapon/calendar/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	SigningSecret = "test-signing-secret"
	AdminToken    = "test-admin-token"
)

type ServiceMocks struct {
	ChatServiceMock     *mocks.MockChatService
	ScheduleServiceMock *mocks.MockScheduleService
	AdminServiceMock    *mocks.MockAdminService
	DigestServiceMock   *mocks.MockDigestService
}

func GetHandlerTest(t *testing.T) (m ServiceMocks, router http.Handler, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)
	m = ServiceMocks{
		ChatServiceMock:     mocks.NewMockChatService(ctrl),
		ScheduleServiceMock: mocks.NewMockScheduleService(ctrl),
		AdminServiceMock:    mocks.NewMockAdminService(ctrl),
		DigestServiceMock:   mocks.NewMockDigestService(ctrl),
	}

	router = handlers.NewRouter(
		handlers.NewSlackHandler(m.ChatServiceMock, SigningSecret),
		handlers.NewScheduleHandler(m.ScheduleServiceMock),
		handlers.NewAdminHandler(m.AdminServiceMock, m.DigestServiceMock),
		AdminToken,
	)

	return
}

// CreateSlackEventRequest creates a properly signed Events API request
func CreateSlackEventRequest(t *testing.T, body string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	sign(req, SigningSecret, body)

	return req
}

// CreateInteractionRequest creates a properly signed interactivity request carrying payload
func CreateInteractionRequest(t *testing.T, payload string) *http.Request {
	t.Helper()

	body := url.Values{"payload": {payload}}.Encode()

	req, err := http.NewRequest(http.MethodPost, "/slack/interactions", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	sign(req, SigningSecret, body)

	return req
}

// CreateAdminRequest creates an API request with the admin bearer token
func CreateAdminRequest(t *testing.T, method, target string, body io.Reader) *http.Request {
	t.Helper()

	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+AdminToken)
	req.Header.Set("Content-Type", "application/json")

	return req
}

func sign(req *http.Request, signingSecret, body string) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)
	req.Header.Set("X-Slack-Signature", generateSlackSignature(signingSecret, timestamp, body))
}

func generateSlackSignature(signingSecret, timestamp, body string) string {
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	signature := hex.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("v0=%s", signature)
}
