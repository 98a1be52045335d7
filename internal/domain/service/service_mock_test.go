package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kankrittapon/calendar/internal/config"
	"github.com/kankrittapon/calendar/internal/database"
	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/contract"
	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/kankrittapon/calendar/mocks"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	bangkok = domain.Zone(7)
	// Wednesday
	testNow = time.Date(2025, 1, 15, 9, 0, 0, 0, bangkok)
)

type allMocks struct {
	mockDataManager      *mocks.MockDataManager
	mockScheduleRepo     *mocks.MockScheduleRepo
	mockCategoryRepo     *mocks.MockCategoryRepo
	mockUserRepo         *mocks.MockUserRepo
	mockContactRepo      *mocks.MockContactRepo
	mockNotificationRepo *mocks.MockNotificationRepo
	mockSlackClient      *mocks.MockSlackClient
}

func newServiceTestMock(t *testing.T) (m allMocks, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	scheduleRepo := mocks.NewMockScheduleRepo(ctrl)
	dm.EXPECT().Schedule().Return(scheduleRepo).AnyTimes()

	categoryRepo := mocks.NewMockCategoryRepo(ctrl)
	dm.EXPECT().Category().Return(categoryRepo).AnyTimes()

	userRepo := mocks.NewMockUserRepo(ctrl)
	dm.EXPECT().User().Return(userRepo).AnyTimes()

	contactRepo := mocks.NewMockContactRepo(ctrl)
	dm.EXPECT().Contact().Return(contactRepo).AnyTimes()

	notificationRepo := mocks.NewMockNotificationRepo(ctrl)
	dm.EXPECT().Notification().Return(notificationRepo).AnyTimes()

	dm.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(contract.DataManager) error) error {
			return fn(dm)
		}).AnyTimes()

	slackClient := mocks.NewMockSlackClient(ctrl)

	m = allMocks{
		mockDataManager:      dm,
		mockScheduleRepo:     scheduleRepo,
		mockCategoryRepo:     categoryRepo,
		mockUserRepo:         userRepo,
		mockContactRepo:      contactRepo,
		mockNotificationRepo: notificationRepo,
		mockSlackClient:      slackClient,
	}

	// validate service creation
	instance := NewInstance(dm, slackClient, testConfig())
	require.NotNil(t, instance)

	return
}

func testConfig() *config.Config {
	return &config.Config{
		DailyDigestTime:    "08:30",
		TomorrowDigestTime: "20:00",
		ReminderMinutes:    []int{0, 30},
		UTCOffsetHours:     7,
		SendTimeout:        time.Second,
	}
}

// newTestInstance wires the services to an in-memory database and a mocked Slack client
func newTestInstance(t *testing.T) (*Instance, contract.DataManager, *mocks.MockSlackClient) {
	t.Helper()

	db := database.SetupTestDB(t)
	t.Cleanup(func() { database.CleanupTestDB(t, db) })

	ctrl := gomock.NewController(t)
	slackClient := mocks.NewMockSlackClient(ctrl)
	dm := database.NewInstance(db)

	instance := NewInstance(dm, slackClient, testConfig())
	instance.Chat.now = func() time.Time { return testNow }

	return instance, dm, slackClient
}

type sentMessage struct {
	target string
	text   string
}

// outbox records every message posted through the mocked Slack client
type outbox struct {
	mu   sync.Mutex
	sent []sentMessage
	fail map[string]bool
}

func recordSends(t *testing.T, slackClient *mocks.MockSlackClient) *outbox {
	t.Helper()

	box := &outbox{fail: map[string]bool{}}
	slackClient.EXPECT().
		PostMessageContext(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
			box.mu.Lock()
			defer box.mu.Unlock()

			if box.fail[channelID] {
				return "", "", errors.New("channel_not_found")
			}
			box.sent = append(box.sent, sentMessage{target: channelID, text: sentText(t, options)})
			return channelID, "1736906400.000100", nil
		}).AnyTimes()

	return box
}

func (b *outbox) failFor(target string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[target] = true
}

func (b *outbox) restore(target string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.fail, target)
}

func (b *outbox) to(target string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var texts []string
	for _, m := range b.sent {
		if m.target == target {
			texts = append(texts, m.text)
		}
	}
	return texts
}

func (b *outbox) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sent)
}

// sentText decodes the fallback text of a captured message
func sentText(t *testing.T, options []slack.MsgOption) string {
	t.Helper()

	_, values, err := slack.UnsafeApplyMsgOptions("", "", "", options...)
	require.NoError(t, err)
	return values.Get("text")
}

func addUser(t *testing.T, dm contract.DataManager, messagingID string, role domain.Role) *entity.User {
	t.Helper()

	user := &entity.User{Name: messagingID, Role: role, MessagingID: messagingID}
	require.NoError(t, dm.User().Create(context.Background(), user))
	return user
}
