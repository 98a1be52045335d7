package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/kankrittapon/calendar/internal/handlers"
	"github.com/kankrittapon/calendar/internal/handlers/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAdminHandler_RequiresToken(t *testing.T) {
	_, router, ctrl := test.GetHandlerTest(t)
	defer ctrl.Finish()

	for _, header := range []string{"", "Bearer wrong", test.AdminToken} {
		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "header %q", header)
	}
}

func TestAdminHandler_Users(t *testing.T) {
	m, router, ctrl := test.GetHandlerTest(t)
	defer ctrl.Finish()

	serve := func(method, target, body string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, test.CreateAdminRequest(t, method, target, strings.NewReader(body)))
		return recorder
	}

	m.AdminServiceMock.EXPECT().ListUsers(gomock.Any()).
		Return([]*entity.User{{ID: "u1", Name: "หัวหน้า", Role: domain.RoleBoss, MessagingID: "UB"}}, nil).Times(1)
	recorder := serve(http.MethodGet, "/admin/users", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"userId":"UB"`)

	m.AdminServiceMock.EXPECT().SetBoss(gomock.Any(), "UB", "").
		Return(&entity.User{ID: "u1", Role: domain.RoleBoss, MessagingID: "UB"}, nil).Times(1)
	recorder = serve(http.MethodPost, "/admin/boss", `{"userId":"UB"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = serve(http.MethodPost, "/admin/boss", `{}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	m.AdminServiceMock.EXPECT().AddSecretary(gomock.Any(), "US", "สมศรี").Return(nil, domain.ErrAlreadyExists).Times(1)
	recorder = serve(http.MethodPost, "/admin/secretaries", `{"userId":"US","name":"สมศรี"}`)
	assert.Equal(t, http.StatusConflict, recorder.Code)

	m.AdminServiceMock.EXPECT().UpdateRole(gomock.Any(), "u1", domain.Role("owner")).Return(domain.ErrInvalidRole).Times(1)
	recorder = serve(http.MethodPatch, "/admin/users/u1/role", `{"role":"owner"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	m.AdminServiceMock.EXPECT().DeleteUser(gomock.Any(), "u1").Return(nil).Times(1)
	recorder = serve(http.MethodDelete, "/admin/users/u1", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAdminHandler_Contacts(t *testing.T) {
	m, router, ctrl := test.GetHandlerTest(t)
	defer ctrl.Finish()

	serve := func(method, target, body string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, test.CreateAdminRequest(t, method, target, strings.NewReader(body)))
		return recorder
	}

	m.AdminServiceMock.EXPECT().ListContacts(gomock.Any()).
		Return([]*entity.Contact{{MessagingID: "UC", DisplayName: "สมชาย"}}, nil).Times(1)
	recorder := serve(http.MethodGet, "/admin/contacts", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "สมชาย")

	m.AdminServiceMock.EXPECT().PromoteContact(gomock.Any(), "UC", "", domain.RoleSecretary).
		Return(&entity.User{ID: "u2", Role: domain.RoleSecretary, MessagingID: "UC"}, nil).Times(1)
	recorder = serve(http.MethodPost, "/admin/contacts/UC/promote", `{"role":"secretary"}`)
	assert.Equal(t, http.StatusCreated, recorder.Code)

	m.AdminServiceMock.EXPECT().DeleteContact(gomock.Any(), "UX").Return(domain.ErrNotFound).Times(1)
	recorder = serve(http.MethodDelete, "/admin/contacts/UX", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAdminHandler_Triggers(t *testing.T) {
	m, router, ctrl := test.GetHandlerTest(t)
	defer ctrl.Finish()

	serve := func(target string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, test.CreateAdminRequest(t, http.MethodPost, target, nil))
		return recorder
	}

	m.DigestServiceMock.EXPECT().SendDigest(gomock.Any(), domain.NotificationTomorrow, gomock.Any(), true).Return(2, nil).Times(1)
	recorder := serve("/admin/digest?type=tomorrow&force=true")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"sent":2}`, recorder.Body.String())

	m.DigestServiceMock.EXPECT().SendDigest(gomock.Any(), domain.NotificationDaily, gomock.Any(), false).Return(1, nil).Times(1)
	recorder = serve("/admin/digest?type=today")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = serve("/admin/digest?type=weekly")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	m.DigestServiceMock.EXPECT().SendReminders(gomock.Any(), gomock.Any()).Return(0, nil).Times(1)
	recorder = serve("/admin/reminders")
	assert.JSONEq(t, `{"sent":0}`, recorder.Body.String())

	m.AdminServiceMock.EXPECT().Seed(gomock.Any()).Return(nil).Times(1)
	recorder = serve("/admin/seed")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAdminHandler_Notifications(t *testing.T) {
	m, router, ctrl := test.GetHandlerTest(t)
	defer ctrl.Finish()

	serve := func(target string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, test.CreateAdminRequest(t, http.MethodGet, target, nil))
		return recorder
	}

	sentAt := time.Date(2025, 1, 15, 1, 30, 0, 0, time.UTC)
	m.AdminServiceMock.EXPECT().ListNotifications(gomock.Any(), "2025-01-15").
		Return([]*entity.Notification{{
			ID: "n1", ScheduleID: domain.DigestScheduleID, Type: domain.NotificationDaily,
			Target: "UB", SentDay: "2025-01-15", SentAt: sentAt,
		}}, nil).Times(1)
	recorder := serve("/admin/notifications?day=2025-01-15")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[{"id":"n1","type":"daily","target":"UB","schedule_id":"-","sent_day":"2025-01-15","sent_at":"2025-01-15T01:30:00Z"}]`, recorder.Body.String())

	m.AdminServiceMock.EXPECT().ListNotifications(gomock.Any(), "2025-01-16").Return(nil, nil).Times(1)
	recorder = serve("/admin/notifications?day=2025-01-16")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())

	m.AdminServiceMock.EXPECT().ListNotifications(gomock.Any(), "").Return(nil, domain.ErrInvalidDate).Times(1)
	recorder = serve("/admin/notifications")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestParseDigestType(t *testing.T) {
	for in, want := range map[string]domain.NotificationType{
		"":         domain.NotificationDaily,
		"today":    domain.NotificationDaily,
		"daily":    domain.NotificationDaily,
		"tomorrow": domain.NotificationTomorrow,
	} {
		got, ok := handlers.ParseDigestType(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got)
	}

	_, ok := handlers.ParseDigestType("reminder")
	assert.False(t, ok)
}
