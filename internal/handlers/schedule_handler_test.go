package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/kankrittapon/calendar/internal/handlers"
	"github.com/kankrittapon/calendar/internal/handlers/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestScheduleHandler_Create(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		buildMocks    func(ctx context.Context, m test.ServiceMocks)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "Should create schedule",
			body: `{"title":"ประชุม","date":"2025-01-15","start_time":"10:00","place":"ห้อง 1","category_id":"` + domain.CategoryBigID + `"}`,
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.ScheduleServiceMock.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *entity.Schedule) error {
						assert.Equal(t, "ประชุม", s.Title)
						assert.Equal(t, "ห้อง 1", s.Place)
						s.ID = "s1"
						s.Status = domain.StatusPlanned
						return nil
					}).Times(1)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusCreated, recorder.Code)

				var response handlers.ScheduleResponse
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
				assert.Equal(t, "s1", response.ID)
				assert.Equal(t, "planned", response.Status)
				assert.Equal(t, "#f59e0b", response.Color)
			},
		},
		{
			name: "Should reject end before start",
			body: `{"title":"ประชุม","date":"2025-01-15","start_time":"10:00","end_time":"09:00"}`,
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.ScheduleServiceMock.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrEndBeforeStart).Times(1)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)

				var response handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
				assert.Equal(t, handlers.ErrValidation, response.Error)
			},
		},
		{
			name: "Should reject malformed body",
			body: `{"title":`,
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "Should hide store failures",
			body: `{"title":"ประชุม","date":"2025-01-15","start_time":"10:00"}`,
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.ScheduleServiceMock.EXPECT().Create(gomock.Any(), gomock.Any()).Return(assert.AnError).Times(1)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusInternalServerError, recorder.Code)
				assert.NotContains(t, recorder.Body.String(), assert.AnError.Error())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, router, ctrl := test.GetHandlerTest(t)
			defer ctrl.Finish()

			if tt.buildMocks != nil {
				tt.buildMocks(context.Background(), m)
			}

			req := httptest.NewRequest(http.MethodPost, "/schedules", strings.NewReader(tt.body))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			tt.checkResponse(t, recorder)
		})
	}
}

func TestScheduleHandler_Update(t *testing.T) {
	m, router, ctrl := test.GetHandlerTest(t)
	defer ctrl.Finish()

	m.ScheduleServiceMock.EXPECT().
		Update(gomock.Any(), "s1", gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, update entity.ScheduleUpdate) (*entity.Schedule, error) {
			require.NotNil(t, update.Status)
			assert.Equal(t, domain.StatusInProgress, *update.Status)
			assert.Nil(t, update.Title)
			return &entity.Schedule{ID: id}, nil
		}).Times(1)

	req := httptest.NewRequest(http.MethodPatch, "/schedules/s1", strings.NewReader(`{"status":"in_progress"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"id":"s1","updated":true}`, recorder.Body.String())

	t.Run("unknown id", func(t *testing.T) {
		m.ScheduleServiceMock.EXPECT().Update(gomock.Any(), "missing", gomock.Any()).Return(nil, domain.ErrNotFound).Times(1)

		req := httptest.NewRequest(http.MethodPatch, "/schedules/missing", strings.NewReader(`{"title":"x"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("bad transition", func(t *testing.T) {
		m.ScheduleServiceMock.EXPECT().Update(gomock.Any(), "s1", gomock.Any()).Return(nil, domain.ErrInvalidStatusTransition).Times(1)

		req := httptest.NewRequest(http.MethodPatch, "/schedules/s1", strings.NewReader(`{"status":"planned"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestScheduleHandler_DeleteAndLists(t *testing.T) {
	m, router, ctrl := test.GetHandlerTest(t)
	defer ctrl.Finish()

	serve := func(method, target string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
		return recorder
	}

	m.ScheduleServiceMock.EXPECT().Delete(gomock.Any(), "s1").Return(nil).Times(1)
	recorder := serve(http.MethodDelete, "/schedules/s1")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"id":"s1","deleted":true}`, recorder.Body.String())

	m.ScheduleServiceMock.EXPECT().ListByDate(gomock.Any(), "2025-01-15").
		Return([]*entity.Schedule{{ID: "s1", Title: "ประชุม", Date: "2025-01-15", StartTime: "10:00"}}, nil).Times(1)
	recorder = serve(http.MethodGet, "/schedules?date=2025-01-15")
	require.Equal(t, http.StatusOK, recorder.Code)
	var items []handlers.ScheduleResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "ประชุม", items[0].Title)

	m.ScheduleServiceMock.EXPECT().ListRecent(gomock.Any(), 0).Return(nil, nil).Times(1)
	recorder = serve(http.MethodGet, "/schedules")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())

	recorder = serve(http.MethodGet, "/public/schedules?start=2025-01-01")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	m.ScheduleServiceMock.EXPECT().ListActiveByRange(gomock.Any(), "2025-01-01", "2025-01-31").Return(nil, nil).Times(1)
	recorder = serve(http.MethodGet, "/public/schedules?start=2025-01-01&end=2025-01-31")
	assert.Equal(t, http.StatusOK, recorder.Code)

	m.ScheduleServiceMock.EXPECT().Categories(gomock.Any()).Return(domain.Categories, nil).Times(1)
	recorder = serve(http.MethodGet, "/categories")
	require.Equal(t, http.StatusOK, recorder.Code)
	var categories []handlers.CategoryResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &categories))
	assert.Len(t, categories, 4)

	recorder = serve(http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, recorder.Code)
}
