package database

import (
	"context"
	"testing"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSchedule(title, date, start string) *entity.Schedule {
	return &entity.Schedule{
		Title:      title,
		Date:       date,
		StartTime:  start,
		CategoryID: domain.DefaultCategoryID,
		Assignees:  domain.DefaultAssignees,
	}
}

func TestScheduleRepo_Create(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newScheduleRepo(db.conn)
	ctx := context.Background()

	t.Run("should create schedule with defaults", func(t *testing.T) {
		s := newTestSchedule("ประชุม", "2025-01-15", "14:00")
		s.Place = "ห้องประชุม"

		err := repo.Create(ctx, s)
		require.NoError(t, err)
		assert.NotEmpty(t, s.ID)
		assert.Equal(t, domain.StatusPlanned, s.Status)

		got, err := repo.GetByID(ctx, s.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "ประชุม", got.Title)
		assert.Equal(t, "2025-01-15", got.Date)
		assert.Equal(t, "14:00", got.StartTime)
		assert.Equal(t, "ห้องประชุม", got.Place)
		assert.Equal(t, domain.DefaultCategoryID, got.CategoryID)
		assert.Equal(t, domain.StatusPlanned, got.Status)
		assert.Equal(t, domain.AttendanceUnset, got.Attendance)
		assert.Empty(t, got.EndTime)
	})

	t.Run("should reject unknown category", func(t *testing.T) {
		s := newTestSchedule("ประชุม", "2025-01-15", "14:00")
		s.CategoryID = "does-not-exist"

		err := repo.Create(ctx, s)
		assert.Error(t, err)
	})
}

func TestScheduleRepo_GetByID_NotFound(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newScheduleRepo(db.conn)

	got, err := repo.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestScheduleRepo_Lists(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newScheduleRepo(db.conn)
	ctx := context.Background()

	fixtures := []*entity.Schedule{
		newTestSchedule("late", "2025-01-15", "16:00"),
		newTestSchedule("early", "2025-01-15", "08:30"),
		newTestSchedule("next day", "2025-01-16", "09:00"),
		newTestSchedule("out of range", "2025-01-20", "09:00"),
	}
	cancelled := newTestSchedule("cancelled", "2025-01-15", "10:00")
	cancelled.Status = domain.StatusCancelled
	fixtures = append(fixtures, cancelled)

	for _, s := range fixtures {
		require.NoError(t, repo.Create(ctx, s))
	}

	t.Run("by date ordered by start time", func(t *testing.T) {
		got, err := repo.ListByDate(ctx, "2025-01-15")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "early", got[0].Title)
		assert.Equal(t, "cancelled", got[1].Title)
		assert.Equal(t, "late", got[2].Title)
	})

	t.Run("active by date skips cancelled", func(t *testing.T) {
		got, err := repo.ListActiveByDate(ctx, "2025-01-15")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "early", got[0].Title)
		assert.Equal(t, "late", got[1].Title)
	})

	t.Run("range ordered by date then time", func(t *testing.T) {
		got, err := repo.ListByRange(ctx, "2025-01-15", "2025-01-16")
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "early", got[0].Title)
		assert.Equal(t, "next day", got[3].Title)

		active, err := repo.ListActiveByRange(ctx, "2025-01-15", "2025-01-16")
		require.NoError(t, err)
		assert.Len(t, active, 3)
	})

	t.Run("starting between is half open", func(t *testing.T) {
		got, err := repo.ListActiveStartingBetween(ctx, "2025-01-15", "08:30", "16:00")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "early", got[0].Title)
	})

	t.Run("recent list is limited", func(t *testing.T) {
		got, err := repo.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "out of range", got[0].Title)
	})
}

func TestScheduleRepo_UpdateAndDelete(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newScheduleRepo(db.conn)
	ctx := context.Background()

	s := newTestSchedule("ประชุม", "2025-01-15", "14:00")
	require.NoError(t, repo.Create(ctx, s))

	s.Title = "ประชุมใหญ่"
	s.EndTime = "15:30"
	s.Status = domain.StatusInProgress
	affected, err := repo.Update(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.SetAttendance(ctx, s.ID, domain.AttendanceYes)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "ประชุมใหญ่", got.Title)
	assert.Equal(t, "15:30", got.EndTime)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Equal(t, domain.AttendanceYes, got.Attendance)

	affected, err = repo.Update(ctx, &entity.Schedule{ID: "missing", Title: "x", Date: "2025-01-15", StartTime: "10:00", Status: domain.StatusPlanned})
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.Delete(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(ctx, s.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}
