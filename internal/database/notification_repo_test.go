package database

import (
	"context"
	"testing"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepo_Claim(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newNotificationRepo(db.conn)
	ctx := context.Background()

	digest := func() *entity.Notification {
		return &entity.Notification{
			ScheduleID: domain.DigestScheduleID,
			Type:       domain.NotificationDaily,
			Target:     "UB",
			SentDay:    "2025-01-15",
		}
	}

	claimed, err := repo.Claim(ctx, digest())
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.Claim(ctx, digest())
	require.NoError(t, err)
	assert.False(t, claimed, "second claim for the same day must not insert")

	other := digest()
	other.SentDay = "2025-01-16"
	claimed, err = repo.Claim(ctx, other)
	require.NoError(t, err)
	assert.True(t, claimed)

	tomorrow := digest()
	tomorrow.Type = domain.NotificationTomorrow
	claimed, err = repo.Claim(ctx, tomorrow)
	require.NoError(t, err)
	assert.True(t, claimed)

	exists, err := repo.Exists(ctx, domain.NotificationDaily, "UB", domain.DigestScheduleID, "2025-01-15")
	require.NoError(t, err)
	assert.True(t, exists)

	rows, err := repo.ListByDay(ctx, "2025-01-15")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestNotificationRepo_ReminderPerSchedule(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newNotificationRepo(db.conn)
	ctx := context.Background()

	for _, scheduleID := range []string{"s1", "s2", "s1"} {
		_, err := repo.Claim(ctx, &entity.Notification{
			ScheduleID: scheduleID,
			Type:       domain.NotificationReminder,
			Target:     "UB",
			SentDay:    "2025-01-15",
		})
		require.NoError(t, err)
	}

	rows, err := repo.ListByDay(ctx, "2025-01-15")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestNotificationRepo_Release(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newNotificationRepo(db.conn)
	ctx := context.Background()

	n := &entity.Notification{ScheduleID: "-", Type: domain.NotificationDaily, Target: "UB", SentDay: "2025-01-15"}
	claimed, err := repo.Claim(ctx, n)
	require.NoError(t, err)
	require.True(t, claimed)

	require.NoError(t, repo.Release(ctx, n))

	exists, err := repo.Exists(ctx, domain.NotificationDaily, "UB", "-", "2025-01-15")
	require.NoError(t, err)
	assert.False(t, exists)

	retry := &entity.Notification{ScheduleID: "-", Type: domain.NotificationDaily, Target: "UB", SentDay: "2025-01-15"}
	claimed, err = repo.Claim(ctx, retry)
	require.NoError(t, err)
	assert.True(t, claimed)
}
