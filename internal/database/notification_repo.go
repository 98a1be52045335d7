package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/contract"
	"github.com/kankrittapon/calendar/internal/domain/entity"
)

type notificationRepo struct {
	db dbConn
}

func newNotificationRepo(db dbConn) contract.NotificationRepo {
	return &notificationRepo{db: db}
}

// Claim relies on the unique (type, target, schedule_id, sent_day) index:
// a second claim for the same key inserts nothing and reports false.
func (r *notificationRepo) Claim(ctx context.Context, n *entity.Notification) (bool, error) {
	query := `
		INSERT OR IGNORE INTO notifications_sent (id, schedule_id, type, target, sent_day, sent_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.SentAt.IsZero() {
		n.SentAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, query, n.ID, n.ScheduleID, string(n.Type), n.Target, n.SentDay, n.SentAt)
	if err != nil {
		return false, fmt.Errorf("failed to claim notification: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return affected == 1, nil
}

func (r *notificationRepo) Release(ctx context.Context, n *entity.Notification) error {
	query := `DELETE FROM notifications_sent WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, n.ID); err != nil {
		return fmt.Errorf("failed to release notification: %w", err)
	}

	return nil
}

func (r *notificationRepo) Exists(ctx context.Context, notificationType domain.NotificationType, target, scheduleID, sentDay string) (bool, error) {
	query := `
		SELECT COUNT(1) FROM notifications_sent
		WHERE type = ? AND target = ? AND schedule_id = ? AND sent_day = ?
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, string(notificationType), target, scheduleID, sentDay).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check notification: %w", err)
	}

	return count > 0, nil
}

func (r *notificationRepo) ListByDay(ctx context.Context, sentDay string) ([]*entity.Notification, error) {
	query := `
		SELECT id, schedule_id, type, target, sent_day, sent_at
		FROM notifications_sent
		WHERE sent_day = ?
		ORDER BY sent_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, sentDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		n := &entity.Notification{}
		if err := rows.Scan(&n.ID, &n.ScheduleID, &n.Type, &n.Target, &n.SentDay, &n.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}
