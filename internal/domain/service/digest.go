package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/contract"
	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/kankrittapon/calendar/internal/logger"
)

// reminders look ahead into [now+60m, now+120m) of the same day
const (
	reminderLeadMinutes   = 60
	reminderWindowMinutes = 60
	minutesPerDay         = 24 * 60
)

type digestService struct {
	dm              contract.DataManager
	messenger       *messenger
	location        *time.Location
	dailyAt         int // minute of day
	tomorrowAt      int // minute of day
	reminderMinutes []int
}

func newDigestService(dm contract.DataManager, messenger *messenger, location *time.Location, dailyAt, tomorrowAt string, reminderMinutes []int) *digestService {
	s := &digestService{
		dm:              dm,
		messenger:       messenger,
		location:        location,
		reminderMinutes: reminderMinutes,
	}

	var err error
	if s.dailyAt, err = domain.MinuteOfDay(dailyAt); err != nil {
		logger.Warn("invalid daily digest time, digest disabled", "value", dailyAt)
		s.dailyAt = -1
	}
	if s.tomorrowAt, err = domain.MinuteOfDay(tomorrowAt); err != nil {
		logger.Warn("invalid tomorrow digest time, digest disabled", "value", tomorrowAt)
		s.tomorrowAt = -1
	}

	return s
}

// Tick runs whatever is due at now. The three checks are independent and may all fire together.
func (s *digestService) Tick(ctx context.Context, now time.Time) {
	local := now.In(s.location)
	minute := local.Hour()*60 + local.Minute()

	if minute == s.dailyAt {
		if _, err := s.SendDigest(ctx, domain.NotificationDaily, now, false); err != nil {
			logger.Error("failed to send daily digest", "error", err)
		}
	}
	if minute == s.tomorrowAt {
		if _, err := s.SendDigest(ctx, domain.NotificationTomorrow, now, false); err != nil {
			logger.Error("failed to send tomorrow digest", "error", err)
		}
	}
	if slices.Contains(s.reminderMinutes, local.Minute()) {
		if _, err := s.SendReminders(ctx, now); err != nil {
			logger.Error("failed to send reminders", "error", err)
		}
	}
}

// SendDigest sends the daily or tomorrow agenda to every boss, at most once per boss and
// send day unless force is set. force bypasses the ledger entirely and writes nothing.
// It returns the number of messages sent.
func (s *digestService) SendDigest(ctx context.Context, notificationType domain.NotificationType, now time.Time, force bool) (int, error) {
	local := now.In(s.location)
	target := domain.StartOfDay(local)
	dayText := "วันนี้"

	switch notificationType {
	case domain.NotificationDaily:
	case domain.NotificationTomorrow:
		target = target.AddDate(0, 0, 1)
		dayText = "พรุ่งนี้"
	default:
		return 0, domain.ErrInvalidNotificationType
	}

	bosses, err := s.dm.User().ListReachableByRole(ctx, domain.RoleBoss)
	if err != nil {
		return 0, fmt.Errorf("failed to list bosses: %w", err)
	}
	if len(bosses) == 0 {
		logger.Warn("no boss with a slack identity, skipping digest", "type", notificationType)
		return 0, nil
	}

	date := domain.DateOf(target)
	items, err := s.dm.Schedule().ListActiveByDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to list schedules for %s: %w", date, err)
	}

	if domain.IsWeekend(target) && len(items) == 0 {
		logger.Info("skipping weekend digest without schedules", "type", notificationType, "date", date)
		return 0, nil
	}

	reply := entity.TextReply(fmt.Sprintf("สรุปงานประจำวัน%s (%s)\n— %sไม่มีงานที่ต้องทำ —", dayText, date, dayText))
	if len(items) > 0 {
		reply = dayCard("📅 ตารางงานประจำวัน"+dayText, date, items)
	}

	sentDay := domain.DateOf(local)
	sent := 0
	for _, boss := range bosses {
		if force {
			if err := s.messenger.Send(ctx, boss.MessagingID, reply); err == nil {
				sent++
			}
			continue
		}

		n := &entity.Notification{
			ScheduleID: domain.DigestScheduleID,
			Type:       notificationType,
			Target:     boss.MessagingID,
			SentDay:    sentDay,
		}
		if s.deliverOnce(ctx, n, reply) {
			sent++
		}
	}

	logger.Info("digest processed", "type", notificationType, "date", date, "items", len(items), "sent", sent, "force", force)
	return sent, nil
}

// SendReminders warns every boss about entries starting one to two hours from now,
// once per boss and schedule per day
func (s *digestService) SendReminders(ctx context.Context, now time.Time) (int, error) {
	local := now.In(s.location)
	minute := local.Hour()*60 + local.Minute()

	from := minute + reminderLeadMinutes
	if from >= minutesPerDay {
		return 0, nil
	}
	to := from + reminderWindowMinutes

	date := domain.DateOf(local)
	items, err := s.dm.Schedule().ListActiveStartingBetween(ctx, date, clockOf(from), clockOf(to))
	if err != nil {
		return 0, fmt.Errorf("failed to list upcoming schedules: %w", err)
	}
	if len(items) == 0 {
		return 0, nil
	}

	bosses, err := s.dm.User().ListReachableByRole(ctx, domain.RoleBoss)
	if err != nil {
		return 0, fmt.Errorf("failed to list bosses: %w", err)
	}
	if len(bosses) == 0 {
		logger.Warn("no boss with a slack identity, skipping reminders")
		return 0, nil
	}

	sent := 0
	for _, boss := range bosses {
		for _, item := range items {
			n := &entity.Notification{
				ScheduleID: item.ID,
				Type:       domain.NotificationReminder,
				Target:     boss.MessagingID,
				SentDay:    date,
			}
			if s.deliverOnce(ctx, n, reminderCard(item)) {
				sent++
			}
		}
	}

	logger.Info("reminders processed", "date", date, "items", len(items), "sent", sent)
	return sent, nil
}

// deliverOnce claims the ledger row before sending so concurrent ticks cannot both send.
// A failed send releases the claim so a later tick may retry.
func (s *digestService) deliverOnce(ctx context.Context, n *entity.Notification, reply *entity.Reply) bool {
	claimed, err := s.dm.Notification().Claim(ctx, n)
	if err != nil {
		logger.Error("failed to claim notification", "type", n.Type, "target", n.Target, "error", err)
		return false
	}
	if !claimed {
		logger.Debug("notification already sent", "type", n.Type, "target", n.Target, "schedule", n.ScheduleID, "day", n.SentDay)
		return false
	}

	if err := s.messenger.Send(ctx, n.Target, reply); err != nil {
		if err := s.dm.Notification().Release(ctx, n); err != nil {
			logger.Error("failed to release notification claim", "type", n.Type, "target", n.Target, "error", err)
		}
		return false
	}

	return true
}

// clockOf renders a minute of day as HH:MM; the end of day is "24:00" so it sorts after 23:59
func clockOf(minute int) string {
	if minute >= minutesPerDay {
		return "24:00"
	}
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
