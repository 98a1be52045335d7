package service

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/command"
	"github.com/kankrittapon/calendar/internal/domain/contract"
	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/kankrittapon/calendar/internal/logger"
)

const bossMessagePrefix = "ข้อความจากหัวหน้า:\n\n"

var (
	bossOnly      = []domain.Role{domain.RoleBoss}
	bossSecretary = []domain.Role{domain.RoleBoss, domain.RoleSecretary}
)

// commandRoles lists who may run each parsed command. Unrecognized text is
// handled separately because its meaning depends on the role.
var commandRoles = map[command.CommandType][]domain.Role{
	command.CmdListToday:    bossOnly,
	command.CmdListTomorrow: bossOnly,
	command.CmdListWeek:     bossOnly,
	command.CmdListMonth:    bossOnly,
	command.CmdHelp:         bossOnly,
	command.CmdPromptSend:   bossOnly,
	command.CmdMessageGuide: bossOnly,
	command.CmdSend:         bossOnly,
	command.CmdUrgent:       bossOnly,
	command.CmdAddSchedule:  bossSecretary,
}

type chatService struct {
	dm        contract.DataManager
	messenger *messenger
	schedules *scheduleService
	location  *time.Location
	now       func() time.Time
}

func newChatService(dm contract.DataManager, messenger *messenger, schedules *scheduleService, location *time.Location) *chatService {
	return &chatService{
		dm:        dm,
		messenger: messenger,
		schedules: schedules,
		location:  location,
		now:       time.Now,
	}
}

// Respond dispatches the event and posts the reply, if any, to the sender
func (s *chatService) Respond(ctx context.Context, event entity.ChatEvent) error {
	reply, err := s.Dispatch(ctx, event)
	if err != nil {
		logger.Error("failed to handle chat event", "type", event.Type, "sender", event.SenderID, "error", err)
	}
	if reply == nil {
		return nil
	}
	return s.messenger.Send(ctx, event.ReplyTarget(), reply)
}

// Dispatch resolves the sender's role once and routes the event. On failure it
// still returns a generic reply alongside the error. A panic never escapes.
func (s *chatService) Dispatch(ctx context.Context, event entity.ChatEvent) (reply *entity.Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while handling chat event", "panic", r, "stack", string(debug.Stack()))
			reply = entity.TextReply(command.GenericError)
			err = fmt.Errorf("panic while handling chat event: %v", r)
		}
	}()

	if event.SenderID == "" {
		return nil, nil
	}

	if event.Type == entity.ChatEventFollow {
		return s.handleFollow(ctx, event)
	}

	role, err := s.resolveRole(ctx, event.SenderID)
	if err != nil {
		return entity.TextReply(command.GenericError), err
	}

	switch event.Type {
	case entity.ChatEventMessage:
		return s.handleMessage(ctx, role, event)
	case entity.ChatEventPostback:
		return s.handlePostback(ctx, role, event)
	}

	return nil, nil
}

func (s *chatService) resolveRole(ctx context.Context, senderID string) (domain.Role, error) {
	user, err := s.dm.User().GetByMessagingID(ctx, senderID)
	if err != nil {
		return domain.RoleNone, fmt.Errorf("failed to resolve role: %w", err)
	}
	if user == nil {
		return domain.RoleNone, nil
	}
	return user.Role, nil
}

func allowed(cmdType command.CommandType, role domain.Role) bool {
	for _, r := range commandRoles[cmdType] {
		if r == role {
			return true
		}
	}
	return false
}

func (s *chatService) handleMessage(ctx context.Context, role domain.Role, event entity.ChatEvent) (*entity.Reply, error) {
	now := s.now().In(s.location)
	cmd := command.ParseCommand(event.Text, now)

	if cmd.Type == command.CmdUnrecognized {
		return s.handleUnrecognized(ctx, role, cmd)
	}

	if !allowed(cmd.Type, role) {
		if cmd.Type == command.CmdAddSchedule {
			return entity.TextReply(command.DenyBossSecretary), nil
		}
		return entity.TextReply(command.DenyBossOnly), nil
	}

	today := domain.StartOfDay(now)

	switch cmd.Type {
	case command.CmdListToday:
		return s.listDay(ctx, today, "วันนี้")
	case command.CmdListTomorrow:
		return s.listDay(ctx, today.AddDate(0, 0, 1), "พรุ่งนี้")
	case command.CmdListWeek:
		return s.listWeek(ctx, today)
	case command.CmdListMonth:
		return s.listMonth(ctx, today)
	case command.CmdHelp:
		return helpCard(), nil
	case command.CmdPromptSend:
		return entity.TextReply(command.PromptSendText), nil
	case command.CmdMessageGuide:
		return entity.TextReply(command.MessageGuideText), nil
	case command.CmdSend:
		return s.sendToSecretaries(ctx, cmd.Payload)
	case command.CmdUrgent:
		return s.sendUrgent(ctx, cmd.Payload, now)
	case command.CmdAddSchedule:
		return s.addSchedules(ctx, role, cmd.Entries)
	}

	return entity.TextReply(command.NotUnderstood), nil
}

// handleUnrecognized treats plain text from the boss as a message for the
// secretaries, unless it starts with a trigger word and was meant as a command
func (s *chatService) handleUnrecognized(ctx context.Context, role domain.Role, cmd *command.Command) (*entity.Reply, error) {
	if role != domain.RoleBoss || cmd.Raw == "" || command.IsReservedPrefix(cmd.Raw) {
		return entity.TextReply(command.NotUnderstood), nil
	}
	return s.sendToSecretaries(ctx, cmd.Raw)
}

func (s *chatService) listDay(ctx context.Context, day time.Time, dayText string) (*entity.Reply, error) {
	date := domain.DateOf(day)
	items, err := s.dm.Schedule().ListByDate(ctx, date)
	if err != nil {
		return entity.TextReply(command.GenericError), fmt.Errorf("failed to list schedules for %s: %w", date, err)
	}
	if len(items) == 0 {
		return entity.TextReply(dayText + "ไม่มีงาน"), nil
	}
	return dayCard("📅 ตารางงาน"+dayText, date, items), nil
}

func (s *chatService) listWeek(ctx context.Context, today time.Time) (*entity.Reply, error) {
	start, end := domain.WeekRange(today)
	items, err := s.dm.Schedule().ListByRange(ctx, domain.DateOf(start), domain.DateOf(end))
	if err != nil {
		return entity.TextReply(command.GenericError), fmt.Errorf("failed to list schedules for week: %w", err)
	}
	if len(items) == 0 {
		return entity.TextReply("สัปดาห์นี้ไม่มีงาน"), nil
	}
	return weekCard(domain.DateOf(start), domain.DateOf(end), items), nil
}

func (s *chatService) listMonth(ctx context.Context, today time.Time) (*entity.Reply, error) {
	start, end := domain.MonthRange(today)
	items, err := s.dm.Schedule().ListByRange(ctx, domain.DateOf(start), domain.DateOf(end))
	if err != nil {
		return entity.TextReply(command.GenericError), fmt.Errorf("failed to list schedules for month: %w", err)
	}
	if len(items) == 0 {
		return entity.TextReply("เดือนนี้ไม่มีงาน"), nil
	}
	return monthSummary(start, items), nil
}

func (s *chatService) secretaries(ctx context.Context) ([]*entity.User, error) {
	secretaries, err := s.dm.User().ListReachableByRole(ctx, domain.RoleSecretary)
	if err != nil {
		return nil, fmt.Errorf("failed to list secretaries: %w", err)
	}
	return secretaries, nil
}

func (s *chatService) sendToSecretaries(ctx context.Context, message string) (*entity.Reply, error) {
	secretaries, err := s.secretaries(ctx)
	if err != nil {
		return entity.TextReply(command.GenericError), err
	}

	sent := s.messenger.Broadcast(ctx, secretaries, entity.TextReply(bossMessagePrefix+message))
	logger.Info("boss message sent to secretaries", "sent", sent, "secretaries", len(secretaries))

	return entity.TextReply(fmt.Sprintf("✅ ส่งข้อความไป %d คน: %s", sent, message)), nil
}

func (s *chatService) sendUrgent(ctx context.Context, task string, now time.Time) (*entity.Reply, error) {
	if task == "" {
		return entity.TextReply(command.UrgentUsage), nil
	}

	secretaries, err := s.secretaries(ctx)
	if err != nil {
		return entity.TextReply(command.GenericError), err
	}
	if len(secretaries) == 0 {
		logger.Info("no secretary with a slack identity for urgent task", "task", task)
	} else {
		sent := s.messenger.Broadcast(ctx, secretaries, urgentCard(task, now))
		logger.Info("urgent task sent to secretaries", "sent", sent, "secretaries", len(secretaries))
	}

	return entity.TextReply("✅ ส่งงานด่วนแล้ว: " + task), nil
}

// addSchedules creates each entry on its own and reports one line per entry, in input order
func (s *chatService) addSchedules(ctx context.Context, role domain.Role, entries []command.Entry) (*entity.Reply, error) {
	if len(entries) == 0 {
		return entity.TextReply(command.AddUsage), nil
	}

	notes := "เพิ่มจาก Slack โดยเลขา"
	if role == domain.RoleBoss {
		notes = "เพิ่มจาก Slack โดยหัวหน้า"
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		title := e.Title
		if title == "" {
			title = "งานไม่ระบุชื่อ"
		}
		if e.Err != nil {
			lines = append(lines, fmt.Sprintf("❌ %s: %s", title, entryErrorText(e.Err)))
			continue
		}

		schedule := &entity.Schedule{
			Title:      e.Title,
			Date:       e.Date,
			StartTime:  e.StartTime,
			Location:   e.Location,
			Place:      e.Location,
			CategoryID: e.CategoryID,
			Assignees:  domain.DefaultAssignees,
			Notes:      notes,
			Status:     domain.StatusPlanned,
		}
		if err := s.schedules.Create(ctx, schedule); err != nil {
			logger.Error("failed to add schedule from chat", "title", e.Title, "error", err)
			lines = append(lines, fmt.Sprintf("❌ %s: %s", title, entryErrorText(err)))
			continue
		}
		lines = append(lines, fmt.Sprintf("✅ %s: %s %s", title, schedule.Date, schedule.StartTime))
	}

	return entity.TextReply(fmt.Sprintf("📋 สรุปการเพิ่มงาน (%d งาน):\n\n%s", len(entries), strings.Join(lines, "\n"))), nil
}

func entryErrorText(err error) string {
	switch {
	case errors.Is(err, command.ErrMissingFields):
		return "รูปแบบไม่ถูกต้อง (ต้องมี ชื่องาน วันที่ เวลา)"
	case errors.Is(err, domain.ErrInvalidDate):
		return "รูปแบบวันที่ไม่ถูกต้อง"
	case errors.Is(err, domain.ErrInvalidTime):
		return "รูปแบบเวลาไม่ถูกต้อง"
	case errors.Is(err, domain.ErrInvalidTitle):
		return "ชื่องานไม่ถูกต้องหรือยาวเกินไป"
	}
	return "บันทึกไม่สำเร็จ"
}

func (s *chatService) handlePostback(ctx context.Context, role domain.Role, event entity.ChatEvent) (*entity.Reply, error) {
	postback, err := command.ParsePostback(event.Data)
	if err != nil {
		logger.Warn("ignoring unknown postback", "data", event.Data)
		return nil, nil
	}
	if role != domain.RoleBoss {
		return entity.TextReply(command.DenyBossOnly), nil
	}

	schedule, err := s.dm.Schedule().GetByID(ctx, postback.ScheduleID)
	if err != nil {
		return entity.TextReply(command.GenericError), fmt.Errorf("failed to get schedule: %w", err)
	}
	if schedule == nil {
		return entity.TextReply("ไม่พบงานนี้ อาจถูกลบไปแล้ว"), nil
	}

	next := postback.NextAttendance(schedule.Attendance)
	if _, err := s.dm.Schedule().SetAttendance(ctx, schedule.ID, next); err != nil {
		return entity.TextReply(command.GenericError), fmt.Errorf("failed to set attendance: %w", err)
	}

	return entity.TextReply(fmt.Sprintf("%s %s: %s", attendIcon(next), attendLabel(next), schedule.Title)), nil
}

// handleFollow records a first-time contact for the admin to promote and sends back the sender's id.
// Slack reports every home tab open, so known users and contacts get no reply.
func (s *chatService) handleFollow(ctx context.Context, event entity.ChatEvent) (*entity.Reply, error) {
	user, err := s.dm.User().GetByMessagingID(ctx, event.SenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user on follow: %w", err)
	}
	if user != nil {
		return nil, nil
	}

	existing, err := s.dm.Contact().GetByMessagingID(ctx, event.SenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to check contact on follow: %w", err)
	}
	if existing != nil {
		return nil, nil
	}

	contact := &entity.Contact{
		MessagingID: event.SenderID,
		DisplayName: s.messenger.displayName(ctx, event.SenderID),
	}
	if err := s.dm.Contact().Upsert(ctx, contact); err != nil {
		return entity.TextReply("ขออภัย เกิดข้อผิดพลาดในการลงทะเบียน กรุณาลองใหม่อีกครั้ง"), fmt.Errorf("failed to record contact: %w", err)
	}
	logger.Info("new contact recorded", "user", event.SenderID, "name", contact.DisplayName)

	return entity.TextReply("ยินดีต้อนรับสู่ระบบตารางงาน! 🎉\n\n" +
		"กรุณาแจ้งให้ผู้ดูแลระบบเพิ่ม User ID ของคุณเข้าสู่ระบบ\n\n" +
		"User ID: " + event.SenderID), nil
}
