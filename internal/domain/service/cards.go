package service

import (
	"fmt"
	"time"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/command"
	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/slack-go/slack"
)

// Slack rejects messages with more than 50 blocks; larger lists go out as text
const maxCardItems = 45

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, true, false)
}

func markdown(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

func headerBlock(text string) *slack.HeaderBlock {
	return slack.NewHeaderBlock(plainText(text))
}

func sectionBlock(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(markdown(text), nil, nil)
}

func contextBlock(text string) *slack.ContextBlock {
	return slack.NewContextBlock("", markdown(text))
}

// scheduleSection renders one entry with a button that toggles attendance
func scheduleSection(index int, s *entity.Schedule) *slack.SectionBlock {
	text := fmt.Sprintf("*%s*  %d. %s\n📍 %s", s.TimeRange(), index+1, s.Title, venueOrDash(s))
	if label := categoryLabel(s.CategoryID); label != "" {
		text += "  ·  " + label
	}
	text += fmt.Sprintf("\n%s สถานะ  ·  ยืนยัน %s", statusIcon(s.Status), attendIcon(s.Attendance))

	postback := command.Postback{Action: command.ActionToggleAttend, ScheduleID: s.ID}
	buttonText := "✅ เข้าร่วม"
	if s.Attendance == domain.AttendanceYes {
		buttonText = "❌ ไม่เข้าร่วม"
	}
	button := slack.NewButtonBlockElement(string(command.ActionToggleAttend), postback.Encode(), plainText(buttonText))
	if s.Attendance != domain.AttendanceYes {
		button = button.WithStyle(slack.StylePrimary)
	}

	return slack.NewSectionBlock(markdown(text), nil, slack.NewAccessory(button))
}

// dayCard lists one day's entries with attendance buttons
func dayCard(title, date string, items []*entity.Schedule) *entity.Reply {
	fallback := agendaText(fmt.Sprintf("%s (%s)", title, date), items)
	if len(items) > maxCardItems {
		return entity.TextReply(fallback)
	}

	blocks := []slack.Block{
		headerBlock(title),
		contextBlock(thaiDate(date)),
		slack.NewDividerBlock(),
	}
	for i, s := range items {
		blocks = append(blocks, scheduleSection(i, s))
	}

	return &entity.Reply{Text: fallback, Blocks: blocks}
}

// weekCard groups a week's entries by day, one section per day
func weekCard(start, end string, items []*entity.Schedule) *entity.Reply {
	heading := fmt.Sprintf("🗓️ ตารางงานสัปดาห์นี้ (%s – %s)", start, end)
	fallback := rangeText(heading, items)

	blocks := []slack.Block{
		headerBlock("🗓️ ตารางงานสัปดาห์นี้"),
		contextBlock(thaiDate(start) + " – " + thaiDate(end)),
		slack.NewDividerBlock(),
	}

	var day []*entity.Schedule
	flush := func() {
		if len(day) == 0 {
			return
		}
		text := "*" + thaiDate(day[0].Date) + "*"
		for _, s := range day {
			text += fmt.Sprintf("\n• %s %s · %s %s", s.TimeRange(), s.Title, venueOrDash(s), attendIcon(s.Attendance))
		}
		blocks = append(blocks, sectionBlock(text))
		day = nil
	}
	for _, s := range items {
		if len(day) > 0 && day[0].Date != s.Date {
			flush()
		}
		day = append(day, s)
	}
	flush()

	return &entity.Reply{Text: fallback, Blocks: blocks}
}

// monthSummary is the text form of the month view
func monthSummary(month time.Time, items []*entity.Schedule) *entity.Reply {
	heading := fmt.Sprintf("🗓️ ตารางงานเดือนนี้ (%s) ทั้งหมด %d งาน", thaiMonthYear(month), len(items))
	return entity.TextReply(rangeText(heading, items))
}

func helpCard() *entity.Reply {
	var buttons []slack.BlockElement
	for _, item := range command.HelpMenu {
		buttons = append(buttons, slack.NewButtonBlockElement(command.MenuActionPrefix+item.Digit, item.Digit, plainText(item.Digit+" "+item.Label)))
	}

	blocks := []slack.Block{
		headerBlock("📝 คู่มือการใช้งาน"),
		sectionBlock("กรุณาพิมพ์ตัวเลข 1-6 หรือกดปุ่มเพื่อเลือกฟังก์ชัน:"),
		slack.NewActionBlock("help_menu", buttons...),
		slack.NewDividerBlock(),
		sectionBlock(command.GetHelpText()),
	}

	return &entity.Reply{Text: command.GetHelpText(), Blocks: blocks}
}

func newScheduleCard(s *entity.Schedule) *entity.Reply {
	fields := []*slack.TextBlockObject{
		markdown("*📅 วันที่:*\n" + s.Date),
		markdown("*⏰ เวลา:*\n" + s.TimeRange()),
		markdown("*📝 เรื่อง:*\n" + s.Title),
		markdown("*📍 สถานที่:*\n" + venueOrDash(s)),
	}

	blocks := []slack.Block{
		headerBlock("🔔 งานใหม่เข้ามา"),
		slack.NewSectionBlock(nil, fields, nil),
	}

	return &entity.Reply{
		Text:   fmt.Sprintf("🔔 งานใหม่เข้ามา: %s %s %s", s.Title, s.Date, s.TimeRange()),
		Blocks: blocks,
	}
}

func urgentCard(task string, at time.Time) *entity.Reply {
	blocks := []slack.Block{
		headerBlock("🚨 งานด่วนจากหัวหน้า"),
		sectionBlock(task),
		contextBlock("⏰ " + at.Format("02/01/2006 15:04")),
	}

	return &entity.Reply{Text: "🚨 งานด่วนจากหัวหน้า: " + task, Blocks: blocks}
}

func reminderCard(s *entity.Schedule) *entity.Reply {
	blocks := []slack.Block{
		headerBlock("⏰ ใกล้ถึงเวลานัดหมาย"),
		sectionBlock(fmt.Sprintf("*%s*\n🕐 %s  ·  📍 %s", s.Title, s.TimeRange(), venueOrDash(s))),
		contextBlock(thaiDate(s.Date)),
	}

	return &entity.Reply{
		Text:   fmt.Sprintf("⏰ ใกล้ถึงเวลานัดหมาย: %s เวลา %s", s.Title, s.TimeRange()),
		Blocks: blocks,
	}
}
