package command

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

type CommandType string

const (
	CmdListToday    CommandType = "list_today"
	CmdListTomorrow CommandType = "list_tomorrow"
	CmdListWeek     CommandType = "list_week"
	CmdListMonth    CommandType = "list_month"
	CmdHelp         CommandType = "help"
	CmdPromptSend   CommandType = "prompt_send"
	CmdMessageGuide CommandType = "message_guide"
	CmdSend         CommandType = "send_to_secretaries"
	CmdUrgent       CommandType = "urgent_task"
	CmdAddSchedule  CommandType = "add_schedule"
	CmdUnrecognized CommandType = "unrecognized"
)

// Command is the typed result of parsing one chat message
type Command struct {
	Type CommandType
	// Payload is the message for CmdSend and the task for CmdUrgent
	Payload string
	// Entries holds one result per pipe-separated add-schedule entry, in input order
	Entries []Entry
	Raw     string
}

var (
	listTodayPhrases    = []string{"ตารางนัดหมายวันนี้", "ตารางงาน", "งานวันนี้", "ดูตารางงานวันนี้", "today"}
	listTomorrowPhrases = []string{"ดูตารางงานพรุ่งนี้", "งานพรุ่งนี้", "tomorrow"}
	listWeekPhrases     = []string{"ตารางงานสัปดาห์นี้", "งานสัปดาห์นี้", "week"}
	listMonthPhrases    = []string{"ตารางงานเดือนนี้", "งานเดือนนี้", "month"}
	helpPhrases         = []string{"help", "ช่วยเหลือ", "คำสั่ง"}
	promptSendPhrases   = []string{"ส่งข้อความให้เลขา"}

	sendTriggers   = []string{"ผู้ช่วย", "เลขา"}
	urgentTriggers = []string{"งานด่วน"}
	addTriggers    = []string{"เพิ่มงาน", "นัดหมาย", "กำหนดการ"}
	// legacySendTrigger only ever accepted the colon form
	legacySendTrigger = "ข้อความ:"
)

// menuDigits maps the numeric shorthand of the quick-reply menu
var menuDigits = map[string]CommandType{
	"1": CmdListToday,
	"2": CmdListTomorrow,
	"3": CmdPromptSend,
	"4": CmdMessageGuide,
	"5": CmdListWeek,
	"6": CmdListMonth,
}

type matcher func(text string, now time.Time) (*Command, bool)

// matchers are evaluated in order; the first hit wins.
// Literal phrases come first, then trigger prefixes, then the numeric menu.
var matchers = []matcher{
	phrase(CmdListToday, listTodayPhrases),
	phrase(CmdListTomorrow, listTomorrowPhrases),
	phrase(CmdListWeek, listWeekPhrases),
	phrase(CmdListMonth, listMonthPhrases),
	phrase(CmdHelp, helpPhrases),
	phrase(CmdPromptSend, promptSendPhrases),
	matchLegacySend,
	matchSend,
	matchUrgent,
	matchAdd,
	matchMenuDigit,
}

// ParseCommand classifies text into exactly one command. It never fails:
// anything not matched comes back as CmdUnrecognized carrying the original text.
// now anchors bare day-of-month dates to the current month.
func ParseCommand(text string, now time.Time) *Command {
	text = strings.TrimSpace(text)
	if text != "" {
		for _, match := range matchers {
			if cmd, ok := match(text, now); ok {
				cmd.Raw = text
				return cmd
			}
		}
	}
	return &Command{Type: CmdUnrecognized, Raw: text}
}

// IsReservedPrefix reports whether text starts with any trigger word,
// even without a valid separator after it
func IsReservedPrefix(text string) bool {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, strings.TrimSuffix(legacySendTrigger, ":")) {
		return true
	}
	for _, group := range [][]string{sendTriggers, urgentTriggers, addTriggers} {
		for _, trigger := range group {
			if strings.HasPrefix(text, trigger) {
				return true
			}
		}
	}
	return false
}

func phrase(cmdType CommandType, phrases []string) matcher {
	return func(text string, _ time.Time) (*Command, bool) {
		lower := strings.ToLower(text)
		for _, p := range phrases {
			if lower == p {
				return &Command{Type: cmdType}, true
			}
		}
		return nil, false
	}
}

func matchLegacySend(text string, _ time.Time) (*Command, bool) {
	if !strings.HasPrefix(text, legacySendTrigger) {
		return nil, false
	}
	payload := strings.TrimSpace(strings.TrimPrefix(text, legacySendTrigger))
	if payload == "" {
		return &Command{Type: CmdPromptSend}, true
	}
	return &Command{Type: CmdSend, Payload: payload}, true
}

func matchSend(text string, _ time.Time) (*Command, bool) {
	payload, ok := stripTrigger(text, sendTriggers)
	if !ok {
		return nil, false
	}
	if payload == "" {
		return &Command{Type: CmdPromptSend}, true
	}
	return &Command{Type: CmdSend, Payload: payload}, true
}

func matchUrgent(text string, _ time.Time) (*Command, bool) {
	payload, ok := stripTrigger(text, urgentTriggers)
	if !ok {
		return nil, false
	}
	return &Command{Type: CmdUrgent, Payload: payload}, true
}

func matchAdd(text string, now time.Time) (*Command, bool) {
	payload, ok := stripTrigger(text, addTriggers)
	if !ok {
		return nil, false
	}
	return &Command{Type: CmdAddSchedule, Entries: ParseEntries(payload, now)}, true
}

func matchMenuDigit(text string, _ time.Time) (*Command, bool) {
	cmdType, ok := menuDigits[text]
	if !ok {
		return nil, false
	}
	return &Command{Type: cmdType}, true
}

// stripTrigger removes a leading trigger followed by end of text, whitespace,
// an ASCII colon or a full-width colon, and returns the trimmed remainder
func stripTrigger(text string, triggers []string) (string, bool) {
	for _, trigger := range triggers {
		if !strings.HasPrefix(text, trigger) {
			continue
		}
		rest := text[len(trigger):]
		if rest == "" {
			return "", true
		}
		switch {
		case strings.HasPrefix(rest, ":"):
			rest = rest[1:]
		case strings.HasPrefix(rest, "："):
			rest = rest[len("："):]
		case startsWithSpace(rest):
		default:
			continue
		}
		return strings.TrimSpace(rest), true
	}
	return "", false
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}
