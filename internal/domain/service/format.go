package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/entity"
)

var (
	thaiDays   = []string{"อาทิตย์", "จันทร์", "อังคาร", "พุธ", "พฤหัสบดี", "ศุกร์", "เสาร์"}
	thaiMonths = []string{"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
		"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม"}
)

// buddhistEraOffset converts a Gregorian year to the Thai solar calendar
const buddhistEraOffset = 543

// thaiDate renders YYYY-MM-DD as "พุธ วันที่ 15 มกราคม 2568"; a malformed date is returned as is
func thaiDate(date string) string {
	d, err := domain.ParseDate(date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s วันที่ %d %s %d", thaiDays[d.Weekday()], d.Day(), thaiMonths[d.Month()-1], d.Year()+buddhistEraOffset)
}

func thaiMonthYear(t time.Time) string {
	return fmt.Sprintf("%s %d", thaiMonths[t.Month()-1], t.Year()+buddhistEraOffset)
}

func attendIcon(a domain.Attendance) string {
	switch a {
	case domain.AttendanceYes:
		return "✅"
	case domain.AttendanceNo:
		return "❌"
	}
	return "⏳"
}

func statusIcon(s domain.Status) string {
	switch s {
	case domain.StatusCompleted:
		return "✅"
	case domain.StatusCancelled:
		return "❌"
	case domain.StatusInProgress:
		return "▶️"
	}
	return "⏳"
}

func attendLabel(a domain.Attendance) string {
	if a == domain.AttendanceYes {
		return "เข้าร่วม"
	}
	return "ไม่เข้าร่วม"
}

func venueOrDash(s *entity.Schedule) string {
	if v := s.Venue(); v != "" {
		return v
	}
	return "-"
}

func categoryLabel(id string) string {
	if c, ok := domain.CategoryByID(id); ok {
		return c.Label
	}
	return ""
}

// agendaText is the plain-text form of a day's agenda
func agendaText(heading string, items []*entity.Schedule) string {
	lines := []string{heading}
	for i, s := range items {
		lines = append(lines, fmt.Sprintf("%d. %s %s · %s %s", i+1, s.StartTime, s.Title, venueOrDash(s), attendIcon(s.Attendance)))
	}
	return strings.Join(lines, "\n")
}

// rangeText lists entries grouped by day, used for the week fallback and the month summary
func rangeText(heading string, items []*entity.Schedule) string {
	var b strings.Builder
	b.WriteString(heading)

	currentDate := ""
	for _, s := range items {
		if s.Date != currentDate {
			currentDate = s.Date
			b.WriteString("\n\n")
			b.WriteString(thaiDate(s.Date))
		}
		fmt.Fprintf(&b, "\n• %s %s · %s %s", s.TimeRange(), s.Title, venueOrDash(s), attendIcon(s.Attendance))
	}
	return b.String()
}
