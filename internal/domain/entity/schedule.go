package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kankrittapon/calendar/internal/domain"
)

// MaxTitleLength bounds schedule titles, counted in characters
const MaxTitleLength = 500

type Schedule struct {
	ID         string
	Title      string
	Date       string // YYYY-MM-DD
	StartTime  string // HH:MM
	EndTime    string // HH:MM, empty when unset
	Location   string
	Place      string
	CategoryID string
	Assignees  string
	Notes      string
	Status     domain.Status
	Attendance domain.Attendance
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Venue returns place, falling back to location
func (s *Schedule) Venue() string {
	if s.Place != "" {
		return s.Place
	}
	return s.Location
}

// TimeRange renders "start–end" or just the start
func (s *Schedule) TimeRange() string {
	if s.EndTime != "" {
		return s.StartTime + "–" + s.EndTime
	}
	return s.StartTime
}

// Validate checks the fields required to persist a schedule
func (s *Schedule) Validate() error {
	title := strings.TrimSpace(s.Title)
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return domain.ErrInvalidTitle
	}
	if _, err := domain.ParseDate(s.Date); err != nil {
		return err
	}
	if !domain.ValidClock(s.StartTime) {
		return domain.ErrInvalidTime
	}
	if s.EndTime != "" {
		if !domain.ValidClock(s.EndTime) {
			return domain.ErrInvalidTime
		}
		if s.EndTime < s.StartTime {
			return domain.ErrEndBeforeStart
		}
	}
	if s.Status != "" && !s.Status.Valid() {
		return domain.ErrInvalidStatus
	}
	return nil
}

// ScheduleUpdate carries a partial update; nil fields are left untouched
type ScheduleUpdate struct {
	Title      *string            `json:"title"`
	Date       *string            `json:"date"`
	StartTime  *string            `json:"start_time"`
	EndTime    *string            `json:"end_time"`
	Location   *string            `json:"location"`
	Place      *string            `json:"place"`
	CategoryID *string            `json:"category_id"`
	Assignees  *string            `json:"assignees"`
	Notes      *string            `json:"notes"`
	Status     *domain.Status     `json:"status"`
	Attendance *domain.Attendance `json:"attend_status"`
}

// Empty reports whether the update sets no field
func (u ScheduleUpdate) Empty() bool {
	return u.Title == nil && u.Date == nil && u.StartTime == nil && u.EndTime == nil &&
		u.Location == nil && u.Place == nil && u.CategoryID == nil && u.Assignees == nil &&
		u.Notes == nil && u.Status == nil && u.Attendance == nil
}

// Apply returns a copy of s with the update applied
func (u ScheduleUpdate) Apply(s Schedule) Schedule {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&s.Title, u.Title)
	set(&s.Date, u.Date)
	set(&s.StartTime, u.StartTime)
	set(&s.EndTime, u.EndTime)
	set(&s.Location, u.Location)
	set(&s.Place, u.Place)
	set(&s.CategoryID, u.CategoryID)
	set(&s.Assignees, u.Assignees)
	set(&s.Notes, u.Notes)
	if u.Status != nil {
		s.Status = *u.Status
	}
	if u.Attendance != nil {
		s.Attendance = *u.Attendance
	}
	return s
}
