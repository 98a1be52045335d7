package command

import (
	"errors"
	"net/url"

	"github.com/kankrittapon/calendar/internal/domain"
)

type PostbackAction string

const (
	ActionToggleAttend PostbackAction = "toggle_attend"
	// legacy buttons that set the answer explicitly
	ActionAttendYes PostbackAction = "attend_yes"
	ActionAttendNo  PostbackAction = "attend_no"
)

var ErrInvalidPostback = errors.New("invalid postback data")

// Postback is a decoded button callback, "action=<name>&id=<scheduleId>"
type Postback struct {
	Action     PostbackAction
	ScheduleID string
}

func ParsePostback(data string) (*Postback, error) {
	values, err := url.ParseQuery(data)
	if err != nil {
		return nil, ErrInvalidPostback
	}

	p := &Postback{
		Action:     PostbackAction(values.Get("action")),
		ScheduleID: values.Get("id"),
	}
	if p.ScheduleID == "" {
		return nil, ErrInvalidPostback
	}
	switch p.Action {
	case ActionToggleAttend, ActionAttendYes, ActionAttendNo:
		return p, nil
	}
	return nil, ErrInvalidPostback
}

// Encode renders the postback back into its wire form
func (p Postback) Encode() string {
	return url.Values{
		"action": {string(p.Action)},
		"id":     {p.ScheduleID},
	}.Encode()
}

// NextAttendance returns the attendance value the action produces from current
func (p Postback) NextAttendance(current domain.Attendance) domain.Attendance {
	switch p.Action {
	case ActionAttendYes:
		return domain.AttendanceYes
	case ActionAttendNo:
		return domain.AttendanceNo
	}
	return current.Toggle()
}
