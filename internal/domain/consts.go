package domain

import "strings"

// Role is the authorization role of a registered user
type Role string

const (
	RoleBoss      Role = "boss"
	RoleSecretary Role = "secretary"
	// RoleNone is used for senders with no registered user
	RoleNone Role = ""
)

// Valid reports whether r is one of the assignable roles
func (r Role) Valid() bool {
	return r == RoleBoss || r == RoleSecretary
}

// Status is the lifecycle status of a schedule entry
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// statusTransitions maps each status to the statuses it may move to.
// completed and cancelled are terminal.
var statusTransitions = map[Status][]Status{
	StatusPlanned:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a schedule may move from one status to another.
// Setting the same status again is a no-op and allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Attendance is the boss's answer to "will you attend"
type Attendance string

const (
	AttendanceYes   Attendance = "yes"
	AttendanceNo    Attendance = "no"
	AttendanceUnset Attendance = ""
)

// Valid reports whether a is yes, no or unset
func (a Attendance) Valid() bool {
	return a == AttendanceYes || a == AttendanceNo || a == AttendanceUnset
}

// Toggle flips yes to no and anything else to yes
func (a Attendance) Toggle() Attendance {
	if a == AttendanceYes {
		return AttendanceNo
	}
	return AttendanceYes
}

// NotificationType identifies the kind of ledger entry
type NotificationType string

const (
	NotificationDaily    NotificationType = "daily"
	NotificationTomorrow NotificationType = "tomorrow"
	NotificationReminder NotificationType = "reminder"
)

// DigestScheduleID is the schedule id stored for digest sends, which are not tied to a single schedule
const DigestScheduleID = "-"

// DefaultAssignees is the assignee note set on chat-created schedules
const DefaultAssignees = "auto"

// Category is a fixed reference category
type Category struct {
	ID    string
	Code  string
	Label string
	Color string
}

const (
	CategoryInternalID   = "00000000-0000-0000-0000-000000000001"
	CategoryDepartmentID = "00000000-0000-0000-0000-000000000002"
	CategoryBigID        = "00000000-0000-0000-0000-000000000003"
	CategoryExternalID   = "00000000-0000-0000-0000-000000000004"
)

// Categories is the seed set, in display order
var Categories = []Category{
	{ID: CategoryInternalID, Code: "internal", Label: "งานในหน่วย", Color: "#3b82f6"},
	{ID: CategoryDepartmentID, Code: "department", Label: "งานในกรม", Color: "#10b981"},
	{ID: CategoryBigID, Code: "big", Label: "งานใหญ่", Color: "#f59e0b"},
	{ID: CategoryExternalID, Code: "external", Label: "งานนอก", Color: "#ef4444"},
}

// DefaultCategoryID is used when an entry names no category
const DefaultCategoryID = CategoryInternalID

// CategoryByCode returns the category with the given code
func CategoryByCode(code string) (Category, bool) {
	for _, c := range Categories {
		if c.Code == code {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryByID returns the category with the given id
func CategoryByID(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryColor returns the display color for a category id, grey when unknown
func CategoryColor(id string) string {
	if c, ok := CategoryByID(id); ok {
		return c.Color
	}
	return "#6b7280"
}

// CategoryByToken maps a chat token ("#big", "งานใหญ่", "External") to a category
func CategoryByToken(token string) (Category, bool) {
	t := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(token), "#"))
	if t == "" {
		return Category{}, false
	}
	for _, c := range Categories {
		if c.Code == t || c.Label == t {
			return c, true
		}
	}
	return Category{}, false
}
