package entity

import (
	"time"

	"github.com/kankrittapon/calendar/internal/domain"
)

// Notification is one row of the sent-notification ledger
type Notification struct {
	ID         string
	ScheduleID string
	Type       domain.NotificationType
	Target     string
	SentDay    string // local calendar day of the send, YYYY-MM-DD
	SentAt     time.Time
}
