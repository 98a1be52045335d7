package entity

import (
	"time"

	"github.com/kankrittapon/calendar/internal/domain"
)

type User struct {
	ID          string
	Name        string
	Role        domain.Role
	MessagingID string // Slack user id, empty when not linked
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Contact is a messaging identity that reached the bot before being registered as a user
type Contact struct {
	ID          string
	MessagingID string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
