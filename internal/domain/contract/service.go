package contract

import (
	"context"
	"time"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/entity"
)

// ChatService turns inbound chat events into replies
type ChatService interface {
	Dispatch(ctx context.Context, event entity.ChatEvent) (*entity.Reply, error)
	// Respond dispatches the event and posts the reply back to the sender
	Respond(ctx context.Context, event entity.ChatEvent) error
}

// ScheduleService is the schedule surface shared by the HTTP API and chat commands
type ScheduleService interface {
	Create(ctx context.Context, schedule *entity.Schedule) error
	Get(ctx context.Context, id string) (*entity.Schedule, error)
	Update(ctx context.Context, id string, update entity.ScheduleUpdate) (*entity.Schedule, error)
	Delete(ctx context.Context, id string) error
	ListByDate(ctx context.Context, date string) ([]*entity.Schedule, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Schedule, error)
	ListActiveByRange(ctx context.Context, start, end string) ([]*entity.Schedule, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// AdminService manages users and pending contacts
type AdminService interface {
	ListUsers(ctx context.Context) ([]*entity.User, error)
	SetBoss(ctx context.Context, messagingID, name string) (*entity.User, error)
	AddSecretary(ctx context.Context, messagingID, name string) (*entity.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	DeleteUser(ctx context.Context, id string) error
	ListContacts(ctx context.Context) ([]*entity.Contact, error)
	PromoteContact(ctx context.Context, messagingID, name string, role domain.Role) (*entity.User, error)
	DeleteContact(ctx context.Context, messagingID string) error
	Seed(ctx context.Context) error
	// ListNotifications returns the ledger rows of one local day (YYYY-MM-DD)
	ListNotifications(ctx context.Context, day string) ([]*entity.Notification, error)
}

// DigestService sends the timer-driven digests and reminders
type DigestService interface {
	Tick(ctx context.Context, now time.Time)
	SendDigest(ctx context.Context, notificationType domain.NotificationType, now time.Time, force bool) (int, error)
	SendReminders(ctx context.Context, now time.Time) (int, error)
}
