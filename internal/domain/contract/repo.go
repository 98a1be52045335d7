package contract

import (
	"context"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Schedule() ScheduleRepo
	Category() CategoryRepo
	User() UserRepo
	Contact() ContactRepo
	Notification() NotificationRepo
}

// ScheduleRepo defines the contract for schedule repository.
// Lists are ordered by date then start time.
type ScheduleRepo interface {
	Create(ctx context.Context, schedule *entity.Schedule) error
	GetByID(ctx context.Context, id string) (*entity.Schedule, error)
	List(ctx context.Context, limit int) ([]*entity.Schedule, error)
	ListByDate(ctx context.Context, date string) ([]*entity.Schedule, error)
	ListByRange(ctx context.Context, start, end string) ([]*entity.Schedule, error)
	// ListActiveByDate returns planned and in-progress entries only
	ListActiveByDate(ctx context.Context, date string) ([]*entity.Schedule, error)
	ListActiveByRange(ctx context.Context, start, end string) ([]*entity.Schedule, error)
	// ListActiveStartingBetween returns active entries of date with from <= start_time < to
	ListActiveStartingBetween(ctx context.Context, date, from, to string) ([]*entity.Schedule, error)
	Update(ctx context.Context, schedule *entity.Schedule) (int64, error)
	SetAttendance(ctx context.Context, id string, attendance domain.Attendance) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// CategoryRepo defines the contract for category repository
type CategoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
	Seed(ctx context.Context) error
}

// UserRepo defines the contract for user repository
type UserRepo interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByMessagingID(ctx context.Context, messagingID string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// ListReachableByRole returns users of role that have a messaging identity
	ListReachableByRole(ctx context.Context, role domain.Role) ([]*entity.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// ContactRepo defines the contract for the pending contact repository
type ContactRepo interface {
	// Upsert records the contact once; a repeated messaging id only refreshes the name
	Upsert(ctx context.Context, contact *entity.Contact) error
	GetByMessagingID(ctx context.Context, messagingID string) (*entity.Contact, error)
	List(ctx context.Context) ([]*entity.Contact, error)
	DeleteByMessagingID(ctx context.Context, messagingID string) (int64, error)
}

// NotificationRepo defines the contract for the sent-notification ledger
type NotificationRepo interface {
	// Claim inserts the ledger row and reports false when an identical row already exists
	Claim(ctx context.Context, n *entity.Notification) (bool, error)
	// Release removes a claimed row so a failed send can be retried
	Release(ctx context.Context, n *entity.Notification) error
	Exists(ctx context.Context, notificationType domain.NotificationType, target, scheduleID, sentDay string) (bool, error)
	ListByDay(ctx context.Context, sentDay string) ([]*entity.Notification, error)
}
