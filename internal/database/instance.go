package database

import (
	"context"
	"fmt"

	"github.com/kankrittapon/calendar/internal/domain/contract"
)

// instance implements DataManager interface
type instance struct {
	db               *DB
	scheduleRepo     contract.ScheduleRepo
	categoryRepo     contract.CategoryRepo
	userRepo         contract.UserRepo
	contactRepo      contract.ContactRepo
	notificationRepo contract.NotificationRepo
}

// NewInstance creates a new database instance with all repositories
func NewInstance(db *DB) contract.DataManager {
	instance := repoInstancesWithConn(db.conn)
	instance.db = db
	return instance
}

// repoInstancesWithConn creates repository instances with custom dbConn
func repoInstancesWithConn(db dbConn) *instance {
	return &instance{
		scheduleRepo:     newScheduleRepo(db),
		categoryRepo:     newCategoryRepo(db),
		userRepo:         newUserRepo(db),
		contactRepo:      newContactRepo(db),
		notificationRepo: newNotificationRepo(db),
	}
}

func (i *instance) Schedule() contract.ScheduleRepo {
	return i.scheduleRepo
}

func (i *instance) Category() contract.CategoryRepo {
	return i.categoryRepo
}

func (i *instance) User() contract.UserRepo {
	return i.userRepo
}

func (i *instance) Contact() contract.ContactRepo {
	return i.contactRepo
}

func (i *instance) Notification() contract.NotificationRepo {
	return i.notificationRepo
}

// WithTransaction executes a function within a database transaction.
// Nested calls on a transaction instance reuse the open transaction.
func (i *instance) WithTransaction(ctx context.Context, fn func(dm contract.DataManager) error) error {
	if i.db == nil {
		return fn(i)
	}

	tx, err := i.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txInstance := repoInstancesWithConn(tx)
	err = fn(txInstance)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v, original error: %w", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
