package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/contract"
	"github.com/kankrittapon/calendar/internal/domain/entity"
	"github.com/kankrittapon/calendar/internal/logger"
)

type scheduleService struct {
	dm        contract.DataManager
	messenger *messenger
}

func newScheduleService(dm contract.DataManager, messenger *messenger) *scheduleService {
	return &scheduleService{
		dm:        dm,
		messenger: messenger,
	}
}

// Create validates and stores a new planned schedule, then tells every boss about it.
// The boss notification is best effort and never fails the create.
func (s *scheduleService) Create(ctx context.Context, schedule *entity.Schedule) error {
	schedule.Title = strings.TrimSpace(schedule.Title)
	if schedule.Status == "" {
		schedule.Status = domain.StatusPlanned
	}
	if err := schedule.Validate(); err != nil {
		return err
	}
	if !schedule.Attendance.Valid() {
		return domain.ErrInvalidAttendance
	}
	if schedule.CategoryID != "" {
		if _, ok := domain.CategoryByID(schedule.CategoryID); !ok {
			return domain.ErrInvalidCategory
		}
	}

	if err := s.dm.Schedule().Create(ctx, schedule); err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	s.notifyBosses(ctx, schedule)
	return nil
}

func (s *scheduleService) notifyBosses(ctx context.Context, schedule *entity.Schedule) {
	bosses, err := s.dm.User().ListReachableByRole(ctx, domain.RoleBoss)
	if err != nil {
		logger.Error("failed to load bosses for new schedule notification", "schedule", schedule.ID, "error", err)
		return
	}

	sent := s.messenger.Broadcast(ctx, bosses, newScheduleCard(schedule))
	logger.Debug("new schedule notification sent", "schedule", schedule.ID, "sent", sent, "bosses", len(bosses))
}

func (s *scheduleService) Get(ctx context.Context, id string) (*entity.Schedule, error) {
	schedule, err := s.dm.Schedule().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	if schedule == nil {
		return nil, domain.ErrNotFound
	}
	return schedule, nil
}

// Update applies a partial update. Status changes must follow the lifecycle:
// planned -> in_progress -> completed, and planned or in_progress -> cancelled.
func (s *scheduleService) Update(ctx context.Context, id string, update entity.ScheduleUpdate) (*entity.Schedule, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Empty() {
		return current, nil
	}

	if update.Status != nil {
		if !update.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		if !domain.CanTransition(current.Status, *update.Status) {
			return nil, domain.ErrInvalidStatusTransition
		}
	}
	if update.Attendance != nil && !update.Attendance.Valid() {
		return nil, domain.ErrInvalidAttendance
	}

	next := update.Apply(*current)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	if next.CategoryID != "" && next.CategoryID != current.CategoryID {
		if _, ok := domain.CategoryByID(next.CategoryID); !ok {
			return nil, domain.ErrInvalidCategory
		}
	}

	affected, err := s.dm.Schedule().Update(ctx, &next)
	if err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	return &next, nil
}

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	affected, err := s.dm.Schedule().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *scheduleService) ListByDate(ctx context.Context, date string) ([]*entity.Schedule, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}
	return s.dm.Schedule().ListByDate(ctx, date)
}

func (s *scheduleService) ListRecent(ctx context.Context, limit int) ([]*entity.Schedule, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.dm.Schedule().List(ctx, limit)
}

func (s *scheduleService) ListActiveByRange(ctx context.Context, start, end string) ([]*entity.Schedule, error) {
	if _, err := domain.ParseDate(start); err != nil {
		return nil, err
	}
	if _, err := domain.ParseDate(end); err != nil {
		return nil, err
	}
	return s.dm.Schedule().ListActiveByRange(ctx, start, end)
}

func (s *scheduleService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.dm.Category().List(ctx)
}
