package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/contract"
	"github.com/kankrittapon/calendar/internal/domain/entity"
)

const (
	defaultBossName      = "หัวหน้า"
	defaultSecretaryName = "เลขานุการ"
)

type adminService struct {
	dm contract.DataManager
}

func newAdminService(dm contract.DataManager) *adminService {
	return &adminService{dm: dm}
}

func (s *adminService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.dm.User().List(ctx)
}

// SetBoss promotes the user with messagingID to boss, creating the user when needed
func (s *adminService) SetBoss(ctx context.Context, messagingID, name string) (*entity.User, error) {
	var result *entity.User

	err := s.dm.WithTransaction(ctx, func(dm contract.DataManager) error {
		user, err := dm.User().GetByMessagingID(ctx, messagingID)
		if err != nil {
			return err
		}

		if user != nil {
			if _, err := dm.User().UpdateRole(ctx, user.ID, domain.RoleBoss); err != nil {
				return err
			}
			user.Role = domain.RoleBoss
			result = user
		} else {
			result, err = register(ctx, dm, messagingID, nameOr(name, defaultBossName), domain.RoleBoss)
			if err != nil {
				return err
			}
		}

		_, err = dm.Contact().DeleteByMessagingID(ctx, messagingID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set boss: %w", err)
	}

	return result, nil
}

func (s *adminService) AddSecretary(ctx context.Context, messagingID, name string) (*entity.User, error) {
	var result *entity.User

	err := s.dm.WithTransaction(ctx, func(dm contract.DataManager) error {
		existing, err := dm.User().GetByMessagingID(ctx, messagingID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrAlreadyExists
		}

		result, err = register(ctx, dm, messagingID, nameOr(name, defaultSecretaryName), domain.RoleSecretary)
		if err != nil {
			return err
		}

		_, err = dm.Contact().DeleteByMessagingID(ctx, messagingID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add secretary: %w", err)
	}

	return result, nil
}

func (s *adminService) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}

	affected, err := s.dm.User().UpdateRole(ctx, id, role)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *adminService) DeleteUser(ctx context.Context, id string) error {
	affected, err := s.dm.User().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *adminService) ListNotifications(ctx context.Context, day string) ([]*entity.Notification, error) {
	if _, err := domain.ParseDate(day); err != nil {
		return nil, err
	}
	return s.dm.Notification().ListByDay(ctx, day)
}

func (s *adminService) ListContacts(ctx context.Context) ([]*entity.Contact, error) {
	return s.dm.Contact().List(ctx)
}

// PromoteContact turns a pending contact into a user and drops the contact, atomically
func (s *adminService) PromoteContact(ctx context.Context, messagingID, name string, role domain.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	var result *entity.User
	err := s.dm.WithTransaction(ctx, func(dm contract.DataManager) error {
		contact, err := dm.Contact().GetByMessagingID(ctx, messagingID)
		if err != nil {
			return err
		}
		if contact == nil {
			return domain.ErrNotFound
		}

		existing, err := dm.User().GetByMessagingID(ctx, messagingID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrAlreadyExists
		}

		result, err = register(ctx, dm, messagingID, nameOr(name, contact.DisplayName), role)
		if err != nil {
			return err
		}

		_, err = dm.Contact().DeleteByMessagingID(ctx, messagingID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to promote contact: %w", err)
	}

	return result, nil
}

func (s *adminService) DeleteContact(ctx context.Context, messagingID string) error {
	affected, err := s.dm.Contact().DeleteByMessagingID(ctx, messagingID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *adminService) Seed(ctx context.Context) error {
	if err := s.dm.Category().Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	return nil
}

func register(ctx context.Context, dm contract.DataManager, messagingID, name string, role domain.Role) (*entity.User, error) {
	user := &entity.User{
		Name:        name,
		Role:        role,
		MessagingID: strings.TrimSpace(messagingID),
	}
	if err := dm.User().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func nameOr(name, fallback string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return fallback
}
