package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/contract"
	"github.com/kankrittapon/calendar/internal/domain/entity"
)

const userColumns = `id, name, role, messaging_id, created_at, updated_at`

type userRepo struct {
	db dbConn
}

func newUserRepo(db dbConn) contract.UserRepo {
	return &userRepo{db: db}
}

func scanUser(row rowScanner) (*entity.User, error) {
	user := &entity.User{}
	var messagingID sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Role,
		&messagingID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.MessagingID = messagingID.String

	return user, nil
}

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?)`

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		string(user.Role),
		nullString(user.MessagingID),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.get(ctx, query, id)
}

func (r *userRepo) GetByMessagingID(ctx context.Context, messagingID string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE messaging_id = ?`
	return r.get(ctx, query, messagingID)
}

func (r *userRepo) get(ctx context.Context, query string, arg string) (*entity.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (r *userRepo) List(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY role ASC, name ASC`
	return r.list(ctx, query)
}

func (r *userRepo) ListReachableByRole(ctx context.Context, role domain.Role) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = ? AND messaging_id IS NOT NULL AND messaging_id != ''
		ORDER BY name ASC
	`
	return r.list(ctx, query, string(role))
}

func (r *userRepo) list(ctx context.Context, query string, args ...interface{}) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *userRepo) UpdateRole(ctx context.Context, id string, role domain.Role) (int64, error) {
	query := `UPDATE users SET role = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, string(role), time.Now().UTC(), id)
	if err != nil {
		return 0, fmt.Errorf("failed to update user role: %w", err)
	}

	return result.RowsAffected()
}

func (r *userRepo) Delete(ctx context.Context, id string) (int64, error) {
	query := `DELETE FROM users WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}

	return result.RowsAffected()
}
