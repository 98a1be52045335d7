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

const scheduleColumns = `id, title, date, start_time, end_time, location, place, category_id,
	assignees, notes, status, attend_status, created_at, updated_at`

const activeCondition = `(status IS NULL OR status IN ('planned', 'in_progress'))`

type scheduleRepo struct {
	db dbConn
}

func newScheduleRepo(db dbConn) contract.ScheduleRepo {
	return &scheduleRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*entity.Schedule, error) {
	s := &entity.Schedule{}
	var endTime, location, place, categoryID, assignees, notes, status, attendance sql.NullString

	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Date,
		&s.StartTime,
		&endTime,
		&location,
		&place,
		&categoryID,
		&assignees,
		&notes,
		&status,
		&attendance,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.EndTime = endTime.String
	s.Location = location.String
	s.Place = place.String
	s.CategoryID = categoryID.String
	s.Assignees = assignees.String
	s.Notes = notes.String
	s.Status = domain.Status(status.String)
	if s.Status == "" {
		s.Status = domain.StatusPlanned
	}
	s.Attendance = domain.Attendance(attendance.String)

	return s, nil
}

func (r *scheduleRepo) Create(ctx context.Context, s *entity.Schedule) error {
	query := `
		INSERT INTO schedules (` + scheduleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = domain.StatusPlanned
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Title,
		s.Date,
		s.StartTime,
		nullString(s.EndTime),
		nullString(s.Location),
		nullString(s.Place),
		nullString(s.CategoryID),
		nullString(s.Assignees),
		nullString(s.Notes),
		string(s.Status),
		nullString(string(s.Attendance)),
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	return nil
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*entity.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = ?`

	s, err := scanSchedule(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	return s, nil
}

func (r *scheduleRepo) List(ctx context.Context, limit int) ([]*entity.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		ORDER BY date DESC, start_time DESC
		LIMIT ?
	`
	return r.list(ctx, query, limit)
}

func (r *scheduleRepo) ListByDate(ctx context.Context, date string) ([]*entity.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE date = ?
		ORDER BY start_time ASC
	`
	return r.list(ctx, query, date)
}

func (r *scheduleRepo) ListByRange(ctx context.Context, start, end string) ([]*entity.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE date BETWEEN ? AND ?
		ORDER BY date ASC, start_time ASC
	`
	return r.list(ctx, query, start, end)
}

func (r *scheduleRepo) ListActiveByDate(ctx context.Context, date string) ([]*entity.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE date = ? AND ` + activeCondition + `
		ORDER BY start_time ASC
	`
	return r.list(ctx, query, date)
}

func (r *scheduleRepo) ListActiveByRange(ctx context.Context, start, end string) ([]*entity.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE date BETWEEN ? AND ? AND ` + activeCondition + `
		ORDER BY date ASC, start_time ASC
	`
	return r.list(ctx, query, start, end)
}

func (r *scheduleRepo) ListActiveStartingBetween(ctx context.Context, date, from, to string) ([]*entity.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE date = ? AND start_time >= ? AND start_time < ? AND ` + activeCondition + `
		ORDER BY start_time ASC
	`
	return r.list(ctx, query, date, from, to)
}

func (r *scheduleRepo) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*entity.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedules: %w", err)
	}

	return schedules, nil
}

func (r *scheduleRepo) Update(ctx context.Context, s *entity.Schedule) (int64, error) {
	query := `
		UPDATE schedules
		SET title = ?, date = ?, start_time = ?, end_time = ?, location = ?, place = ?,
			category_id = ?, assignees = ?, notes = ?, status = ?, attend_status = ?, updated_at = ?
		WHERE id = ?
	`

	s.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		s.Title,
		s.Date,
		s.StartTime,
		nullString(s.EndTime),
		nullString(s.Location),
		nullString(s.Place),
		nullString(s.CategoryID),
		nullString(s.Assignees),
		nullString(s.Notes),
		string(s.Status),
		nullString(string(s.Attendance)),
		s.UpdatedAt,
		s.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update schedule: %w", err)
	}

	return result.RowsAffected()
}

func (r *scheduleRepo) SetAttendance(ctx context.Context, id string, attendance domain.Attendance) (int64, error) {
	query := `UPDATE schedules SET attend_status = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, nullString(string(attendance)), time.Now().UTC(), id)
	if err != nil {
		return 0, fmt.Errorf("failed to set attendance: %w", err)
	}

	return result.RowsAffected()
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) (int64, error) {
	query := `DELETE FROM schedules WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete schedule: %w", err)
	}

	return result.RowsAffected()
}
