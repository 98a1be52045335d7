package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kankrittapon/calendar/internal/domain/contract"
	"github.com/kankrittapon/calendar/internal/domain/entity"
)

const contactColumns = `id, messaging_id, display_name, created_at, updated_at`

type contactRepo struct {
	db dbConn
}

func newContactRepo(db dbConn) contract.ContactRepo {
	return &contactRepo{db: db}
}

func scanContact(row rowScanner) (*entity.Contact, error) {
	c := &entity.Contact{}
	var displayName sql.NullString

	if err := row.Scan(&c.ID, &c.MessagingID, &displayName, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.DisplayName = displayName.String

	return c, nil
}

func (r *contactRepo) Upsert(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(messaging_id) DO UPDATE SET
			display_name = excluded.display_name,
			updated_at = excluded.updated_at
	`

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query, c.ID, c.MessagingID, nullString(c.DisplayName), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert contact: %w", err)
	}

	return nil
}

func (r *contactRepo) GetByMessagingID(ctx context.Context, messagingID string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE messaging_id = ?`

	c, err := scanContact(r.db.QueryRowContext(ctx, query, messagingID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return c, nil
}

func (r *contactRepo) List(ctx context.Context) ([]*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

func (r *contactRepo) DeleteByMessagingID(ctx context.Context, messagingID string) (int64, error) {
	query := `DELETE FROM contacts WHERE messaging_id = ?`

	result, err := r.db.ExecContext(ctx, query, messagingID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete contact: %w", err)
	}

	return result.RowsAffected()
}
