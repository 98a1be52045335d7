package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/domain/contract"
)

type categoryRepo struct {
	db dbConn
}

func newCategoryRepo(db dbConn) contract.CategoryRepo {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, code, label, color FROM categories ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		var color sql.NullString
		if err := rows.Scan(&c.ID, &c.Code, &c.Label, &color); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Color = color.String
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// Seed inserts the fixed categories, leaving existing rows untouched
func (r *categoryRepo) Seed(ctx context.Context) error {
	query := `INSERT OR IGNORE INTO categories (id, code, label, color) VALUES (?, ?, ?, ?)`

	for _, c := range domain.Categories {
		if _, err := r.db.ExecContext(ctx, query, c.ID, c.Code, c.Label, c.Color); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.Code, err)
		}
	}

	return nil
}
