package sqlite

import (
	"bufio"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
)

//go:embed sql/*.sql
var SqlFiles embed.FS

const sqlDir = "sql"

// Migrate applies the embedded migrations in file-name order
func Migrate(db *sql.DB) error {
	if err := checkComments(SqlFiles, sqlDir); err != nil {
		return err
	}

	migrator := sqlmigrator.New(db, darwin.SqliteDialect{})

	return migrator.Migrate(SqlFiles, sqlDir)
}

// checkComments rejects "--" lines holding a semicolon. sqlmigrator splits
// statements on ";" before it drops comments, so the tail would run as SQL.
func checkComments(fsys fs.FS, dir string) error {
	files, err := fs.Glob(fsys, dir+"/*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}

	for _, name := range files {
		f, err := fsys.Open(name)
		if err != nil {
			return fmt.Errorf("failed to open migration %s: %w", name, err)
		}

		scanner := bufio.NewScanner(f)
		line := 0
		for scanner.Scan() {
			line++
			text := strings.TrimSpace(scanner.Text())
			if strings.HasPrefix(text, "--") && strings.Contains(text, ";") {
				f.Close()
				return fmt.Errorf("migration %s:%d: semicolon inside a comment", name, line)
			}
		}
		f.Close()
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
	}

	return nil
}
