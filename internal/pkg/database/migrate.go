package database

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"stockkeeper/migrations"
)

// Migrate aplica as migrations embutidas até a última versão.
func Migrate(db *sql.DB, dialect Dialect) error {
	return RunMigrations(db, dialect, "up")
}

// RunMigrations executa um comando do goose (up, down, status, reset, ...)
// sobre as migrations embutidas.
func RunMigrations(db *sql.DB, dialect Dialect, command string, args ...string) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect.Name); err != nil {
		return fmt.Errorf("goose: dialeto %s: %w", dialect.Name, err)
	}
	if err := goose.Run(command, db, ".", args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
