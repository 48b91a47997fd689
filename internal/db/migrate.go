package db

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies the migrations under internal/db/migrations. The
// mongodb driver needs the database name in the URI.
func RunMigrations(mongoURI string) error {
	migrationsPath, err := filepath.Abs("./internal/db/migrations")
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+migrationsPath, mongoURI)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	return nil
}
