package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers pgx5://
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationURL rewrites a postgres:// DSN to the pgx5:// scheme expected by
// the migrate driver. Keyword/value DSNs are rejected.
func MigrationURL(dsn string) (string, error) {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix), nil
		}
	}
	if strings.HasPrefix(dsn, "pgx5://") {
		return dsn, nil
	}
	return "", errors.New("platform/db: migrations need a postgres:// URL DSN")
}

func newMigrator(dsn string) (*migrate.Migrate, error) {
	url, err := MigrationURL(dsn)
	if err != nil {
		return nil, err
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("platform/db: open migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return nil, fmt.Errorf("platform/db: init migrate: %w", err)
	}
	return m, nil
}

func closeMigrator(m *migrate.Migrate, err error) error {
	srcErr, dbErr := m.Close()
	return errors.Join(err, srcErr, dbErr)
}

// MigrateUp applies all pending migrations. An up-to-date schema is not an
// error.
func MigrateUp(dsn string) error {
	m, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		err = nil
	}
	if err != nil {
		err = fmt.Errorf("platform/db: migrate up: %w", err)
	}
	return closeMigrator(m, err)
}

// MigrateDown rolls back steps migrations, or all of them when steps <= 0.
func MigrateDown(dsn string, steps int) error {
	m, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	if steps > 0 {
		err = m.Steps(-steps)
	} else {
		err = m.Down()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		err = nil
	}
	if err != nil {
		err = fmt.Errorf("platform/db: migrate down: %w", err)
	}
	return closeMigrator(m, err)
}

// MigrationVersion reports the applied version and whether the last
// migration left the schema dirty. A fresh database reports version 0.
func MigrationVersion(dsn string) (uint, bool, error) {
	m, err := newMigrator(dsn)
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		version, dirty, err = 0, false, nil
	}
	if err != nil {
		err = fmt.Errorf("platform/db: migrate version: %w", err)
	}
	return version, dirty, closeMigrator(m, err)
}
