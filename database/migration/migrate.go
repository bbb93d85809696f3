// Package migration runs versioned schema migrations against the SQLite
// database using golang-migrate with an embedded filesystem source.
//
// Migration files follow the pattern VERSION_name.up.sql and
// VERSION_name.down.sql and are embedded by the database package.
package migration

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

// Up applies all pending migrations from the embedded FS.
// Returns nil if there is nothing to apply (migrate.ErrNoChange is suppressed).
func Up(gormDB *gorm.DB, migrationsFS embed.FS, path string) error {
	m, err := newMigrator(gormDB, migrationsFS, path)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back all applied migrations.
// Returns nil if there is nothing to roll back (migrate.ErrNoChange is suppressed).
func Down(gormDB *gorm.DB, migrationsFS embed.FS, path string) error {
	m, err := newMigrator(gormDB, migrationsFS, path)
	if err != nil {
		return err
	}
	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version returns the current migration version and dirty flag.
func Version(gormDB *gorm.DB, migrationsFS embed.FS, path string) (version uint, dirty bool, err error) {
	m, err := newMigrator(gormDB, migrationsFS, path)
	if err != nil {
		return 0, false, err
	}
	return m.Version()
}

// newMigrator creates a golang-migrate instance backed by the embedded FS.
// Callers must NOT call m.Close(), it would close the shared sql.DB.
func newMigrator(gormDB *gorm.DB, migrationsFS embed.FS, path string) (*migrate.Migrate, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	driver, err := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("create sqlite driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, path)
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
