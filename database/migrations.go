package database

import (
	"embed"

	"tareasapi/database/migration"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all pending schema migrations.
func (d *DB) Migrate() error {
	d.log.Info("Applying schema migrations")
	if err := migration.Up(d.GormDB, migrationsFS, "migrations"); err != nil {
		return err
	}
	version, dirty, err := migration.Version(d.GormDB, migrationsFS, "migrations")
	if err != nil {
		return err
	}
	d.log.Info("Schema migrations applied", map[string]interface{}{
		"version": version,
		"dirty":   dirty,
	})
	return nil
}

// MigrateDown rolls back all applied schema migrations.
func (d *DB) MigrateDown() error {
	d.log.Warn("Rolling back all schema migrations")
	return migration.Down(d.GormDB, migrationsFS, "migrations")
}
