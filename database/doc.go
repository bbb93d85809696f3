// Package database manages the SQLite connection, schema migrations and
// translation of storage errors into application errors.
//
// The connection is opened through GORM with error translation enabled,
// so unique-constraint violations surface as gorm.ErrDuplicatedKey and
// can be mapped to conflict responses without driver-specific checks.
// Connection pragmas (WAL journaling, busy timeout, foreign keys) are
// appended to the DSN unless the caller already set them.
package database
