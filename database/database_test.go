package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tareasapi/errors"
	"tareasapi/logger"
)

type testUser struct {
	ID           uint `gorm:"primaryKey"`
	Username     string
	PasswordHash string
}

func (testUser) TableName() string { return "users" }

func openTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := Config{
		DSN:        "file:" + filepath.Join(t.TempDir(), "test.db"),
		MaxRetries: 1,
		LogLevel:   "silent",
	}

	db, err := New(cfg, logger.NewDefault("database-test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func tableExists(t *testing.T, db *DB, name string) bool {
	t.Helper()

	var count int64
	err := db.GormDB.
		Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).
		Scan(&count).Error
	require.NoError(t, err)
	return count == 1
}

func TestNewAndPing(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Ping())
	require.NoError(t, db.PingContext(context.Background()))
}

func TestCloseIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Close())
	require.NoError(t, db.Close())
}

func TestMigrateCreatesSchema(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Migrate())
	assert.True(t, tableExists(t, db, "users"))
	assert.True(t, tableExists(t, db, "tasks"))

	// A second run has nothing to apply and must not fail.
	require.NoError(t, db.Migrate())
}

func TestMigrateDown(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Migrate())
	require.NoError(t, db.MigrateDown())

	assert.False(t, tableExists(t, db, "users"))
	assert.False(t, tableExists(t, db, "tasks"))
}

func TestDuplicateUsername(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Migrate())

	first := testUser{Username: "manu", PasswordHash: "x"}
	require.NoError(t, db.GormDB.Create(&first).Error)

	second := testUser{Username: "manu", PasswordHash: "y"}
	err := db.GormDB.Create(&second).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateError(err))

	appErr := Translate(err, "user")
	assert.Equal(t, apperrors.ErrCodeAlreadyExists, appErr.Code)
	assert.Equal(t, 409, appErr.HTTPStatus)
}

func TestForeignKeyCascade(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Migrate())

	require.NoError(t, db.GormDB.Exec(
		"INSERT INTO users (username, password_hash) VALUES (?, ?)", "manu", "x").Error)
	require.NoError(t, db.GormDB.Exec(
		"INSERT INTO tasks (user_id, title) VALUES (1, ?)", "comprar pan").Error)

	require.NoError(t, db.GormDB.Exec("DELETE FROM users WHERE id = 1").Error)

	var count int64
	require.NoError(t, db.GormDB.Raw("SELECT COUNT(*) FROM tasks").Scan(&count).Error)
	assert.Equal(t, int64(0), count, "deleting a user removes their tasks")
}

func TestCheckHealth(t *testing.T) {
	db := openTestDB(t)

	status := db.CheckHealth(context.Background())
	assert.True(t, status.Connected)
	assert.Empty(t, status.Error)
	assert.GreaterOrEqual(t, status.OpenConns, 1)
}
