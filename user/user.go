// Package user implements account registration and login on top of the
// credential store. Registration hashes the password and persists the
// record; login verifies credentials and issues a session token.
package user

import "time"

// User is a registered account. Created once at registration and
// immutable afterwards. The password hash is opaque to everything but
// the hasher and is never serialized or logged.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName maps the model onto the migrated users table.
func (User) TableName() string { return "users" }
