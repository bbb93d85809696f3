// Package task implements the task list behind the protected routes.
// Every operation is scoped to the owning user: a task is only ever
// visible to, or mutable by, the user that created it.
package task

import "time"

// Task is a to-do item owned by a single user.
type Task struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null" json:"-"`
	Title     string    `gorm:"not null" json:"title"`
	Done      bool      `gorm:"not null" json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName maps the model onto the migrated tasks table.
func (Task) TableName() string { return "tasks" }

// Update carries the optional fields of a partial task update. A nil
// field is left untouched.
type Update struct {
	Title *string
	Done  *bool
}

// Empty reports whether the update changes nothing.
func (u Update) Empty() bool {
	return u.Title == nil && u.Done == nil
}
