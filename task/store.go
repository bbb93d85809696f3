package task

import (
	"context"

	"tareasapi/database"
	apperrors "tareasapi/errors"
)

// Store persists tasks.
type Store struct {
	db *database.DB
}

// NewStore creates a task store.
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Create inserts a task for its owner.
func (s *Store) Create(ctx context.Context, t *Task) error {
	if t.Title == "" {
		return apperrors.MissingField("title")
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return database.Translate(err, "task")
	}
	return nil
}

// ListByUser returns the user's tasks, newest first. The result is
// never nil, so an empty list serializes as [].
func (s *Store) ListByUser(ctx context.Context, userID uint) ([]Task, error) {
	tasks := make([]Task, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, database.Translate(err, "task")
	}
	return tasks, nil
}

// Update applies a partial update to one of the user's tasks and
// returns the updated row. Updating a task that does not exist, or that
// belongs to another user, reports NOT_FOUND; the two cases are not
// distinguished.
func (s *Store) Update(ctx context.Context, userID, taskID uint, upd Update) (*Task, error) {
	if upd.Empty() {
		return nil, apperrors.Validation("Nothing to update: provide title and/or done.")
	}
	if upd.Title != nil && *upd.Title == "" {
		return nil, apperrors.Validation("Title cannot be empty.")
	}

	fields := map[string]interface{}{}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Done != nil {
		fields["done"] = *upd.Done
	}

	res := s.db.WithContext(ctx).Model(&Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(fields)
	if res.Error != nil {
		return nil, database.Translate(res.Error, "task")
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("task")
	}

	var t Task
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&t).Error; err != nil {
		return nil, database.Translate(err, "task")
	}
	return &t, nil
}

// Delete removes one of the user's tasks. Deleting a task that does not
// exist, or that belongs to another user, reports NOT_FOUND.
func (s *Store) Delete(ctx context.Context, userID, taskID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&Task{})
	if res.Error != nil {
		return database.Translate(res.Error, "task")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("task")
	}
	return nil
}
