package user

import (
	"context"

	"tareasapi/database"
)

// Store persists user records.
type Store struct {
	db *database.DB
}

// NewStore creates a user store.
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Create inserts a new user record. The UNIQUE constraint on username
// makes the insert atomic under concurrent registration: of N racing
// inserts for one username exactly one succeeds and the rest observe
// an ALREADY_EXISTS error.
func (s *Store) Create(ctx context.Context, u *User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return database.Translate(err, "user")
	}
	return nil
}

// ByUsername returns the user with the given username, or a NOT_FOUND
// error when the username is unknown. Lookups are case-sensitive.
func (s *Store) ByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, database.Translate(err, "user")
	}
	return &u, nil
}
