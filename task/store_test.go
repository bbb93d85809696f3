package task_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tareasapi/database"
	"tareasapi/database/testutil"
	apperrors "tareasapi/errors"
	"tareasapi/task"
	"tareasapi/user"
)

func newStore(t *testing.T) (*task.Store, *database.DB) {
	t.Helper()
	db := testutil.Open(t)
	return task.NewStore(db), db
}

func createUser(t *testing.T, db *database.DB, username string) uint {
	t.Helper()
	u := &user.User{Username: username, PasswordHash: "x"}
	require.NoError(t, user.NewStore(db).Create(context.Background(), u))
	return u.ID
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateAndList(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()
	manu := createUser(t, db, "manu")
	ana := createUser(t, db, "ana")

	first := &task.Task{UserID: manu, Title: "comprar pan"}
	require.NoError(t, store.Create(ctx, first))
	second := &task.Task{UserID: manu, Title: "estudiar Go"}
	require.NoError(t, store.Create(ctx, second))
	require.NoError(t, store.Create(ctx, &task.Task{UserID: ana, Title: "regar plantas"}))

	tasks, err := store.ListByUser(ctx, manu)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID, "newest first")
	assert.Equal(t, first.ID, tasks[1].ID)
	assert.False(t, tasks[0].Done)
	assert.False(t, tasks[0].CreatedAt.IsZero())

	others, err := store.ListByUser(ctx, ana)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, "regar plantas", others[0].Title)
}

func TestListEmpty(t *testing.T) {
	store, db := newStore(t)
	manu := createUser(t, db, "manu")

	tasks, err := store.ListByUser(context.Background(), manu)
	require.NoError(t, err)
	assert.NotNil(t, tasks, "empty list must serialize as [], not null")
	assert.Len(t, tasks, 0)
}

func TestCreateEmptyTitle(t *testing.T) {
	store, db := newStore(t)
	manu := createUser(t, db, "manu")

	err := store.Create(context.Background(), &task.Task{UserID: manu})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeMissingField, appErr.Code)
}

func TestUpdatePartial(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()
	manu := createUser(t, db, "manu")

	created := &task.Task{UserID: manu, Title: "comprar pan"}
	require.NoError(t, store.Create(ctx, created))

	updated, err := store.Update(ctx, manu, created.ID, task.Update{Done: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Done)
	assert.Equal(t, "comprar pan", updated.Title, "title untouched")

	updated, err = store.Update(ctx, manu, created.ID, task.Update{Title: strPtr("comprar facturas")})
	require.NoError(t, err)
	assert.Equal(t, "comprar facturas", updated.Title)
	assert.True(t, updated.Done, "done untouched")
}

func TestUpdateNothing(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()
	manu := createUser(t, db, "manu")

	created := &task.Task{UserID: manu, Title: "comprar pan"}
	require.NoError(t, store.Create(ctx, created))

	_, err := store.Update(ctx, manu, created.ID, task.Update{})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, appErr.Code)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

func TestUpdateEmptyTitle(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()
	manu := createUser(t, db, "manu")

	created := &task.Task{UserID: manu, Title: "comprar pan"}
	require.NoError(t, store.Create(ctx, created))

	_, err := store.Update(ctx, manu, created.ID, task.Update{Title: strPtr("")})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, appErr.Code)
}

func TestUpdateScopedToOwner(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()
	manu := createUser(t, db, "manu")
	ana := createUser(t, db, "ana")

	created := &task.Task{UserID: ana, Title: "regar plantas"}
	require.NoError(t, store.Create(ctx, created))

	// Another user's task and a missing task look the same.
	_, err := store.Update(ctx, manu, created.ID, task.Update{Done: boolPtr(true)})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)

	_, err = store.Update(ctx, manu, 9999, task.Update{Done: boolPtr(true)})
	require.Error(t, err)
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)

	kept, err := store.ListByUser(ctx, ana)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.False(t, kept[0].Done, "foreign update must not touch the row")
}

func TestDelete(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()
	manu := createUser(t, db, "manu")
	ana := createUser(t, db, "ana")

	mine := &task.Task{UserID: manu, Title: "comprar pan"}
	require.NoError(t, store.Create(ctx, mine))
	foreign := &task.Task{UserID: ana, Title: "regar plantas"}
	require.NoError(t, store.Create(ctx, foreign))

	err := store.Delete(ctx, manu, foreign.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)

	require.NoError(t, store.Delete(ctx, manu, mine.ID))

	err = store.Delete(ctx, manu, mine.ID)
	require.Error(t, err)
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)

	tasks, err := store.ListByUser(ctx, manu)
	require.NoError(t, err)
	assert.Len(t, tasks, 0)
}
