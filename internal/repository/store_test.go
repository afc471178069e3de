package repository

import (
	"context"
	"errors"
	"net"
	"testing"

	"friendgraph/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStore_TxRollbackUndoesWrites(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()
	u := createUsers(t, store.Users(), 2)
	require.NoError(t, store.Friends().Create(ctx, &models.Friendship{UserID: u[0].ID, FriendID: u[1].ID}))

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	removed, err := tx.Friends().DeleteAllForUser(ctx, u[0].ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	rows, err := tx.Users().Delete(ctx, u[0].ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	require.NoError(t, tx.Rollback())

	_, err = store.Users().GetByID(ctx, u[0].ID)
	assert.NoError(t, err)
	total, err := store.Friends().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestStore_TxCommit(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()
	u := createUsers(t, store.Users(), 1)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.Users().Delete(ctx, u[0].ID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	_, err = store.Users().GetByID(ctx, u[0].ID)
	assert.True(t, models.IsNotFound(err))
}

func TestStore_Ping(t *testing.T) {
	assert.NoError(t, NewStore(newTestDB(t)).Ping(context.Background()))
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		kind models.ConstraintKind
	}{
		{"gorm duplicated key", gorm.ErrDuplicatedKey, models.CodeConstraintViolation, models.ConstraintUnique},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, models.CodeConstraintViolation, models.ConstraintForeignKey},
		{"sqlite unique", errors.New("UNIQUE constraint failed: users.email"), models.CodeConstraintViolation, models.ConstraintUnique},
		{"sqlite foreign key", errors.New("FOREIGN KEY constraint failed"), models.CodeConstraintViolation, models.ConstraintForeignKey},
		{"network", &net.OpError{Op: "dial", Err: errors.New("no route")}, models.CodeStoreUnavailable, ""},
		{"other", errors.New("boom"), models.CodeUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := classifyError(tt.err, nil)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.kind, appErr.Constraint)
		})
	}

	already := models.NewNotFoundError("User", 1)
	assert.Same(t, already, classifyError(already, nil))
}
