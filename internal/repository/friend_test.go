package repository

import (
	"context"
	"testing"

	"friendgraph/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRepository_Integration(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()
	u := createUsers(t, NewUserRepository(db), 4)

	t.Run("Create is directional", func(t *testing.T) {
		f := &models.Friendship{UserID: u[0].ID, FriendID: u[1].ID}
		require.NoError(t, repo.Create(ctx, f))
		assert.NotZero(t, f.ID)
		assert.False(t, f.CreatedAt.IsZero())

		// The reverse edge is a distinct row.
		require.NoError(t, repo.Create(ctx, &models.Friendship{UserID: u[1].ID, FriendID: u[0].ID}))

		n, err := repo.CountFriends(ctx, u[0].ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("Duplicate pair", func(t *testing.T) {
		err := repo.Create(ctx, &models.Friendship{UserID: u[0].ID, FriendID: u[1].ID})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeConstraintViolation, appErr.Code)
		assert.Equal(t, models.ConstraintUnique, appErr.Constraint)
	})

	t.Run("Missing reference", func(t *testing.T) {
		err := repo.Create(ctx, &models.Friendship{UserID: u[0].ID, FriendID: 9999})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeConstraintViolation, appErr.Code)
		assert.Equal(t, models.ConstraintForeignKey, appErr.Constraint)
	})

	t.Run("Self friendship is allowed", func(t *testing.T) {
		assert.NoError(t, repo.Create(ctx, &models.Friendship{UserID: u[3].ID, FriendID: u[3].ID}))
	})

	t.Run("ListFriends orders by edge id", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.Friendship{UserID: u[0].ID, FriendID: u[3].ID}))
		require.NoError(t, repo.Create(ctx, &models.Friendship{UserID: u[0].ID, FriendID: u[2].ID}))

		friends, err := repo.ListFriends(ctx, u[0].ID, 5, 0)
		require.NoError(t, err)
		require.Len(t, friends, 3)
		assert.Equal(t, []uint{u[1].ID, u[3].ID, u[2].ID}, []uint{friends[0].ID, friends[1].ID, friends[2].ID})
		assert.Equal(t, u[3].Email, friends[1].Email)

		friends, err = repo.ListFriends(ctx, u[0].ID, 2, 2)
		require.NoError(t, err)
		require.Len(t, friends, 1)
		assert.Equal(t, u[2].ID, friends[0].ID)
	})

	t.Run("Remove is exact and idempotent", func(t *testing.T) {
		rows, err := repo.Remove(ctx, u[1].ID, u[0].ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, rows)

		rows, err = repo.Remove(ctx, u[1].ID, u[0].ID)
		require.NoError(t, err)
		assert.EqualValues(t, 0, rows)

		n, err := repo.CountFriends(ctx, u[0].ID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, n, "forward edge untouched")
	})

	t.Run("DeleteAllForUser removes both directions", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.Friendship{UserID: u[2].ID, FriendID: u[0].ID}))

		rows, err := repo.DeleteAllForUser(ctx, u[0].ID)
		require.NoError(t, err)
		assert.EqualValues(t, 4, rows)

		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total, "only the self edge of user 4 remains")
	})
}
