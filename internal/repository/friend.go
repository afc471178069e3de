package repository

import (
	"context"

	"friendgraph/internal/models"
	"friendgraph/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRepository defines the interface for friendship edge operations.
// Edges are directed: (a, b) and (b, a) are separate rows.
type FriendRepository interface {
	Create(ctx context.Context, friendship *models.Friendship) error
	Remove(ctx context.Context, userID, friendID uint) (int64, error)
	ListFriends(ctx context.Context, userID uint, limit, offset int) ([]models.FriendSummary, error)
	CountFriends(ctx context.Context, userID uint) (int64, error)
	DeleteAllForUser(ctx context.Context, userID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

var friendConstraintMessages = constraintMessages{
	models.ConstraintUnique:     "friendship already exists",
	models.ConstraintForeignKey: "user or friend does not exist",
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db, log: observability.NewRepoLogger("friendships")}
}

func (r *friendRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	defer observability.TrackQuery("create", "friendships")()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(friendship).Error; err != nil {
		return storeError(ctx, r.log, "friendship_create", err, friendConstraintMessages)
	}
	r.log.LogCreate(ctx, map[string]any{"id": friendship.ID, "user_id": friendship.UserID, "friend_id": friendship.FriendID})
	return nil
}

// Remove deletes the exact ordered pair. Zero rows affected is not an error.
func (r *friendRepository) Remove(ctx context.Context, userID, friendID uint) (int64, error) {
	defer observability.TrackQuery("delete", "friendships")()

	res := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&models.Friendship{})
	if res.Error != nil {
		return 0, storeError(ctx, r.log, "friendship_remove", res.Error, nil)
	}
	r.log.LogDelete(ctx, map[string]any{"user_id": userID, "friend_id": friendID, "rows": res.RowsAffected})
	return res.RowsAffected, nil
}

func (r *friendRepository) ListFriends(ctx context.Context, userID uint, limit, offset int) ([]models.FriendSummary, error) {
	defer observability.TrackQuery("list", "friendships")()

	friends := make([]models.FriendSummary, 0, limit)
	err := r.db.WithContext(ctx).
		Table("friendships").
		Select("users.id, users.name, users.email").
		Joins("JOIN users ON users.id = friendships.friend_id").
		Where("friendships.user_id = ?", userID).
		Order("friendships.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&friends).Error
	if err != nil {
		return nil, storeError(ctx, r.log, "friendship_list", err, nil)
	}
	r.log.LogRead(ctx, map[string]any{"user_id": userID, "limit": limit, "offset": offset, "rows": len(friends)})
	return friends, nil
}

func (r *friendRepository) CountFriends(ctx context.Context, userID uint) (int64, error) {
	defer observability.TrackQuery("count_for_user", "friendships")()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Friendship{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return 0, storeError(ctx, r.log, "friendship_count_for_user", err, nil)
	}
	return total, nil
}

// DeleteAllForUser removes every edge where userID is on either end.
func (r *friendRepository) DeleteAllForUser(ctx context.Context, userID uint) (int64, error) {
	defer observability.TrackQuery("delete_for_user", "friendships")()

	res := r.db.WithContext(ctx).
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Delete(&models.Friendship{})
	if res.Error != nil {
		return 0, storeError(ctx, r.log, "friendship_delete_for_user", res.Error, nil)
	}
	r.log.LogDelete(ctx, map[string]any{"user_id": userID, "rows": res.RowsAffected})
	return res.RowsAffected, nil
}

func (r *friendRepository) Count(ctx context.Context) (int64, error) {
	defer observability.TrackQuery("count", "friendships")()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Friendship{}).Count(&total).Error; err != nil {
		return 0, storeError(ctx, r.log, "friendship_count", err, nil)
	}
	return total, nil
}
