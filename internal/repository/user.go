// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"friendgraph/internal/models"
	"friendgraph/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.UserListItem, error)
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, query string, limit, offset int) ([]models.User, error)
	CountSearch(ctx context.Context, query string) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

var userConstraintMessages = constraintMessages{
	models.ConstraintUnique: "email already exists",
}

// userRepository implements UserRepository
type userRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, log: observability.NewRepoLogger("users")}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("create", "users")()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return storeError(ctx, r.log, "user_create", err, userConstraintMessages)
	}
	r.log.LogCreate(ctx, map[string]any{"id": user.ID})
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	defer observability.TrackQuery("get", "users")()

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, storeError(ctx, r.log, "user_get", err, nil)
	}
	return &user, nil
}

// List returns users ordered by id with their outgoing friendship count.
func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.UserListItem, error) {
	defer observability.TrackQuery("list", "users")()

	items := make([]models.UserListItem, 0, limit)
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.*, COUNT(friendships.id) AS friend_count").
		Joins("LEFT JOIN friendships ON friendships.user_id = users.id").
		Group("users.id").
		Order("users.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&items).Error
	if err != nil {
		return nil, storeError(ctx, r.log, "user_list", err, nil)
	}
	r.log.LogRead(ctx, map[string]any{"limit": limit, "offset": offset, "rows": len(items)})
	return items, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	defer observability.TrackQuery("count", "users")()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, storeError(ctx, r.log, "user_count", err, nil)
	}
	return total, nil
}

// Search matches query as a literal substring of name or email.
func (r *userRepository) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	defer observability.TrackQuery("search", "users")()

	users := make([]models.User, 0, limit)
	err := r.searchScope(ctx, query).
		Order("users.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, storeError(ctx, r.log, "user_search", err, nil)
	}
	r.log.LogRead(ctx, map[string]any{"query": query, "limit": limit, "offset": offset, "rows": len(users)})
	return users, nil
}

func (r *userRepository) CountSearch(ctx context.Context, query string) (int64, error) {
	defer observability.TrackQuery("search_count", "users")()

	var total int64
	if err := r.searchScope(ctx, query).Count(&total).Error; err != nil {
		return 0, storeError(ctx, r.log, "user_search_count", err, nil)
	}
	return total, nil
}

func (r *userRepository) searchScope(ctx context.Context, query string) *gorm.DB {
	pattern := "%" + escapeLike(query) + "%"
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where(`users.name LIKE ? ESCAPE '\' OR users.email LIKE ? ESCAPE '\'`, pattern, pattern)
}

// Delete removes the user row and reports how many rows went away.
// Friendships referencing the user must be removed first.
func (r *userRepository) Delete(ctx context.Context, id uint) (int64, error) {
	defer observability.TrackQuery("delete", "users")()

	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return 0, storeError(ctx, r.log, "user_delete", res.Error, nil)
	}
	r.log.LogDelete(ctx, map[string]any{"id": id, "rows": res.RowsAffected})
	return res.RowsAffected, nil
}
