package service

import (
	"context"

	"friendgraph/internal/models"
	"friendgraph/internal/repository"
)

type userRepoStub struct {
	createFn      func(context.Context, *models.User) error
	getByIDFn     func(context.Context, uint) (*models.User, error)
	listFn        func(context.Context, int, int) ([]models.UserListItem, error)
	countFn       func(context.Context) (int64, error)
	searchFn      func(context.Context, string, int, int) ([]models.User, error)
	countSearchFn func(context.Context, string) (int64, error)
	deleteFn      func(context.Context, uint) (int64, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.UserListItem, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *userRepoStub) Search(ctx context.Context, q string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, q, limit, offset)
}
func (s *userRepoStub) CountSearch(ctx context.Context, q string) (int64, error) {
	return s.countSearchFn(ctx, q)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) (int64, error) {
	return s.deleteFn(ctx, id)
}

type friendRepoStub struct {
	createFn           func(context.Context, *models.Friendship) error
	removeFn           func(context.Context, uint, uint) (int64, error)
	listFriendsFn      func(context.Context, uint, int, int) ([]models.FriendSummary, error)
	countFriendsFn     func(context.Context, uint) (int64, error)
	deleteAllForUserFn func(context.Context, uint) (int64, error)
	countFn            func(context.Context) (int64, error)
}

func (s *friendRepoStub) Create(ctx context.Context, friendship *models.Friendship) error {
	return s.createFn(ctx, friendship)
}
func (s *friendRepoStub) Remove(ctx context.Context, userID, friendID uint) (int64, error) {
	return s.removeFn(ctx, userID, friendID)
}
func (s *friendRepoStub) ListFriends(ctx context.Context, userID uint, limit, offset int) ([]models.FriendSummary, error) {
	return s.listFriendsFn(ctx, userID, limit, offset)
}
func (s *friendRepoStub) CountFriends(ctx context.Context, userID uint) (int64, error) {
	return s.countFriendsFn(ctx, userID)
}
func (s *friendRepoStub) DeleteAllForUser(ctx context.Context, userID uint) (int64, error) {
	return s.deleteAllForUserFn(ctx, userID)
}
func (s *friendRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:      func(context.Context, *models.User) error { return nil },
		getByIDFn:     func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		listFn:        func(context.Context, int, int) ([]models.UserListItem, error) { return nil, nil },
		countFn:       func(context.Context) (int64, error) { return 0, nil },
		searchFn:      func(context.Context, string, int, int) ([]models.User, error) { return nil, nil },
		countSearchFn: func(context.Context, string) (int64, error) { return 0, nil },
		deleteFn:      func(context.Context, uint) (int64, error) { return 1, nil },
	}
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createFn:           func(context.Context, *models.Friendship) error { return nil },
		removeFn:           func(context.Context, uint, uint) (int64, error) { return 0, nil },
		listFriendsFn:      func(context.Context, uint, int, int) ([]models.FriendSummary, error) { return nil, nil },
		countFriendsFn:     func(context.Context, uint) (int64, error) { return 0, nil },
		deleteAllForUserFn: func(context.Context, uint) (int64, error) { return 0, nil },
		countFn:            func(context.Context) (int64, error) { return 0, nil },
	}
}

type txStub struct {
	users       *userRepoStub
	friends     *friendRepoStub
	commitErr   error
	rollbackErr error
	committed   bool
	rolledBack  bool
}

func (t *txStub) Users() repository.UserRepository     { return t.users }
func (t *txStub) Friends() repository.FriendRepository { return t.friends }
func (t *txStub) Commit() error {
	t.committed = true
	return t.commitErr
}
func (t *txStub) Rollback() error {
	t.rolledBack = true
	return t.rollbackErr
}

type storeStub struct {
	users    *userRepoStub
	friends  *friendRepoStub
	tx       *txStub
	beginErr error
}

func (s *storeStub) Users() repository.UserRepository     { return s.users }
func (s *storeStub) Friends() repository.FriendRepository { return s.friends }
func (s *storeStub) Begin(context.Context) (repository.Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return s.tx, nil
}
func (s *storeStub) Ping(context.Context) error { return nil }

func newStoreStub() *storeStub {
	return &storeStub{
		users:   noopUserRepo(),
		friends: noopFriendRepo(),
		tx:      &txStub{users: noopUserRepo(), friends: noopFriendRepo()},
	}
}
