package repository

import (
	"context"

	"friendgraph/internal/observability"

	"gorm.io/gorm"
)

// Store is the entity store: repositories bound to one connection pool plus
// explicit transactions.
type Store interface {
	Users() UserRepository
	Friends() FriendRepository
	Begin(ctx context.Context) (Tx, error)
	Ping(ctx context.Context) error
}

// Tx is an open transaction. Repositories obtained from it run inside the
// transaction until Commit or Rollback is called.
type Tx interface {
	Users() UserRepository
	Friends() FriendRepository
	Commit() error
	Rollback() error
}

type gormStore struct {
	db      *gorm.DB
	users   UserRepository
	friends FriendRepository
	log     *observability.RepoLogger
}

// NewStore wraps a gorm pool. The caller owns db and closes it.
func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:      db,
		users:   NewUserRepository(db),
		friends: NewFriendRepository(db),
		log:     observability.NewRepoLogger("tx"),
	}
}

func (s *gormStore) Users() UserRepository     { return s.users }
func (s *gormStore) Friends() FriendRepository { return s.friends }

func (s *gormStore) Begin(ctx context.Context) (Tx, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, storeError(ctx, s.log, "tx_begin", tx.Error, nil)
	}
	return &gormTx{ctx: ctx, tx: tx, log: s.log}, nil
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return storeError(ctx, s.log, "ping", err, nil)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return storeError(ctx, s.log, "ping", err, nil)
	}
	return nil
}

type gormTx struct {
	ctx context.Context
	tx  *gorm.DB
	log *observability.RepoLogger
}

func (t *gormTx) Users() UserRepository     { return NewUserRepository(t.tx) }
func (t *gormTx) Friends() FriendRepository { return NewFriendRepository(t.tx) }

func (t *gormTx) Commit() error {
	if err := t.tx.Commit().Error; err != nil {
		return storeError(t.ctx, t.log, "tx_commit", err, nil)
	}
	return nil
}

func (t *gormTx) Rollback() error {
	if err := t.tx.Rollback().Error; err != nil {
		return storeError(t.ctx, t.log, "tx_rollback", err, nil)
	}
	return nil
}
