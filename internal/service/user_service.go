package service

import (
	"context"
	"log/slog"

	"friendgraph/internal/models"
	"friendgraph/internal/observability"
	"friendgraph/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// DeletionState is the state of a delete-user transaction.
type DeletionState string

const (
	DeletionPending   DeletionState = "pending"
	DeletionCommitted DeletionState = "committed"
	DeletionAborted   DeletionState = "aborted"
)

// UserDeletion records the outcome of DeleteUser. FriendshipsRemoved is only
// non-zero once the deletion is committed.
type UserDeletion struct {
	UserID             uint
	FriendshipsRemoved int64
	State              DeletionState
}

type UserService struct {
	store repository.Store
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

// CreateUser inserts a user. A duplicate email surfaces as a CONSTRAINT_VIOLATION.
func (s *UserService) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	user := &models.User{Name: name, Email: email}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.store.Users().GetByID(ctx, id)
}

// ListUsers returns one page of users with their outgoing friend counts.
// The page and the total are read independently and are not snapshot-consistent.
func (s *UserService) ListUsers(ctx context.Context, page int) (*models.UserPage, error) {
	page = normalizePage(page)

	var (
		items []models.UserListItem
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.store.Users().List(gctx, PageSize, pageOffset(page))
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.store.Users().Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if items == nil {
		items = []models.UserListItem{}
	}
	return &models.UserPage{
		Users:    items,
		PageInfo: models.PageInfo{TotalPages: totalPages(total), CurrentPage: page},
	}, nil
}

// SearchUsers pages through users whose name or email contains query.
func (s *UserService) SearchUsers(ctx context.Context, query string, page int) (*models.SearchPage, error) {
	page = normalizePage(page)

	var (
		users []models.User
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.store.Users().Search(gctx, query, PageSize, pageOffset(page))
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.store.Users().CountSearch(gctx, query)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if users == nil {
		users = []models.User{}
	}
	return &models.SearchPage{
		Users:    users,
		PageInfo: models.PageInfo{TotalPages: totalPages(total), CurrentPage: page},
	}, nil
}

// DeleteUser removes the user and every friendship touching it in one
// transaction. The returned record is never nil and carries the final state.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (deletion *UserDeletion, err error) {
	span, ctx := observability.StartSpan(ctx, "UserService.DeleteUser", attribute.Int64("user.id", int64(id)))
	deletion = &UserDeletion{UserID: id, State: DeletionPending}
	defer func() {
		span.AddAttributes(
			attribute.String("deletion.state", string(deletion.State)),
			attribute.Int64("deletion.friendships_removed", deletion.FriendshipsRemoved),
		)
		span.Finish(&err)
		observability.UserDeletions.WithLabelValues(string(deletion.State)).Inc()
	}()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		deletion.State = DeletionAborted
		return deletion, err
	}

	removed, err := tx.Friends().DeleteAllForUser(ctx, id)
	if err != nil {
		return deletion, abort(ctx, tx, deletion, err)
	}

	rows, err := tx.Users().Delete(ctx, id)
	if err != nil {
		return deletion, abort(ctx, tx, deletion, err)
	}
	if rows == 0 {
		return deletion, abort(ctx, tx, deletion, models.NewNotFoundError("User", id))
	}

	if err := tx.Commit(); err != nil {
		deletion.State = DeletionAborted
		return deletion, err
	}

	deletion.FriendshipsRemoved = removed
	deletion.State = DeletionCommitted
	observability.Logger.InfoContext(ctx, "User deleted",
		slog.Uint64("user_id", uint64(id)),
		slog.Int64("friendships_removed", removed),
	)
	return deletion, nil
}

// abort rolls tx back and marks the deletion aborted. The cause is returned
// first so callers still see its code when the rollback also fails.
func abort(ctx context.Context, tx repository.Tx, deletion *UserDeletion, cause error) error {
	deletion.State = DeletionAborted
	if rbErr := tx.Rollback(); rbErr != nil {
		observability.Logger.ErrorContext(ctx, "Rollback failed",
			slog.Uint64("user_id", uint64(deletion.UserID)),
			slog.String("error", rbErr.Error()),
		)
		return multierr.Append(cause, rbErr)
	}
	return cause
}
