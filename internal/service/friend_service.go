package service

import (
	"context"

	"friendgraph/internal/models"
	"friendgraph/internal/repository"

	"golang.org/x/sync/errgroup"
)

// FriendService manages directed friendship edges.
type FriendService struct {
	friendRepo repository.FriendRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository) *FriendService {
	return &FriendService{friendRepo: friendRepo}
}

// AddFriend records the edge userID -> friendID. It neither rejects
// self-friendship nor creates the reciprocal edge.
func (s *FriendService) AddFriend(ctx context.Context, userID, friendID uint) (*models.Friendship, error) {
	friendship := &models.Friendship{UserID: userID, FriendID: friendID}
	if err := s.friendRepo.Create(ctx, friendship); err != nil {
		return nil, err
	}
	return friendship, nil
}

// RemoveFriend deletes the exact ordered pair. Removing a missing edge succeeds.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	_, err := s.friendRepo.Remove(ctx, userID, friendID)
	return err
}

// ListFriends pages through the targets of userID's outgoing edges.
func (s *FriendService) ListFriends(ctx context.Context, userID uint, page int) (*models.FriendPage, error) {
	page = normalizePage(page)

	var (
		friends []models.FriendSummary
		total   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		friends, err = s.friendRepo.ListFriends(gctx, userID, PageSize, pageOffset(page))
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.friendRepo.CountFriends(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if friends == nil {
		friends = []models.FriendSummary{}
	}
	return &models.FriendPage{
		Friends:  friends,
		PageInfo: models.PageInfo{TotalPages: totalPages(total), CurrentPage: page},
	}, nil
}
