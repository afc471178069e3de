package service

import (
	"context"

	"friendgraph/internal/models"
	"friendgraph/internal/repository"

	"golang.org/x/sync/errgroup"
)

// StatsService computes graph-wide aggregates.
type StatsService struct {
	userRepo   repository.UserRepository
	friendRepo repository.FriendRepository
}

func NewStatsService(userRepo repository.UserRepository, friendRepo repository.FriendRepository) *StatsService {
	return &StatsService{userRepo: userRepo, friendRepo: friendRepo}
}

// Stats returns the user count and the mean number of outgoing edges per user.
// Users that only appear as friendId contribute nothing to the numerator.
func (s *StatsService) Stats(ctx context.Context) (*models.Stats, error) {
	var users, edges int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.userRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		edges, err = s.friendRepo.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	denominator := users
	if denominator < 1 {
		denominator = 1
	}
	return &models.Stats{
		TotalUsers:     users,
		AverageFriends: float64(edges) / float64(denominator),
	}, nil
}
