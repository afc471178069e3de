package server

import (
	"friendgraph/internal/models"

	"github.com/gofiber/fiber/v2"
)

type addFriendRequest struct {
	FriendID uint `json:"friendId"`
}

// AddFriend handles POST /users/:id/friends
func (s *Server) AddFriend(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req addFriendRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.FriendID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("friendId must be a positive integer"))
	}

	friendship, err := s.friendService.AddFriend(c.UserContext(), userID, req.FriendID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(friendship)
}

// RemoveFriend handles DELETE /users/:id/friends/:friendId
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	friendID, err := parseID(c, "friendId")
	if err != nil {
		return nil
	}

	if err := s.friendService.RemoveFriend(c.UserContext(), userID, friendID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Friend removed successfully"})
}

// ListFriends handles GET /users/:id/friends?page=
func (s *Server) ListFriends(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	page, err := parsePage(c)
	if err != nil {
		return nil
	}

	result, err := s.friendService.ListFriends(c.UserContext(), userID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetStats handles GET /stats
func (s *Server) GetStats(c *fiber.Ctx) error {
	stats, err := s.statsService.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
