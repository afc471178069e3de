package server

import (
	"strings"

	"friendgraph/internal/models"

	"github.com/gofiber/fiber/v2"
)

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateUser handles POST /users
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	name, email, err := validateUserInput(req.Name, req.Email)
	if err != nil {
		return respondError(c, err)
	}

	user, err := s.userService.CreateUser(c.UserContext(), name, email)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// ListUsers handles GET /users?page=
func (s *Server) ListUsers(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return nil
	}

	result, err := s.userService.ListUsers(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// SearchUsers handles GET /users/search?q=&page=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return nil
	}

	q := strings.TrimSpace(c.Query("q"))

	result, err := s.userService.SearchUsers(c.UserContext(), q, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetUser handles GET /users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.userService.DeleteUser(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
