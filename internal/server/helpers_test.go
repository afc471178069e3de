package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"friendgraph/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- humanizeParam (pure function, no HTTP) ---

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"friendId", "friend ID"},
		{"mutualFriendId", "mutual friend ID"},
		{"page", "page"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

// --- parseID ---

func TestParseID(t *testing.T) {
	app := fiber.New()
	app.Get("/users/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	tests := []struct {
		path   string
		status int
	}{
		{"/users/7", fiber.StatusOK},
		{"/users/0", fiber.StatusBadRequest},
		{"/users/-3", fiber.StatusBadRequest},
		{"/users/abc", fiber.StatusBadRequest},
		{"/users/99999999999", fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.status, resp.StatusCode)

			if tt.status == fiber.StatusBadRequest {
				var body models.ErrorResponse
				decodeBody(t, resp, &body)
				assert.Equal(t, "Invalid ID", body.Error)
				assert.Equal(t, models.CodeValidation, body.Code)
			}
		})
	}
}

// --- parsePage ---

func TestParsePage(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		page, err := parsePage(c)
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"page": page})
	})

	tests := []struct {
		query  string
		status int
		page   int
	}{
		{"", fiber.StatusOK, 1},
		{"?page=3", fiber.StatusOK, 3},
		{"?page=0", fiber.StatusOK, 1},
		{"?page=-4", fiber.StatusOK, 1},
		{"?page=two", fiber.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			require.Equal(t, tt.status, resp.StatusCode)

			if tt.status == fiber.StatusOK {
				var body struct {
					Page int `json:"page"`
				}
				decodeBody(t, resp, &body)
				assert.Equal(t, tt.page, body.Page)
			}
		})
	}
}

// --- validateUserInput ---

func TestValidateUserInput(t *testing.T) {
	name, email, err := validateUserInput("  Alice  ", " alice@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
	assert.Equal(t, "alice@example.com", email)

	tests := []struct {
		name    string
		input   [2]string
		message string
	}{
		{"short name", [2]string{"A", "a@example.com"}, "Name must be at least 2 characters"},
		{"blank name", [2]string{"   ", "a@example.com"}, "Name must be at least 2 characters"},
		{"missing email", [2]string{"Alice", ""}, "Email is required"},
		{"malformed email", [2]string{"Alice", "not-an-email"}, "Invalid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := validateUserInput(tt.input[0], tt.input[1])
			require.Error(t, err)
			assert.Equal(t, models.CodeValidation, models.ErrorCode(err))

			var appErr *models.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

// --- statusFor ---

func TestStatusFor(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", models.NewValidationError("bad"), fiber.StatusBadRequest},
		{"not found", models.NewNotFoundError("User", 1), fiber.StatusNotFound},
		{"unique", models.NewConstraintViolationError(models.ConstraintUnique, "email already exists", cause), fiber.StatusBadRequest},
		{"foreign key", models.NewConstraintViolationError(models.ConstraintForeignKey, "user or friend does not exist", cause), fiber.StatusUnprocessableEntity},
		{"unavailable", models.NewStoreUnavailableError(cause), fiber.StatusServiceUnavailable},
		{"unknown", models.NewUnknownError(cause), fiber.StatusInternalServerError},
		{"plain error", cause, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, statusFor(tt.err))
		})
	}
}
