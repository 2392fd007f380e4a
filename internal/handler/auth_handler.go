package handler

import (
	"go-stockledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// Register creates a new user account.
// POST /register-user
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": user.UserName + " successfully registered",
		"data":    user.ToResponse(),
	})
}

// Login authenticates a user and returns a signed token.
// POST /log-in
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.UserName == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "user_name and password are required"})
	}

	response, err := h.authService.Login(req.UserName, req.Password)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(response)
}

// Logout invalidates the caller's outstanding tokens.
// POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := h.authService.Logout(userID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to log out"})
	}

	return c.JSON(fiber.Map{"message": "logged out successfully"})
}
