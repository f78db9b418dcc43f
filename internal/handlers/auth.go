package handlers

import (
	"errors"

	"custodia/internal/services/auth"
	"custodia/internal/utils/response"
	"custodia/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(s auth.Service) *AuthHandler {
	return &AuthHandler{service: s}
}

// Register handles POST /api/register. It creates the user and provisions
// their wallet with a zero balance.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.Registration(req.Username, req.Email, req.Password)
	if !v.Valid() {
		for _, msg := range v.Errors {
			return response.BadRequest(c, msg)
		}
	}

	user, err := h.service.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "registration failed")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "user registered",
		"data":    user,
	})
}

// Login handles POST /api/login and returns an access token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	token, err := h.service.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return response.Error(c, fiber.StatusUnauthorized, err.Error())
		}
		return response.ServerError(c, "login failed")
	}
	return response.Success(c, "login successful", fiber.Map{"token": token})
}
