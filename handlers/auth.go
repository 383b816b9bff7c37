package handlers

import (
	"net/mail"
	"regexp"
	"unicode"

	"esports-tournament-system/middleware"
	"esports-tournament-system/services"

	"github.com/gofiber/fiber/v2"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

type AuthHandler struct {
	service *services.AuthService
}

func SetupAuthRoutes(app *fiber.App, service *services.AuthService, jwtSecret string) {
	h := &AuthHandler{service: service}
	auth := app.Group("/api/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Get("/me", middleware.Protected(jwtSecret), h.Me)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) validate() string {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return "invalid email format"
	}
	if !usernameRe.MatchString(r.Username) {
		return "username must be 3-20 characters, alphanumeric or underscore"
	}
	if !validPassword(r.Password) {
		return "password must be at least 8 characters with an uppercase letter, a lowercase letter and a digit"
	}
	return ""
}

// validPassword: min 8 chars, at least one upper, one lower, one digit.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid JSON body")
	}
	if msg := req.validate(); msg != "" {
		return respondBadRequest(c, msg)
	}

	user, token, err := h.service.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"user": user, "token": token},
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.service.Me(c.Context(), middleware.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid JSON body")
	}
	if req.Email == "" || req.Password == "" {
		return respondBadRequest(c, "email and password are required")
	}

	user, token, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"user": user, "token": token},
	})
}
