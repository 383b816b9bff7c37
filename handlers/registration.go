package handlers

import (
	"esports-tournament-system/middleware"
	"esports-tournament-system/models"
	"esports-tournament-system/services"

	"github.com/gofiber/fiber/v2"
)

type RegistrationHandler struct {
	service *services.RegistrationService
}

func SetupRegistrationRoutes(app *fiber.App, service *services.RegistrationService, jwtSecret string) {
	h := &RegistrationHandler{service: service}

	secured := app.Group("/api", middleware.Protected(jwtSecret))
	secured.Get("/tournaments/:id/registrations", h.ListByTournament)
	secured.Post("/tournaments/:id/register", h.Create)
	secured.Patch("/registrations/:id", h.UpdateStatus)
	secured.Delete("/registrations/:id", h.Delete)
}

func (h *RegistrationHandler) ListByTournament(c *fiber.Ctx) error {
	registrations, err := h.service.ListByTournament(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": registrations})
}

type createRegistrationRequest struct {
	TeamID *string `json:"team_id"`
}

func (h *RegistrationHandler) Create(c *fiber.Ctx) error {
	var req createRegistrationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respondBadRequest(c, "invalid JSON body")
		}
	}

	registration, err := h.service.Create(c.Context(), c.Params("id"), req.TeamID, middleware.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": registration})
}

type updateRegistrationRequest struct {
	Status string `json:"status"`
}

func (h *RegistrationHandler) UpdateStatus(c *fiber.Ctx) error {
	var req updateRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid JSON body")
	}
	if !models.ValidRegistrationStatus(req.Status) {
		return respondBadRequest(c, "invalid status")
	}

	registration, err := h.service.UpdateStatus(c.Context(), c.Params("id"), req.Status, middleware.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": registration})
}

func (h *RegistrationHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id"), middleware.GetPrincipal(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "registration cancelled"})
}
