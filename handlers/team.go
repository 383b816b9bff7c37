package handlers

import (
	"regexp"

	"esports-tournament-system/middleware"
	"esports-tournament-system/services"

	"github.com/gofiber/fiber/v2"
)

// Team tags are 3-5 uppercase alphanumeric characters.
var tagRe = regexp.MustCompile(`^[A-Z0-9]{3,5}$`)

type TeamHandler struct {
	service *services.TeamService
}

func SetupTeamRoutes(app *fiber.App, service *services.TeamService, jwtSecret string) {
	h := &TeamHandler{service: service}

	api := app.Group("/api")
	api.Get("/teams", h.List)
	api.Get("/teams/:id", h.GetByID)

	secured := api.Group("", middleware.Protected(jwtSecret))
	secured.Post("/teams", h.Create)
	secured.Put("/teams/:id", h.Update)
	secured.Delete("/teams/:id", h.Delete)
}

func (h *TeamHandler) List(c *fiber.Ctx) error {
	teams, err := h.service.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": teams})
}

func (h *TeamHandler) GetByID(c *fiber.Ctx) error {
	team, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": team})
}

type createTeamRequest struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

func (r createTeamRequest) validate() string {
	if len(r.Name) < 3 || len(r.Name) > 50 {
		return "name must be 3-50 characters"
	}
	if !tagRe.MatchString(r.Tag) {
		return "tag must be 3-5 uppercase alphanumeric characters"
	}
	return ""
}

func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var req createTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid JSON body")
	}
	if msg := req.validate(); msg != "" {
		return respondBadRequest(c, msg)
	}

	team, err := h.service.Create(c.Context(), req.Name, req.Tag, middleware.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": team})
}

type updateTeamRequest struct {
	Name *string `json:"name"`
	Tag  *string `json:"tag"`
}

func (r updateTeamRequest) patch() (map[string]interface{}, string) {
	patch := map[string]interface{}{}
	if r.Name != nil {
		if len(*r.Name) < 3 || len(*r.Name) > 50 {
			return nil, "name must be 3-50 characters"
		}
		patch["name"] = *r.Name
	}
	if r.Tag != nil {
		if !tagRe.MatchString(*r.Tag) {
			return nil, "tag must be 3-5 uppercase alphanumeric characters"
		}
		patch["tag"] = *r.Tag
	}
	return patch, ""
}

func (h *TeamHandler) Update(c *fiber.Ctx) error {
	var req updateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid JSON body")
	}
	patch, msg := req.patch()
	if msg != "" {
		return respondBadRequest(c, msg)
	}
	if len(patch) == 0 {
		return respondBadRequest(c, "no fields to update")
	}

	team, err := h.service.Update(c.Context(), c.Params("id"), patch, middleware.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": team})
}

func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id"), middleware.GetPrincipal(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "team deleted"})
}
