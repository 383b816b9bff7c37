package handlers

import (
	"time"

	"esports-tournament-system/middleware"
	"esports-tournament-system/models"
	"esports-tournament-system/services"

	"github.com/gofiber/fiber/v2"
)

type TournamentHandler struct {
	service *services.TournamentService
}

func SetupTournamentRoutes(app *fiber.App, service *services.TournamentService, jwtSecret string) {
	h := &TournamentHandler{service: service}

	api := app.Group("/api")
	api.Get("/tournaments", h.List)
	api.Get("/tournaments/:id", h.GetByID)
	api.Get("/tournaments/:id/stats", h.GetStats)

	manage := api.Group("",
		middleware.Protected(jwtSecret),
		middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin),
	)
	manage.Post("/tournaments", h.Create)
	manage.Put("/tournaments/:id", h.Update)
	manage.Delete("/tournaments/:id", h.Delete)
	manage.Patch("/tournaments/:id/status", h.ChangeStatus)
	manage.Post("/tournaments/:id/banner", h.UploadBanner)
}

func (h *TournamentHandler) List(c *fiber.Ctx) error {
	filter := services.ListFilter{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
		Status: c.Query("status"),
		Game:   c.Query("game"),
		Format: c.Query("format"),
	}
	if filter.Status != "" && !models.ValidTournamentStatus(filter.Status) {
		return respondBadRequest(c, "invalid status filter")
	}
	if filter.Format != "" && filter.Format != models.FormatSolo && filter.Format != models.FormatTeam {
		return respondBadRequest(c, "invalid format filter")
	}

	tournaments, pagination, err := h.service.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"data":       tournaments,
		"pagination": pagination,
	})
}

func (h *TournamentHandler) GetByID(c *fiber.Ctx) error {
	tournament, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": tournament})
}

func (h *TournamentHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}

type createTournamentRequest struct {
	Name            string     `json:"name"`
	Game            string     `json:"game"`
	Format          string     `json:"format"`
	MaxParticipants int        `json:"max_participants"`
	PrizePool       float64    `json:"prize_pool"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
}

func (r createTournamentRequest) validate(now time.Time) string {
	if len(r.Name) < 3 || len(r.Name) > 50 {
		return "name must be 3-50 characters"
	}
	if r.Game == "" {
		return "game is required"
	}
	if r.Format != models.FormatSolo && r.Format != models.FormatTeam {
		return "format must be SOLO or TEAM"
	}
	if r.MaxParticipants < 1 {
		return "max_participants must be a positive integer"
	}
	if r.PrizePool < 0 {
		return "prize_pool must not be negative"
	}
	if !r.StartDate.After(now) {
		return "start_date must be in the future"
	}
	if r.EndDate != nil && !r.EndDate.After(r.StartDate) {
		return "end_date must be after start_date"
	}
	return ""
}

func (h *TournamentHandler) Create(c *fiber.Ctx) error {
	var req createTournamentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid JSON body")
	}
	if msg := req.validate(time.Now()); msg != "" {
		return respondBadRequest(c, msg)
	}

	principal := middleware.GetPrincipal(c)
	tournament, err := h.service.Create(c.Context(), models.Tournament{
		Name:            req.Name,
		Game:            req.Game,
		Format:          req.Format,
		MaxParticipants: req.MaxParticipants,
		PrizePool:       req.PrizePool,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	}, principal.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": tournament})
}

type updateTournamentRequest struct {
	Name            *string    `json:"name"`
	Game            *string    `json:"game"`
	Format          *string    `json:"format"`
	MaxParticipants *int       `json:"max_participants"`
	PrizePool       *float64   `json:"prize_pool"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
}

// patch validates the provided fields and builds the column patch map.
func (r updateTournamentRequest) patch() (map[string]interface{}, string) {
	patch := map[string]interface{}{}
	if r.Name != nil {
		if len(*r.Name) < 3 || len(*r.Name) > 50 {
			return nil, "name must be 3-50 characters"
		}
		patch["name"] = *r.Name
	}
	if r.Game != nil {
		if *r.Game == "" {
			return nil, "game must not be empty"
		}
		patch["game"] = *r.Game
	}
	if r.Format != nil {
		if *r.Format != models.FormatSolo && *r.Format != models.FormatTeam {
			return nil, "format must be SOLO or TEAM"
		}
		patch["format"] = *r.Format
	}
	if r.MaxParticipants != nil {
		if *r.MaxParticipants < 1 {
			return nil, "max_participants must be a positive integer"
		}
		patch["max_participants"] = *r.MaxParticipants
	}
	if r.PrizePool != nil {
		if *r.PrizePool < 0 {
			return nil, "prize_pool must not be negative"
		}
		patch["prize_pool"] = *r.PrizePool
	}
	if r.StartDate != nil {
		patch["start_date"] = *r.StartDate
	}
	if r.EndDate != nil {
		patch["end_date"] = *r.EndDate
	}
	return patch, ""
}

func (h *TournamentHandler) Update(c *fiber.Ctx) error {
	var req updateTournamentRequest
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

	tournament, err := h.service.Update(c.Context(), c.Params("id"), patch, middleware.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": tournament})
}

func (h *TournamentHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id"), middleware.GetPrincipal(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "tournament deleted"})
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

func (h *TournamentHandler) ChangeStatus(c *fiber.Ctx) error {
	var req changeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid JSON body")
	}
	if !models.ValidTournamentStatus(req.Status) {
		return respondBadRequest(c, "invalid status")
	}

	tournament, err := h.service.ChangeStatus(c.Context(), c.Params("id"), req.Status, middleware.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": tournament})
}

func (h *TournamentHandler) UploadBanner(c *fiber.Ctx) error {
	file, err := c.FormFile("banner")
	if err != nil {
		return respondBadRequest(c, "banner file is required")
	}

	tournament, err := h.service.UploadBanner(c.Context(), c.Params("id"), file, middleware.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": tournament})
}
