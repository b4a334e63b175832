package history

import (
	"strconv"

	"schema-provisioner/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the run history.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/history")
	group.Get("/", h.HandleRecent)
}

// HandleRecent lists recent provisioning runs.
// @Summary List Recent Runs
// @Description Returns the most recent provisioning runs, newest first.
// @Tags history
// @Produce json
// @Param limit query int false "Maximum number of runs to return"
// @Success 200 {array} history.Run "Recent Runs"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /history [get]
func (h *Handler) HandleRecent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	runs, err := h.service.Recent(c.Context(), limit)
	if err != nil {
		l.Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(runs)
}
