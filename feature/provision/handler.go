package provision

import (
	"schema-provisioner/core/logger"
	"schema-provisioner/core/provision"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for provisioning.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the provisioning routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/provision")
	group.Get("/health", h.HandleHealth)
	group.Get("/registry", h.HandleRegistry)
	group.Post("/", h.HandleProvision)
}

// provisionRequest is the POST /provision body.
type provisionRequest struct {
	// UpdateExisting updates collections that already exist instead of
	// skipping them.
	UpdateExisting bool `json:"updateExisting"`
}

// HandleHealth probes the remote store.
// @Summary Probe Store Health
// @Description Checks whether the remote document store answers its health endpoint.
// @Tags provision
// @Produce json
// @Success 200 {object} provision.ProbeResult "Probe Result"
// @Router /provision/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	result := h.service.Probe(c.Context())
	status := fiber.StatusOK
	if !result.Healthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}

// HandleRegistry returns the desired collection registry.
// @Summary Show Registry
// @Description Returns the declarative collection registry this instance provisions.
// @Tags provision
// @Produce json
// @Success 200 {array} schema.Collection "Registry"
// @Router /provision/registry [get]
func (h *Handler) HandleRegistry(c *fiber.Ctx) error {
	return c.JSON(h.service.Registry())
}

// HandleProvision runs one reconciliation pass.
// @Summary Provision Collections
// @Description Reconciles the registry against the remote store and returns the per-collection outcomes.
// @Tags provision
// @Accept json
// @Produce json
// @Param request body provisionRequest false "Run options"
// @Success 200 {object} provision.Result "Provision Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /provision [post]
func (h *Handler) HandleProvision(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req provisionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	l.Info("Provisioning requested", zap.Bool("update_existing", req.UpdateExisting))

	opts := provision.Options{
		UpdateExisting: req.UpdateExisting,
		Progress: func(ev provision.Event) {
			l.Info("Provision progress",
				zap.String("kind", string(ev.Kind)),
				zap.String("status", ev.Text),
			)
		},
	}

	result := h.service.Run(c.Context(), opts)

	// The engine never errors; systemic failures are part of the result.
	return c.JSON(result)
}
