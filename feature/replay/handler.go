package replay

import (
	"strings"

	"mastodon-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for archive replay.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the replay routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/replay")
	group.Get("/:domain", h.HandleList)
	group.Post("/:domain", h.HandleReplay)
}

// HandleList lists archived envelopes.
// @Summary List Archived Responses
// @Description Lists the object keys of archived envelopes for a domain, oldest first.
// @Tags replay
// @Produce json
// @Param domain path string true "Instance domain"
// @Success 200 {object} map[string]interface{} "Keys"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /replay/{domain} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	domain := strings.ToLower(c.Params("domain"))

	keys, err := h.service.List(c.Context(), domain)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Archive listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"domain": domain, "keys": keys})
}

// HandleReplay replays archived envelopes.
// @Summary Replay Archived Responses
// @Description Re-reconciles every archived envelope of a domain in observation order. This operation may take a long time.
// @Tags replay
// @Produce json
// @Param domain path string true "Instance domain"
// @Success 200 {object} Report
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /replay/{domain} [post]
func (h *Handler) HandleReplay(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	domain := strings.ToLower(c.Params("domain"))
	l.Info("Triggering replay", zap.String("domain", domain))

	report, err := h.service.Replay(c.Context(), domain)
	if err != nil {
		l.Error("Replay aborted", zap.String("domain", domain), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
