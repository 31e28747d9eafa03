package timeline

import (
	"mastodon-sync/core/ingest"
	"mastodon-sync/core/logger"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for timeline ingestion.
type Handler struct {
	service  *Service
	pipeline *ingest.Pipeline
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, pipeline *ingest.Pipeline) *Handler {
	return &Handler{service: service, pipeline: pipeline}
}

// RegisterRoutes registers the timeline routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/timeline")
	group.Post("/:domain/statuses", h.HandleStatuses)
	group.Post("/:domain/status", h.HandleStatus)
}

// HandleStatuses reconciles a page of statuses.
// @Summary Ingest Timeline
// @Description Reconciles an array of statuses observed on a timeline of the given instance.
// @Tags timeline
// @Accept json
// @Produce json
// @Param domain path string true "Instance domain"
// @Param X-Viewer-ID header string false "Remote account id of the authenticated viewer"
// @Param X-Observed-At header string false "RFC3339 time the response was fetched"
// @Success 200 {object} ingest.Result
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /timeline/{domain}/statuses [post]
func (h *Handler) HandleStatuses(c *fiber.Ctx) error {
	return h.ingest(c, ingest.KindStatuses)
}

// HandleStatus reconciles one status.
// @Summary Ingest Status
// @Description Reconciles a single status, including its reblog, poll and owned children.
// @Tags timeline
// @Accept json
// @Produce json
// @Param domain path string true "Instance domain"
// @Param X-Viewer-ID header string false "Remote account id of the authenticated viewer"
// @Param X-Observed-At header string false "RFC3339 time the response was fetched"
// @Success 200 {object} ingest.Result
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /timeline/{domain}/status [post]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return h.ingest(c, ingest.KindStatus)
}

func (h *Handler) ingest(c *fiber.Ctx, kind ingest.Kind) error {
	env, err := ingest.FromRequest(c, kind)
	if err != nil {
		return ingest.WriteError(c, err)
	}

	res, err := h.pipeline.Ingest(c.Context(), env)
	if err != nil {
		ingest.LogFailure(logger.WithIngest(h.service.logger, c, env.Domain, string(kind)), "Timeline ingest failed", err)
		return ingest.WriteError(c, err)
	}
	return c.JSON(res)
}
