package tags

import (
	"mastodon-sync/core/ingest"
	"mastodon-sync/core/logger"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for tag ingestion.
type Handler struct {
	service  *Service
	pipeline *ingest.Pipeline
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, pipeline *ingest.Pipeline) *Handler {
	return &Handler{service: service, pipeline: pipeline}
}

// RegisterRoutes registers the tag routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/tags/:domain", h.HandleTags)
}

// HandleTags reconciles tags.
// @Summary Ingest Tags
// @Description Reconciles hashtags and their usage history. History entries are merged by position.
// @Tags tags
// @Accept json
// @Produce json
// @Param domain path string true "Instance domain"
// @Param X-Observed-At header string false "RFC3339 time the response was fetched"
// @Success 200 {object} ingest.Result
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tags/{domain} [post]
func (h *Handler) HandleTags(c *fiber.Ctx) error {
	env, err := ingest.FromRequest(c, ingest.KindTags)
	if err != nil {
		return ingest.WriteError(c, err)
	}

	res, err := h.pipeline.Ingest(c.Context(), env)
	if err != nil {
		ingest.LogFailure(logger.WithIngest(h.service.logger, c, env.Domain, string(env.Kind)), "Tag ingest failed", err)
		return ingest.WriteError(c, err)
	}
	return c.JSON(res)
}
