package accounts

import (
	"mastodon-sync/core/ingest"
	"mastodon-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for account ingestion.
type Handler struct {
	service  *Service
	pipeline *ingest.Pipeline
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, pipeline *ingest.Pipeline) *Handler {
	return &Handler{service: service, pipeline: pipeline}
}

// RegisterRoutes registers the account routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/accounts")
	group.Post("/:domain", h.HandleAccounts)
	group.Post("/:domain/relationships", h.HandleRelationships)
}

// HandleAccounts reconciles account profiles.
// @Summary Ingest Accounts
// @Description Reconciles one account or an array of accounts, such as a followers page.
// @Tags accounts
// @Accept json
// @Produce json
// @Param domain path string true "Instance domain"
// @Param X-Viewer-ID header string false "Remote account id of the authenticated viewer"
// @Param X-Observed-At header string false "RFC3339 time the response was fetched"
// @Success 200 {object} ingest.Result
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /accounts/{domain} [post]
func (h *Handler) HandleAccounts(c *fiber.Ctx) error {
	env, err := ingest.FromRequest(c, ingest.KindAccounts)
	if err != nil {
		return ingest.WriteError(c, err)
	}

	res, err := h.pipeline.Ingest(c.Context(), env)
	if err != nil {
		ingest.LogFailure(logger.WithRayID(h.service.logger, c), "Account ingest failed", err)
		return ingest.WriteError(c, err)
	}
	return c.JSON(res)
}

// HandleRelationships reconciles the viewer's relationships.
// @Summary Ingest Relationships
// @Description Reconciles relationships between the viewer and accounts already known to the graph. Unknown accounts are skipped.
// @Tags accounts
// @Accept json
// @Produce json
// @Param domain path string true "Instance domain"
// @Param X-Viewer-ID header string true "Remote account id of the authenticated viewer"
// @Param X-Observed-At header string false "RFC3339 time the response was fetched"
// @Success 200 {object} ingest.Result
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Viewer unknown"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /accounts/{domain}/relationships [post]
func (h *Handler) HandleRelationships(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	env, err := ingest.FromRequest(c, ingest.KindRelationships)
	if err != nil {
		return ingest.WriteError(c, err)
	}

	res, err := h.pipeline.Ingest(c.Context(), env)
	if err != nil {
		ingest.LogFailure(l, "Relationship ingest failed", err, zap.String("viewer_id", env.ViewerID))
		return ingest.WriteError(c, err)
	}

	if res.Skipped > 0 {
		l.Info("Relationships skipped", zap.Int("skipped", res.Skipped))
	}
	return c.JSON(res)
}
