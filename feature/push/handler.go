package push

import (
	"errors"
	"strings"

	"mastodon-sync/core/ingest"
	"mastodon-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for settings and push subscriptions.
type Handler struct {
	service  *Service
	pipeline *ingest.Pipeline
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, pipeline *ingest.Pipeline) *Handler {
	return &Handler{service: service, pipeline: pipeline}
}

// RegisterRoutes registers the push routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/push")
	group.Post("/:domain/setting", h.HandleSetting)
	group.Post("/:domain/subscription", h.HandleSubscription)
	group.Get("/:domain/subscription", h.HandleActive)
}

// HandleSetting reconciles the viewer's setting.
// @Summary Ingest Setting
// @Description Reconciles client preferences of the viewer. A new setting is seeded with one subscription per push policy.
// @Tags push
// @Accept json
// @Produce json
// @Param domain path string true "Instance domain"
// @Param X-Viewer-ID header string true "Remote account id of the authenticated viewer"
// @Param X-Observed-At header string false "RFC3339 time the response was fetched"
// @Success 200 {object} ingest.Result
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Viewer missing"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /push/{domain}/setting [post]
func (h *Handler) HandleSetting(c *fiber.Ctx) error {
	return h.ingest(c, ingest.KindSetting)
}

// HandleSubscription reconciles a push subscription.
// @Summary Ingest Push Subscription
// @Description Reconciles a web push subscription for a policy. A subscription whose alerts changed becomes the active one.
// @Tags push
// @Accept json
// @Produce json
// @Param domain path string true "Instance domain"
// @Param X-Viewer-ID header string true "Remote account id of the authenticated viewer"
// @Param X-Push-Policy header string false "Push policy (all, followed, follower, none)"
// @Param X-Observed-At header string false "RFC3339 time the response was fetched"
// @Success 200 {object} ingest.Result
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Viewer missing"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /push/{domain}/subscription [post]
func (h *Handler) HandleSubscription(c *fiber.Ctx) error {
	return h.ingest(c, ingest.KindSubscription)
}

// HandleActive returns the active subscription.
// @Summary Active Push Subscription
// @Description Returns the most recently activated subscription of the viewer.
// @Tags push
// @Produce json
// @Param domain path string true "Instance domain"
// @Param X-Viewer-ID header string true "Remote account id of the authenticated viewer"
// @Success 200 {object} ActiveView
// @Failure 404 {object} map[string]string "No subscription"
// @Failure 422 {object} map[string]string "Viewer missing"
// @Router /push/{domain}/subscription [get]
func (h *Handler) HandleActive(c *fiber.Ctx) error {
	view, err := h.service.Active(c.Context(), strings.ToLower(c.Params("domain")), c.Get(ingest.HeaderViewerID))
	if errors.Is(err, ErrNoSubscription) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return ingest.WriteError(c, err)
	}
	return c.JSON(view)
}

func (h *Handler) ingest(c *fiber.Ctx, kind ingest.Kind) error {
	env, err := ingest.FromRequest(c, kind)
	if err != nil {
		return ingest.WriteError(c, err)
	}

	res, err := h.pipeline.Ingest(c.Context(), env)
	if err != nil {
		ingest.LogFailure(logger.WithRayID(h.service.logger, c), "Push ingest failed", err,
			zap.String("kind", string(kind)),
			zap.String("viewer_id", env.ViewerID))
		return ingest.WriteError(c, err)
	}
	return c.JSON(res)
}
