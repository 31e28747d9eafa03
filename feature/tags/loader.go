package tags

import (
	"mastodon-sync/core/ingest"
	"mastodon-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the tags feature and registers its kinds on the pipeline router.
func NewFeature(engine *reconcile.Engine, pipeline *ingest.Pipeline, logger *zap.Logger) *Feature {
	svc := NewService(engine, logger)
	svc.Register(pipeline.Router())
	return &Feature{service: svc, handler: NewHandler(svc, pipeline)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "tags"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
